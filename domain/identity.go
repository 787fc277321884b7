package domain

// Identity represents the authenticated principal held by the session.
// It is owned by the session store; consumers receive copies and never
// mutate it.
type Identity struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	IsAdmin bool   `json:"isAdmin"`
	Plan    string `json:"plan,omitempty"`
}
