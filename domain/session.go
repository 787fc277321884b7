package domain

// Credentials is the authentication payload returned by the backend on
// login, register and credential validation.
type Credentials struct {
	Token    string   `json:"token"`
	Identity Identity `json:"user"`
}

// Snapshot is a read-only view of the session state at one instant.
//
// Invariant: Token is non-empty exactly when Identity is non-nil.
// Loading is true only during the bounded initialization window at
// process start and settles to false exactly once.
type Snapshot struct {
	Identity *Identity
	Token    string
	Loading  bool
}

// Authenticated reports whether the snapshot carries an identity.
func (s Snapshot) Authenticated() bool {
	return s.Identity != nil
}

// Settled reports whether the initial restore/validation sequence has
// completed, regardless of the outcome.
func (s Snapshot) Settled() bool {
	return !s.Loading
}
