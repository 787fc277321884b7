package repository

import "github.com/pulsemark/clientcore/domain"

// CredentialRepository persists the single bearer-credential slot used
// to restore the session across process restarts. Only the session
// store writes it; every other component reads derived in-memory state.
type CredentialRepository interface {
	// Save stores the credential together with the profile cached for
	// optimistic restore. A nil identity clears the cached profile.
	Save(token string, identity *domain.Identity) error
	// Load returns the stored credential and cached profile, or
	// domain.ErrNoCredential when the slot is empty.
	Load() (string, *domain.Identity, error)
	// Clear empties the slot. Clearing an empty slot is a no-op.
	Clear() error
}
