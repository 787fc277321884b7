package bolt

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/pulsemark/clientcore/domain"
)

var (
	sessionBucket = []byte("session")
	prefsBucket   = []byte("prefs")

	credentialKey = []byte("credential")
	profileKey    = []byte("profile")
	installKey    = []byte("install_prompt_dismissed")
)

// Store wraps BoltDB to persist client state across process restarts:
// the credential slot with its cached profile, and UI preferences.
type Store struct {
	db *bolt.DB
}

// Open initializes the BoltDB file and ensures the buckets exist.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(sessionBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(prefsBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Save stores the credential and the profile cached for optimistic
// restore. A nil identity clears the cached profile.
func (s *Store) Save(token string, identity *domain.Identity) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		if err := b.Put(credentialKey, []byte(token)); err != nil {
			return err
		}
		if identity == nil {
			return b.Delete(profileKey)
		}
		payload, err := json.Marshal(identity)
		if err != nil {
			return err
		}
		return b.Put(profileKey, payload)
	})
}

// Load returns the stored credential and cached profile, or
// domain.ErrNoCredential when the slot is empty. A corrupt cached
// profile is discarded rather than failing the restore.
func (s *Store) Load() (string, *domain.Identity, error) {
	if s == nil || s.db == nil {
		return "", nil, bolt.ErrDatabaseNotOpen
	}
	var token string
	var identity *domain.Identity
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		token = string(b.Get(credentialKey))
		if raw := b.Get(profileKey); len(raw) > 0 {
			var id domain.Identity
			if err := json.Unmarshal(raw, &id); err == nil {
				identity = &id
			}
		}
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	if token == "" {
		return "", nil, domain.ErrNoCredential
	}
	return token, identity, nil
}

// Clear empties the credential slot. Clearing an empty slot succeeds.
func (s *Store) Clear() error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		if err := b.Delete(credentialKey); err != nil {
			return err
		}
		return b.Delete(profileKey)
	})
}

// InstallPromptDismissed reports whether the install prompt was
// dismissed; false when never set.
func (s *Store) InstallPromptDismissed() (bool, error) {
	if s == nil || s.db == nil {
		return false, bolt.ErrDatabaseNotOpen
	}
	var dismissed bool
	err := s.db.View(func(tx *bolt.Tx) error {
		dismissed = string(tx.Bucket(prefsBucket).Get(installKey)) == "true"
		return nil
	})
	return dismissed, err
}

// SetInstallPromptDismissed records the install prompt flag.
func (s *Store) SetInstallPromptDismissed(dismissed bool) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(prefsBucket).Put(installKey, []byte(strconv.FormatBool(dismissed)))
	})
}

// Close releases the underlying database file.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
