package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pulsemark/clientcore/domain"
	"github.com/pulsemark/clientcore/repository"
)

// RegisterParams carries the fields of a registration request.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// AuthAPI is the slice of the backend surface the session store
// depends on.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (domain.Credentials, error)
	Register(ctx context.Context, p RegisterParams) (domain.Credentials, error)
	Me(ctx context.Context, token string) (*domain.Identity, error)
	ForgotPassword(ctx context.Context, email string) error
}

// Store is the single source of truth for the authenticated identity.
// It owns the persisted credential slot and settles exactly once per
// process lifetime after Initialize restores or discards it.
//
// Every mutation bumps an internal generation counter; results of
// asynchronous calls are applied only when the generation they were
// started under is still current, so a stale validation response can
// never resurrect a session after logout.
type Store struct {
	api    AuthAPI
	creds  repository.CredentialRepository
	logger *zap.Logger

	initOnce sync.Once

	mu         sync.RWMutex
	identity   *domain.Identity
	token      string
	loading    bool
	generation uint64
}

// New builds a session store in its pre-initialization state
// (loading=true, anonymous). Call Initialize before evaluating access.
func New(api AuthAPI, creds repository.CredentialRepository, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		api:     api,
		creds:   creds,
		logger:  logger,
		loading: true,
	}
}

// Initialize restores a previously persisted credential and validates
// it against the backend. It runs at most once; repeat calls are
// no-ops. The loading flag settles to false on every path: restored,
// rejected, or no stored credential.
func (s *Store) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		s.initialize(ctx)
	})
}

func (s *Store) initialize(ctx context.Context) {
	defer s.settle()

	token, cached, err := s.creds.Load()
	if err != nil {
		if !errors.Is(err, domain.ErrNoCredential) {
			s.logger.Warn("credential restore failed", zap.Error(err))
		}
		return
	}

	if expired(token, time.Now()) {
		s.logger.Info("discarding stored credential", zap.Error(domain.ErrSessionExpired))
		if err := s.creds.Clear(); err != nil {
			s.logger.Warn("credential clear failed", zap.Error(err))
		}
		return
	}

	identity := cached
	if identity == nil {
		identity = identityFromToken(token)
	}

	// Optimistically adopt the stored credential when a cached profile
	// is available; otherwise stay anonymous until validation settles.
	// Either way the session invariant (token set iff identity set)
	// holds at every observable point.
	var gen uint64
	if identity != nil {
		gen = s.adopt(token, identity)
	} else {
		gen = s.current()
	}

	fresh, err := s.api.Me(ctx, token)
	if err != nil {
		s.logger.Info("stored credential rejected", zap.Error(err))
		s.clearIf(gen)
		return
	}
	if identity != nil {
		s.refreshIdentity(gen, fresh)
	} else {
		s.installIf(gen, token, fresh)
	}
}

// Login authenticates against the backend. On success the session
// becomes authenticated and the credential is persisted for future
// process starts; on failure the error is returned and no state
// changes.
func (s *Store) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	creds, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.logger.Info("login rejected", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	s.logger.Info("login succeeded", zap.String("user_id", creds.Identity.ID))
	return s.establish(creds), nil
}

// Register creates an account. A successful registration behaves
// exactly like a successful login.
func (s *Store) Register(ctx context.Context, p RegisterParams) (*domain.Identity, error) {
	creds, err := s.api.Register(ctx, p)
	if err != nil {
		s.logger.Info("registration rejected", zap.String("email", p.Email), zap.Error(err))
		return nil, err
	}
	s.logger.Info("registration succeeded", zap.String("user_id", creds.Identity.ID))
	return s.establish(creds), nil
}

// ForgotPassword requests a reset email. Fire-and-forget: it never
// touches session state.
func (s *Store) ForgotPassword(ctx context.Context, email string) error {
	return s.api.ForgotPassword(ctx, email)
}

// Logout clears the in-memory session and the persisted credential.
// Logging out while already anonymous is a no-op success.
func (s *Store) Logout() {
	s.mu.Lock()
	had := s.identity != nil
	s.identity = nil
	s.token = ""
	s.generation++
	s.mu.Unlock()

	if err := s.creds.Clear(); err != nil {
		s.logger.Warn("credential clear failed", zap.Error(err))
	}
	if had {
		s.logger.Info("logged out")
	}
}

// Invalidate is the 401/403 signal from an authenticated call: the
// session is cleared only when the rejected token is still the current
// one, so responses for older credentials cannot log out a fresher
// session.
func (s *Store) Invalidate(token string) {
	s.mu.Lock()
	if token == "" || s.token != token {
		s.mu.Unlock()
		return
	}
	s.identity = nil
	s.token = ""
	s.generation++
	s.mu.Unlock()

	if err := s.creds.Clear(); err != nil {
		s.logger.Warn("credential clear failed", zap.Error(err))
	}
	s.logger.Info("session invalidated by backend")
}

// IsAdmin reports whether the current identity has the admin role;
// false when anonymous.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil && s.identity.IsAdmin
}

// Token returns the current bearer credential, empty when anonymous.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Identity returns a copy of the current identity, nil when anonymous.
func (s *Store) Identity() *domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyIdentity(s.identity)
}

// Snapshot returns a consistent read-only view of the session state.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Snapshot{
		Identity: copyIdentity(s.identity),
		Token:    s.token,
		Loading:  s.loading,
	}
}

func (s *Store) establish(creds domain.Credentials) *domain.Identity {
	id := creds.Identity

	s.mu.Lock()
	s.token = creds.Token
	s.identity = &id
	s.generation++
	s.mu.Unlock()

	if err := s.creds.Save(creds.Token, &id); err != nil {
		s.logger.Warn("credential persist failed", zap.Error(err))
	}

	out := id
	return &out
}

// adopt installs a restored credential and returns the generation the
// pending validation belongs to.
func (s *Store) adopt(token string, identity *domain.Identity) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.identity = identity
	s.generation++
	return s.generation
}

func (s *Store) current() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// installIf establishes a validated session unless a mutation happened
// since gen.
func (s *Store) installIf(gen uint64, token string, identity *domain.Identity) {
	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		return
	}
	s.token = token
	s.identity = identity
	s.generation++
	s.mu.Unlock()

	if err := s.creds.Save(token, identity); err != nil {
		s.logger.Warn("profile cache refresh failed", zap.Error(err))
	}
}

// clearIf clears the session unless a mutation happened since gen.
func (s *Store) clearIf(gen uint64) {
	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		return
	}
	s.identity = nil
	s.token = ""
	s.generation++
	s.mu.Unlock()

	if err := s.creds.Clear(); err != nil {
		s.logger.Warn("credential clear failed", zap.Error(err))
	}
}

// refreshIdentity replaces the optimistic profile with the validated
// one unless a mutation happened since gen.
func (s *Store) refreshIdentity(gen uint64, identity *domain.Identity) {
	s.mu.Lock()
	if s.generation != gen || s.token == "" {
		s.mu.Unlock()
		return
	}
	s.identity = identity
	token := s.token
	s.mu.Unlock()

	if err := s.creds.Save(token, identity); err != nil {
		s.logger.Warn("profile cache refresh failed", zap.Error(err))
	}
}

func (s *Store) settle() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func copyIdentity(id *domain.Identity) *domain.Identity {
	if id == nil {
		return nil
	}
	out := *id
	return &out
}
