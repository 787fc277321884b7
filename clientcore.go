// Package clientcore is the session and entitlement gating core of the
// Pulsemark client. It is an embedded library: construct an App once at
// process start, call Initialize, then hand the parts to the view
// layer. Route guards and feature gates must not evaluate access until
// Initialize returns.
package clientcore

import (
	"context"

	"go.uber.org/zap"

	"github.com/pulsemark/clientcore/api/guard"
	"github.com/pulsemark/clientcore/internal/backend"
	"github.com/pulsemark/clientcore/internal/config"
	"github.com/pulsemark/clientcore/pkg/logger"
	"github.com/pulsemark/clientcore/repository"
	boltRepo "github.com/pulsemark/clientcore/repository/bolt"
	"github.com/pulsemark/clientcore/usecase/entitlement"
	"github.com/pulsemark/clientcore/usecase/session"
)

// App wires the client core. Construct once, pass by reference.
type App struct {
	Config       *config.Config
	Logger       *zap.Logger
	Sessions     *session.Store
	Entitlements *entitlement.Evaluator
	Guard        *guard.Guard
	Prefs        repository.PreferenceRepository

	storage *boltRepo.Store
}

// New builds the client core from configuration. A nil cfg loads from
// the environment.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		return nil, err
	}

	storage, err := boltRepo.Open(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}

	// The unauthorized hook closes over the store variable so the
	// client can be built first; the store ignores stale tokens.
	var sessions *session.Store
	client := backend.New(cfg.Backend, zapLogger, backend.WithUnauthorizedHook(func(token string) {
		if sessions != nil {
			sessions.Invalidate(token)
		}
	}))
	sessions = session.New(client, storage, zapLogger)

	return &App{
		Config:       cfg,
		Logger:       zapLogger,
		Sessions:     sessions,
		Entitlements: entitlement.New(),
		Guard:        guard.New(cfg.Routes.LoginPath, cfg.Routes.DashboardPath, zapLogger),
		Prefs:        storage,
		storage:      storage,
	}, nil
}

// Initialize restores and validates any persisted credential. It
// blocks for at most one backend round trip and settles the session
// exactly once.
func (a *App) Initialize(ctx context.Context) {
	a.Sessions.Initialize(ctx)
}

// Close releases the local storage file.
func (a *App) Close() error {
	_ = a.Logger.Sync()
	return a.storage.Close()
}
