package guard

import (
	"go.uber.org/zap"

	"github.com/pulsemark/clientcore/domain"
)

// Action tells the view layer how to treat a navigation attempt.
type Action int

const (
	// ActionShowLoading renders a neutral indicator while the session
	// is still settling. No redirect is taken in this state.
	ActionShowLoading Action = iota
	// ActionRender renders the requested content.
	ActionRender
	// ActionRedirect navigates to Result.Redirect instead.
	ActionRedirect
)

// Result is the outcome of one navigation evaluation.
type Result struct {
	Action   Action
	Redirect string
}

// Guard gates rendering of navigation targets from session state. It
// holds no timers and no retries: transitions are driven entirely by
// session snapshots supplied by the caller.
type Guard struct {
	loginPath     string
	dashboardPath string
	logger        *zap.Logger
}

func New(loginPath, dashboardPath string, logger *zap.Logger) *Guard {
	if loginPath == "" {
		loginPath = "/login"
	}
	if dashboardPath == "" {
		dashboardPath = "/dashboard"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard{
		loginPath:     loginPath,
		dashboardPath: dashboardPath,
		logger:        logger,
	}
}

// Evaluate decides whether the target may render.
//
// While the session is loading no authorization decision is made:
// protected content must never flash before the session settles, and
// no premature redirect may fire. A settled anonymous session
// redirects to the login destination; an authenticated non-admin on
// an admin-only route redirects to the dashboard. The originally
// requested path is not preserved across the login redirect.
func (g *Guard) Evaluate(snap domain.Snapshot, access domain.RouteAccess) Result {
	if !access.RequiresAuth && !access.RequiresAdmin {
		return Result{Action: ActionRender}
	}
	if snap.Loading {
		return Result{Action: ActionShowLoading}
	}
	if snap.Identity == nil {
		return Result{Action: ActionRedirect, Redirect: g.loginPath}
	}
	if access.RequiresAdmin && !snap.Identity.IsAdmin {
		g.logger.Debug("admin route denied", zap.String("user_id", snap.Identity.ID))
		return Result{Action: ActionRedirect, Redirect: g.dashboardPath}
	}
	return Result{Action: ActionRender}
}
