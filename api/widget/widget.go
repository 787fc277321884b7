package widget

import "github.com/pulsemark/clientcore/domain"

// GateContent selects what a feature gate renders.
type GateContent int

const (
	// GateChildren renders the gated content.
	GateChildren GateContent = iota
	// GateFallback renders the caller-supplied fallback.
	GateFallback
	// GateUpgradeNotice renders the default "upgrade required" notice.
	GateUpgradeNotice
)

// Gate resolves a feature gate: children when the decision allows or
// the identity is admin, otherwise the caller's fallback, or the
// upgrade notice when none was supplied.
func Gate(d domain.Decision, hasFallback bool) GateContent {
	if d.Allowed || d.IsAdmin {
		return GateChildren
	}
	if hasFallback {
		return GateFallback
	}
	return GateUpgradeNotice
}

// nearLimitThreshold flips the usage indicator color. Presentation
// only, never blocking.
const nearLimitThreshold = 80.0

// LimitView is the presentation state of a usage-limit indicator.
type LimitView struct {
	// AdminBadge replaces the numeric indicator for admin identities.
	AdminBadge bool
	// Percentage is usage against the limit, capped at 100 for display.
	Percentage float64
	NearLimit  bool
}

// Limit computes the indicator for current usage against the
// decision's limit. Admins get a badge and no numeric tracking;
// features without a numeric limit render an empty indicator.
func Limit(d domain.Decision, current int) LimitView {
	if d.IsAdmin {
		return LimitView{AdminBadge: true}
	}
	if d.Limit <= 0 {
		return LimitView{}
	}
	if current < 0 {
		current = 0
	}
	pct := float64(current) / float64(d.Limit) * 100
	near := pct >= nearLimitThreshold
	if pct > 100 {
		pct = 100
	}
	return LimitView{Percentage: pct, NearLimit: near}
}
