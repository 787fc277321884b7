package entitlement

import "github.com/pulsemark/clientcore/domain"

type rule struct {
	allowed bool
	limit   int
}

// defaultRules applies to every non-admin identity. Limits do not yet
// vary by subscribed plan tier.
func defaultRules() map[string]rule {
	return map[string]rule{
		domain.FeatureUnlimitedEmails:   {allowed: false, limit: 1000},
		domain.FeatureUnlimitedWhatsApp: {allowed: false, limit: 500},
		domain.FeatureUnlimitedContacts: {allowed: false, limit: 5000},
		domain.FeatureGiftCards:         {allowed: true, limit: 10},
		domain.FeatureDiscounts:         {allowed: true, limit: 5},
		domain.FeatureReferrals:         {allowed: true},
		domain.FeatureAdChat:            {allowed: true},
		domain.FeatureAIAssistant:       {allowed: true},
	}
}

// Evaluator decides feature access from an identity and a static table
// of per-feature defaults. It keeps no state between evaluations;
// every decision is recomputed on demand.
type Evaluator struct {
	rules map[string]rule
}

// New builds an evaluator over the default limit table.
func New() *Evaluator {
	return &Evaluator{rules: defaultRules()}
}

// HasAccess resolves the entitlement for one feature key.
//
// Admin identities bypass every per-feature rule unconditionally.
// Unknown keys default to allowed with no limit; features gate access
// only when explicitly listed. A nil identity evaluates as non-admin.
func (e *Evaluator) HasAccess(identity *domain.Identity, feature string) domain.Decision {
	if identity != nil && identity.IsAdmin {
		return domain.Decision{Allowed: true, IsAdmin: true, Unlimited: true}
	}
	r, ok := e.rules[feature]
	if !ok {
		return domain.Decision{Allowed: true}
	}
	return domain.Decision{Allowed: r.allowed, Limit: r.limit}
}
