package entitlement

import (
	"testing"

	"github.com/pulsemark/clientcore/domain"
)

func TestAdminBypass(t *testing.T) {
	e := New()
	admin := &domain.Identity{ID: "1", Name: "Ann", IsAdmin: true}

	keys := []string{
		domain.FeatureUnlimitedEmails,
		domain.FeatureUnlimitedWhatsApp,
		domain.FeatureUnlimitedContacts,
		domain.FeatureGiftCards,
		domain.FeatureDiscounts,
		domain.FeatureReferrals,
		domain.FeatureAdChat,
		domain.FeatureAIAssistant,
		"some_future_feature",
		"",
	}
	for _, key := range keys {
		d := e.HasAccess(admin, key)
		if !d.Allowed || !d.IsAdmin || !d.Unlimited {
			t.Errorf("HasAccess(admin, %q) = %+v, want allowed admin unlimited", key, d)
		}
		if d.Limit != 0 {
			t.Errorf("HasAccess(admin, %q) carries limit %d", key, d.Limit)
		}
	}
}

func TestDefaultLimits(t *testing.T) {
	e := New()
	user := &domain.Identity{ID: "2", Name: "Bob"}

	cases := []struct {
		feature string
		allowed bool
		limit   int
	}{
		{domain.FeatureUnlimitedEmails, false, 1000},
		{domain.FeatureUnlimitedWhatsApp, false, 500},
		{domain.FeatureUnlimitedContacts, false, 5000},
		{domain.FeatureGiftCards, true, 10},
		{domain.FeatureDiscounts, true, 5},
		{domain.FeatureReferrals, true, 0},
		{domain.FeatureAdChat, true, 0},
		{domain.FeatureAIAssistant, true, 0},
	}
	for _, tc := range cases {
		d := e.HasAccess(user, tc.feature)
		if d.Allowed != tc.allowed || d.Limit != tc.limit {
			t.Errorf("HasAccess(user, %q) = %+v, want allowed=%v limit=%d", tc.feature, d, tc.allowed, tc.limit)
		}
		if d.IsAdmin || d.Unlimited {
			t.Errorf("HasAccess(user, %q) = %+v, unexpected admin flags", tc.feature, d)
		}
	}
}

func TestUnknownFeatureFailsOpen(t *testing.T) {
	e := New()
	d := e.HasAccess(&domain.Identity{ID: "2"}, "brand_new_feature")
	if !d.Allowed || d.Limit != 0 {
		t.Errorf("unknown feature = %+v, want allowed with no limit", d)
	}
}

func TestNilIdentityIsNonAdmin(t *testing.T) {
	e := New()
	d := e.HasAccess(nil, domain.FeatureUnlimitedEmails)
	if d.Allowed || d.Limit != 1000 {
		t.Errorf("HasAccess(nil, unlimited_emails) = %+v, want disallowed limit 1000", d)
	}
}
