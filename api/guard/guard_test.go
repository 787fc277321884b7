package guard

import (
	"testing"

	"github.com/pulsemark/clientcore/domain"
)

func TestEvaluate(t *testing.T) {
	g := New("/login", "/dashboard", nil)

	user := &domain.Identity{ID: "1", Name: "Ann"}
	admin := &domain.Identity{ID: "2", Name: "Root", IsAdmin: true}

	cases := []struct {
		name     string
		snap     domain.Snapshot
		access   domain.RouteAccess
		action   Action
		redirect string
	}{
		{
			name:   "public route renders while loading",
			snap:   domain.Snapshot{Loading: true},
			access: domain.Public,
			action: ActionRender,
		},
		{
			name:   "protected route waits for settlement",
			snap:   domain.Snapshot{Loading: true},
			access: domain.Protected,
			action: ActionShowLoading,
		},
		{
			name:   "admin route waits for settlement",
			snap:   domain.Snapshot{Loading: true},
			access: domain.AdminOnly,
			action: ActionShowLoading,
		},
		{
			name:     "anonymous redirects to login",
			snap:     domain.Snapshot{},
			access:   domain.Protected,
			action:   ActionRedirect,
			redirect: "/login",
		},
		{
			name:   "authenticated renders protected",
			snap:   domain.Snapshot{Identity: user, Token: "tok1"},
			access: domain.Protected,
			action: ActionRender,
		},
		{
			name:     "non-admin redirects to dashboard on admin route",
			snap:     domain.Snapshot{Identity: user, Token: "tok1"},
			access:   domain.AdminOnly,
			action:   ActionRedirect,
			redirect: "/dashboard",
		},
		{
			name:   "admin renders admin route",
			snap:   domain.Snapshot{Identity: admin, Token: "tok2"},
			access: domain.AdminOnly,
			action: ActionRender,
		},
		{
			name:     "anonymous redirects to login on admin route",
			snap:     domain.Snapshot{},
			access:   domain.AdminOnly,
			action:   ActionRedirect,
			redirect: "/login",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := g.Evaluate(tc.snap, tc.access)
			if res.Action != tc.action {
				t.Fatalf("action = %v, want %v", res.Action, tc.action)
			}
			if res.Redirect != tc.redirect {
				t.Errorf("redirect = %q, want %q", res.Redirect, tc.redirect)
			}
		})
	}
}

// Protected content must never appear before the session settles: for
// every loading snapshot, whatever identity it optimistically carries,
// the guard holds at the loading indicator.
func TestNoContentFlashDuringInitialization(t *testing.T) {
	g := New("", "", nil)
	snaps := []domain.Snapshot{
		{Loading: true},
		{Loading: true, Identity: &domain.Identity{ID: "1"}, Token: "tok1"},
		{Loading: true, Identity: &domain.Identity{ID: "2", IsAdmin: true}, Token: "tok2"},
	}
	for _, snap := range snaps {
		for _, access := range []domain.RouteAccess{domain.Protected, domain.AdminOnly} {
			if res := g.Evaluate(snap, access); res.Action != ActionShowLoading {
				t.Errorf("Evaluate(%+v, %+v) = %v, want loading", snap, access, res.Action)
			}
		}
	}
}

func TestTableLookup(t *testing.T) {
	table := NewTable([]domain.Route{
		{Path: "/dashboard", Access: domain.Protected},
		{Path: "/contacts", Access: domain.Protected},
		{Path: "/admin", Access: domain.AdminOnly},
		{Path: "/login", Access: domain.Public},
	})

	if got := table.Access("/admin"); !got.RequiresAdmin {
		t.Errorf("Access(/admin) = %+v, want admin-only", got)
	}
	if got := table.Access("/contacts"); !got.RequiresAuth || got.RequiresAdmin {
		t.Errorf("Access(/contacts) = %+v, want protected", got)
	}
	if got := table.Access("/pricing"); got != domain.Public {
		t.Errorf("Access on unlisted path = %+v, want public", got)
	}
}

func TestDefaultDestinations(t *testing.T) {
	g := New("", "", nil)
	if res := g.Evaluate(domain.Snapshot{}, domain.Protected); res.Redirect != "/login" {
		t.Errorf("default login path = %q", res.Redirect)
	}
	user := &domain.Identity{ID: "1"}
	if res := g.Evaluate(domain.Snapshot{Identity: user, Token: "t"}, domain.AdminOnly); res.Redirect != "/dashboard" {
		t.Errorf("default dashboard path = %q", res.Redirect)
	}
}
