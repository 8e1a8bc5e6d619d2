package auth

import (
	"testing"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

func TestAuthorize(t *testing.T) {
	bob := &Identity{Subject: "bob", Roles: []domain.Role{domain.RoleClient}}
	carol := &Identity{Subject: "carol", Roles: []domain.Role{domain.RoleMechanic}}
	admin := &Identity{Subject: "admin1", Roles: []domain.Role{domain.RoleAdmin}}

	cases := []struct {
		name       string
		identity   *Identity
		owner      string
		capability Capability
		want       bool
	}{
		{"public anonymous", nil, "", CapabilityPublic, true},
		{"public authenticated", bob, "", CapabilityPublic, true},
		{"authenticated anonymous", nil, "", CapabilityAuthenticated, false},
		{"authenticated with identity", carol, "", CapabilityAuthenticated, true},
		{"self on own resource", bob, "bob", CapabilitySelfOrAdmin, true},
		{"self on other resource", bob, "carol", CapabilitySelfOrAdmin, false},
		{"admin on other resource", admin, "bob", CapabilitySelfOrAdmin, true},
		{"anonymous self-or-admin", nil, "bob", CapabilitySelfOrAdmin, false},
		{"admin only as admin", admin, "", CapabilityAdminOnly, true},
		{"admin only as client", bob, "", CapabilityAdminOnly, false},
		{"admin only anonymous", nil, "", CapabilityAdminOnly, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Authorize(tc.identity, tc.owner, tc.capability); got != tc.want {
				t.Errorf("Authorize = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIdentityIsAdmin(t *testing.T) {
	multi := &Identity{Subject: "dora", Roles: []domain.Role{domain.RoleCarWash, domain.RoleAdmin}}
	if !multi.IsAdmin() {
		t.Error("IsAdmin = false for identity holding ADMIN")
	}

	plain := &Identity{Subject: "bob", Roles: []domain.Role{domain.RoleClient}}
	if plain.IsAdmin() {
		t.Error("IsAdmin = true for identity without ADMIN")
	}
}
