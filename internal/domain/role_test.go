package domain

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{"CLIENT", RoleClient},
		{"client", RoleClient},
		{"Mechanic", RoleMechanic},
		{"carwash", RoleCarWash},
		{"ADMIN", RoleAdmin},
		{"  admin  ", RoleAdmin},
	}
	for _, tc := range cases {
		got, err := ParseRole(tc.in)
		if err != nil {
			t.Errorf("ParseRole(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseRole(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseRoleUnknown(t *testing.T) {
	for _, in := range []string{"", "superuser", "CLIENTS"} {
		if _, err := ParseRole(in); !errors.Is(err, ErrUnknownRole) {
			t.Errorf("ParseRole(%q) err = %v, want ErrUnknownRole", in, err)
		}
	}
}

func TestHasRole(t *testing.T) {
	roles := []Role{RoleClient, RoleCarWash}
	if !HasRole(roles, RoleCarWash) {
		t.Error("HasRole missed present role")
	}
	if HasRole(roles, RoleAdmin) {
		t.Error("HasRole found absent role")
	}
	if HasRole(nil, RoleClient) {
		t.Error("HasRole on nil set")
	}
}
