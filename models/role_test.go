package models

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"User", RoleUser, true},
		{"user", RoleUser, true},
		{"Admin", RoleAdmin, true},
		{"ADMIN", RoleAdmin, true},
		{"superuser", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := ParseRole(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("ParseRole(%q) = %q, %v; want %q, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestIsAdmin(t *testing.T) {
	if RoleUser.IsAdmin() {
		t.Fatalf("User must not be admin")
	}
	if !RoleAdmin.IsAdmin() {
		t.Fatalf("Admin must be admin")
	}
}
