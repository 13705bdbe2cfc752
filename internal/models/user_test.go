package models

import "testing"

// TestUserHasRole verifies role membership over multi-role sets.
func TestUserHasRole(t *testing.T) {
	u := &User{Roles: []Role{RoleAuthor, RoleContentEditor2}}

	if !u.HasRole(RoleAuthor) || !u.HasRole(RoleContentEditor2) {
		t.Error("expected held roles to be reported")
	}
	if u.HasRole(RoleChiefEditor) {
		t.Error("unheld role reported as held")
	}

	empty := &User{}
	if empty.HasRole(RoleAuthor) {
		t.Error("user with no roles must hold nothing")
	}
}

// TestUserIsAdmin verifies that both override roles count as admin.
func TestUserIsAdmin(t *testing.T) {
	tests := []struct {
		name  string
		roles []Role
		want  bool
	}{
		{name: "administrator", roles: []Role{RoleAdministrator}, want: true},
		{name: "post admin", roles: []Role{RolePostAdmin}, want: true},
		{name: "editor with post admin", roles: []Role{RoleContentEditor1, RolePostAdmin}, want: true},
		{name: "chief editor only", roles: []Role{RoleChiefEditor}, want: false},
		{name: "no roles", roles: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Roles: tt.roles}
			if got := u.IsAdmin(); got != tt.want {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestNeeds2FASetup mirrors the login flow's enrollment gate.
func TestNeeds2FASetup(t *testing.T) {
	if !(&User{TOTPEnabled: false}).Needs2FASetup() {
		t.Error("user without TOTP must need setup")
	}
	if (&User{TOTPEnabled: true}).Needs2FASetup() {
		t.Error("enrolled user must not need setup")
	}
}

// TestKnownRole verifies the role vocabulary.
func TestKnownRole(t *testing.T) {
	for _, r := range []Role{
		RoleContentEditor1, RoleContentEditor2, RoleContentEditor3,
		RoleLanguageEditor, RoleChiefEditor, RoleAdministrator,
		RolePostAdmin, RoleAuthor, RoleContentWriter,
	} {
		if !KnownRole(r) {
			t.Errorf("KnownRole(%q) = false", r)
		}
	}
	for _, r := range []Role{"", "admin", "content editor level 1"} {
		if KnownRole(r) {
			t.Errorf("KnownRole(%q) = true", r)
		}
	}
}
