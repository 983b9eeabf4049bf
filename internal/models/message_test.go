package models

import "testing"

func TestRoleValid(t *testing.T) {
	tests := []struct {
		role     Role
		expected bool
	}{
		{RoleUser, true},
		{RoleAssistant, true},
		{RoleSystem, true},
		{"", false},
		{"moderator", false},
		{"User", false},
	}

	for _, tc := range tests {
		if got := tc.role.Valid(); got != tc.expected {
			t.Errorf("Role(%q).Valid() = %v, expected %v", tc.role, got, tc.expected)
		}
	}
}
