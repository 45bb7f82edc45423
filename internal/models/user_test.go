// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "testing"

func TestRolePermissions(t *testing.T) {
	tests := []struct {
		role           Role
		canPublish     bool
		canManageUsers bool
	}{
		{RoleEditor, false, false},
		{RoleAdmin, true, false},
		{RoleSuperAdmin, true, true},
	}

	for _, tt := range tests {
		if got := tt.role.CanPublish(); got != tt.canPublish {
			t.Errorf("%s.CanPublish() = %v, want %v", tt.role, got, tt.canPublish)
		}
		if got := tt.role.CanManageUsers(); got != tt.canManageUsers {
			t.Errorf("%s.CanManageUsers() = %v, want %v", tt.role, got, tt.canManageUsers)
		}
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleEditor, RoleAdmin, RoleSuperAdmin} {
		if !r.Valid() {
			t.Errorf("%s should be valid", r)
		}
	}
	if Role("owner").Valid() {
		t.Error("unknown role should be invalid")
	}
	if Role("").Valid() {
		t.Error("empty role should be invalid")
	}
}
