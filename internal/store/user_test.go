// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"testing"

	"therapycms/internal/models"
)

func TestUserCreateAndCheckPassword(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	deleteUsers(t, db, "store-user@test.local")
	t.Cleanup(func() { deleteUsers(t, db, "store-user@test.local") })

	created, err := s.Create("store-user@test.local", "a-long-password", "Store User", models.RoleEditor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.PasswordHash == "a-long-password" {
		t.Fatal("password must be stored hashed")
	}

	if !s.CheckPassword(created, "a-long-password") {
		t.Error("correct password should verify")
	}
	if s.CheckPassword(created, "wrong-password") {
		t.Error("wrong password should not verify")
	}

	found, err := s.FindByEmail("store-user@test.local")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Errorf("find by email = %+v, want the created user", found)
	}

	missing, err := s.FindByEmail("missing@test.local")
	if err != nil {
		t.Fatalf("find missing: %v", err)
	}
	if missing != nil {
		t.Error("unknown email should return nil, nil")
	}
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	deleteUsers(t, db, "store-dup@test.local")
	t.Cleanup(func() { deleteUsers(t, db, "store-dup@test.local") })

	if _, err := s.Create("store-dup@test.local", "a-long-password", "Dup One", models.RoleEditor); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := s.Create("store-dup@test.local", "a-long-password", "Dup Two", models.RoleEditor)
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate email: err = %v, want ErrEmailTaken", err)
	}
}

func TestUserUpdatePassword(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	deleteUsers(t, db, "store-rehash@test.local")
	t.Cleanup(func() { deleteUsers(t, db, "store-rehash@test.local") })

	created, err := s.Create("store-rehash@test.local", "first-password", "Rehash User", models.RoleEditor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Empty password leaves the hash untouched.
	if err := s.Update(created.ID, "Renamed", models.RoleAdmin, ""); err != nil {
		t.Fatalf("update without password: %v", err)
	}
	unchanged, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if unchanged.Role != models.RoleAdmin || unchanged.DisplayName != "Renamed" {
		t.Errorf("update fields = %s/%s, want Renamed/admin", unchanged.DisplayName, unchanged.Role)
	}
	if !s.CheckPassword(unchanged, "first-password") {
		t.Error("old password should still verify after field-only update")
	}

	// A new password rehashes.
	if err := s.Update(created.ID, "Renamed", models.RoleAdmin, "second-password"); err != nil {
		t.Fatalf("update with password: %v", err)
	}
	rehashed, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !s.CheckPassword(rehashed, "second-password") {
		t.Error("new password should verify")
	}
	if s.CheckPassword(rehashed, "first-password") {
		t.Error("old password should stop verifying")
	}
}

func TestUserTOTPLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	deleteUsers(t, db, "store-totp@test.local")
	t.Cleanup(func() { deleteUsers(t, db, "store-totp@test.local") })

	created, err := s.Create("store-totp@test.local", "a-long-password", "TOTP User", models.RoleEditor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.TOTPEnabled {
		t.Fatal("new accounts start without 2FA")
	}

	if err := s.SetTOTPSecret(created.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("set secret: %v", err)
	}
	if err := s.EnableTOTP(created.ID); err != nil {
		t.Fatalf("enable: %v", err)
	}

	enabled, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !enabled.TOTPEnabled || enabled.TOTPSecret == nil {
		t.Fatalf("totp state = %v/%v, want enabled with secret", enabled.TOTPEnabled, enabled.TOTPSecret)
	}

	if err := s.ResetTOTP(created.ID); err != nil {
		t.Fatalf("reset: %v", err)
	}
	reset, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if reset.TOTPEnabled || reset.TOTPSecret != nil {
		t.Error("reset should clear the secret and disable 2FA")
	}
}
