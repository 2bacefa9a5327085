// Package database
package database

import (
	"errors"
	"testing"
	"time"

	c "github.com/flybg-dev/flyingsites/internal/interfaces/config"
	. "github.com/flybg-dev/flyingsites/internal/interfaces/operation"
)

func newTestUserOperation(t *testing.T) *UserOperation {
	t.Helper()
	return NewUserOperation(newTestDatabase(t), 5*time.Second, &c.DatabaseConfig{})
}

func TestCreatePendingUser(t *testing.T) {
	userOperation := newTestUserOperation(t)
	expiry := time.Now().Add(48 * time.Hour)

	user, err := userOperation.CreatePendingUser("Pilot@Example.COM", "token-one", expiry)
	if err != nil {
		t.Fatalf("CreatePendingUser: %v", err)
	}
	if user.Email != "pilot@example.com" {
		t.Errorf("email = %q; expected lowercased", user.Email)
	}
	if !user.Pending() {
		t.Errorf("user = %+v; expected pending state", user)
	}

	if _, err := userOperation.CreatePendingUser("pilot@example.com", "token-two", expiry); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate email = %v; expected ErrEmailTaken", err)
	}
}

func TestActivationLifecycle(t *testing.T) {
	userOperation := newTestUserOperation(t)
	expiry := time.Now().Add(48 * time.Hour)

	user, err := userOperation.CreatePendingUser("pilot@example.com", "token-one", expiry)
	if err != nil {
		t.Fatalf("CreatePendingUser: %v", err)
	}

	fetched, err := userOperation.GetUserByToken("token-one")
	if err != nil {
		t.Fatalf("GetUserByToken: %v", err)
	}
	if fetched.ID != user.ID {
		t.Fatalf("token lookup found uid %d; expected %d", fetched.ID, user.ID)
	}

	if err := userOperation.ActivateUser(fetched, "pilot", "hunter2secret"); err != nil {
		t.Fatalf("ActivateUser: %v", err)
	}

	activated, err := userOperation.GetUserByUid(user.ID)
	if err != nil {
		t.Fatalf("GetUserByUid: %v", err)
	}
	if !activated.IsActive || activated.Username != "pilot" {
		t.Errorf("activated user = %+v; expected active with username", activated)
	}
	if activated.InvitationToken != "" || activated.TokenExpiry != nil {
		t.Errorf("token pair not cleared: %+v", activated)
	}
	if !userOperation.VerifyUserPassword(activated, "hunter2secret") {
		t.Error("password does not verify after activation")
	}
	if userOperation.VerifyUserPassword(activated, "wrong") {
		t.Error("wrong password verified")
	}

	// the token is single-use
	if _, err := userOperation.GetUserByToken("token-one"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("used token lookup = %v; expected ErrUserNotFound", err)
	}
}

func TestActivateUserUsernameConflict(t *testing.T) {
	userOperation := newTestUserOperation(t)
	expiry := time.Now().Add(48 * time.Hour)

	first, err := userOperation.CreatePendingUser("first@example.com", "token-one", expiry)
	if err != nil {
		t.Fatalf("CreatePendingUser first: %v", err)
	}
	if err := userOperation.ActivateUser(first, "pilot", "hunter2secret"); err != nil {
		t.Fatalf("ActivateUser first: %v", err)
	}

	second, err := userOperation.CreatePendingUser("second@example.com", "token-two", expiry)
	if err != nil {
		t.Fatalf("CreatePendingUser second: %v", err)
	}
	if err := userOperation.ActivateUser(second, "pilot", "otherpassword"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("ActivateUser second = %v; expected ErrUsernameTaken", err)
	}

	unchanged, err := userOperation.GetUserByUid(second.ID)
	if err != nil {
		t.Fatalf("GetUserByUid: %v", err)
	}
	if unchanged.IsActive || unchanged.Username != "" {
		t.Errorf("second user = %+v; expected still pending", unchanged)
	}
}

func TestRenewActivationToken(t *testing.T) {
	userOperation := newTestUserOperation(t)
	expiry := time.Now().Add(time.Hour)

	user, err := userOperation.CreatePendingUser("pilot@example.com", "token-one", expiry)
	if err != nil {
		t.Fatalf("CreatePendingUser: %v", err)
	}

	newExpiry := time.Now().Add(48 * time.Hour)
	if err := userOperation.RenewActivationToken(user, "token-two", newExpiry); err != nil {
		t.Fatalf("RenewActivationToken: %v", err)
	}

	if _, err := userOperation.GetUserByToken("token-one"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("old token still resolves: %v", err)
	}
	renewed, err := userOperation.GetUserByToken("token-two")
	if err != nil {
		t.Fatalf("GetUserByToken renewed: %v", err)
	}
	if renewed.ID != user.ID {
		t.Errorf("renewed token resolves to uid %d; expected %d", renewed.ID, user.ID)
	}
}

func TestVerifyUserPasswordEmptyHash(t *testing.T) {
	userOperation := newTestUserOperation(t)
	user := &User{}
	if userOperation.VerifyUserPassword(user, "anything") {
		t.Error("password verified against a pending user without a hash")
	}
}
