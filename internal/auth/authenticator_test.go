package auth

import (
	"errors"
	"testing"
	"time"

	"bookManagement/internal/testutil"
	"bookManagement/models"
)

func newTestAuthenticator(t *testing.T) *Authenticator {
	t.Helper()
	users := []models.User{
		{Username: "alice", PasswordHash: testutil.HashPassword(t, "alicepw"), Role: models.RoleUser},
		{Username: "root", PasswordHash: testutil.HashPassword(t, "rootpw"), Role: models.RoleAdmin},
	}
	return NewAuthenticator(users, testSecret, time.Hour)
}

func TestLogin_Succeeds(t *testing.T) {
	a := newTestAuthenticator(t)
	tok, err := a.Login("alice", "alicepw", "User")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	p, err := a.VerifyToken(tok)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if p.Username != "alice" || p.Role != models.RoleUser {
		t.Fatalf("principal mismatch: %+v", p)
	}
}

func TestLogin_ClaimedRoleIsCaseInsensitive(t *testing.T) {
	a := newTestAuthenticator(t)
	if _, err := a.Login("root", "rootpw", "admin"); err != nil {
		t.Fatalf("login with lowercased role: %v", err)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	a := newTestAuthenticator(t)
	cases := [][3]string{
		{"", "alicepw", "User"},
		{"alice", "", "User"},
		{"alice", "alicepw", ""},
	}
	for _, c := range cases {
		if _, err := a.Login(c[0], c[1], c[2]); !errors.Is(err, ErrMissingFields) {
			t.Fatalf("login(%q,***,%q): expected ErrMissingFields, got %v", c[0], c[2], err)
		}
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	a := newTestAuthenticator(t)
	if _, err := a.Login("alice", "wrong", "User"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := a.Login("nobody", "whatever", "User"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_RoleMismatch(t *testing.T) {
	a := newTestAuthenticator(t)
	// correct password, but alice's stored role is User
	if _, err := a.Login("alice", "alicepw", "Admin"); !errors.Is(err, ErrRoleMismatch) {
		t.Fatalf("expected ErrRoleMismatch, got %v", err)
	}
	// unknown role string cannot match the stored role either
	if _, err := a.Login("alice", "alicepw", "superuser"); !errors.Is(err, ErrRoleMismatch) {
		t.Fatalf("expected ErrRoleMismatch for unknown role, got %v", err)
	}
}

func TestVerifyToken_RejectsForeignSignature(t *testing.T) {
	a := newTestAuthenticator(t)
	tok := testutil.GenerateJWTHS256(t, "other-secret", "alice", "User")
	if _, err := a.VerifyToken(tok); err == nil {
		t.Fatalf("expected verification failure for foreign signature")
	}
}
