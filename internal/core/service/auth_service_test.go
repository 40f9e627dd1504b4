package service

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/planvista/visionboard-api/internal/core/domain"
)

func newTestAuthService(repo *stubUserRepo) *AuthService {
	return NewAuthService(repo, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	user, err := svc.Register(context.Background(), "Alice", "Alice@Example.com", "Alice", "password123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email not lowercased: %s", user.Email)
	}
	if user.Username != "alice" {
		t.Fatalf("username not lowercased: %s", user.Username)
	}
	if user.PasswordHash == "password123" {
		t.Fatalf("password stored in plaintext")
	}
	if !CheckPassword("password123", user.PasswordHash) {
		t.Fatalf("stored hash does not match password")
	}
	if len(user.BoardRefs) != 0 {
		t.Fatalf("new user should have no board refs, got %v", user.BoardRefs)
	}
}

func TestAuthService_Register_DuplicateEmailCaseInsensitive(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), "", "bob@example.com", "bob", "password123"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "", "BOB@EXAMPLE.COM", "other", "password123"); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "", "other@example.com", "BoB", "password123"); err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthService_Register_OverlongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	// bcrypt rejects inputs over 72 bytes; the failure must not read as a
	// login failure.
	long := strings.Repeat("x", 80)
	if _, err := svc.Register(context.Background(), "Dave", "dave@example.com", "dave", long); err != domain.ErrPasswordUnusable {
		t.Fatalf("expected ErrPasswordUnusable, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("no account should be created, got %d", len(repo.users))
	}
}

func TestAuthService_Login_ByUsernameAndEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), "Carol", "carol@example.com", "carol", "s3cret-pass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	for _, login := range []string{"carol", "CAROL@example.com"} {
		user, err := svc.Login(context.Background(), login, "s3cret-pass")
		if err != nil {
			t.Fatalf("login by %q failed: %v", login, err)
		}
		if user.Username != "carol" {
			t.Fatalf("unexpected user: %+v", user)
		}
	}
}

func TestAuthService_Login_NoEnumeration(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), "", "dave@example.com", "dave", "right-password"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Unknown account and wrong password must be the same error.
	if _, err := svc.Login(context.Background(), "nobody", "whatever"); err != domain.ErrInvalidCredentials {
		t.Fatalf("unknown account: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "dave", "wrong-password"); err != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("empty login: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	user, err := svc.Register(context.Background(), "", "erin@example.com", "erin", "old-password")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.ChangePassword(context.Background(), user.ID, "wrong", "new-password"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong current password, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), user.ID, "old-password", strings.Repeat("x", 80)); err != domain.ErrPasswordUnusable {
		t.Fatalf("expected ErrPasswordUnusable for overlong new password, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), user.ID, "old-password", "new-password"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), "erin", "old-password"); err != domain.ErrInvalidCredentials {
		t.Fatalf("old password still valid after change")
	}
	if _, err := svc.Login(context.Background(), "erin", "new-password"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}
