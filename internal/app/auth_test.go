package app

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt"

	"github.com/dkeye/Homeboard/internal/domain"
	"github.com/dkeye/Homeboard/internal/store"
)

func seededAuth(t *testing.T) *Auth {
	t.Helper()
	m := store.NewMemory()
	if err := store.Seed(context.Background(), m); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return NewAuth(m, "test-secret")
}

func TestLogin(t *testing.T) {
	a := seededAuth(t)

	user, token, err := a.Login(context.Background(), "1", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != "1" || user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user %+v", user)
	}
	if token == "" {
		t.Fatalf("empty token")
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["user_id"] != "1" || claims["role"] != "admin" {
		t.Fatalf("unexpected claims %v", claims)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	a := seededAuth(t)
	if _, _, err := a.Login(context.Background(), "1", "nope"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// Unknown users fail with the same error as a wrong password.
func TestLoginUnknownUser(t *testing.T) {
	a := seededAuth(t)
	if _, _, err := a.Login(context.Background(), "42", "admin123"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestCreateUserHashesPassword(t *testing.T) {
	ctx := context.Background()
	a := seededAuth(t)

	created, err := a.CreateUser(ctx, "Grandma", "tea4two", domain.RoleMember)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.PasswordHash == "tea4two" {
		t.Fatalf("password stored in plaintext")
	}
	if _, _, err := a.Login(ctx, created.ID, "tea4two"); err != nil {
		t.Fatalf("new user cannot log in: %v", err)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	a := seededAuth(t)
	if _, err := a.CreateUser(context.Background(), "Mom", "x", domain.RoleAdmin); err != domain.ErrDuplicateUserName {
		t.Fatalf("expected ErrDuplicateUserName, got %v", err)
	}
}

func TestCreateUserInvalidRole(t *testing.T) {
	a := seededAuth(t)
	if _, err := a.CreateUser(context.Background(), "Uncle", "x", "owner"); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}
