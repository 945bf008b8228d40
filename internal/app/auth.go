package app

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/dkeye/Homeboard/internal/domain"
	"github.com/dkeye/Homeboard/internal/store"
)

const tokenTTL = 72 * time.Hour

// Auth owns login and user management. Passwords are stored as bcrypt
// hashes; tokens are HS256-signed JWTs carrying the user id and role.
type Auth struct {
	store  store.Store
	secret []byte
	now    func() time.Time
}

func NewAuth(s store.Store, secret string) *Auth {
	return &Auth{store: s, secret: []byte(secret), now: func() time.Time { return time.Now().UTC() }}
}

// Login verifies the credentials and returns the user plus a signed token.
// Unknown user and wrong password are indistinguishable to the caller.
func (a *Auth) Login(ctx context.Context, userID domain.UserID, password string) (domain.User, string, error) {
	u, err := a.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.User{}, "", domain.ErrInvalidCredentials
		}
		return domain.User{}, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}
	token, err := a.signToken(u)
	if err != nil {
		return domain.User{}, "", err
	}
	log.Info().Str("module", "app.auth").Str("user", string(u.ID)).Str("role", string(u.Role)).Msg("login")
	return u, token, nil
}

func (a *Auth) signToken(u domain.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = string(u.ID)
	claims["name"] = u.Name
	claims["role"] = string(u.Role)
	claims["exp"] = a.now().Add(tokenTTL).Unix()
	return token.SignedString(a.secret)
}

func (a *Auth) Users(ctx context.Context) ([]domain.User, error) {
	return a.store.ListUsers(ctx)
}

func (a *Auth) CreateUser(ctx context.Context, name, password string, role domain.Role) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	u, err := domain.NewUser(name, role, string(hash))
	if err != nil {
		return domain.User{}, err
	}
	created, err := a.store.CreateUser(ctx, *u)
	if err != nil {
		return domain.User{}, err
	}
	log.Info().Str("module", "app.auth").Str("user", string(created.ID)).Msg("user created")
	return created, nil
}

// DeleteUser removes the record only. Missions assigned to the user keep
// their assignee reference; orphaning is the documented product decision.
func (a *Auth) DeleteUser(ctx context.Context, id domain.UserID) error {
	if err := a.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	log.Info().Str("module", "app.auth").Str("user", string(id)).Msg("user deleted")
	return nil
}
