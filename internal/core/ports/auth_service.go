package ports

import (
	"context"

	"github.com/postwall/social-api/internal/core/domain"
)

// RegisterInput carries the fields accepted at sign-up.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Bio      string
}

// AuthResult pairs a freshly issued token with the authenticated user.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

// TokenService issues and verifies signed, time-limited identity tokens.
type TokenService interface {
	Issue(userID string) (string, error)
	// Verify returns the identity bound to token, or domain.ErrInvalidToken.
	Verify(token string) (string, error)
}

// PasswordHasher is a one-way salted hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
