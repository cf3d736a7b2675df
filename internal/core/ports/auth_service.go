package ports

import (
	"context"

	"github.com/esociety/society-api/internal/core/domain"
)

// SignupInput carries the signup form.
type SignupInput struct {
	Email                string
	Password             string
	PasswordConfirmation string
	Role                 string
}

// LoginInput carries the login form.
type LoginInput struct {
	Email    string
	Password string
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.Account, error)
	Login(ctx context.Context, in LoginInput) (*domain.Session, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*domain.Session, error)
}

// AccountService covers admin account management.
type AccountService interface {
	ListAccounts(ctx context.Context, filter ListAccountsFilter) ([]*domain.Account, error)
	Deactivate(ctx context.Context, id string) error
}
