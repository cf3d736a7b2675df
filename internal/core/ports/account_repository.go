package ports

import (
	"context"
	"time"

	"github.com/esociety/society-api/internal/core/domain"
)

// AccountRepository defines persistence for accounts. Implementations must
// enforce email and username uniqueness at the storage layer: Create returns
// domain.ErrDuplicateEmail or domain.ErrUsernameConflict when a unique
// constraint rejects the insert.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	// UsernamesWithPrefix returns stored usernames matching base followed by
	// zero or more digits.
	UsernamesWithPrefix(ctx context.Context, base string) ([]string, error)
	List(ctx context.Context, filter ListAccountsFilter) ([]*domain.Account, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	SetActive(ctx context.Context, id string, active bool) error
}

// ListAccountsFilter narrows an account listing. Zero values mean no filter.
type ListAccountsFilter struct {
	Role  domain.Role
	Limit int
}
