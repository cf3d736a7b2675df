package ports

import (
	"context"

	"github.com/esociety/society-api/internal/core/domain"
)

// SessionStore persists sessions keyed by an opaque token.
type SessionStore interface {
	// Create opens a session for account and returns it with Token set.
	Create(ctx context.Context, account *domain.Account) (*domain.Session, error)
	// Get resolves token to a live session or returns domain.ErrSessionNotFound.
	Get(ctx context.Context, token string) (*domain.Session, error)
	// Delete ends the session behind token. Unknown tokens are not an error.
	Delete(ctx context.Context, token string) error
}
