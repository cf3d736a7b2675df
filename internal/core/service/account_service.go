package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/esociety/society-api/internal/core/domain"
	"github.com/esociety/society-api/internal/core/ports"
)

const maxListLimit = 100

type AccountService struct {
	accounts ports.AccountRepository
	log      zerolog.Logger
}

func NewAccountService(accounts ports.AccountRepository, log zerolog.Logger) *AccountService {
	return &AccountService{accounts: accounts, log: log}
}

func (s *AccountService) ListAccounts(ctx context.Context, filter ports.ListAccountsFilter) ([]*domain.Account, error) {
	if filter.Role != "" && !filter.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	if filter.Limit <= 0 || filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	return s.accounts.List(ctx, filter)
}

// Deactivate soft-deletes an account: it stays stored but can no longer log in.
func (s *AccountService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.accounts.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.accounts.SetActive(ctx, id, false); err != nil {
		return fmt.Errorf("deactivate account: %w", err)
	}
	s.log.Info().Str("account_id", id).Msg("account deactivated")
	return nil
}
