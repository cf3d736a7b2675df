package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/esociety/society-api/internal/core/domain"
	"github.com/esociety/society-api/internal/core/ports"
)

const defaultUsernameAttempts = 16

// AuthService implements signup, login and session resolution.
type AuthService struct {
	accounts         ports.AccountRepository
	sessions         ports.SessionStore
	validate         *validator.Validate
	usernameAttempts int
	bcryptCost       int
	dummyHash        []byte
	log              zerolog.Logger
}

func NewAuthService(accounts ports.AccountRepository, sessions ports.SessionStore, usernameAttempts int, log zerolog.Logger) *AuthService {
	if usernameAttempts <= 0 {
		usernameAttempts = defaultUsernameAttempts
	}
	s := &AuthService{
		accounts:         accounts,
		sessions:         sessions,
		validate:         validator.New(),
		usernameAttempts: usernameAttempts,
		bcryptCost:       bcrypt.DefaultCost,
		log:              log,
	}
	// Unknown emails are compared against this hash so both login failure
	// paths cost one bcrypt comparison.
	s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("no-such-account"), s.bcryptCost)
	return s
}

// Signup validates the form, derives a unique username from the email and
// persists a RESIDENT/ADMIN/GUARD account. It never logs the user in.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.Account, error) {
	email := domain.NormalizeEmail(in.Email)

	verr := domain.NewValidationError()
	switch {
	case email == "":
		verr.Add("email", "this field is required")
	case s.validate.Var(email, "email") != nil:
		verr.Add("email", "enter a valid email address")
	}
	checkPassword(verr, in.Password, in.PasswordConfirmation, email)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, fmt.Errorf("signup: lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("signup: hash password: %w", err)
	}

	base := domain.EmailLocalPart(email)
	for attempt := 1; attempt <= s.usernameAttempts; attempt++ {
		taken, err := s.accounts.UsernamesWithPrefix(ctx, base)
		if err != nil {
			return nil, fmt.Errorf("signup: lookup usernames: %w", err)
		}

		account := &domain.Account{
			Email:          email,
			Username:       nextUsername(base, taken),
			Role:           role,
			PasswordHash:   string(hash),
			ActiveResident: true,
			DateJoined:     time.Now().UTC(),
		}

		created, err := s.accounts.Create(ctx, account)
		switch {
		case err == nil:
			s.log.Info().
				Str("account_id", created.ID).
				Str("username", created.Username).
				Str("role", created.Role.String()).
				Msg("account created")
			return created, nil
		case errors.Is(err, domain.ErrUsernameConflict):
			s.log.Debug().Str("username", account.Username).Int("attempt", attempt).Msg("username taken concurrently, retrying")
			continue
		case errors.Is(err, domain.ErrDuplicateEmail):
			return nil, domain.ErrDuplicateEmail
		default:
			return nil, fmt.Errorf("signup: create account: %w", err)
		}
	}

	s.log.Warn().Str("base", base).Int("attempts", s.usernameAttempts).Msg("username allocation exhausted")
	return nil, domain.ErrUsernameConflict
}

// Login checks the credentials and opens a session. Unknown email, wrong
// password and deactivated account all return domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*domain.Session, error) {
	email := domain.NormalizeEmail(in.Email)

	verr := domain.NewValidationError()
	switch {
	case email == "":
		verr.Add("email", "this field is required")
	case s.validate.Var(email, "email") != nil:
		verr.Add("email", "enter a valid email address")
	}
	if in.Password == "" {
		verr.Add("password", "this field is required")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrAccountNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(in.Password))
		s.log.Warn().Str("email", email).Msg("login failed")
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("login: lookup account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.Password)) != nil || !account.ActiveResident {
		s.log.Warn().Str("email", email).Msg("login failed")
		return nil, domain.ErrInvalidCredentials
	}

	session, err := s.sessions.Create(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("login: create session: %w", err)
	}

	if err := s.accounts.TouchLastLogin(ctx, account.ID, session.CreatedAt); err != nil {
		s.log.Warn().Err(err).Str("account_id", account.ID).Msg("failed to record last login")
	}

	s.log.Info().Str("account_id", account.ID).Str("role", account.Role.String()).Msg("login succeeded")
	return session, nil
}

// Logout ends the session behind token. An empty or unknown token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Authenticate resolves token to its session.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}
	session, err := s.sessions.Get(ctx, token)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil, domain.ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	return session, nil
}
