package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/esociety/society-api/internal/core/domain"
	"github.com/esociety/society-api/internal/core/ports"
)

const goodPassword = "Tr1cky-Lantern"

func newTestAuthService(accounts ports.AccountRepository, sessions ports.SessionStore) *AuthService {
	svc := NewAuthService(accounts, sessions, 0, nopLog)
	svc.bcryptCost = bcrypt.MinCost
	return svc
}

func signupInput(email string) ports.SignupInput {
	return ports.SignupInput{Email: email, Password: goodPassword, PasswordConfirmation: goodPassword}
}

func TestAuthService_Signup_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo, newStubSessionStore())

	account, err := svc.Signup(context.Background(), signupInput("  Alice@Example.COM "))
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if account.Email != "alice@example.com" {
		t.Fatalf("expected normalised email, got %q", account.Email)
	}
	if account.Username != "alice" {
		t.Fatalf("expected username alice, got %q", account.Username)
	}
	if account.Role != domain.RoleResident {
		t.Fatalf("expected default role RESIDENT, got %s", account.Role)
	}
	if !account.ActiveResident {
		t.Fatalf("expected new account to be active")
	}
	if account.PasswordHash == goodPassword {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(goodPassword)); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Signup_ExplicitRole(t *testing.T) {
	svc := newTestAuthService(newStubAccountRepo(), newStubSessionStore())

	in := signupInput("gate@example.com")
	in.Role = "guard"
	account, err := svc.Signup(context.Background(), in)
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if account.Role != domain.RoleGuard {
		t.Fatalf("expected GUARD, got %s", account.Role)
	}
}

func TestAuthService_Signup_InvalidRole(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo, newStubSessionStore())

	in := signupInput("bob@example.com")
	in.Role = "superuser"
	if _, err := svc.Signup(context.Background(), in); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if repo.creates != 0 {
		t.Fatalf("expected no account to be created")
	}
}

func TestAuthService_Signup_Validation(t *testing.T) {
	tests := []struct {
		name  string
		in    ports.SignupInput
		field string
	}{
		{"missing email", ports.SignupInput{Password: goodPassword, PasswordConfirmation: goodPassword}, "email"},
		{"bad email", ports.SignupInput{Email: "not-an-email", Password: goodPassword, PasswordConfirmation: goodPassword}, "email"},
		{"missing password", ports.SignupInput{Email: "x@example.com"}, "password"},
		{"mismatch", ports.SignupInput{Email: "x@example.com", Password: goodPassword, PasswordConfirmation: goodPassword + "!"}, "password_confirmation"},
		{"too short", ports.SignupInput{Email: "x@example.com", Password: "Ab1!", PasswordConfirmation: "Ab1!"}, "password"},
		{"numeric", ports.SignupInput{Email: "x@example.com", Password: "83920174", PasswordConfirmation: "83920174"}, "password"},
		{"common", ports.SignupInput{Email: "x@example.com", Password: "password123", PasswordConfirmation: "password123"}, "password"},
		{"similar to email", ports.SignupInput{Email: "harriet@example.com", Password: "harriet-2024", PasswordConfirmation: "harriet-2024"}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubAccountRepo()
			svc := newTestAuthService(repo, newStubSessionStore())

			_, err := svc.Signup(context.Background(), tt.in)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected error to wrap ErrValidation")
			}
			if len(verr.Fields[tt.field]) == 0 {
				t.Fatalf("expected message on %q, got %v", tt.field, verr.Fields)
			}
			if repo.creates != 0 {
				t.Fatalf("expected no account to be created")
			}
		})
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo, newStubSessionStore())

	if _, err := svc.Signup(context.Background(), signupInput("carol@example.com")); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := svc.Signup(context.Background(), signupInput("CAROL@example.com")); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	accounts, _ := repo.List(context.Background(), ports.ListAccountsFilter{})
	if len(accounts) != 1 {
		t.Fatalf("expected 1 stored account, got %d", len(accounts))
	}
}

func TestAuthService_Signup_UsernameSuffix(t *testing.T) {
	svc := newTestAuthService(newStubAccountRepo(), newStubSessionStore())

	want := []string{"a", "a1", "a2"}
	for i, email := range []string{"a@x.com", "a@y.com", "a@z.com"} {
		account, err := svc.Signup(context.Background(), signupInput(email))
		if err != nil {
			t.Fatalf("signup %s failed: %v", email, err)
		}
		if account.Username != want[i] {
			t.Fatalf("signup %s: expected username %q, got %q", email, want[i], account.Username)
		}
	}
}

func TestAuthService_Signup_ConcurrentUsernamesAreUnique(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo, newStubSessionStore())

	const n = 10
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[string]bool)
		errs []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			account, err := svc.Signup(context.Background(), signupInput(fmt.Sprintf("sam@host%d.com", i)))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			seen[account.Username] = true
		}(i)
	}
	wg.Wait()

	if len(errs) > 0 {
		t.Fatalf("unexpected signup errors: %v", errs)
	}
	if len(seen) != n {
		t.Fatalf("expected %d distinct usernames, got %d: %v", n, len(seen), seen)
	}
	if !seen["sam"] {
		t.Fatalf("expected the bare base username to be allocated")
	}
}

type conflictingAccountRepo struct {
	*stubAccountRepo
}

func (r conflictingAccountRepo) Create(context.Context, *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	r.creates++
	r.mu.Unlock()
	return nil, domain.ErrUsernameConflict
}

// staleUsernameRepo answers the first username lookup with an empty list, as
// if a concurrent signup had not become visible yet.
type staleUsernameRepo struct {
	*stubAccountRepo
	lookups int
}

func (r *staleUsernameRepo) UsernamesWithPrefix(ctx context.Context, base string) ([]string, error) {
	r.lookups++
	if r.lookups == 1 {
		return nil, nil
	}
	return r.stubAccountRepo.UsernamesWithPrefix(ctx, base)
}

func TestAuthService_Signup_RetriesAfterUsernameCollision(t *testing.T) {
	repo := &staleUsernameRepo{stubAccountRepo: newStubAccountRepo()}
	repo.put(&domain.Account{Email: "bob@first.com", Username: "bob", Role: domain.RoleResident})
	svc := newTestAuthService(repo, newStubSessionStore())

	account, err := svc.Signup(context.Background(), signupInput("bob@second.com"))
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if account.Username != "bob1" {
		t.Fatalf("expected username bob1, got %q", account.Username)
	}
	if repo.creates != 2 {
		t.Fatalf("expected 2 insert attempts, got %d", repo.creates)
	}
	if repo.lookups != 2 {
		t.Fatalf("expected the usernames to be looked up again, got %d lookups", repo.lookups)
	}
}

func TestAuthService_Signup_RetryBound(t *testing.T) {
	repo := conflictingAccountRepo{newStubAccountRepo()}
	svc := NewAuthService(repo, newStubSessionStore(), 3, nopLog)
	svc.bcryptCost = bcrypt.MinCost

	if _, err := svc.Signup(context.Background(), signupInput("dan@example.com")); !errors.Is(err, domain.ErrUsernameConflict) {
		t.Fatalf("expected ErrUsernameConflict, got %v", err)
	}
	if repo.creates != 3 {
		t.Fatalf("expected 3 attempts, got %d", repo.creates)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAccountRepo()
	sessions := newStubSessionStore()
	svc := newTestAuthService(repo, sessions)

	in := signupInput("erin@example.com")
	in.Role = "ADMIN"
	if _, err := svc.Signup(context.Background(), in); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	session, err := svc.Login(context.Background(), ports.LoginInput{Email: "Erin@example.com", Password: goodPassword})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if session.Role != domain.RoleAdmin || session.Username != "erin" {
		t.Fatalf("unexpected session: %+v", session)
	}
	if RouteAfterLogin(session) != domain.DashboardAdmin {
		t.Fatalf("expected admin dashboard, got %s", RouteAfterLogin(session))
	}

	stored, _ := repo.FindByEmail(context.Background(), "erin@example.com")
	if stored.LastLoginAt == nil {
		t.Fatalf("expected last login to be recorded")
	}

	resolved, err := svc.Authenticate(context.Background(), session.Token)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if resolved.AccountID != stored.ID {
		t.Fatalf("expected session for %s, got %s", stored.ID, resolved.AccountID)
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo, newStubSessionStore())

	if _, err := svc.Signup(context.Background(), signupInput("fay@example.com")); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	_, wrongPassword := svc.Login(context.Background(), ports.LoginInput{Email: "fay@example.com", Password: "Wrong-Pass-99"})
	_, unknownEmail := svc.Login(context.Background(), ports.LoginInput{Email: "ghost@example.com", Password: goodPassword})

	if !errors.Is(wrongPassword, domain.ErrInvalidCredentials) || !errors.Is(unknownEmail, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v and %v", wrongPassword, unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("expected identical messages, got %q and %q", wrongPassword, unknownEmail)
	}
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo, newStubSessionStore())

	account, err := svc.Signup(context.Background(), signupInput("gus@example.com"))
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if err := NewAccountService(repo, nopLog).Deactivate(context.Background(), account.ID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), ports.LoginInput{Email: "gus@example.com", Password: goodPassword}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_TouchFailureIsNotFatal(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo, newStubSessionStore())

	if _, err := svc.Signup(context.Background(), signupInput("hal@example.com")); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	repo.touchErr = errors.New("write failed")

	if _, err := svc.Login(context.Background(), ports.LoginInput{Email: "hal@example.com", Password: goodPassword}); err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}
}

func TestAuthService_Login_Validation(t *testing.T) {
	svc := newTestAuthService(newStubAccountRepo(), newStubSessionStore())

	_, err := svc.Login(context.Background(), ports.LoginInput{})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields["email"]) == 0 || len(verr.Fields["password"]) == 0 {
		t.Fatalf("expected email and password messages, got %v", verr.Fields)
	}
}

func TestAuthService_LogoutEndsSession(t *testing.T) {
	svc := newTestAuthService(newStubAccountRepo(), newStubSessionStore())

	if _, err := svc.Signup(context.Background(), signupInput("ivy@example.com")); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	session, err := svc.Login(context.Background(), ports.LoginInput{Email: "ivy@example.com", Password: goodPassword})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Logout(context.Background(), session.Token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), session.Token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated after logout, got %v", err)
	}
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("expected empty-token logout to be a no-op, got %v", err)
	}
}

func TestAccountService_ListAccounts(t *testing.T) {
	repo := newStubAccountRepo()
	repo.put(&domain.Account{Email: "a@example.com", Username: "a", Role: domain.RoleAdmin})
	repo.put(&domain.Account{Email: "b@example.com", Username: "b", Role: domain.RoleGuard})
	repo.put(&domain.Account{Email: "c@example.com", Username: "c", Role: domain.RoleGuard})
	svc := NewAccountService(repo, nopLog)

	guards, err := svc.ListAccounts(context.Background(), ports.ListAccountsFilter{Role: domain.RoleGuard})
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	if len(guards) != 2 {
		t.Fatalf("expected 2 guards, got %d", len(guards))
	}
	if _, err := svc.ListAccounts(context.Background(), ports.ListAccountsFilter{Role: "JANITOR"}); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if err := svc.Deactivate(context.Background(), "missing"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}
