package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	domainErrors "github.com/nurbekov/mealbox/internal/domain/errors"
	"github.com/nurbekov/mealbox/internal/domain/model"
	"github.com/nurbekov/mealbox/internal/domain/repository"
	pkgAuth "github.com/nurbekov/mealbox/internal/pkg/auth"
	"github.com/nurbekov/mealbox/internal/pkg/ttlstore"
)

const otpTTL = 10 * time.Minute

// AuthUseCase handles account lifecycle and token management. One-time login
// codes live in an injected TTL store rather than package state.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
	codes  *ttlstore.Store
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, codes *ttlstore.Store) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy, codes: codes}
}

// Register creates a new user and returns an auth token.
func (u *AuthUseCase) Register(ctx context.Context, email, password, name string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, email, hash, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns an auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// RequestLoginCode issues a one-time login code for the email and stores it
// with a short TTL. The code is returned to the caller for delivery (mail is
// out of process); callers must not expose it in the HTTP response.
func (u *AuthUseCase) RequestLoginCode(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", domainErrors.ErrInvalidCredentials
	}
	if _, err := u.users.GetByEmail(ctx, email); err != nil {
		return "", err
	}

	code, err := generateCode()
	if err != nil {
		return "", err
	}
	u.codes.Set(otpKey(email), code, otpTTL)
	return code, nil
}

// AuthenticateWithCode exchanges a valid one-time code for an auth token. The
// code is single-use.
func (u *AuthUseCase) AuthenticateWithCode(ctx context.Context, email, code string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	stored, ok := u.codes.Get(otpKey(email))
	if !ok || stored != strings.TrimSpace(code) {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	u.codes.Delete(otpKey(email))

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// ParseToken extracts the user ID from a token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches a user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

func otpKey(email string) string {
	return "otp:" + email
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate login code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
