// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/carterperez-dev/drycleaning-api/internal/core"
	"github.com/carterperez-dev/drycleaning-api/internal/middleware"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOwnerExists        = errors.New("owner account exists")
	ErrEmailExists        = errors.New("email already exists")
)

const (
	RoleOwner = "owner"
	RoleStaff = "staff"
)

type AccountInfo struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// NewAccount is a creation candidate. Role is what the caller asked for;
// the account store decides the role that is actually stored.
type NewAccount struct {
	Email    string
	Name     string
	Password string
	Role     string
}

type AccountProvider interface {
	GetByEmail(ctx context.Context, email string) (*AccountInfo, error)
	GetByID(ctx context.Context, id string) (*AccountInfo, error)
	Register(ctx context.Context, candidate NewAccount) (*AccountInfo, error)
}

type TokenManager interface {
	Issue(userID string) (*SessionToken, error)
	Verify(token string) (*SessionToken, error)
}

type Service struct {
	accounts    AccountProvider
	tokens      TokenManager
	revocations RevocationList
	logger      *slog.Logger
}

func NewService(
	accounts AccountProvider,
	tokens TokenManager,
	revocations RevocationList,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		accounts:    accounts,
		tokens:      tokens,
		revocations: revocations,
		logger:      logger,
	}
}

// Signup creates an account through the bootstrap policy. It does not log
// the new account in.
func (s *Service) Signup(
	ctx context.Context,
	req SignupRequest,
) (*AccountInfo, error) {
	account, err := s.accounts.Register(ctx, NewAccount{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// Login answers ErrInvalidCredentials for an unknown email and for a wrong
// password alike, after the same amount of hashing work.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AccountInfo, *SessionToken, error) {
	account, err := s.accounts.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			s.logger.WarnContext(ctx, "login failed")
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("get account: %w", err)
	}

	valid, err := core.VerifyPasswordTimingSafe(req.Password, &account.PasswordHash)
	if err != nil {
		return nil, nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		s.logger.WarnContext(ctx, "login failed")
		return nil, nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("issue session: %w", err)
	}

	s.logger.InfoContext(ctx, "login succeeded", "user_id", account.ID)

	return account, token, nil
}

// Logout revokes the presented token when it is still valid. A missing or
// already invalid token is not an error.
func (s *Service) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}

	token, err := s.tokens.Verify(rawToken)
	if err != nil {
		//nolint:nilerr // an unusable token has nothing left to revoke
		return nil
	}

	if s.revocations == nil {
		return nil
	}

	if err := s.revocations.Revoke(ctx, token.TokenID, token.ExpiresAt); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.logger.InfoContext(ctx, "logout", "user_id", token.UserID)
	return nil
}

func (s *Service) VerifySessionToken(
	ctx context.Context,
	rawToken string,
) (*middleware.SessionClaims, error) {
	token, err := s.tokens.Verify(rawToken)
	if err != nil {
		return nil, err
	}

	if s.revocations != nil {
		revoked, err := s.revocations.IsRevoked(ctx, token.TokenID)
		if err != nil {
			return nil, fmt.Errorf("verify session: %w", err)
		}
		if revoked {
			return nil, fmt.Errorf("verify session: %w", core.ErrTokenRevoked)
		}
	}

	return &middleware.SessionClaims{
		UserID:    token.UserID,
		TokenID:   token.TokenID,
		ExpiresAt: token.ExpiresAt,
	}, nil
}

func (s *Service) CurrentAccount(
	ctx context.Context,
	userID string,
) (*AccountInfo, error) {
	if userID == "" {
		return nil, fmt.Errorf("current account: %w", core.ErrUnauthorized)
	}

	return s.accounts.GetByID(ctx, userID)
}

func ToAccountResponse(a *AccountInfo) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
	}
}

var _ middleware.TokenVerifier = (*Service)(nil)
