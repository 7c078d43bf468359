// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/carterperez-dev/drycleaning-api/internal/auth"
	"github.com/carterperez-dev/drycleaning-api/internal/core"
	"github.com/carterperez-dev/drycleaning-api/internal/middleware"
)

const maxBootstrapAttempts = 3

type Service struct {
	repo            Repository
	tx              Transactor
	logger          *slog.Logger
	accountsCreated *prometheus.CounterVec
}

func NewService(repo Repository, tx Transactor, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		repo:   repo,
		tx:     tx,
		logger: logger,
		accountsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "drycleaning",
				Subsystem: "accounts",
				Name:      "created_total",
				Help:      "Accounts created, by assigned role.",
			},
			[]string{"role"},
		),
	}
}

func (s *Service) Collectors() []prometheus.Collector {
	return []prometheus.Collector{s.accountsCreated}
}

// ResolveRole is the bootstrap rule. The very first account is always the
// owner whatever it asked for; after that nobody may ask for owner.
func ResolveRole(anyAccountExists bool, requested string) (string, error) {
	if !anyAccountExists {
		return auth.RoleOwner, nil
	}

	switch requested {
	case auth.RoleOwner:
		return "", auth.ErrOwnerExists
	case "":
		return auth.RoleStaff, nil
	default:
		return requested, nil
	}
}

// Register creates an account under the bootstrap rule. The existence check
// and the insert share one serializable transaction, and the whole decision
// is rerun when a concurrent creator makes it stale.
func (s *Service) Register(
	ctx context.Context,
	candidate auth.NewAccount,
) (*auth.AccountInfo, error) {
	hash, err := core.HashPassword(candidate.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	ctx, span := core.StartSpan(ctx, "user.register")
	defer span.End()

	var account *Account
	for attempt := 1; ; attempt++ {
		account, err = s.createOnce(ctx, candidate, hash)
		if err == nil {
			break
		}

		if attempt >= maxBootstrapAttempts || !isRetryable(err) {
			if !errors.Is(err, auth.ErrOwnerExists) &&
				!errors.Is(err, auth.ErrEmailExists) {
				core.SetSpanError(span, err)
			}
			return nil, err
		}

		s.logger.DebugContext(ctx, "account creation retried",
			"attempt", attempt,
			"error", err,
		)
	}

	s.accountsCreated.WithLabelValues(account.Role).Inc()
	s.logger.InfoContext(ctx, "account created",
		"user_id", account.ID,
		"role", account.Role,
	)

	return toAccountInfo(account), nil
}

func (s *Service) createOnce(
	ctx context.Context,
	candidate auth.NewAccount,
	passwordHash string,
) (*Account, error) {
	account := &Account{
		ID:           uuid.New().String(),
		Email:        normalizeEmail(candidate.Email),
		Name:         strings.TrimSpace(candidate.Name),
		PasswordHash: passwordHash,
	}

	err := s.tx.InSerializableTx(ctx, func(repo Repository) error {
		exists, err := repo.Exists(ctx)
		if err != nil {
			return err
		}

		role, err := ResolveRole(exists, candidate.Role)
		if err != nil {
			return err
		}
		account.Role = role

		return repo.Create(ctx, account)
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

func isRetryable(err error) bool {
	return errors.Is(err, errOwnerTaken) || core.IsRetryableTxError(err)
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.AccountInfo, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toAccountInfo(account), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.AccountInfo, error) {
	account, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return toAccountInfo(account), nil
}

// RoleOf is read on every owner-gated request so a role change or deletion
// takes effect without waiting for the session to expire.
func (s *Service) RoleOf(ctx context.Context, userID string) (string, error) {
	account, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	return account.Role, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*Account, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context) ([]Account, error) {
	return s.repo.List(ctx)
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "account deleted", "user_id", id)
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toAccountInfo(a *Account) *auth.AccountInfo {
	return &auth.AccountInfo{
		ID:           a.ID,
		Email:        a.Email,
		Name:         a.Name,
		PasswordHash: a.PasswordHash,
		Role:         a.Role,
		CreatedAt:    a.CreatedAt,
	}
}

var (
	_ auth.AccountProvider    = (*Service)(nil)
	_ middleware.RoleResolver = (*Service)(nil)
)
