package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lifeline-hq/ledger/internal/apperrors"
	"github.com/lifeline-hq/ledger/internal/core/domain"
	portsrepo "github.com/lifeline-hq/ledger/internal/core/ports/repositories"
	"github.com/lifeline-hq/ledger/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// requireCompanyScope rejects operations that arrive without an explicit
// company. There is no fallback company; callers that cannot supply one
// must fail fast.
func requireCompanyScope(companyID string) error {
	if companyID == "" {
		return fmt.Errorf("%w: company scope is required", apperrors.ErrValidation)
	}
	return nil
}

// findCompanyAccount resolves an account within a company scope. An account
// owned by a different company is a caller bug surfaced as ErrCrossTenant,
// never silently filtered.
func findCompanyAccount(ctx context.Context, repo portsrepo.AccountReader, companyID, accountID string) (*domain.Account, error) {
	account, err := repo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if account.CompanyID != companyID {
		return nil, fmt.Errorf("%w: account %s belongs to company %s", apperrors.ErrCrossTenant, accountID, account.CompanyID)
	}
	return account, nil
}
