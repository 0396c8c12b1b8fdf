package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lifeline-hq/ledger/internal/apperrors"
	"github.com/lifeline-hq/ledger/internal/core/domain"
	portsrepo "github.com/lifeline-hq/ledger/internal/core/ports/repositories"
	portssvc "github.com/lifeline-hq/ledger/internal/core/ports/services"
	"github.com/lifeline-hq/ledger/internal/dto"
	"github.com/lifeline-hq/ledger/internal/platform/events"
	"github.com/lifeline-hq/ledger/internal/utils/accounting"
)

// ledgerService owns the append-mostly log of debit/credit entries.
type ledgerService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	publisher   events.Publisher
}

// NewLedgerService creates a new ledger store service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountReader, publisher events.Publisher) portssvc.LedgerSvcFacade {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ledgerService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		publisher:   publisher,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// buildEntry converts one request line into a domain entry with defaults
// applied. The exchange rate defaults to 1 (entry already in base currency).
func buildEntry(companyID, transactionID string, req dto.PostEntryRequest, actorID string, now time.Time) domain.LedgerEntry {
	rate := req.ExchangeRate
	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}
	return domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		CompanyID:     companyID,
		AccountID:     req.AccountID,
		TransactionID: transactionID,
		PostedAt:      req.PostedAt,
		DebitAmount:   req.DebitAmount,
		CreditAmount:  req.CreditAmount,
		CurrencyCode:  req.CurrencyCode,
		ExchangeRate:  rate,
		Description:   req.Description,
		PostedBy:      actorID,
		CreatedAt:     now,
	}
}

// validatePostTarget runs the posting checks in their required order:
// existence, tenancy, active state, then amounts.
func (s *ledgerService) validatePostTarget(ctx context.Context, companyID string, entry domain.LedgerEntry) error {
	account, err := findCompanyAccount(ctx, s.accountRepo, companyID, entry.AccountID)
	if err != nil {
		return err
	}
	if !account.IsActive {
		return fmt.Errorf("%w: account %s", apperrors.ErrInactiveAccount, entry.AccountID)
	}
	return accounting.ValidateEntryAmounts(entry.DebitAmount, entry.CreditAmount, entry.ExchangeRate)
}

// PostEntry validates and durably appends a single entry. The entry is
// immutable thereafter; corrections are offsetting entries, never edits.
func (s *ledgerService) PostEntry(ctx context.Context, companyID string, req dto.PostEntryRequest, actorID string) (*domain.LedgerEntry, error) {
	if err := requireCompanyScope(companyID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := buildEntry(companyID, "", req, actorID, now)

	if err := s.validatePostTarget(ctx, companyID, entry); err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save ledger entry", slog.String("company_id", companyID), slog.String("account_id", entry.AccountID))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	s.LogInfo(ctx, "Ledger entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("company_id", companyID),
		slog.String("account_id", entry.AccountID))
	s.publisher.Publish(ctx, entryPostedEvent(entry, now))
	return &entry, nil
}

// PostTransaction appends a balanced group of entries atomically. Base
// currency debits must equal credits across the group.
func (s *ledgerService) PostTransaction(ctx context.Context, companyID string, req dto.PostTransactionRequest, actorID string) (*domain.Transaction, []domain.LedgerEntry, error) {
	if err := requireCompanyScope(companyID); err != nil {
		return nil, nil, err
	}
	if req.Description == "" {
		return nil, nil, fmt.Errorf("%w: transaction description is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		CompanyID:     companyID,
		Date:          req.Date,
		Description:   req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	entries := make([]domain.LedgerEntry, len(req.Entries))
	accountIDs := make([]string, 0, len(req.Entries))
	for i, line := range req.Entries {
		if line.PostedAt.IsZero() {
			line.PostedAt = req.Date
		}
		entries[i] = buildEntry(companyID, txn.TransactionID, line, actorID, now)
		accountIDs = append(accountIDs, line.AccountID)
	}

	// Zero-sum and per-line amount validation before touching the store.
	if err := accounting.ValidateTransactionBalance(entries); err != nil {
		return nil, nil, err
	}

	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for transaction", slog.String("company_id", companyID))
		return nil, nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, entry := range entries {
		account, found := accountsMap[entry.AccountID]
		if !found {
			return nil, nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, entry.AccountID)
		}
		if account.CompanyID != companyID {
			return nil, nil, fmt.Errorf("%w: account %s belongs to company %s", apperrors.ErrCrossTenant, entry.AccountID, account.CompanyID)
		}
		if !account.IsActive {
			return nil, nil, fmt.Errorf("%w: account %s", apperrors.ErrInactiveAccount, entry.AccountID)
		}
	}

	if err := s.ledgerRepo.SaveTransaction(ctx, txn, entries); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("company_id", companyID), slog.String("transaction_id", txn.TransactionID))
		return nil, nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction posted",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("company_id", companyID),
		slog.Int("entry_count", len(entries)))
	for _, entry := range entries {
		s.publisher.Publish(ctx, entryPostedEvent(entry, now))
	}
	return &txn, entries, nil
}

// GetEntry retrieves a single entry within the company scope.
func (s *ledgerService) GetEntry(ctx context.Context, companyID, entryID string) (*domain.LedgerEntry, error) {
	if err := requireCompanyScope(companyID); err != nil {
		return nil, err
	}
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.CompanyID != companyID {
		return nil, fmt.Errorf("%w: entry %s belongs to company %s", apperrors.ErrCrossTenant, entryID, entry.CompanyID)
	}
	return entry, nil
}

// ListEntriesByAccount retrieves a token-paginated page of an account's
// entries, newest business date first.
func (s *ledgerService) ListEntriesByAccount(ctx context.Context, companyID, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if err := requireCompanyScope(companyID); err != nil {
		return nil, nil, err
	}
	if _, err := findCompanyAccount(ctx, s.accountRepo, companyID, accountID); err != nil {
		return nil, nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	return s.ledgerRepo.ListEntriesByAccount(ctx, companyID, accountID, limit, nextToken)
}

func entryPostedEvent(entry domain.LedgerEntry, occurredAt time.Time) domain.LedgerEntryPosted {
	return domain.LedgerEntryPosted{
		CompanyID:     entry.CompanyID,
		EntryID:       entry.EntryID,
		AccountID:     entry.AccountID,
		TransactionID: entry.TransactionID,
		PostedAt:      entry.PostedAt,
		DebitAmount:   entry.DebitAmount,
		CreditAmount:  entry.CreditAmount,
		CurrencyCode:  entry.CurrencyCode,
		PostedBy:      entry.PostedBy,
		OccurredAt:    occurredAt,
	}
}

// uniqueStrings deduplicates in place, preserving first-seen order.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	j := 0
	for _, v := range input {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		input[j] = v
		j++
	}
	return input[:j]
}
