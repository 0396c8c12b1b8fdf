package services

import (
	"context"

	"github.com/lifeline-hq/ledger/internal/core/domain"
	"github.com/lifeline-hq/ledger/internal/dto"
)

// LedgerSvcFacade owns the append-mostly log of debit/credit entries.
type LedgerSvcFacade interface {
	// PostEntry validates and durably appends a single entry, then emits a
	// LedgerEntryPosted event. No entry is created when validation fails.
	PostEntry(ctx context.Context, companyID string, req dto.PostEntryRequest, actorID string) (*domain.LedgerEntry, error)

	// PostTransaction appends a balanced group of at least two entries in one
	// atomic transaction. Base-currency debits must equal credits.
	PostTransaction(ctx context.Context, companyID string, req dto.PostTransactionRequest, actorID string) (*domain.Transaction, []domain.LedgerEntry, error)

	// GetEntry retrieves a single entry within the company scope.
	GetEntry(ctx context.Context, companyID, entryID string) (*domain.LedgerEntry, error)

	// ListEntriesByAccount retrieves a token-paginated list of an account's
	// entries, newest business date first.
	ListEntriesByAccount(ctx context.Context, companyID, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}
