package repositories

import (
	"context"
	"time"

	"github.com/lifeline-hq/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ActivitySums holds raw base-currency debit/credit totals for an account.
// The normal-balance sign convention is applied by the balance calculator,
// not the store.
type ActivitySums struct {
	SumDebit  decimal.Decimal
	SumCredit decimal.Decimal
}

// EntryReader defines read operations for ledger entries.
type EntryReader interface {
	// FindEntryByID retrieves a specific ledger entry.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ListEntriesByAccount retrieves a token-paginated list of entries for an
	// account, newest business date first.
	ListEntriesByAccount(ctx context.Context, companyID, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// SumAccountActivity returns base-currency debit/credit totals for an
	// account over [from, to]. A nil from means all history; a nil to means no
	// upper bound.
	SumAccountActivity(ctx context.Context, companyID, accountID string, from, to *time.Time) (ActivitySums, error)
}

// EntryWriter defines append operations for ledger entries. Entries are
// immutable once posted; there is no update or delete.
type EntryWriter interface {
	// SaveEntry appends a single entry atomically.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error

	// SaveTransaction appends a balanced group of entries and its grouping row
	// within one database transaction. Either everything persists or nothing.
	SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.LedgerEntry) error
}

// LedgerRepositoryFacade combines all ledger-entry repository interfaces.
type LedgerRepositoryFacade interface {
	EntryReader
	EntryWriter
}
