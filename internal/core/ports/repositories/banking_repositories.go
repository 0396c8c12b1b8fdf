package repositories

import (
	"context"
	"time"

	"github.com/lifeline-hq/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BankAccountReader defines read operations for bank account metadata.
type BankAccountReader interface {
	// FindBankAccountByID retrieves a bank account by its identifier.
	FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)

	// ListBankAccounts retrieves all bank accounts for a company.
	ListBankAccounts(ctx context.Context, companyID string) ([]domain.BankAccount, error)
}

// BankAccountWriter defines write operations for bank account metadata.
type BankAccountWriter interface {
	// SaveBankAccount persists a new bank account.
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error

	// UpdateBalanceCache refreshes the denormalized balance of a bank account.
	// The cache is a convenience value, never authoritative.
	UpdateBalanceCache(ctx context.Context, bankAccountID string, balance decimal.Decimal, now time.Time) error
}

// StatementLineReader defines read operations for imported statement lines.
type StatementLineReader interface {
	// FindStatementLineByID retrieves a statement line.
	FindStatementLineByID(ctx context.Context, lineID string) (*domain.BankStatementLine, error)

	// ListUnreconciledLines retrieves the lines of a bank account that have no
	// active reconciliation, on or after since.
	ListUnreconciledLines(ctx context.Context, bankAccountID string, since time.Time) ([]domain.BankStatementLine, error)

	// ListCandidateEntries retrieves unreconciled ledger entries on the given
	// account with business dates in [from, to], oldest first.
	ListCandidateEntries(ctx context.Context, companyID, accountID string, from, to time.Time) ([]domain.LedgerEntry, error)
}

// StatementLineWriter defines write operations for statement lines.
type StatementLineWriter interface {
	// SaveStatementLines persists a batch of imported lines.
	SaveStatementLines(ctx context.Context, lines []domain.BankStatementLine) error

	// UpdateMatchStatus moves a line through the match state machine without
	// recording a reconciliation.
	UpdateMatchStatus(ctx context.Context, lineID string, status domain.MatchStatus) error
}

// ReconciliationWriter records reconciliations. The store enforces the 1:1
// policy: the insert locks both sides and fails if either already carries an
// active reconciliation, so racing confirms serialize and the loser errors.
type ReconciliationWriter interface {
	// SaveReconciliation durably records a confirmed match, flips the line's
	// reconciled flag, and marks it RECONCILED, all in one transaction.
	SaveReconciliation(ctx context.Context, rec domain.ReconciliationEntry) error
}

// ReconciliationReader defines read operations for reconciliation records.
type ReconciliationReader interface {
	// FindReconciliationByLineID retrieves the active reconciliation of a
	// statement line, if any.
	FindReconciliationByLineID(ctx context.Context, lineID string) (*domain.ReconciliationEntry, error)
}

// BankingRepositoryFacade combines all banking repository interfaces.
type BankingRepositoryFacade interface {
	BankAccountReader
	BankAccountWriter
	StatementLineReader
	StatementLineWriter
	ReconciliationReader
	ReconciliationWriter
}
