package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MatchStatus tracks a bank statement line through the reconciliation state
// machine: Unmatched -> Matched -> Reconciled (terminal).
type MatchStatus string

const (
	Unmatched  MatchStatus = "UNMATCHED"
	Matched    MatchStatus = "MATCHED"
	Reconciled MatchStatus = "RECONCILED"
)

// BankAccount is bank metadata attached to a ledger account. BalanceCache is
// a denormalized convenience value; the authoritative balance is always
// recomputed from ledger entries.
type BankAccount struct {
	BankAccountID string          `json:"bankAccountID"` // Primary key (UUID)
	CompanyID     string          `json:"companyID"`
	AccountID     string          `json:"accountID"` // Linked chart-of-accounts entry
	AccountNumber string          `json:"accountNumber"`
	BankName      string          `json:"bankName"`
	BalanceCache  decimal.Decimal `json:"balanceCache"`
	AuditFields
}

// BankStatementLine is an externally imported bank record. Only the
// reconciliation flag and match linkage ever change after import.
type BankStatementLine struct {
	LineID            string          `json:"lineID"` // Primary key (UUID)
	CompanyID         string          `json:"companyID"`
	BankAccountID     string          `json:"bankAccountID"`
	TransactionDate   time.Time       `json:"transactionDate"`
	Amount            decimal.Decimal `json:"amount"` // Signed; positive = inflow
	Description       string          `json:"description"`
	ExternalReference string          `json:"externalReference"`
	Reconciled        bool            `json:"reconciled"`
	MatchStatus       MatchStatus     `json:"matchStatus"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// ReconciliationEntry links exactly one statement line to exactly one ledger
// entry. Each side may carry at most one active reconciliation; partial and
// many-to-many matching are out of scope.
type ReconciliationEntry struct {
	ReconciliationID string          `json:"reconciliationID"` // Primary key (UUID)
	CompanyID        string          `json:"companyID"`
	LineID           string          `json:"lineID"`
	EntryID          string          `json:"entryID"`
	ReconciledAmount decimal.Decimal `json:"reconciledAmount"`
	ReconciledAt     time.Time       `json:"reconciledAt"`
	ReconciledBy     string          `json:"reconciledBy"`
	Notes            string          `json:"notes"`
}

// MatchCandidate is one proposed pairing of a statement line with a ledger
// entry. Candidates are ranked; ambiguous or absent matches are left for
// manual resolution and never auto-reconciled.
type MatchCandidate struct {
	Line         BankStatementLine `json:"line"`
	Entry        LedgerEntry       `json:"entry"`
	DateDistance int               `json:"dateDistance"` // Days between line and entry dates
}
