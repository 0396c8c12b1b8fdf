package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount is the bank_accounts table row.
type BankAccount struct {
	BankAccountID string          `db:"bank_account_id"`
	CompanyID     string          `db:"company_id"`
	AccountID     string          `db:"account_id"`
	AccountNumber string          `db:"account_number"`
	BankName      string          `db:"bank_name"`
	BalanceCache  decimal.Decimal `db:"balance_cache"`
	AuditFields
}

// BankStatementLine is the bank_statement_lines table row. Only reconciled
// and match_status change after import.
type BankStatementLine struct {
	LineID            string          `db:"line_id"`
	CompanyID         string          `db:"company_id"`
	BankAccountID     string          `db:"bank_account_id"`
	TransactionDate   time.Time       `db:"transaction_date"`
	Amount            decimal.Decimal `db:"amount"` // Signed; positive = inflow
	Description       string          `db:"description"`
	ExternalReference string          `db:"external_reference"`
	Reconciled        bool            `db:"reconciled"`
	MatchStatus       string          `db:"match_status"`
	CreatedAt         time.Time       `db:"created_at"`
}

// ReconciliationEntry is the reconciliation_entries table row. Unique indexes
// on line_id and entry_id enforce the 1:1 policy.
type ReconciliationEntry struct {
	ReconciliationID string          `db:"reconciliation_id"`
	CompanyID        string          `db:"company_id"`
	LineID           string          `db:"line_id"`
	EntryID          string          `db:"entry_id"`
	ReconciledAmount decimal.Decimal `db:"reconciled_amount"`
	ReconciledAt     time.Time       `db:"reconciled_at"`
	ReconciledBy     string          `db:"reconciled_by"`
	Notes            string          `db:"notes"`
}
