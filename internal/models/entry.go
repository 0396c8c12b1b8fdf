package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the ledger_entries table row. Rows are append-only; there is
// no update path after insert.
type LedgerEntry struct {
	EntryID       string          `db:"entry_id"`
	CompanyID     string          `db:"company_id"`
	AccountID     string          `db:"account_id"`
	TransactionID string          `db:"transaction_id"` // Nullable; set for grouped posts
	PostedAt      time.Time       `db:"posted_at"`      // Business date
	DebitAmount   decimal.Decimal `db:"debit_amount"`
	CreditAmount  decimal.Decimal `db:"credit_amount"`
	CurrencyCode  string          `db:"currency_code"`
	ExchangeRate  decimal.Decimal `db:"exchange_rate"` // To base currency
	Description   string          `db:"description"`
	PostedBy      string          `db:"posted_by"`
	CreatedAt     time.Time       `db:"created_at"`
}

// Transaction is the transactions table row grouping a balanced set of
// ledger entries.
type Transaction struct {
	TransactionID string    `db:"transaction_id"`
	CompanyID     string    `db:"company_id"`
	Date          time.Time `db:"date"`
	Description   string    `db:"description"`
	AuditFields
}
