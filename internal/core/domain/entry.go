package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is a single immutable debit or credit against an account.
// Exactly one of DebitAmount/CreditAmount is strictly positive; corrections
// are made by posting an offsetting entry, never by editing history.
type LedgerEntry struct {
	EntryID       string          `json:"entryID"`       // Primary key (UUID)
	CompanyID     string          `json:"companyID"`     // Owning company, never transfers
	AccountID     string          `json:"accountID"`     // Must reference an active account at post time
	TransactionID string          `json:"transactionID"` // Optional balanced-group link, empty for single posts
	PostedAt      time.Time       `json:"postedAt"`      // Business date, distinct from CreatedAt
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	CurrencyCode  string          `json:"currencyCode"`
	ExchangeRate  decimal.Decimal `json:"exchangeRate"` // Rate to the company's base currency, > 0
	Description   string          `json:"description"`
	PostedBy      string          `json:"postedBy"` // Actor reference
	CreatedAt     time.Time       `json:"createdAt"`
}

// Side returns which side of the ledger this entry sits on.
func (e LedgerEntry) Side() BalanceSide {
	if e.DebitAmount.IsPositive() {
		return DebitSide
	}
	return CreditSide
}

// Amount returns the positive magnitude of the entry in its own currency.
func (e LedgerEntry) Amount() decimal.Decimal {
	if e.DebitAmount.IsPositive() {
		return e.DebitAmount
	}
	return e.CreditAmount
}

// BaseDebit returns the debit amount converted to the base currency.
func (e LedgerEntry) BaseDebit() decimal.Decimal {
	return e.DebitAmount.Mul(e.ExchangeRate)
}

// BaseCredit returns the credit amount converted to the base currency.
func (e LedgerEntry) BaseCredit() decimal.Decimal {
	return e.CreditAmount.Mul(e.ExchangeRate)
}
