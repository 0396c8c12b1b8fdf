package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event is a typed domain event emitted by the engine after a successful
// write. Subscribers (audit, notifications) attach independently; emission
// never affects the outcome of the operation.
type Event interface {
	EventName() string
}

// LedgerEntryPosted is emitted once per durably appended ledger entry.
type LedgerEntryPosted struct {
	CompanyID     string          `json:"companyID"`
	EntryID       string          `json:"entryID"`
	AccountID     string          `json:"accountID"`
	TransactionID string          `json:"transactionID,omitempty"`
	PostedAt      time.Time       `json:"postedAt"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	CurrencyCode  string          `json:"currencyCode"`
	PostedBy      string          `json:"postedBy"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

func (LedgerEntryPosted) EventName() string { return "ledger.entry_posted" }

// ReconciliationConfirmed is emitted once per durably recorded reconciliation.
type ReconciliationConfirmed struct {
	CompanyID        string          `json:"companyID"`
	ReconciliationID string          `json:"reconciliationID"`
	LineID           string          `json:"lineID"`
	EntryID          string          `json:"entryID"`
	ReconciledAmount decimal.Decimal `json:"reconciledAmount"`
	ReconciledBy     string          `json:"reconciledBy"`
	OccurredAt       time.Time       `json:"occurredAt"`
}

func (ReconciliationConfirmed) EventName() string { return "ledger.reconciliation_confirmed" }
