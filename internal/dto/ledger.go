package dto

import (
	"time"

	"github.com/lifeline-hq/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostEntryRequest defines the data needed to append one ledger entry.
// Exactly one of debitAmount/creditAmount must be strictly positive.
type PostEntryRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	PostedAt     time.Time       `json:"postedAt" binding:"required"` // Business date
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"` // Defaults to 1 when zero
	Description  string          `json:"description"`
}

// PostTransactionRequest defines a balanced group of entries describing one
// economic event.
type PostTransactionRequest struct {
	Date        time.Time          `json:"date" binding:"required"`
	Description string             `json:"description" binding:"required"`
	Entries     []PostEntryRequest `json:"entries" binding:"required,min=2,dive"`
}

// EntryResponse defines the data returned for a ledger entry.
type EntryResponse struct {
	EntryID       string          `json:"entryID"`
	CompanyID     string          `json:"companyID"`
	AccountID     string          `json:"accountID"`
	TransactionID string          `json:"transactionID,omitempty"`
	PostedAt      time.Time       `json:"postedAt"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	CurrencyCode  string          `json:"currencyCode"`
	ExchangeRate  decimal.Decimal `json:"exchangeRate"`
	Description   string          `json:"description"`
	PostedBy      string          `json:"postedBy"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToEntryResponse converts a domain.LedgerEntry to EntryResponse DTO
func ToEntryResponse(e *domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		EntryID:       e.EntryID,
		CompanyID:     e.CompanyID,
		AccountID:     e.AccountID,
		TransactionID: e.TransactionID,
		PostedAt:      e.PostedAt,
		DebitAmount:   e.DebitAmount,
		CreditAmount:  e.CreditAmount,
		CurrencyCode:  e.CurrencyCode,
		ExchangeRate:  e.ExchangeRate,
		Description:   e.Description,
		PostedBy:      e.PostedBy,
		CreatedAt:     e.CreatedAt,
	}
}

// TransactionResponse wraps a posted transaction and its entry lines.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	CompanyID     string          `json:"companyID"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Entries       []EntryResponse `json:"entries"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// ToTransactionResponse converts a transaction and its entries to a DTO.
func ToTransactionResponse(txn *domain.Transaction, entries []domain.LedgerEntry) TransactionResponse {
	entryResponses := make([]EntryResponse, len(entries))
	for i := range entries {
		entryResponses[i] = ToEntryResponse(&entries[i])
	}
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		CompanyID:     txn.CompanyID,
		Date:          txn.Date,
		Description:   txn.Description,
		Entries:       entryResponses,
		CreatedAt:     txn.CreatedAt,
		CreatedBy:     txn.CreatedBy,
	}
}

// ListEntriesParams defines query parameters for listing account entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=50"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of entries with the next pagination token.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}
