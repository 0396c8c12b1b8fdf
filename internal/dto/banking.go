package dto

import (
	"time"

	"github.com/lifeline-hq/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest attaches bank metadata to a ledger account.
type CreateBankAccountRequest struct {
	AccountID     string `json:"accountID" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
	BankName      string `json:"bankName" binding:"required"`
}

// BankAccountResponse defines the data returned for a bank account.
type BankAccountResponse struct {
	BankAccountID string          `json:"bankAccountID"`
	CompanyID     string          `json:"companyID"`
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	BankName      string          `json:"bankName"`
	BalanceCache  decimal.Decimal `json:"balanceCache"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToBankAccountResponse converts a domain.BankAccount to its DTO.
func ToBankAccountResponse(b *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		BankAccountID: b.BankAccountID,
		CompanyID:     b.CompanyID,
		AccountID:     b.AccountID,
		AccountNumber: b.AccountNumber,
		BankName:      b.BankName,
		BalanceCache:  b.BalanceCache,
		CreatedAt:     b.CreatedAt,
	}
}

// StatementLineRequest is one externally imported bank statement record.
type StatementLineRequest struct {
	TransactionDate   time.Time       `json:"transactionDate" binding:"required"`
	Amount            decimal.Decimal `json:"amount" binding:"required"` // Signed; positive = inflow
	Description       string          `json:"description"`
	ExternalReference string          `json:"externalReference"`
}

// RecordStatementLinesRequest carries a batch of imported statement lines.
type RecordStatementLinesRequest struct {
	Lines []StatementLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// StatementLineResponse defines the data returned for a statement line.
type StatementLineResponse struct {
	LineID            string             `json:"lineID"`
	BankAccountID     string             `json:"bankAccountID"`
	TransactionDate   time.Time          `json:"transactionDate"`
	Amount            decimal.Decimal    `json:"amount"`
	Description       string             `json:"description"`
	ExternalReference string             `json:"externalReference"`
	Reconciled        bool               `json:"reconciled"`
	MatchStatus       domain.MatchStatus `json:"matchStatus"`
}

// ToStatementLineResponse converts a domain.BankStatementLine to its DTO.
func ToStatementLineResponse(l *domain.BankStatementLine) StatementLineResponse {
	return StatementLineResponse{
		LineID:            l.LineID,
		BankAccountID:     l.BankAccountID,
		TransactionDate:   l.TransactionDate,
		Amount:            l.Amount,
		Description:       l.Description,
		ExternalReference: l.ExternalReference,
		Reconciled:        l.Reconciled,
		MatchStatus:       l.MatchStatus,
	}
}

// MatchCandidateResponse is one proposed statement-line/ledger-entry pairing.
type MatchCandidateResponse struct {
	Line         StatementLineResponse `json:"line"`
	Entry        EntryResponse         `json:"entry"`
	DateDistance int                   `json:"dateDistance"`
}

// ToMatchCandidateResponse converts a domain.MatchCandidate to its DTO.
func ToMatchCandidateResponse(c domain.MatchCandidate) MatchCandidateResponse {
	return MatchCandidateResponse{
		Line:         ToStatementLineResponse(&c.Line),
		Entry:        ToEntryResponse(&c.Entry),
		DateDistance: c.DateDistance,
	}
}

// ConfirmReconciliationRequest records a confirmed 1:1 match.
type ConfirmReconciliationRequest struct {
	LineID  string          `json:"lineID" binding:"required"`
	EntryID string          `json:"entryID" binding:"required"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Notes   string          `json:"notes"`
}

// ReconciliationResponse defines the data returned for a reconciliation.
type ReconciliationResponse struct {
	ReconciliationID string          `json:"reconciliationID"`
	LineID           string          `json:"lineID"`
	EntryID          string          `json:"entryID"`
	ReconciledAmount decimal.Decimal `json:"reconciledAmount"`
	ReconciledAt     time.Time       `json:"reconciledAt"`
	Notes            string          `json:"notes"`
}

// ToReconciliationResponse converts a domain.ReconciliationEntry to its DTO.
func ToReconciliationResponse(r *domain.ReconciliationEntry) ReconciliationResponse {
	return ReconciliationResponse{
		ReconciliationID: r.ReconciliationID,
		LineID:           r.LineID,
		EntryID:          r.EntryID,
		ReconciledAmount: r.ReconciledAmount,
		ReconciledAt:     r.ReconciledAt,
		Notes:            r.Notes,
	}
}
