package dto

import (
	"github.com/lifeline-hq/ledger/internal/core/domain"
)

// TrialBalanceResponse wraps the rows of a trial balance report.
type TrialBalanceResponse struct {
	Rows []domain.TrialBalanceRow `json:"rows"`
}

// BalanceSheetResponse wraps a balance sheet report.
type BalanceSheetResponse struct {
	Report *domain.BalanceSheetReport `json:"report"`
}

// IncomeStatementResponse wraps an income statement report.
type IncomeStatementResponse struct {
	Report *domain.IncomeStatementReport `json:"report"`
}

// CashFlowResponse wraps a cash flow report.
type CashFlowResponse struct {
	Report *domain.CashFlowReport `json:"report"`
}
