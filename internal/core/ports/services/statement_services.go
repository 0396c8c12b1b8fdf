package services

import (
	"context"
	"time"

	"github.com/lifeline-hq/ledger/internal/core/domain"
)

// StatementSvcFacade derives the three standard financial statements from
// balance calculator results. All three are pure functions of stored state.
type StatementSvcFacade interface {
	// BalanceSheet partitions active Asset/Liability/Equity accounts by
	// point-in-time balance at asOf. Totals are reported, not asserted equal.
	BalanceSheet(ctx context.Context, companyID string, asOf time.Time) (*domain.BalanceSheetReport, error)

	// IncomeStatement computes Revenue/Expense period activity over [from, to].
	IncomeStatement(ctx context.Context, companyID string, from, to time.Time) (*domain.IncomeStatementReport, error)

	// CashFlow reports net change of the cash-like accounts over [from, to]
	// with period net income as the operating activities proxy. Fails with
	// apperrors.ErrNoCashAccounts when no account is flagged.
	CashFlow(ctx context.Context, companyID string, from, to time.Time) (*domain.CashFlowReport, error)
}
