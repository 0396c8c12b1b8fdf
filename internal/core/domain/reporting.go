package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// AccountBalance represents an account with its signed balance for financial
// statements. The sign follows the account's normal side.
type AccountBalance struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	Balance     decimal.Decimal `json:"balance"`
}

// BalanceSheetReport partitions point-in-time balances of the balance sheet
// account types. Totals are reported, not asserted equal: unbalanced
// single-sided postings are a reportable condition.
type BalanceSheetReport struct {
	AsOf             time.Time        `json:"asOf"`
	Assets           []AccountBalance `json:"assets"`
	Liabilities      []AccountBalance `json:"liabilities"`
	Equity           []AccountBalance `json:"equity"`
	TotalAssets      decimal.Decimal  `json:"totalAssets"`
	TotalLiabilities decimal.Decimal  `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal  `json:"totalEquity"`
}

// IncomeStatementReport holds period activity of revenue and expense accounts.
type IncomeStatementReport struct {
	From         time.Time        `json:"from"`
	To           time.Time        `json:"to"`
	Revenue      []AccountBalance `json:"revenue"`
	Expenses     []AccountBalance `json:"expenses"`
	TotalRevenue decimal.Decimal  `json:"totalRevenue"`
	TotalExpense decimal.Decimal  `json:"totalExpense"`
	NetIncome    decimal.Decimal  `json:"netIncome"`
}

// CashFlowReport is a simplified indirect-method cash flow statement over the
// company's cash-like accounts.
type CashFlowReport struct {
	From                time.Time        `json:"from"`
	To                  time.Time        `json:"to"`
	CashAccounts        []AccountBalance `json:"cashAccounts"` // Ending balances per cash-like account
	BeginningBalance    decimal.Decimal  `json:"beginningBalance"`
	EndingBalance       decimal.Decimal  `json:"endingBalance"`
	NetChange           decimal.Decimal  `json:"netChange"`
	OperatingActivities decimal.Decimal  `json:"operatingActivities"` // Period net income proxy
}
