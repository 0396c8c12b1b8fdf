package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is a member of the closed account type enum.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// BalanceSide is the side of the ledger on which an amount lives.
type BalanceSide string

const (
	DebitSide  BalanceSide = "DEBIT"
	CreditSide BalanceSide = "CREDIT"
)

// NormalSide returns the side on which an account of this type naturally
// increases: Debit for Asset/Expense, Credit for Liability/Equity/Revenue.
func (t AccountType) NormalSide() BalanceSide {
	switch t {
	case Asset, Expense:
		return DebitSide
	default:
		return CreditSide
	}
}

// ReportsPeriodActivity reports whether balances of this account type are
// computed as period activity (income statement accounts) rather than
// cumulative point-in-time balances (balance sheet accounts).
func (t AccountType) ReportsPeriodActivity() bool {
	return t == Revenue || t == Expense
}

// Account represents one row of a company's chart of accounts.
// Accounts are never hard-deleted; deactivation keeps historical ledger
// entries attributable.
type Account struct {
	AccountID   string      `json:"accountID"` // Primary key (UUID)
	CompanyID   string      `json:"companyID"` // Owning company, mandatory scope
	Code        string      `json:"code"`      // Unique per company
	Name        string      `json:"name"`      // User-defined name
	AccountType AccountType `json:"accountType"`
	IsCashLike  bool        `json:"isCashLike"` // Participates in the cash flow statement
	IsActive    bool        `json:"isActive"`
	AuditFields
}
