package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is the accounts table row. (company_id, code) is unique.
type Account struct {
	AccountID   string      `db:"account_id"`
	CompanyID   string      `db:"company_id"`
	Code        string      `db:"code"`
	Name        string      `db:"name"`
	AccountType AccountType `db:"account_type"`
	IsCashLike  bool        `db:"is_cash_like"`
	IsActive    bool        `db:"is_active"`
	AuditFields
}
