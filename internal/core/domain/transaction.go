package domain

import "time"

// Transaction groups two or more ledger entries that describe one economic
// event. At commit time the group must balance: the sum of base-currency
// debits equals the sum of base-currency credits.
type Transaction struct {
	TransactionID string    `json:"transactionID"` // Primary key (UUID)
	CompanyID     string    `json:"companyID"`
	Date          time.Time `json:"date"` // Business date shared by the grouped entries
	Description   string    `json:"description"`
	AuditFields
}
