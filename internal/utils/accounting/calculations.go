package accounting

import (
	"fmt"

	"github.com/lifeline-hq/ledger/internal/apperrors"
	"github.com/lifeline-hq/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ValidateEntryAmounts enforces the single-sided entry policy: amounts are
// non-negative, exactly one of debit/credit is strictly positive, and the
// exchange rate is positive. Zero/zero rows are rejected rather than stored.
func ValidateEntryAmounts(debit, credit, rate decimal.Decimal) error {
	if debit.IsNegative() || credit.IsNegative() {
		return fmt.Errorf("%w: debit and credit must be non-negative", apperrors.ErrInvalidAmount)
	}
	if debit.IsPositive() == credit.IsPositive() {
		return fmt.Errorf("%w: exactly one of debit or credit must be positive", apperrors.ErrInvalidAmount)
	}
	if !rate.IsPositive() {
		return fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrInvalidAmount)
	}
	return nil
}

// SignedBalance applies the normal-balance convention to raw debit/credit
// sums: Debit-normal accounts (Asset, Expense) carry debits minus credits,
// Credit-normal accounts (Liability, Equity, Revenue) the reverse.
// This sign convention is the single most important correctness rule in the
// engine; every statement is derived from it.
func SignedBalance(accountType domain.AccountType, sumDebit, sumCredit decimal.Decimal) decimal.Decimal {
	if accountType.NormalSide() == domain.DebitSide {
		return sumDebit.Sub(sumCredit)
	}
	return sumCredit.Sub(sumDebit)
}

// CashContribution is the signed base-currency effect of a ledger entry on
// its (cash-like, debit-normal) account: debits are inflows, credits
// outflows. Used to compare ledger entries against signed statement amounts.
func CashContribution(entry domain.LedgerEntry) decimal.Decimal {
	return entry.BaseDebit().Sub(entry.BaseCredit())
}

// ValidateTransactionBalance checks that a group of entries describing one
// economic event nets to zero: base-currency debits equal base-currency
// credits across at least two entries and two distinct accounts.
func ValidateTransactionBalance(entries []domain.LedgerEntry) error {
	if len(entries) < 2 {
		return fmt.Errorf("%w: transaction must have at least two entries", apperrors.ErrValidation)
	}

	accounts := make(map[string]struct{}, len(entries))
	debits := decimal.Zero
	credits := decimal.Zero
	for _, e := range entries {
		if err := ValidateEntryAmounts(e.DebitAmount, e.CreditAmount, e.ExchangeRate); err != nil {
			return err
		}
		accounts[e.AccountID] = struct{}{}
		debits = debits.Add(e.BaseDebit())
		credits = credits.Add(e.BaseCredit())
	}

	if len(accounts) < 2 {
		return fmt.Errorf("%w: transaction must affect at least two different accounts", apperrors.ErrValidation)
	}
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits sum is %s and credits sum is %s", apperrors.ErrValidation, debits.String(), credits.String())
	}
	return nil
}
