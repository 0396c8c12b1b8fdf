package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifeline-hq/ledger/internal/core/domain"
	portsrepo "github.com/lifeline-hq/ledger/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetTrialBalanceData retrieves per-account base-currency debit/credit totals
// through asOf. Conversion to base currency happens per entry inside the SUM;
// no mixed-currency amounts are ever added together.
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, companyID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			COALESCE(SUM(e.debit_amount * e.exchange_rate), 0) AS total_debit,
			COALESCE(SUM(e.credit_amount * e.exchange_rate), 0) AS total_credit
		FROM accounts a
		JOIN ledger_entries e ON e.account_id = a.account_id
		WHERE a.company_id = $1
			AND e.posted_at <= $2
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, asOf)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string
		if err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&accountType,
			&row.Debit,
			&row.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}
		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}
	return result, nil
}

// GetAccountActivity retrieves per-account totals for active accounts of the
// given types over the reporting window. A nil from yields cumulative
// point-in-time totals; a non-nil from restricts to period activity.
func (r *reportingRepository) GetAccountActivity(ctx context.Context, companyID string, types []domain.AccountType, from, to *time.Time) ([]portsrepo.AccountActivityRow, error) {
	typeStrings := make([]string, len(types))
	for i, t := range types {
		typeStrings[i] = string(t)
	}

	query := `
		SELECT
			a.account_id,
			a.company_id,
			a.code,
			a.name,
			a.account_type,
			a.is_cash_like,
			a.is_active,
			COALESCE(SUM(e.debit_amount * e.exchange_rate) FILTER (WHERE ($3::timestamptz IS NULL OR e.posted_at <= $3) AND ($4::timestamptz IS NULL OR e.posted_at >= $4)), 0) AS sum_debit,
			COALESCE(SUM(e.credit_amount * e.exchange_rate) FILTER (WHERE ($3::timestamptz IS NULL OR e.posted_at <= $3) AND ($4::timestamptz IS NULL OR e.posted_at >= $4)), 0) AS sum_credit
		FROM accounts a
		LEFT JOIN ledger_entries e ON e.account_id = a.account_id
		WHERE a.company_id = $1
			AND a.account_type = ANY($2)
			AND a.is_active = TRUE
		GROUP BY a.account_id, a.company_id, a.code, a.name, a.account_type, a.is_cash_like, a.is_active
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, typeStrings, to, from)
	if err != nil {
		return nil, fmt.Errorf("error querying account activity: %w", err)
	}
	defer rows.Close()

	result := []portsrepo.AccountActivityRow{}
	for rows.Next() {
		var row portsrepo.AccountActivityRow
		var accountType string
		if err := rows.Scan(
			&row.Account.AccountID,
			&row.Account.CompanyID,
			&row.Account.Code,
			&row.Account.Name,
			&accountType,
			&row.Account.IsCashLike,
			&row.Account.IsActive,
			&row.SumDebit,
			&row.SumCredit,
		); err != nil {
			return nil, fmt.Errorf("error scanning account activity row: %w", err)
		}
		row.Account.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account activity rows: %w", err)
	}
	return result, nil
}
