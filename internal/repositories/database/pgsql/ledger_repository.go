package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifeline-hq/ledger/internal/apperrors"
	"github.com/lifeline-hq/ledger/internal/core/domain"
	portsrepo "github.com/lifeline-hq/ledger/internal/core/ports/repositories"
	"github.com/lifeline-hq/ledger/internal/models"
	"github.com/lifeline-hq/ledger/internal/utils/pagination"
)

const entryColumns = `entry_id, company_id, account_id, transaction_id, posted_at, debit_amount, credit_amount, currency_code, exchange_rate, description, posted_by, created_at`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger entries.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func toModelEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:       d.EntryID,
		CompanyID:     d.CompanyID,
		AccountID:     d.AccountID,
		TransactionID: d.TransactionID,
		PostedAt:      d.PostedAt,
		DebitAmount:   d.DebitAmount,
		CreditAmount:  d.CreditAmount,
		CurrencyCode:  d.CurrencyCode,
		ExchangeRate:  d.ExchangeRate,
		Description:   d.Description,
		PostedBy:      d.PostedBy,
		CreatedAt:     d.CreatedAt,
	}
}

func toDomainEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:       m.EntryID,
		CompanyID:     m.CompanyID,
		AccountID:     m.AccountID,
		TransactionID: m.TransactionID,
		PostedAt:      m.PostedAt,
		DebitAmount:   m.DebitAmount,
		CreditAmount:  m.CreditAmount,
		CurrencyCode:  m.CurrencyCode,
		ExchangeRate:  m.ExchangeRate,
		Description:   m.Description,
		PostedBy:      m.PostedBy,
		CreatedAt:     m.CreatedAt,
	}
}

func scanEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	var transactionID *string
	err := row.Scan(
		&m.EntryID,
		&m.CompanyID,
		&m.AccountID,
		&transactionID,
		&m.PostedAt,
		&m.DebitAmount,
		&m.CreditAmount,
		&m.CurrencyCode,
		&m.ExchangeRate,
		&m.Description,
		&m.PostedBy,
		&m.CreatedAt,
	)
	if transactionID != nil {
		m.TransactionID = *transactionID
	}
	return m, err
}

// nullableString maps "" to NULL for optional foreign keys.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

const insertEntryQuery = `
	INSERT INTO ledger_entries (` + entryColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
`

func entryInsertArgs(m models.LedgerEntry) []interface{} {
	return []interface{}{
		m.EntryID,
		m.CompanyID,
		m.AccountID,
		nullableString(m.TransactionID),
		m.PostedAt,
		m.DebitAmount,
		m.CreditAmount,
		m.CurrencyCode,
		m.ExchangeRate,
		m.Description,
		m.PostedBy,
		m.CreatedAt,
	}
}

// SaveEntry appends a single entry. Entries are immutable; there is no
// corresponding update statement anywhere in this repository.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := toModelEntry(entry)
	if _, err := r.Pool.Exec(ctx, insertEntryQuery, entryInsertArgs(m)...); err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: entry %s already exists", apperrors.ErrDuplicate, m.EntryID)
		}
		return fmt.Errorf("failed to save entry %s: %w", m.EntryID, err)
	}
	return nil
}

// SaveTransaction appends the grouping row and its entries in one database
// transaction. Either everything persists or nothing does.
func (r *PgxLedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	txnQuery := `
		INSERT INTO transactions (transaction_id, company_id, date, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	if _, err := tx.Exec(ctx, txnQuery,
		txn.TransactionID,
		txn.CompanyID,
		txn.Date,
		txn.Description,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	); err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", txn.TransactionID, err)
	}

	batch := &pgx.Batch{}
	for _, entry := range entries {
		batch.Queue(insertEntryQuery, entryInsertArgs(toModelEntry(entry))...)
	}
	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("failed to save entry %s of transaction %s: %w", entries[i].EntryID, txn.TransactionID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close entry insert batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a single ledger entry.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}

	d := toDomainEntry(m)
	return &d, nil
}

// ListEntriesByAccount retrieves a token-paginated page of an account's
// entries, newest business date first with insertion order as tie-breaker.
func (r *PgxLedgerRepository) ListEntriesByAccount(ctx context.Context, companyID, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE company_id = $1 AND account_id = $2
	`
	orderByClause := `ORDER BY posted_at DESC, created_at DESC`

	args := []interface{}{companyID, accountID}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastPostedAt, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (posted_at, created_at) < ($3, $4)`
		args = append(args, lastPostedAt, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for account "+accountID, err)
	}
	defer rows.Close()

	entries := make([]models.LedgerEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row for account "+accountID, err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows for account "+accountID, err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(last.PostedAt, last.CreatedAt)
		nextTokenVal = &token
		entries = entries[:limit]
	}

	result := make([]domain.LedgerEntry, len(entries))
	for i, m := range entries {
		result[i] = toDomainEntry(m)
	}
	return result, nextTokenVal, nil
}

// SumAccountActivity returns base-currency debit/credit totals for an account
// over [from, to]. Conversion happens per entry inside the SUM.
func (r *PgxLedgerRepository) SumAccountActivity(ctx context.Context, companyID, accountID string, from, to *time.Time) (portsrepo.ActivitySums, error) {
	query := `
		SELECT
			COALESCE(SUM(debit_amount * exchange_rate), 0) AS sum_debit,
			COALESCE(SUM(credit_amount * exchange_rate), 0) AS sum_credit
		FROM ledger_entries
		WHERE company_id = $1 AND account_id = $2
	`
	args := []interface{}{companyID, accountID}
	if from != nil {
		args = append(args, *from)
		query += ` AND posted_at >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND posted_at <= $` + strconv.Itoa(len(args))
	}
	query += ";"

	var sums portsrepo.ActivitySums
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&sums.SumDebit, &sums.SumCredit); err != nil {
		return portsrepo.ActivitySums{}, fmt.Errorf("failed to sum activity for account %s: %w", accountID, err)
	}
	return sums, nil
}
