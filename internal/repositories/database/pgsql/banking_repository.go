package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/lifeline-hq/ledger/internal/apperrors"
	"github.com/lifeline-hq/ledger/internal/core/domain"
	portsrepo "github.com/lifeline-hq/ledger/internal/core/ports/repositories"
	"github.com/lifeline-hq/ledger/internal/models"
)

const bankAccountColumns = `bank_account_id, company_id, account_id, account_number, bank_name, balance_cache, created_at, created_by, last_updated_at, last_updated_by`

const statementLineColumns = `line_id, company_id, bank_account_id, transaction_date, amount, description, external_reference, reconciled, match_status, created_at`

type PgxBankingRepository struct {
	BaseRepository
}

// newPgxBankingRepository creates a new repository for bank accounts,
// statement lines, and reconciliations.
func newPgxBankingRepository(pool *pgxpool.Pool) portsrepo.BankingRepositoryFacade {
	return &PgxBankingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BankingRepositoryFacade = (*PgxBankingRepository)(nil)

func toDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		BankAccountID: m.BankAccountID,
		CompanyID:     m.CompanyID,
		AccountID:     m.AccountID,
		AccountNumber: m.AccountNumber,
		BankName:      m.BankName,
		BalanceCache:  m.BalanceCache,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanBankAccount(row pgx.Row) (models.BankAccount, error) {
	var m models.BankAccount
	err := row.Scan(
		&m.BankAccountID,
		&m.CompanyID,
		&m.AccountID,
		&m.AccountNumber,
		&m.BankName,
		&m.BalanceCache,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func toDomainStatementLine(m models.BankStatementLine) domain.BankStatementLine {
	return domain.BankStatementLine{
		LineID:            m.LineID,
		CompanyID:         m.CompanyID,
		BankAccountID:     m.BankAccountID,
		TransactionDate:   m.TransactionDate,
		Amount:            m.Amount,
		Description:       m.Description,
		ExternalReference: m.ExternalReference,
		Reconciled:        m.Reconciled,
		MatchStatus:       domain.MatchStatus(m.MatchStatus),
		CreatedAt:         m.CreatedAt,
	}
}

func scanStatementLine(row pgx.Row) (models.BankStatementLine, error) {
	var m models.BankStatementLine
	err := row.Scan(
		&m.LineID,
		&m.CompanyID,
		&m.BankAccountID,
		&m.TransactionDate,
		&m.Amount,
		&m.Description,
		&m.ExternalReference,
		&m.Reconciled,
		&m.MatchStatus,
		&m.CreatedAt,
	)
	return m, err
}

// SaveBankAccount persists a new bank account.
func (r *PgxBankingRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (` + bankAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.BankAccountID,
		account.CompanyID,
		account.AccountID,
		account.AccountNumber,
		account.BankName,
		account.BalanceCache,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: bank account for ledger account %s already exists", apperrors.ErrDuplicate, account.AccountID)
		}
		return fmt.Errorf("failed to save bank account %s: %w", account.BankAccountID, err)
	}
	return nil
}

// FindBankAccountByID retrieves a bank account by its identifier.
func (r *PgxBankingRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE bank_account_id = $1;`

	m, err := scanBankAccount(r.Pool.QueryRow(ctx, query, bankAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bank account %s: %w", bankAccountID, err)
	}

	d := toDomainBankAccount(m)
	return &d, nil
}

// ListBankAccounts retrieves all bank accounts of a company.
func (r *PgxBankingRepository) ListBankAccounts(ctx context.Context, companyID string) ([]domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE company_id = $1 ORDER BY bank_name, account_number;`

	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank accounts for company %s: %w", companyID, err)
	}
	defer rows.Close()

	accounts := []domain.BankAccount{}
	for rows.Next() {
		m, err := scanBankAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank account row: %w", err)
		}
		accounts = append(accounts, toDomainBankAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank account rows: %w", err)
	}
	return accounts, nil
}

// UpdateBalanceCache refreshes the denormalized balance column.
func (r *PgxBankingRepository) UpdateBalanceCache(ctx context.Context, bankAccountID string, balance decimal.Decimal, now time.Time) error {
	query := `UPDATE bank_accounts SET balance_cache = $2, last_updated_at = $3 WHERE bank_account_id = $1;`

	cmdTag, err := r.Pool.Exec(ctx, query, bankAccountID, balance, now)
	if err != nil {
		return fmt.Errorf("failed to update balance cache for bank account %s: %w", bankAccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveStatementLines persists a batch of imported lines in one transaction.
func (r *PgxBankingRepository) SaveStatementLines(ctx context.Context, lines []domain.BankStatementLine) error {
	if len(lines) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		INSERT INTO bank_statement_lines (` + statementLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(query,
			line.LineID,
			line.CompanyID,
			line.BankAccountID,
			line.TransactionDate,
			line.Amount,
			line.Description,
			line.ExternalReference,
			line.Reconciled,
			string(line.MatchStatus),
			line.CreatedAt,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("failed to save statement line %s: %w", lines[i].LineID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close statement line insert batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

// FindStatementLineByID retrieves a statement line.
func (r *PgxBankingRepository) FindStatementLineByID(ctx context.Context, lineID string) (*domain.BankStatementLine, error) {
	query := `SELECT ` + statementLineColumns + ` FROM bank_statement_lines WHERE line_id = $1;`

	m, err := scanStatementLine(r.Pool.QueryRow(ctx, query, lineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find statement line %s: %w", lineID, err)
	}

	d := toDomainStatementLine(m)
	return &d, nil
}

// ListUnreconciledLines retrieves the unreconciled lines of a bank account on
// or after since, oldest first.
func (r *PgxBankingRepository) ListUnreconciledLines(ctx context.Context, bankAccountID string, since time.Time) ([]domain.BankStatementLine, error) {
	query := `
		SELECT ` + statementLineColumns + `
		FROM bank_statement_lines
		WHERE bank_account_id = $1 AND reconciled = FALSE AND transaction_date >= $2
		ORDER BY transaction_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, bankAccountID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query unreconciled lines for bank account %s: %w", bankAccountID, err)
	}
	defer rows.Close()

	lines := []domain.BankStatementLine{}
	for rows.Next() {
		m, err := scanStatementLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statement line row: %w", err)
		}
		lines = append(lines, toDomainStatementLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statement line rows: %w", err)
	}
	return lines, nil
}

// ListCandidateEntries retrieves entries on the cash account with business
// dates in [from, to] that carry no reconciliation yet, oldest first.
func (r *PgxBankingRepository) ListCandidateEntries(ctx context.Context, companyID, accountID string, from, to time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries e
		WHERE e.company_id = $1 AND e.account_id = $2
			AND e.posted_at BETWEEN $3 AND $4
			AND NOT EXISTS (
				SELECT 1 FROM reconciliation_entries re WHERE re.entry_id = e.entry_id
			)
		ORDER BY e.posted_at, e.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate entries for account %s: %w", accountID, err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate entry row: %w", err)
		}
		entries = append(entries, toDomainEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidate entry rows: %w", err)
	}
	return entries, nil
}

// UpdateMatchStatus moves a line through the match state machine without
// touching the reconciled flag.
func (r *PgxBankingRepository) UpdateMatchStatus(ctx context.Context, lineID string, status domain.MatchStatus) error {
	query := `UPDATE bank_statement_lines SET match_status = $2 WHERE line_id = $1;`

	cmdTag, err := r.Pool.Exec(ctx, query, lineID, string(status))
	if err != nil {
		return fmt.Errorf("failed to update match status for line %s: %w", lineID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindReconciliationByLineID retrieves the active reconciliation of a line.
func (r *PgxBankingRepository) FindReconciliationByLineID(ctx context.Context, lineID string) (*domain.ReconciliationEntry, error) {
	query := `
		SELECT reconciliation_id, company_id, line_id, entry_id, reconciled_amount, reconciled_at, reconciled_by, notes
		FROM reconciliation_entries
		WHERE line_id = $1;
	`
	var rec domain.ReconciliationEntry
	err := r.Pool.QueryRow(ctx, query, lineID).Scan(
		&rec.ReconciliationID,
		&rec.CompanyID,
		&rec.LineID,
		&rec.EntryID,
		&rec.ReconciledAmount,
		&rec.ReconciledAt,
		&rec.ReconciledBy,
		&rec.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reconciliation for line %s: %w", lineID, err)
	}
	return &rec, nil
}

// SaveReconciliation records a confirmed match. The statement line row is
// locked for the duration of the transaction and the unique indexes on
// line_id and entry_id reject a second reconciliation of either side, so
// racing confirms serialize and the loser observes ErrAlreadyReconciled.
func (r *PgxBankingRepository) SaveReconciliation(ctx context.Context, rec domain.ReconciliationEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	var reconciled bool
	lockQuery := `SELECT reconciled FROM bank_statement_lines WHERE line_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, rec.LineID).Scan(&reconciled); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: statement line %s", apperrors.ErrNotFound, rec.LineID)
		}
		return fmt.Errorf("failed to lock statement line %s: %w", rec.LineID, err)
	}
	if reconciled {
		return fmt.Errorf("%w: statement line %s", apperrors.ErrAlreadyReconciled, rec.LineID)
	}

	insertQuery := `
		INSERT INTO reconciliation_entries (reconciliation_id, company_id, line_id, entry_id, reconciled_amount, reconciled_at, reconciled_by, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	if _, err := tx.Exec(ctx, insertQuery,
		rec.ReconciliationID,
		rec.CompanyID,
		rec.LineID,
		rec.EntryID,
		rec.ReconciledAmount,
		rec.ReconciledAt,
		rec.ReconciledBy,
		rec.Notes,
	); err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: line %s or entry %s already carries a reconciliation", apperrors.ErrAlreadyReconciled, rec.LineID, rec.EntryID)
		}
		return fmt.Errorf("failed to save reconciliation %s: %w", rec.ReconciliationID, err)
	}

	flipQuery := `UPDATE bank_statement_lines SET reconciled = TRUE, match_status = $2 WHERE line_id = $1;`
	if _, err := tx.Exec(ctx, flipQuery, rec.LineID, string(domain.Reconciled)); err != nil {
		return fmt.Errorf("failed to mark line %s reconciled: %w", rec.LineID, err)
	}

	return r.Commit(ctx, tx)
}
