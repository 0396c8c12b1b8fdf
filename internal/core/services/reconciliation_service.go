package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lifeline-hq/ledger/internal/apperrors"
	"github.com/lifeline-hq/ledger/internal/core/domain"
	portsrepo "github.com/lifeline-hq/ledger/internal/core/ports/repositories"
	portssvc "github.com/lifeline-hq/ledger/internal/core/ports/services"
	"github.com/lifeline-hq/ledger/internal/dto"
	"github.com/lifeline-hq/ledger/internal/platform/events"
	"github.com/lifeline-hq/ledger/internal/utils/accounting"
)

// defaultToleranceDays bounds the date window for candidate generation when
// no tolerance is configured.
const defaultToleranceDays = 3

// reconciliationService pairs imported bank statement lines with ledger
// entries under a strict 1:1 policy. Matching is a ranked heuristic; nothing
// ambiguous is ever auto-reconciled.
type reconciliationService struct {
	BaseService
	bankingRepo   portsrepo.BankingRepositoryFacade
	ledgerRepo    portsrepo.EntryReader
	publisher     events.Publisher
	toleranceDays int
}

// ReconciliationServiceOption configures the reconciliation service.
type ReconciliationServiceOption func(*reconciliationService)

// WithToleranceDays sets the candidate-generation date window in days.
func WithToleranceDays(days int) ReconciliationServiceOption {
	return func(s *reconciliationService) {
		if days > 0 {
			s.toleranceDays = days
		}
	}
}

// NewReconciliationService creates a new bank reconciliation matcher.
func NewReconciliationService(bankingRepo portsrepo.BankingRepositoryFacade, ledgerRepo portsrepo.EntryReader, publisher events.Publisher, options ...ReconciliationServiceOption) portssvc.ReconciliationSvcFacade {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	svc := &reconciliationService{
		bankingRepo:   bankingRepo,
		ledgerRepo:    ledgerRepo,
		publisher:     publisher,
		toleranceDays: defaultToleranceDays,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// findCompanyBankAccount resolves a bank account within the company scope.
func (s *reconciliationService) findCompanyBankAccount(ctx context.Context, companyID, bankAccountID string) (*domain.BankAccount, error) {
	bankAccount, err := s.bankingRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		return nil, err
	}
	if bankAccount.CompanyID != companyID {
		return nil, fmt.Errorf("%w: bank account %s belongs to company %s", apperrors.ErrCrossTenant, bankAccountID, bankAccount.CompanyID)
	}
	return bankAccount, nil
}

// RecordStatementLines persists a batch of externally imported lines. Lines
// start UNMATCHED; only the reconciliation flag and match linkage ever
// change afterwards.
func (s *reconciliationService) RecordStatementLines(ctx context.Context, companyID, bankAccountID string, req dto.RecordStatementLinesRequest, actorID string) ([]domain.BankStatementLine, error) {
	if err := requireCompanyScope(companyID); err != nil {
		return nil, err
	}
	if _, err := s.findCompanyBankAccount(ctx, companyID, bankAccountID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	lines := make([]domain.BankStatementLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		if lineReq.Amount.IsZero() {
			return nil, fmt.Errorf("%w: statement line amount must be non-zero", apperrors.ErrInvalidAmount)
		}
		lines[i] = domain.BankStatementLine{
			LineID:            uuid.NewString(),
			CompanyID:         companyID,
			BankAccountID:     bankAccountID,
			TransactionDate:   lineReq.TransactionDate,
			Amount:            lineReq.Amount,
			Description:       lineReq.Description,
			ExternalReference: lineReq.ExternalReference,
			Reconciled:        false,
			MatchStatus:       domain.Unmatched,
			CreatedAt:         now,
		}
	}

	if err := s.bankingRepo.SaveStatementLines(ctx, lines); err != nil {
		s.LogError(ctx, err, "Failed to save statement lines", slog.String("bank_account_id", bankAccountID))
		return nil, fmt.Errorf("failed to save statement lines: %w", err)
	}

	s.LogInfo(ctx, "Statement lines recorded",
		slog.String("company_id", companyID),
		slog.String("bank_account_id", bankAccountID),
		slog.Int("line_count", len(lines)))
	return lines, nil
}

// ProposeMatches generates ranked candidates for the unreconciled lines of a
// bank account. A candidate's signed ledger contribution on the cash account
// must equal the statement amount exactly; ranking prefers the closest
// business date, then posting order. Zero or multiple candidates per line
// are surfaced as-is for manual resolution.
func (s *reconciliationService) ProposeMatches(ctx context.Context, companyID, bankAccountID string, since time.Time) ([]domain.MatchCandidate, error) {
	if err := requireCompanyScope(companyID); err != nil {
		return nil, err
	}
	bankAccount, err := s.findCompanyBankAccount(ctx, companyID, bankAccountID)
	if err != nil {
		return nil, err
	}

	lines, err := s.bankingRepo.ListUnreconciledLines(ctx, bankAccountID, since)
	if err != nil {
		s.LogError(ctx, err, "Failed to list unreconciled lines", slog.String("bank_account_id", bankAccountID))
		return nil, fmt.Errorf("failed to list unreconciled lines: %w", err)
	}

	var candidates []domain.MatchCandidate
	for _, line := range lines {
		from := line.TransactionDate.AddDate(0, 0, -s.toleranceDays)
		to := line.TransactionDate.AddDate(0, 0, s.toleranceDays)

		entries, err := s.bankingRepo.ListCandidateEntries(ctx, companyID, bankAccount.AccountID, from, to)
		if err != nil {
			s.LogError(ctx, err, "Failed to list candidate entries", slog.String("line_id", line.LineID))
			return nil, fmt.Errorf("failed to list candidate entries: %w", err)
		}

		var lineCandidates []domain.MatchCandidate
		for _, entry := range entries {
			if !accounting.CashContribution(entry).Equal(line.Amount) {
				continue
			}
			lineCandidates = append(lineCandidates, domain.MatchCandidate{
				Line:         line,
				Entry:        entry,
				DateDistance: dateDistanceDays(line.TransactionDate, entry.PostedAt),
			})
		}

		sort.SliceStable(lineCandidates, func(i, j int) bool {
			if lineCandidates[i].DateDistance != lineCandidates[j].DateDistance {
				return lineCandidates[i].DateDistance < lineCandidates[j].DateDistance
			}
			return lineCandidates[i].Entry.CreatedAt.Before(lineCandidates[j].Entry.CreatedAt)
		})

		if len(lineCandidates) > 0 && line.MatchStatus == domain.Unmatched {
			if err := s.bankingRepo.UpdateMatchStatus(ctx, line.LineID, domain.Matched); err != nil {
				s.LogError(ctx, err, "Failed to mark line as matched", slog.String("line_id", line.LineID))
				return nil, fmt.Errorf("failed to update match status: %w", err)
			}
		}
		candidates = append(candidates, lineCandidates...)
	}

	s.LogInfo(ctx, "Match candidates proposed",
		slog.String("company_id", companyID),
		slog.String("bank_account_id", bankAccountID),
		slog.Int("line_count", len(lines)),
		slog.Int("candidate_count", len(candidates)))
	return candidates, nil
}

// ConfirmReconciliation durably records a 1:1 match. The backing store
// serializes racing confirms on the same line or entry; the loser observes
// ErrAlreadyReconciled and the original reconciliation stays intact.
func (s *reconciliationService) ConfirmReconciliation(ctx context.Context, companyID string, req dto.ConfirmReconciliationRequest, actorID string) (*domain.ReconciliationEntry, error) {
	if err := requireCompanyScope(companyID); err != nil {
		return nil, err
	}

	line, err := s.bankingRepo.FindStatementLineByID(ctx, req.LineID)
	if err != nil {
		return nil, err
	}
	if line.CompanyID != companyID {
		return nil, fmt.Errorf("%w: statement line %s belongs to company %s", apperrors.ErrCrossTenant, req.LineID, line.CompanyID)
	}
	if line.Reconciled {
		return nil, fmt.Errorf("%w: statement line %s", apperrors.ErrAlreadyReconciled, req.LineID)
	}

	entry, err := s.ledgerRepo.FindEntryByID(ctx, req.EntryID)
	if err != nil {
		return nil, err
	}
	if entry.CompanyID != companyID {
		return nil, fmt.Errorf("%w: entry %s belongs to company %s", apperrors.ErrCrossTenant, req.EntryID, entry.CompanyID)
	}

	// 1:1 policy: the confirmed amount must equal both sides exactly, and the
	// entry's cash movement must run in the same direction as the line.
	if !req.Amount.Equal(line.Amount.Abs()) {
		return nil, fmt.Errorf("%w: amount %s does not equal statement amount %s", apperrors.ErrAmountMismatch, req.Amount, line.Amount.Abs())
	}
	contribution := accounting.CashContribution(*entry)
	if !contribution.Equal(line.Amount) {
		return nil, fmt.Errorf("%w: ledger movement %s does not match statement amount %s", apperrors.ErrAmountMismatch, contribution, line.Amount)
	}

	now := time.Now().UTC()
	rec := domain.ReconciliationEntry{
		ReconciliationID: uuid.NewString(),
		CompanyID:        companyID,
		LineID:           req.LineID,
		EntryID:          req.EntryID,
		ReconciledAmount: req.Amount,
		ReconciledAt:     now,
		ReconciledBy:     actorID,
		Notes:            req.Notes,
	}

	if err := s.bankingRepo.SaveReconciliation(ctx, rec); err != nil {
		s.LogError(ctx, err, "Failed to save reconciliation",
			slog.String("line_id", req.LineID),
			slog.String("entry_id", req.EntryID))
		return nil, err
	}

	s.LogInfo(ctx, "Reconciliation confirmed",
		slog.String("reconciliation_id", rec.ReconciliationID),
		slog.String("company_id", companyID),
		slog.String("line_id", req.LineID),
		slog.String("entry_id", req.EntryID))
	s.publisher.Publish(ctx, domain.ReconciliationConfirmed{
		CompanyID:        companyID,
		ReconciliationID: rec.ReconciliationID,
		LineID:           rec.LineID,
		EntryID:          rec.EntryID,
		ReconciledAmount: rec.ReconciledAmount,
		ReconciledBy:     actorID,
		OccurredAt:       now,
	})
	return &rec, nil
}

// dateDistanceDays is the whole-day distance between two business dates.
func dateDistanceDays(a, b time.Time) int {
	d := int(a.Sub(b).Hours() / 24)
	if d < 0 {
		d = -d
	}
	return d
}
