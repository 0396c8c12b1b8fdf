package services

import (
	"context"
	"time"

	"github.com/lifeline-hq/ledger/internal/core/domain"
	"github.com/lifeline-hq/ledger/internal/dto"
)

// ReconciliationSvcFacade pairs imported bank statement lines with ledger
// entries under a strict 1:1 policy.
type ReconciliationSvcFacade interface {
	// RecordStatementLines persists a batch of externally imported lines for a
	// bank account. Lines start in the UNMATCHED state.
	RecordStatementLines(ctx context.Context, companyID, bankAccountID string, req dto.RecordStatementLinesRequest, actorID string) ([]domain.BankStatementLine, error)

	// ProposeMatches generates ranked match candidates for the unreconciled
	// lines of a bank account since the given date. Ambiguous or absent
	// matches are surfaced for manual resolution, never auto-reconciled.
	ProposeMatches(ctx context.Context, companyID, bankAccountID string, since time.Time) ([]domain.MatchCandidate, error)

	// ConfirmReconciliation durably records a 1:1 match. Fails with
	// apperrors.ErrAlreadyReconciled when either side is already reconciled
	// and apperrors.ErrAmountMismatch unless the amount equals both sides.
	ConfirmReconciliation(ctx context.Context, companyID string, req dto.ConfirmReconciliationRequest, actorID string) (*domain.ReconciliationEntry, error)
}
