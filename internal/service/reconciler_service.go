package service

import (
	"context"
	"fmt"

	"tokenvine/internal/core/domain"
	"tokenvine/internal/core/ports"
	"tokenvine/internal/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const syncBatchSize = 50

// syncOutcome classifies one reconciliation attempt.
type syncOutcome int

const (
	syncConfirmed syncOutcome = iota
	syncFailed
	// syncSkipped leaves the entry PENDING without charging a retry,
	// e.g. when the account has no wallet yet.
	syncSkipped
)

// ReconcilerServiceImpl mirrors committed ledger entries onto the token
// contract. Chain failures never propagate: they are written back to
// the entry's sync state, and an entry that exhausts its retry budget
// stays FAILED until an operator steps in. Confirmed entries are never
// re-submitted, so replays of the same id are harmless.
type ReconcilerServiceImpl struct {
	ledgerRepo ports.LedgerRepository
	walletRepo ports.WalletRepository
	chain      ports.ChainClient
	enabled    bool
	log        zerolog.Logger
}

// NewReconcilerService creates a new ReconcilerServiceImpl.
func NewReconcilerService(
	ledgerRepo ports.LedgerRepository,
	walletRepo ports.WalletRepository,
	chain ports.ChainClient,
	enabled bool,
	log zerolog.Logger,
) *ReconcilerServiceImpl {
	return &ReconcilerServiceImpl{
		ledgerRepo: ledgerRepo,
		walletRepo: walletRepo,
		chain:      chain,
		enabled:    enabled,
		log:        log,
	}
}

// SyncEntry attempts one reconciliation of a single entry. Ineligible
// entries (missing, already confirmed, retry budget spent) are silent
// no-ops. The returned error covers storage failures only.
func (s *ReconcilerServiceImpl) SyncEntry(ctx context.Context, entryID uuid.UUID) error {
	if !s.enabled {
		return nil
	}

	entry, err := s.ledgerRepo.GetByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("load entry %s: %w", entryID, err)
	}
	if entry == nil {
		s.log.Warn().Str("entry_id", entryID.String()).Msg("sync requested for unknown entry")
		return nil
	}
	if !entry.SyncEligible() {
		return nil
	}

	_, err = s.syncOne(ctx, entry)
	return err
}

// ProcessPendingBatch sweeps eligible entries oldest first and attempts
// each one sequentially. One bad entry never blocks the rest.
func (s *ReconcilerServiceImpl) ProcessPendingBatch(ctx context.Context) (ports.SyncReport, error) {
	report := ports.SyncReport{}
	if !s.enabled {
		return report, nil
	}

	entries, err := s.ledgerRepo.ListSyncEligible(ctx, domain.MaxSyncRetries, syncBatchSize)
	if err != nil {
		return report, fmt.Errorf("list sync-eligible entries: %w", err)
	}
	metrics.ChainSyncBatchSize.Set(float64(len(entries)))

	for i := range entries {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		outcome, err := s.syncOne(ctx, &entries[i])
		if err != nil {
			s.log.Error().Err(err).Str("entry_id", entries[i].ID.String()).Msg("sync attempt errored")
			report.Failed++
			continue
		}
		switch outcome {
		case syncConfirmed:
			report.Synced++
		case syncFailed:
			report.Failed++
		case syncSkipped:
			report.Skipped++
		}
	}

	s.log.Info().
		Int("synced", report.Synced).
		Int("failed", report.Failed).
		Int("skipped", report.Skipped).
		Int("batch", len(entries)).
		Msg("chain sync batch processed")

	return report, nil
}

// syncOne submits a single entry. A nil error with a syncFailed outcome
// means the chain call failed and the failure was recorded on the entry.
func (s *ReconcilerServiceImpl) syncOne(ctx context.Context, entry *domain.LedgerEntry) (syncOutcome, error) {
	wallet, err := s.walletRepo.GetByAccountID(ctx, entry.AccountID)
	if err != nil {
		return syncFailed, fmt.Errorf("load wallet: %w", err)
	}
	if wallet == nil {
		// Left PENDING on purpose: the wallet backfill will create the
		// wallet and a later batch picks the entry up again.
		s.log.Warn().
			Str("entry_id", entry.ID.String()).
			Str("account_id", entry.AccountID.String()).
			Msg("skipping sync, account has no wallet")
		metrics.ChainSyncAttemptsTotal.WithLabelValues("skipped").Inc()
		return syncSkipped, nil
	}

	if err := s.ledgerRepo.MarkSubmitted(ctx, entry.ID); err != nil {
		return syncFailed, fmt.Errorf("mark submitted: %w", err)
	}

	var txHash string
	if entry.Amount >= 0 {
		txHash, err = s.chain.Mint(ctx, wallet.Address, entry.Amount)
	} else {
		txHash, err = s.chain.Burn(ctx, wallet.Address, -entry.Amount)
	}
	if err != nil {
		metrics.ChainSyncAttemptsTotal.WithLabelValues("failed").Inc()
		if markErr := s.ledgerRepo.MarkFailed(ctx, entry.ID, err.Error()); markErr != nil {
			return syncFailed, fmt.Errorf("mark failed: %w", markErr)
		}
		s.log.Warn().
			Err(err).
			Str("entry_id", entry.ID.String()).
			Int("retry_count", entry.RetryCount+1).
			Msg("chain submission failed")
		return syncFailed, nil
	}

	if err := s.ledgerRepo.MarkConfirmed(ctx, entry.ID, txHash); err != nil {
		return syncFailed, fmt.Errorf("mark confirmed: %w", err)
	}
	metrics.ChainSyncAttemptsTotal.WithLabelValues("confirmed").Inc()

	s.log.Info().
		Str("entry_id", entry.ID.String()).
		Str("tx_hash", txHash).
		Msg("ledger entry confirmed on chain")

	return syncConfirmed, nil
}
