package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tokenvine/internal/core/domain"
	"tokenvine/internal/core/ports"
	"tokenvine/internal/metrics"
	"tokenvine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 50
	summaryRecentLimit  = 20

	// Bounded internal retries on serialization conflicts before the
	// caller sees a SYS_002.
	maxConflictRetries = 3
)

// LedgerServiceImpl implements ports.LedgerService. Every mutation
// locks the account row and writes the entry plus the balance update in
// one database transaction, so a reader never observes one without the
// other.
type LedgerServiceImpl struct {
	accountRepo  ports.AccountRepository
	ledgerRepo   ports.LedgerRepository
	spendReqRepo ports.SpendRequestRepository
	walletRepo   ports.WalletRepository
	transactor   ports.DBTransactor
	queue        ports.SyncQueue
	chainEnabled bool
	dailyCap     int64
	now          func() time.Time
	log          zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(
	accountRepo ports.AccountRepository,
	ledgerRepo ports.LedgerRepository,
	spendReqRepo ports.SpendRequestRepository,
	walletRepo ports.WalletRepository,
	transactor ports.DBTransactor,
	queue ports.SyncQueue,
	chainEnabled bool,
	dailyCap int64,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		accountRepo:  accountRepo,
		ledgerRepo:   ledgerRepo,
		spendReqRepo: spendReqRepo,
		walletRepo:   walletRepo,
		transactor:   transactor,
		queue:        queue,
		chainEnabled: chainEnabled,
		dailyCap:     dailyCap,
		now:          time.Now,
		log:          log,
	}
}

// WithClock overrides the time source. Test hook.
func (s *LedgerServiceImpl) WithClock(now func() time.Time) *LedgerServiceImpl {
	s.now = now
	return s
}

// ApplyEarn credits tokens to an account. Daily-capped types route
// through the reward calculator; a stale reset date zeroes the counter
// and advances the date in the same transaction. A fully clamped award
// writes no entry.
func (s *LedgerServiceImpl) ApplyEarn(ctx context.Context, in ports.EarnInput) (*ports.EarnResult, error) {
	if in.Amount < 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if !in.Type.IsEarn() {
		return nil, apperror.Validation(fmt.Sprintf("entry type %s does not credit tokens", in.Type))
	}

	var result *ports.EarnResult
	err := s.withConflictRetry(ctx, func() error {
		r, err := s.applyEarnOnce(ctx, in)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Entry != nil {
		metrics.LedgerEntriesTotal.WithLabelValues(string(in.Type)).Inc()
		s.EnqueueSync(ctx, result.Entry)
		s.log.Info().
			Str("entry_id", result.Entry.ID.String()).
			Str("account_id", in.AccountID.String()).
			Str("type", string(in.Type)).
			Int64("awarded", result.Awarded).
			Int64("balance", result.NewBalance).
			Msg("earn applied")
	} else {
		s.log.Info().
			Str("account_id", in.AccountID.String()).
			Str("type", string(in.Type)).
			Msg("earn clamped to zero by daily cap")
	}

	return result, nil
}

func (s *LedgerServiceImpl) applyEarnOnce(ctx context.Context, in ports.EarnInput) (*ports.EarnResult, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	account, err := s.accountRepo.GetByIDForUpdate(ctx, dbTx, in.AccountID)
	if err != nil {
		return nil, wrapStoreErr("lock account", err)
	}
	if account == nil {
		return nil, apperror.ErrNotFound("account")
	}

	now := s.now().UTC()
	dailyEarned := account.DailyTokensEarned
	resetDate := account.LastTokenResetDate
	if IsNewDay(resetDate, now) {
		dailyEarned = 0
		resetDate = now
	}

	award := in.Amount
	if in.Type.IsDailyCapped() {
		award = ComputeAward(in.Amount, dailyEarned, s.dailyCap)
	}

	if award == 0 {
		// Still persist a day rollover so the counter stays honest.
		if !resetDate.Equal(account.LastTokenResetDate) {
			if err := s.accountRepo.UpdateTokenState(ctx, dbTx, account.ID, account.TokenBalance, dailyEarned, resetDate); err != nil {
				return nil, wrapStoreErr("update account", err)
			}
			if err := dbTx.Commit(ctx); err != nil {
				return nil, wrapStoreErr("commit tx", err)
			}
		}
		return &ports.EarnResult{Awarded: 0, NewBalance: account.TokenBalance}, nil
	}

	newBalance := account.TokenBalance + award
	newDailyEarned := dailyEarned
	if in.Type.IsDailyCapped() {
		newDailyEarned += award
	}

	entry := s.newEntry(account.ID, in.Type, award, newBalance, in.Description, in.ReferenceID, now)

	if err := s.ledgerRepo.Create(ctx, dbTx, entry); err != nil {
		return nil, wrapStoreErr("create ledger entry", err)
	}
	if err := s.accountRepo.UpdateTokenState(ctx, dbTx, account.ID, newBalance, newDailyEarned, resetDate); err != nil {
		return nil, wrapStoreErr("update account", err)
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, wrapStoreErr("commit tx", err)
	}

	return &ports.EarnResult{Entry: entry, Awarded: award, NewBalance: newBalance}, nil
}

// ApplySpend debits tokens from an account. Fails with TOK_001 when the
// amount exceeds the current balance; no partial side effects.
func (s *LedgerServiceImpl) ApplySpend(ctx context.Context, in ports.SpendInput) (*domain.LedgerEntry, error) {
	if err := validateSpendInput(in); err != nil {
		return nil, err
	}

	var entry *domain.LedgerEntry
	err := s.withConflictRetry(ctx, func() error {
		dbTx, err := s.transactor.Begin(ctx)
		if err != nil {
			return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
		}
		defer dbTx.Rollback(ctx) //nolint:errcheck

		e, err := s.ApplySpendInTx(ctx, dbTx, in)
		if err != nil {
			return err
		}
		if err := dbTx.Commit(ctx); err != nil {
			return wrapStoreErr("commit tx", err)
		}
		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.LedgerEntriesTotal.WithLabelValues(string(in.Type)).Inc()
	s.EnqueueSync(ctx, entry)
	s.log.Info().
		Str("entry_id", entry.ID.String()).
		Str("account_id", in.AccountID.String()).
		Int64("amount", in.Amount).
		Int64("balance", entry.BalanceAfter).
		Msg("spend applied")

	return entry, nil
}

// ApplySpendInTx debits inside a caller-owned transaction. The caller
// commits and is responsible for EnqueueSync afterwards.
func (s *LedgerServiceImpl) ApplySpendInTx(ctx context.Context, tx pgx.Tx, in ports.SpendInput) (*domain.LedgerEntry, error) {
	if err := validateSpendInput(in); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetByIDForUpdate(ctx, tx, in.AccountID)
	if err != nil {
		return nil, wrapStoreErr("lock account", err)
	}
	if account == nil {
		return nil, apperror.ErrNotFound("account")
	}

	if in.Amount > account.TokenBalance {
		return nil, apperror.ErrInsufficientBalance()
	}

	now := s.now().UTC()
	newBalance := account.TokenBalance - in.Amount
	entry := s.newEntry(account.ID, in.Type, -in.Amount, newBalance, in.Description, in.ReferenceID, now)

	if err := s.ledgerRepo.Create(ctx, tx, entry); err != nil {
		return nil, wrapStoreErr("create ledger entry", err)
	}
	if err := s.accountRepo.UpdateTokenState(ctx, tx, account.ID, newBalance, account.DailyTokensEarned, account.LastTokenResetDate); err != nil {
		return nil, wrapStoreErr("update account", err)
	}

	return entry, nil
}

// EnqueueSync pushes a committed PENDING entry onto the chain sync
// queue. Fire-and-forget: the user-visible response never waits on, or
// fails because of, the chain path.
func (s *LedgerServiceImpl) EnqueueSync(ctx context.Context, entry *domain.LedgerEntry) {
	if entry == nil || entry.SyncStatus != domain.SyncStatusPending {
		return
	}
	if err := s.queue.Enqueue(ctx, entry.ID); err != nil {
		// The batch job sweeps PENDING entries, so a lost nudge only
		// delays the sync.
		s.log.Warn().Err(err).Str("entry_id", entry.ID.String()).Msg("failed to enqueue chain sync")
	}
}

// GetBalance returns the boundary projection of an account's token
// state, applying a virtual day reset for display.
func (s *LedgerServiceImpl) GetBalance(ctx context.Context, accountID uuid.UUID) (*ports.BalanceInfo, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, wrapStoreErr("get account", err)
	}
	if account == nil {
		return nil, apperror.ErrNotFound("account")
	}

	return &ports.BalanceInfo{
		Balance:     account.TokenBalance,
		DailyEarned: EffectiveDailyEarned(account.DailyTokensEarned, account.LastTokenResetDate, s.now().UTC()),
		DailyCap:    s.dailyCap,
	}, nil
}

// GetHistory returns an account's ledger entries, newest first.
func (s *LedgerServiceImpl) GetHistory(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}
	entries, err := s.ledgerRepo.ListByAccount(ctx, accountID, limit)
	if err != nil {
		return nil, wrapStoreErr("list ledger entries", err)
	}
	return entries, nil
}

// GetFamilySummary aggregates the parent dashboard: per-child balances,
// pending spend requests and recent transactions across the family.
func (s *LedgerServiceImpl) GetFamilySummary(ctx context.Context, familyID uuid.UUID) (*ports.FamilySummary, error) {
	accounts, err := s.accountRepo.ListByFamily(ctx, familyID)
	if err != nil {
		return nil, wrapStoreErr("list family accounts", err)
	}

	now := s.now().UTC()
	children := make([]ports.ChildSummary, 0, len(accounts))
	childIDs := make([]uuid.UUID, 0, len(accounts))
	for _, a := range accounts {
		if !a.IsChild() {
			continue
		}
		childIDs = append(childIDs, a.ID)
		children = append(children, ports.ChildSummary{
			AccountID:    a.ID,
			DisplayName:  a.DisplayName,
			TokenBalance: a.TokenBalance,
			DailyEarned:  EffectiveDailyEarned(a.DailyTokensEarned, a.LastTokenResetDate, now),
		})
	}

	if len(childIDs) > 0 {
		wallets, err := s.walletRepo.ListByAccounts(ctx, childIDs)
		if err != nil {
			return nil, wrapStoreErr("list wallets", err)
		}
		addrByAccount := make(map[uuid.UUID]string, len(wallets))
		for _, w := range wallets {
			addrByAccount[w.AccountID] = w.Address
		}
		for i := range children {
			if addr, ok := addrByAccount[children[i].AccountID]; ok {
				a := addr
				children[i].WalletAddress = &a
			}
		}
	}

	pending := []domain.SpendRequest{}
	recent := []domain.LedgerEntry{}
	if len(childIDs) > 0 {
		if pending, err = s.spendReqRepo.ListPendingByAccounts(ctx, childIDs); err != nil {
			return nil, wrapStoreErr("list pending spend requests", err)
		}
		if recent, err = s.ledgerRepo.ListByAccounts(ctx, childIDs, summaryRecentLimit); err != nil {
			return nil, wrapStoreErr("list recent entries", err)
		}
	}

	return &ports.FamilySummary{
		Children:           children,
		PendingRequests:    pending,
		RecentTransactions: recent,
	}, nil
}

func (s *LedgerServiceImpl) newEntry(accountID uuid.UUID, typ domain.EntryType, amount, balanceAfter int64, description string, referenceID *string, now time.Time) *domain.LedgerEntry {
	syncStatus := domain.SyncStatusNone
	if s.chainEnabled {
		syncStatus = domain.SyncStatusPending
	}
	return &domain.LedgerEntry{
		ID:           uuid.New(),
		AccountID:    accountID,
		Type:         typ,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		Description:  description,
		ReferenceID:  referenceID,
		SyncStatus:   syncStatus,
		CreatedAt:    now,
	}
}

// withConflictRetry re-runs fn on postgres serialization failures.
func (s *LedgerServiceImpl) withConflictRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err = fn()
		if err == nil || !isSerializationError(err) {
			return err
		}
		s.log.Warn().Err(err).Int("attempt", attempt+1).Msg("write conflict, retrying")
	}
	return apperror.ErrWriteConflict(err)
}

func isSerializationError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	// 40001 serialization_failure, 40P01 deadlock_detected
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

func validateSpendInput(in ports.SpendInput) error {
	if in.Amount <= 0 {
		return apperror.ErrInvalidAmount()
	}
	if in.Type.IsEarn() {
		return apperror.Validation(fmt.Sprintf("entry type %s does not debit tokens", in.Type))
	}
	return nil
}

func wrapStoreErr(op string, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if isSerializationError(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return apperror.InternalError(fmt.Errorf("%s: %w", op, err))
}
