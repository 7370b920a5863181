package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tokenvine/internal/core/domain"
	"tokenvine/internal/core/ports"
	"tokenvine/internal/metrics"
	"tokenvine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const maxSpendReasonLength = 200

// SpendServiceImpl implements ports.SpendService. Approval debits the
// child balance and marks the request reviewed in a single transaction,
// so a crash between the two can never approve without debiting.
type SpendServiceImpl struct {
	accountRepo  ports.AccountRepository
	spendReqRepo ports.SpendRequestRepository
	ledger       ports.LedgerService
	transactor   ports.DBTransactor
	now          func() time.Time
	log          zerolog.Logger
}

// NewSpendService creates a new SpendServiceImpl.
func NewSpendService(
	accountRepo ports.AccountRepository,
	spendReqRepo ports.SpendRequestRepository,
	ledger ports.LedgerService,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *SpendServiceImpl {
	return &SpendServiceImpl{
		accountRepo:  accountRepo,
		spendReqRepo: spendReqRepo,
		ledger:       ledger,
		transactor:   transactor,
		now:          time.Now,
		log:          log,
	}
}

// WithClock overrides the time source. Test hook.
func (s *SpendServiceImpl) WithClock(now func() time.Time) *SpendServiceImpl {
	s.now = now
	return s
}

// CreateRequest registers a child's spend proposal. The balance check
// here is advisory only; the binding check happens at approval time.
func (s *SpendServiceImpl) CreateRequest(ctx context.Context, in ports.CreateSpendRequestInput) (*domain.SpendRequest, error) {
	if in.Amount < 1 {
		return nil, apperror.ErrInvalidAmount()
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" || len(reason) > maxSpendReasonLength {
		return nil, apperror.Validation(fmt.Sprintf("reason must be 1-%d characters", maxSpendReasonLength))
	}

	account, err := s.accountRepo.GetByID(ctx, in.AccountID)
	if err != nil {
		return nil, wrapStoreErr("get account", err)
	}
	if account == nil {
		return nil, apperror.ErrNotFound("account")
	}
	if in.Amount > account.TokenBalance {
		return nil, apperror.ErrInsufficientBalance()
	}

	pending, err := s.spendReqRepo.CountPending(ctx, in.AccountID)
	if err != nil {
		return nil, wrapStoreErr("count pending requests", err)
	}
	if pending >= domain.MaxPendingSpendRequests {
		return nil, apperror.ErrTooManyPending()
	}

	request := &domain.SpendRequest{
		ID:          uuid.New(),
		AccountID:   in.AccountID,
		Amount:      in.Amount,
		Reason:      reason,
		ReferenceID: in.ReferenceID,
		Status:      domain.SpendRequestStatusPending,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.spendReqRepo.Create(ctx, request); err != nil {
		return nil, wrapStoreErr("create spend request", err)
	}

	metrics.SpendRequestsTotal.WithLabelValues("created").Inc()
	s.log.Info().
		Str("request_id", request.ID.String()).
		Str("account_id", in.AccountID.String()).
		Int64("amount", in.Amount).
		Msg("spend request created")

	return request, nil
}

// ReviewRequest applies a parent decision. Approving a request whose
// balance has since dropped below the amount fails with TOK_001 and
// leaves the request PENDING.
func (s *SpendServiceImpl) ReviewRequest(ctx context.Context, requestID, reviewerFamilyID uuid.UUID, approve bool) (*domain.SpendRequest, error) {
	var reviewed *domain.SpendRequest
	var debited *domain.LedgerEntry

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	request, err := s.spendReqRepo.GetByIDForUpdate(ctx, dbTx, requestID)
	if err != nil {
		return nil, wrapStoreErr("lock spend request", err)
	}
	if request == nil {
		return nil, apperror.ErrNotFound("spend request")
	}

	// Ownership check hides other families' requests behind a 404.
	account, err := s.accountRepo.GetByID(ctx, request.AccountID)
	if err != nil {
		return nil, wrapStoreErr("get account", err)
	}
	if account == nil || account.FamilyID != reviewerFamilyID {
		return nil, apperror.ErrNotFound("spend request")
	}

	if request.IsReviewed() {
		return nil, apperror.ErrAlreadyReviewed()
	}

	now := s.now().UTC()
	status := domain.SpendRequestStatusDenied
	if approve {
		status = domain.SpendRequestStatusApproved
		refID := request.ID.String()
		debited, err = s.ledger.ApplySpendInTx(ctx, dbTx, ports.SpendInput{
			AccountID:   request.AccountID,
			Type:        domain.EntryTypeSpendUnlockContent,
			Amount:      request.Amount,
			Description: "Spend approved: " + request.Reason,
			ReferenceID: &refID,
		})
		if err != nil {
			return nil, err
		}
	}

	if err := s.spendReqRepo.SetReviewed(ctx, dbTx, request.ID, status, now); err != nil {
		return nil, wrapStoreErr("set reviewed", err)
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, wrapStoreErr("commit tx", err)
	}

	request.Status = status
	request.ReviewedAt = &now
	reviewed = request

	if approve {
		metrics.SpendRequestsTotal.WithLabelValues("approved").Inc()
	} else {
		metrics.SpendRequestsTotal.WithLabelValues("denied").Inc()
	}
	if debited != nil {
		s.ledger.EnqueueSync(ctx, debited)
	}

	s.log.Info().
		Str("request_id", request.ID.String()).
		Str("status", string(status)).
		Msg("spend request reviewed")

	return reviewed, nil
}

// ListRequests returns all of an account's spend requests, newest first.
func (s *SpendServiceImpl) ListRequests(ctx context.Context, accountID uuid.UUID) ([]domain.SpendRequest, error) {
	requests, err := s.spendReqRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, wrapStoreErr("list spend requests", err)
	}
	return requests, nil
}

// ListPendingForFamily returns every child's open requests for the
// parent review screen.
func (s *SpendServiceImpl) ListPendingForFamily(ctx context.Context, familyID uuid.UUID) ([]domain.SpendRequest, error) {
	accounts, err := s.accountRepo.ListByFamily(ctx, familyID)
	if err != nil {
		return nil, wrapStoreErr("list family accounts", err)
	}
	childIDs := make([]uuid.UUID, 0, len(accounts))
	for _, a := range accounts {
		if a.IsChild() {
			childIDs = append(childIDs, a.ID)
		}
	}
	if len(childIDs) == 0 {
		return []domain.SpendRequest{}, nil
	}
	requests, err := s.spendReqRepo.ListPendingByAccounts(ctx, childIDs)
	if err != nil {
		return nil, wrapStoreErr("list pending requests", err)
	}
	return requests, nil
}
