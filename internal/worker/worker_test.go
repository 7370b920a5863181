package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"tokenvine/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSyncWorker_ConsumesQueuedEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entryID := uuid.New()
	queue := mocks.NewMockSyncQueue(ctrl)
	reconciler := mocks.NewMockReconcilerService(ctrl)

	var once sync.Once
	synced := make(chan struct{})

	// First dequeue yields an entry, later ones report an empty queue.
	queue.EXPECT().Dequeue(gomock.Any(), gomock.Any()).
		Return(entryID, true, nil)
	queue.EXPECT().Dequeue(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ time.Duration) (uuid.UUID, bool, error) {
			<-ctx.Done()
			return uuid.Nil, false, ctx.Err()
		}).AnyTimes()

	reconciler.EXPECT().SyncEntry(gomock.Any(), entryID).
		DoAndReturn(func(context.Context, uuid.UUID) error {
			once.Do(func() { close(synced) })
			return nil
		})

	w := NewSyncWorker(reconciler, queue, "", zerolog.Nop())
	require.NoError(t, w.Start())
	defer w.Stop()

	select {
	case <-synced:
	case <-time.After(2 * time.Second):
		t.Fatal("queued entry was never handed to the reconciler")
	}
}

func TestSyncWorker_NilQueueAndEmptySchedule(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reconciler := mocks.NewMockReconcilerService(ctrl)

	w := NewSyncWorker(reconciler, nil, "", zerolog.Nop())
	require.NoError(t, w.Start())
	w.Stop()
}

func TestSyncWorker_BadScheduleFailsStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	w := NewSyncWorker(mocks.NewMockReconcilerService(ctrl), nil, "not a cron expr", zerolog.Nop())
	require.Error(t, w.Start())
}

func TestSyncWorker_StopUnblocksConsumer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := mocks.NewMockSyncQueue(ctrl)
	queue.EXPECT().Dequeue(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ time.Duration) (uuid.UUID, bool, error) {
			<-ctx.Done()
			return uuid.Nil, false, ctx.Err()
		}).AnyTimes()

	w := NewSyncWorker(mocks.NewMockReconcilerService(ctrl), queue, "", zerolog.Nop())
	require.NoError(t, w.Start())

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}
