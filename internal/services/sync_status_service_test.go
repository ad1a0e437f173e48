package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"yplanner/internal/dto"
	"yplanner/internal/entities"
)

func seedAuditEntries(status *fakeStatusRepo, branchID uuid.UUID, n int) {
	for i := 0; i < n; i++ {
		_ = status.Insert(context.Background(), entities.SyncStatus{
			BranchID:    branchID,
			SyncType:    entities.SyncTypeStaff,
			Status:      entities.SyncOutcomeSuccess,
			SyncedCount: i,
		})
	}
}

func TestSyncStatusService_GetStatusPage(t *testing.T) {
	branchID := uuid.New()
	status := &fakeStatusRepo{}
	cache := newFakeResultCache()
	seedAuditEntries(status, branchID, 4)

	require.NoError(t, cache.StoreResult(context.Background(), branchID,
		&dto.SyncResultDTO{Success: true, Staff: 2, Services: 1, Bookings: 1}, time.Minute))

	svc := NewSyncStatusService(status, cache, zap.NewNop())

	page, err := svc.GetStatusPage(context.Background(), branchID, 3)
	require.NoError(t, err)

	assert.Len(t, page.History, 3)
	// История отдаётся от новых к старым.
	assert.Equal(t, 3, page.History[0].SyncedCount)

	require.NotNil(t, page.LastResult)
	assert.Equal(t, 2, page.LastResult.Staff)
}

func TestSyncStatusService_DefaultLimit(t *testing.T) {
	branchID := uuid.New()
	status := &fakeStatusRepo{}
	seedAuditEntries(status, branchID, 15)

	svc := NewSyncStatusService(status, newFakeResultCache(), zap.NewNop())

	page, err := svc.GetStatusPage(context.Background(), branchID, 0)
	require.NoError(t, err)
	assert.Len(t, page.History, 9)
}

func TestSyncStatusService_CacheFailureIsTolerated(t *testing.T) {
	branchID := uuid.New()
	status := &fakeStatusRepo{}
	seedAuditEntries(status, branchID, 2)

	cache := newFakeResultCache()
	cache.getErr = errors.New("redis недоступен")

	svc := NewSyncStatusService(status, cache, zap.NewNop())

	page, err := svc.GetStatusPage(context.Background(), branchID, 5)
	require.NoError(t, err, "недоступный кэш не должен ломать виджет")
	assert.Nil(t, page.LastResult)
	assert.Len(t, page.History, 2)
}

func TestSyncStatusService_EmptyHistoryAndColdCache(t *testing.T) {
	svc := NewSyncStatusService(&fakeStatusRepo{}, newFakeResultCache(), zap.NewNop())

	page, err := svc.GetStatusPage(context.Background(), uuid.New(), 5)
	require.NoError(t, err)
	assert.Nil(t, page.LastResult)
	assert.Empty(t, page.History)
}
