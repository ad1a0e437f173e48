package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"yplanner/internal/entities"
	"yplanner/pkg/database/postgresql"
	"yplanner/pkg/types"
)

// Интеграционные тесты ходят в живой Postgres и пропускаются,
// если TEST_DATABASE_URL не задан.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL не задан, тесты БД пропущены")
	}

	require.NoError(t, postgresql.RunMigrations(context.Background(), dsn))

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

// createTestBranch заводит филиал и удаляет его (вместе с дочерними
// строками, по каскаду) после теста.
func createTestBranch(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := pool.QueryRow(context.Background(),
		`INSERT INTO branches (name, yclients_company_id) VALUES ($1, $2) RETURNING id`,
		"Тестовый филиал", int64(77)).Scan(&id)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM branches WHERE id = $1`, id)
	})
	return id
}

func TestStaffRepository_UpsertAndFind(t *testing.T) {
	pool := testPool(t)
	branchID := createTestBranch(t, pool)
	repo := NewStaffRepository(pool, zap.NewNop())
	ctx := context.Background()

	first, err := repo.Upsert(ctx, entities.Staff{
		BranchID:        branchID,
		YClientsStaffID: 10,
		Name:            "Анна",
		IsActive:        true,
	})
	require.NoError(t, err)

	// Повторный upsert по тому же натуральному ключу обновляет строку,
	// а не создаёт новую.
	second, err := repo.Upsert(ctx, entities.Staff{
		BranchID:        branchID,
		YClientsStaffID: 10,
		Name:            "Анна Петрова",
		IsActive:        false,
	})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	list, total, err := repo.GetStaffList(ctx, branchID, types.Filter{Limit: 10, Page: 1})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, uint64(1), total)
	assert.Equal(t, "Анна Петрова", list[0].Name)
	assert.False(t, list[0].IsActive)

	found, err := repo.FindIDByYClientsID(ctx, branchID, 10)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, first, *found)

	missing, err := repo.FindIDByYClientsID(ctx, branchID, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStaffRepository_FilteredCount(t *testing.T) {
	pool := testPool(t)
	branchID := createTestBranch(t, pool)
	repo := NewStaffRepository(pool, zap.NewNop())
	ctx := context.Background()

	for i, active := range []bool{true, true, false} {
		_, err := repo.Upsert(ctx, entities.Staff{
			BranchID:        branchID,
			YClientsStaffID: int64(10 + i),
			Name:            "Сотрудник",
			IsActive:        active,
		})
		require.NoError(t, err)
	}

	// total_count обязан учитывать filter[...], а не считать весь филиал.
	list, total, err := repo.GetStaffList(ctx, branchID, types.Filter{
		Filter:         map[string]interface{}{"is_active": "false"},
		Limit:          10,
		Page:           1,
		WithPagination: true,
	})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, uint64(1), total)
}

func TestServiceRepository_UpsertAndFind(t *testing.T) {
	pool := testPool(t)
	branchID := createTestBranch(t, pool)
	repo := NewServiceRepository(pool, zap.NewNop())
	ctx := context.Background()

	first, err := repo.Upsert(ctx, entities.Service{
		BranchID:          branchID,
		YClientsServiceID: 20,
		Name:              "Стрижка",
		DurationMinutes:   45,
	})
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, entities.Service{
		BranchID:          branchID,
		YClientsServiceID: 20,
		Name:              "Стрижка модельная",
		DurationMinutes:   60,
		IsMobile:          true,
	})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	list, total, err := repo.GetServiceList(ctx, branchID, types.Filter{Limit: 10, Page: 1})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, uint64(1), total)
	assert.Equal(t, "Стрижка модельная", list[0].Name)
	assert.Equal(t, 60, list[0].DurationMinutes)
	assert.True(t, list[0].IsMobile)

	found, err := repo.FindIDByYClientsID(ctx, branchID, 20)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, first, *found)
}

func TestBookingRepository_UpsertPreservesIsMobile(t *testing.T) {
	pool := testPool(t)
	branchID := createTestBranch(t, pool)
	repo := NewBookingRepository(pool, zap.NewNop())
	ctx := context.Background()

	starts := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	first, err := repo.Upsert(ctx, entities.Booking{
		BranchID:         branchID,
		YClientsRecordID: 100,
		StartsAtUTC:      starts,
		EndsAtUTC:        starts.Add(45 * time.Minute),
		Status:           entities.BookingStatusBooked,
	})
	require.NoError(t, err)

	// Флаг мобильной записи устанавливается не синхронизацией.
	_, err = pool.Exec(ctx, `UPDATE bookings SET is_mobile = true WHERE id = $1`, first)
	require.NoError(t, err)

	// Повторный upsert перезаписывает статус и время, но is_mobile
	// не трогает.
	second, err := repo.Upsert(ctx, entities.Booking{
		BranchID:         branchID,
		YClientsRecordID: 100,
		StartsAtUTC:      starts,
		EndsAtUTC:        starts.Add(45 * time.Minute),
		Status:           entities.BookingStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	list, total, err := repo.GetBookings(ctx, branchID, types.Filter{Limit: 10, Page: 1}, nil, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, uint64(1), total)
	assert.Equal(t, entities.BookingStatusCompleted, list[0].Status)
	assert.True(t, list[0].IsMobile)
}

func TestBookingRepository_GetBookingsFilteredCount(t *testing.T) {
	pool := testPool(t)
	branchID := createTestBranch(t, pool)
	repo := NewBookingRepository(pool, zap.NewNop())
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	statuses := []string{
		entities.BookingStatusCancelled,
		entities.BookingStatusCancelled,
		entities.BookingStatusBooked,
	}
	for i, status := range statuses {
		starts := base.Add(time.Duration(i) * 24 * time.Hour)
		_, err := repo.Upsert(ctx, entities.Booking{
			BranchID:         branchID,
			YClientsRecordID: int64(100 + i),
			StartsAtUTC:      starts,
			EndsAtUTC:        starts.Add(time.Hour),
			Status:           status,
		})
		require.NoError(t, err)
	}

	// Лимит усекает страницу, но total считается по отфильтрованному
	// множеству, а не по всему филиалу.
	list, total, err := repo.GetBookings(ctx, branchID, types.Filter{
		Filter:         map[string]interface{}{"status": entities.BookingStatusCancelled},
		Limit:          1,
		Page:           1,
		WithPagination: true,
	}, nil, nil)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, uint64(2), total)

	// Диапазон дат сужает и список, и счётчик.
	from := base.Add(12 * time.Hour)
	list, total, err = repo.GetBookings(ctx, branchID, types.Filter{Limit: 10, Page: 1}, &from, nil)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, uint64(2), total)
}
