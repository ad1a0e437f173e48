package repositories

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"yplanner/internal/entities"
)

const syncStatusTable = "sync_status"

type SyncStatusRepositoryInterface interface {
	// Insert добавляет запись аудита. Таблица append-only.
	Insert(ctx context.Context, entry entities.SyncStatus) error
	GetRecent(ctx context.Context, branchID uuid.UUID, limit int) ([]entities.SyncStatus, error)
}

type SyncStatusRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewSyncStatusRepository(storage *pgxpool.Pool, logger *zap.Logger) SyncStatusRepositoryInterface {
	return &SyncStatusRepository{storage: storage, logger: logger}
}

func (r *SyncStatusRepository) Insert(ctx context.Context, entry entities.SyncStatus) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.
		Insert(syncStatusTable).
		Columns("branch_id", "sync_type", "status", "synced_count", "error_message").
		Values(entry.BranchID, entry.SyncType, entry.Status, entry.SyncedCount, entry.ErrorMessage).
		ToSql()
	if err != nil {
		return fmt.Errorf("сборка insert sync_status: %w", err)
	}

	if _, err := r.storage.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert sync_status (%s): %w", entry.SyncType, err)
	}
	return nil
}

func (r *SyncStatusRepository) GetRecent(ctx context.Context, branchID uuid.UUID, limit int) ([]entities.SyncStatus, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.
		Select("id", "branch_id", "sync_type", "status", "synced_count", "error_message", "created_at").
		From(syncStatusTable).
		Where(sq.Eq{"branch_id": branchID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("сборка запроса sync_status: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("запрос sync_status: %w", err)
	}
	defer rows.Close()

	var list []entities.SyncStatus
	for rows.Next() {
		var e entities.SyncStatus
		var errMsg sql.NullString
		if err := rows.Scan(&e.ID, &e.BranchID, &e.SyncType, &e.Status, &e.SyncedCount, &errMsg, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования sync_status: %w", err)
		}
		if errMsg.Valid {
			e.ErrorMessage = &errMsg.String
		}
		list = append(list, e)
	}

	return list, rows.Err()
}
