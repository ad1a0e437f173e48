package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"yplanner/internal/entities"
	db "yplanner/internal/infrastructure/db"
	"yplanner/pkg/types"
)

const servicesTable = "services"

var serviceFieldMap = map[string]string{
	"id":                  "sv.id",
	"yclients_service_id": "sv.yclients_service_id",
	"name":                "sv.name",
	"duration_minutes":    "sv.duration_minutes",
	"is_mobile":           "sv.is_mobile",
	"created_at":          "sv.created_at",
}

type ServiceRepositoryInterface interface {
	Upsert(ctx context.Context, service entities.Service) (uuid.UUID, error)
	FindIDByYClientsID(ctx context.Context, branchID uuid.UUID, yclientsServiceID int64) (*uuid.UUID, error)
	GetServiceList(ctx context.Context, branchID uuid.UUID, filter types.Filter) ([]entities.Service, uint64, error)
}

type ServiceRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewServiceRepository(storage *pgxpool.Pool, logger *zap.Logger) ServiceRepositoryInterface {
	return &ServiceRepository{storage: storage, logger: logger}
}

func (r *ServiceRepository) Upsert(ctx context.Context, service entities.Service) (uuid.UUID, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.
		Insert(servicesTable).
		Columns("branch_id", "yclients_service_id", "name", "duration_minutes", "is_mobile").
		Values(service.BranchID, service.YClientsServiceID, service.Name, service.DurationMinutes, service.IsMobile).
		Suffix(`ON CONFLICT (branch_id, yclients_service_id) DO UPDATE
			SET name = EXCLUDED.name,
			    duration_minutes = EXCLUDED.duration_minutes,
			    is_mobile = EXCLUDED.is_mobile,
			    updated_at = now()
			RETURNING id`).
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("сборка upsert service: %w", err)
	}

	var id uuid.UUID
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("upsert service %d: %w", service.YClientsServiceID, err)
	}
	return id, nil
}

func (r *ServiceRepository) FindIDByYClientsID(ctx context.Context, branchID uuid.UUID, yclientsServiceID int64) (*uuid.UUID, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.
		Select("id").
		From(servicesTable).
		Where(sq.Eq{"branch_id": branchID, "yclients_service_id": yclientsServiceID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("сборка поиска service id: %w", err)
	}

	var id uuid.UUID
	err = r.storage.QueryRow(ctx, query, args...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("поиск service по yclients id %d: %w", yclientsServiceID, err)
	}
	return &id, nil
}

func (r *ServiceRepository) GetServiceList(ctx context.Context, branchID uuid.UUID, filter types.Filter) ([]entities.Service, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	base := psql.
		Select("sv.id", "sv.branch_id", "sv.yclients_service_id", "sv.name", "sv.duration_minutes", "sv.is_mobile", "sv.created_at", "sv.updated_at").
		From(servicesTable + " sv").
		Where(sq.Eq{"sv.branch_id": branchID})

	if filter.Search != "" {
		base = base.Where(sq.ILike{"sv.name": "%" + filter.Search + "%"})
	}

	base = db.ApplyListParams(base, filter, serviceFieldMap)
	if len(filter.Sort) == 0 {
		base = base.OrderBy("sv.name ASC")
	}

	query, args, err := base.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("сборка списка services: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("запрос списка services: %w", err)
	}
	defer rows.Close()

	var list []entities.Service
	for rows.Next() {
		var s entities.Service
		if err := rows.Scan(&s.ID, &s.BranchID, &s.YClientsServiceID, &s.Name, &s.DurationMinutes, &s.IsMobile, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования service: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// COUNT считается по тем же условиям, что и список.
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil

	countBase := psql.
		Select("COUNT(*)").
		From(servicesTable + " sv").
		Where(sq.Eq{"sv.branch_id": branchID})
	if filter.Search != "" {
		countBase = countBase.Where(sq.ILike{"sv.name": "%" + filter.Search + "%"})
	}
	countBase = db.ApplyListParams(countBase, countFilter, serviceFieldMap)

	countQuery, countArgs, err := countBase.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("подсчёт services: %w", err)
	}

	return list, total, nil
}
