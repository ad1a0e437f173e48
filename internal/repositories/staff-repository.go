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

const staffTable = "staff"

// Единая карта полей (фильтр + сортировка) для списочных запросов.
var staffFieldMap = map[string]string{
	"id":                "s.id",
	"yclients_staff_id": "s.yclients_staff_id",
	"name":              "s.name",
	"is_active":         "s.is_active",
	"created_at":        "s.created_at",
}

type StaffRepositoryInterface interface {
	// Upsert пишет сотрудника по натуральному ключу (branch_id, yclients_staff_id).
	// Повторный вызов с теми же данными не создаёт дубликатов.
	Upsert(ctx context.Context, staff entities.Staff) (uuid.UUID, error)
	// FindIDByYClientsID возвращает локальный id по платформенному,
	// (nil, nil) — если сотрудник ещё не синхронизирован.
	FindIDByYClientsID(ctx context.Context, branchID uuid.UUID, yclientsStaffID int64) (*uuid.UUID, error)
	GetStaffList(ctx context.Context, branchID uuid.UUID, filter types.Filter) ([]entities.Staff, uint64, error)
}

type StaffRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewStaffRepository(storage *pgxpool.Pool, logger *zap.Logger) StaffRepositoryInterface {
	return &StaffRepository{storage: storage, logger: logger}
}

func (r *StaffRepository) Upsert(ctx context.Context, staff entities.Staff) (uuid.UUID, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.
		Insert(staffTable).
		Columns("branch_id", "yclients_staff_id", "name", "is_active").
		Values(staff.BranchID, staff.YClientsStaffID, staff.Name, staff.IsActive).
		Suffix(`ON CONFLICT (branch_id, yclients_staff_id) DO UPDATE
			SET name = EXCLUDED.name,
			    is_active = EXCLUDED.is_active,
			    updated_at = now()
			RETURNING id`).
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("сборка upsert staff: %w", err)
	}

	var id uuid.UUID
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("upsert staff %d: %w", staff.YClientsStaffID, err)
	}
	return id, nil
}

func (r *StaffRepository) FindIDByYClientsID(ctx context.Context, branchID uuid.UUID, yclientsStaffID int64) (*uuid.UUID, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.
		Select("id").
		From(staffTable).
		Where(sq.Eq{"branch_id": branchID, "yclients_staff_id": yclientsStaffID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("сборка поиска staff id: %w", err)
	}

	var id uuid.UUID
	err = r.storage.QueryRow(ctx, query, args...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("поиск staff по yclients id %d: %w", yclientsStaffID, err)
	}
	return &id, nil
}

func (r *StaffRepository) GetStaffList(ctx context.Context, branchID uuid.UUID, filter types.Filter) ([]entities.Staff, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	base := psql.
		Select("s.id", "s.branch_id", "s.yclients_staff_id", "s.name", "s.is_active", "s.created_at", "s.updated_at").
		From(staffTable + " s").
		Where(sq.Eq{"s.branch_id": branchID})

	if filter.Search != "" {
		base = base.Where(sq.ILike{"s.name": "%" + filter.Search + "%"})
	}

	base = db.ApplyListParams(base, filter, staffFieldMap)
	if len(filter.Sort) == 0 {
		base = base.OrderBy("s.name ASC")
	}

	query, args, err := base.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("сборка списка staff: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("запрос списка staff: %w", err)
	}
	defer rows.Close()

	var list []entities.Staff
	for rows.Next() {
		var s entities.Staff
		if err := rows.Scan(&s.ID, &s.BranchID, &s.YClientsStaffID, &s.Name, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования staff: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// COUNT считается по тем же условиям, что и список, иначе
	// total_count врёт при заданных filter[...]/search.
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil

	countBase := psql.
		Select("COUNT(*)").
		From(staffTable + " s").
		Where(sq.Eq{"s.branch_id": branchID})
	if filter.Search != "" {
		countBase = countBase.Where(sq.ILike{"s.name": "%" + filter.Search + "%"})
	}
	countBase = db.ApplyListParams(countBase, countFilter, staffFieldMap)

	countQuery, countArgs, err := countBase.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("подсчёт staff: %w", err)
	}

	return list, total, nil
}
