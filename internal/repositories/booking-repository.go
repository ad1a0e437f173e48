package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"yplanner/internal/entities"
	db "yplanner/internal/infrastructure/db"
	"yplanner/pkg/types"
)

const bookingsTable = "bookings"

var bookingFieldMap = map[string]string{
	"id":                 "b.id",
	"yclients_record_id": "b.yclients_record_id",
	"staff_id":           "b.staff_id",
	"service_id":         "b.service_id",
	"status":             "b.status",
	"is_mobile":          "b.is_mobile",
	"starts_at":          "b.starts_at_utc",
	"created_at":         "b.created_at",
}

type BookingRepositoryInterface interface {
	// Upsert пишет запись по натуральному ключу (branch_id, yclients_record_id).
	// Изменяемые поля (связи, время, статус, клиент) перезаписываются целиком —
	// состояние записи меняется на стороне yClients. is_mobile из DO UPDATE
	// исключён: флаг мобильной записи устанавливается не синхронизацией.
	Upsert(ctx context.Context, booking entities.Booking) (uuid.UUID, error)
	GetBookings(ctx context.Context, branchID uuid.UUID, filter types.Filter, from, to *time.Time) ([]entities.Booking, uint64, error)
}

type BookingRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewBookingRepository(storage *pgxpool.Pool, logger *zap.Logger) BookingRepositoryInterface {
	return &BookingRepository{storage: storage, logger: logger}
}

func (r *BookingRepository) Upsert(ctx context.Context, booking entities.Booking) (uuid.UUID, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.
		Insert(bookingsTable).
		Columns("branch_id", "yclients_record_id", "staff_id", "service_id",
			"starts_at_utc", "ends_at_utc", "status", "is_mobile", "client_name", "client_phone").
		Values(booking.BranchID, booking.YClientsRecordID, booking.StaffID, booking.ServiceID,
			booking.StartsAtUTC, booking.EndsAtUTC, booking.Status, booking.IsMobile,
			booking.ClientName, booking.ClientPhone).
		Suffix(`ON CONFLICT (branch_id, yclients_record_id) DO UPDATE
			SET staff_id = EXCLUDED.staff_id,
			    service_id = EXCLUDED.service_id,
			    starts_at_utc = EXCLUDED.starts_at_utc,
			    ends_at_utc = EXCLUDED.ends_at_utc,
			    status = EXCLUDED.status,
			    client_name = EXCLUDED.client_name,
			    client_phone = EXCLUDED.client_phone,
			    updated_at = now()
			RETURNING id`).
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("сборка upsert booking: %w", err)
	}

	var id uuid.UUID
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("upsert booking %d: %w", booking.YClientsRecordID, err)
	}
	return id, nil
}

func scanBooking(rows pgx.Row) (*entities.Booking, error) {
	var b entities.Booking
	var staffID, serviceID uuid.NullUUID
	var clientName, clientPhone sql.NullString

	err := rows.Scan(&b.ID, &b.BranchID, &b.YClientsRecordID, &staffID, &serviceID,
		&b.StartsAtUTC, &b.EndsAtUTC, &b.Status, &b.IsMobile, &clientName, &clientPhone,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования booking: %w", err)
	}

	if staffID.Valid {
		b.StaffID = &staffID.UUID
	}
	if serviceID.Valid {
		b.ServiceID = &serviceID.UUID
	}
	if clientName.Valid {
		b.ClientName = &clientName.String
	}
	if clientPhone.Valid {
		b.ClientPhone = &clientPhone.String
	}

	return &b, nil
}

func (r *BookingRepository) GetBookings(ctx context.Context, branchID uuid.UUID, filter types.Filter, from, to *time.Time) ([]entities.Booking, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyRange := func(b sq.SelectBuilder) sq.SelectBuilder {
		if from != nil {
			b = b.Where(sq.GtOrEq{"b.starts_at_utc": *from})
		}
		if to != nil {
			b = b.Where(sq.LtOrEq{"b.starts_at_utc": *to})
		}
		return b
	}

	base := psql.
		Select("b.id", "b.branch_id", "b.yclients_record_id", "b.staff_id", "b.service_id",
			"b.starts_at_utc", "b.ends_at_utc", "b.status", "b.is_mobile", "b.client_name", "b.client_phone",
			"b.created_at", "b.updated_at").
		From(bookingsTable + " b").
		Where(sq.Eq{"b.branch_id": branchID})
	base = applyRange(base)
	base = db.ApplyListParams(base, filter, bookingFieldMap)
	if len(filter.Sort) == 0 {
		base = base.OrderBy("b.starts_at_utc ASC")
	}

	query, args, err := base.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("сборка списка bookings: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("запрос списка bookings: %w", err)
	}
	defer rows.Close()

	var list []entities.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// COUNT считается по тем же условиям, что и список, иначе
	// total_count врёт при заданных filter[...].
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil

	countBase := psql.
		Select("COUNT(*)").
		From(bookingsTable + " b").
		Where(sq.Eq{"b.branch_id": branchID})
	countBase = applyRange(countBase)
	countBase = db.ApplyListParams(countBase, countFilter, bookingFieldMap)

	countQuery, countArgs, err := countBase.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("подсчёт bookings: %w", err)
	}

	return list, total, nil
}
