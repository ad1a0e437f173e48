package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"yplanner/internal/entities"
	apperrors "yplanner/pkg/errors"
)

const branchTable = "branches"

type BranchRepositoryInterface interface {
	FindBranch(ctx context.Context, id uuid.UUID) (*entities.Branch, error)
}

type BranchRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewBranchRepository(storage *pgxpool.Pool, logger *zap.Logger) BranchRepositoryInterface {
	return &BranchRepository{storage: storage, logger: logger}
}

func scanBranch(row pgx.Row) (*entities.Branch, error) {
	var b entities.Branch
	var companyID sql.NullInt64

	err := row.Scan(&b.ID, &b.Name, &companyID, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования branch: %w", err)
	}

	if companyID.Valid {
		b.YClientsCompanyID = &companyID.Int64
	}

	return &b, nil
}

func (r *BranchRepository) FindBranch(ctx context.Context, id uuid.UUID) (*entities.Branch, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.
		Select("id", "name", "yclients_company_id", "created_at", "updated_at").
		From(branchTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("сборка запроса branch: %w", err)
	}

	return scanBranch(r.storage.QueryRow(ctx, query, args...))
}
