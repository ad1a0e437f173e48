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

const integrationSettingsTable = "integration_settings"

type IntegrationSettingsRepositoryInterface interface {
	FindByBranch(ctx context.Context, branchID uuid.UUID) (*entities.IntegrationSettings, error)
}

type IntegrationSettingsRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewIntegrationSettingsRepository(storage *pgxpool.Pool, logger *zap.Logger) IntegrationSettingsRepositoryInterface {
	return &IntegrationSettingsRepository{storage: storage, logger: logger}
}

func (r *IntegrationSettingsRepository) FindByBranch(ctx context.Context, branchID uuid.UUID) (*entities.IntegrationSettings, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.
		Select("id", "branch_id", "yclients_partner_token", "yclients_user_token", "created_at", "updated_at").
		From(integrationSettingsTable).
		Where(sq.Eq{"branch_id": branchID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("сборка запроса integration_settings: %w", err)
	}

	var s entities.IntegrationSettings
	var partnerToken, userToken sql.NullString

	err = r.storage.QueryRow(ctx, query, args...).
		Scan(&s.ID, &s.BranchID, &partnerToken, &userToken, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования integration_settings: %w", err)
	}

	if partnerToken.Valid && partnerToken.String != "" {
		s.PartnerToken = &partnerToken.String
	}
	if userToken.Valid && userToken.String != "" {
		s.UserToken = &userToken.String
	}

	return &s, nil
}
