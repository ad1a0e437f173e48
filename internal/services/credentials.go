// Файл: internal/services/credentials.go
package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"yplanner/internal/entities"
	"yplanner/internal/repositories"
	"yplanner/internal/yclients"
	apperrors "yplanner/pkg/errors"
)

// CredentialResolver собирает учётные данные yClients для филиала.
// Побочных эффектов нет: только чтение филиала и настроек интеграции.
// Возвращаемые ошибки — типизированные предусловия из pkg/errors,
// они всплывают к вызывающему до единого обращения к платформе.
type CredentialResolver struct {
	branchRepo   repositories.BranchRepositoryInterface
	settingsRepo repositories.IntegrationSettingsRepositoryInterface
	logger       *zap.Logger
}

func NewCredentialResolver(
	branchRepo repositories.BranchRepositoryInterface,
	settingsRepo repositories.IntegrationSettingsRepositoryInterface,
	logger *zap.Logger,
) *CredentialResolver {
	return &CredentialResolver{
		branchRepo:   branchRepo,
		settingsRepo: settingsRepo,
		logger:       logger.Named("credential_resolver"),
	}
}

// Resolve возвращает филиал и составную авторизацию для него.
// Порядок проверок повторяет порядок предусловий обработчика:
// филиал → company id → partner token → user token.
func (r *CredentialResolver) Resolve(ctx context.Context, branchID uuid.UUID) (*entities.Branch, yclients.Auth, error) {
	branch, err := r.branchRepo.FindBranch(ctx, branchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, yclients.Auth{}, apperrors.ErrBranchNotFound
		}
		return nil, yclients.Auth{}, err
	}

	if branch.YClientsCompanyID == nil {
		return nil, yclients.Auth{}, apperrors.ErrMissingCompanyID
	}

	settings, err := r.settingsRepo.FindByBranch(ctx, branchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, yclients.Auth{}, apperrors.ErrMissingPartnerToken
		}
		return nil, yclients.Auth{}, err
	}

	if settings.PartnerToken == nil {
		return nil, yclients.Auth{}, apperrors.ErrMissingPartnerToken
	}
	if settings.UserToken == nil {
		return nil, yclients.Auth{}, apperrors.ErrMissingUserToken
	}

	auth := yclients.Auth{
		PartnerToken: *settings.PartnerToken,
		UserToken:    *settings.UserToken,
	}

	r.logger.Debug("Учётные данные филиала собраны", zap.String("branch_id", branchID.String()))
	return branch, auth, nil
}
