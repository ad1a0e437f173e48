// Файл: internal/services/identity_resolver.go
package services

import (
	"context"

	"github.com/google/uuid"

	"yplanner/internal/repositories"
)

// IdentityResolver сопоставляет платформенные идентификаторы yClients
// локальным, в пределах пространства имён одного филиала. Записей
// не создаёт: если сотрудник или услуга ещё не синхронизированы,
// возвращается nil, и связь у booking остаётся пустой до следующего
// прохода синхронизации (self-heal).
type IdentityResolver struct {
	staffRepo   repositories.StaffRepositoryInterface
	serviceRepo repositories.ServiceRepositoryInterface
}

func NewIdentityResolver(
	staffRepo repositories.StaffRepositoryInterface,
	serviceRepo repositories.ServiceRepositoryInterface,
) *IdentityResolver {
	return &IdentityResolver{staffRepo: staffRepo, serviceRepo: serviceRepo}
}

// ResolveStaff: (nil, nil) — сопоставление пока неизвестно.
func (r *IdentityResolver) ResolveStaff(ctx context.Context, branchID uuid.UUID, yclientsStaffID int64) (*uuid.UUID, error) {
	return r.staffRepo.FindIDByYClientsID(ctx, branchID, yclientsStaffID)
}

func (r *IdentityResolver) ResolveService(ctx context.Context, branchID uuid.UUID, yclientsServiceID int64) (*uuid.UUID, error) {
	return r.serviceRepo.FindIDByYClientsID(ctx, branchID, yclientsServiceID)
}
