// Файл: internal/services/sync_service.go
package services

import (
	"context"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"yplanner/internal/dto"
	"yplanner/internal/entities"
	"yplanner/internal/repositories"
	"yplanner/internal/yclients"
)

// PlatformAPI — исходящие вызовы к yClients. Интерфейс нужен, чтобы
// в тестах подменять платформу фейком.
type PlatformAPI interface {
	FetchStaff(ctx context.Context, companyID int64, auth yclients.Auth) ([]yclients.StaffRecord, error)
	FetchServices(ctx context.Context, companyID int64, auth yclients.Auth) ([]yclients.ServiceRecord, error)
	FetchRecords(ctx context.Context, companyID int64, auth yclients.Auth, from, to time.Time) ([]yclients.BookingRecord, error)
}

type SyncServiceInterface interface {
	Run(ctx context.Context, branchID uuid.UUID) (*dto.SyncResultDTO, error)
}

// SyncService — оркестратор синхронизации одного филиала.
//
// Ключевое свойство — изоляция отказов: ошибка одного класса сущностей
// превращается в запись аудита с исходом error и не мешает остальным.
// На каждый вызов пишется ровно три записи аудита, даже если все три
// класса упали. Реконсилеры идут в фиксированном порядке staff →
// services → bookings: так ссылки записей резолвятся по строкам,
// синхронизированным мгновением раньше.
type SyncService struct {
	credentials *CredentialResolver
	api         PlatformAPI
	resolver    *IdentityResolver
	staffRepo   repositories.StaffRepositoryInterface
	serviceRepo repositories.ServiceRepositoryInterface
	bookingRepo repositories.BookingRepositoryInterface
	statusRepo  repositories.SyncStatusRepositoryInterface
	resultCache repositories.SyncResultCacheInterface
	cacheTTL    time.Duration
	logger      *zap.Logger

	// now подменяется в тестах окна синхронизации.
	now func() time.Time
}

func NewSyncService(
	credentials *CredentialResolver,
	api PlatformAPI,
	resolver *IdentityResolver,
	staffRepo repositories.StaffRepositoryInterface,
	serviceRepo repositories.ServiceRepositoryInterface,
	bookingRepo repositories.BookingRepositoryInterface,
	statusRepo repositories.SyncStatusRepositoryInterface,
	resultCache repositories.SyncResultCacheInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *SyncService {
	return &SyncService{
		credentials: credentials,
		api:         api,
		resolver:    resolver,
		staffRepo:   staffRepo,
		serviceRepo: serviceRepo,
		bookingRepo: bookingRepo,
		statusRepo:  statusRepo,
		resultCache: resultCache,
		cacheTTL:    cacheTTL,
		logger:      logger.Named("sync_service"),
		now:         time.Now,
	}
}

// Run выполняет полную синхронизацию филиала. Ошибки конфигурации
// (филиал, company id, токены) возвращаются как есть — без них нельзя
// синхронизировать ни один класс. Всё остальное изолируется по классам.
func (s *SyncService) Run(ctx context.Context, branchID uuid.UUID) (*dto.SyncResultDTO, error) {
	branch, auth, err := s.credentials.Resolve(ctx, branchID)
	if err != nil {
		return nil, err
	}

	companyID := *branch.YClientsCompanyID
	s.logger.Info("Начало синхронизации филиала",
		zap.String("branch_id", branchID.String()),
		zap.Int64("company_id", companyID),
	)

	result := &dto.SyncResultDTO{Success: true}

	result.Staff, result.Details.Staff = s.runEntitySync(ctx, branchID, entities.SyncTypeStaff, func() (int, error) {
		return s.syncStaff(ctx, branchID, companyID, auth)
	})
	result.Services, result.Details.Services = s.runEntitySync(ctx, branchID, entities.SyncTypeServices, func() (int, error) {
		return s.syncServices(ctx, branchID, companyID, auth)
	})
	result.Bookings, result.Details.Bookings = s.runEntitySync(ctx, branchID, entities.SyncTypeBookings, func() (int, error) {
		return s.syncBookings(ctx, branchID, companyID, auth)
	})

	if s.resultCache != nil {
		if err := s.resultCache.StoreResult(ctx, branchID, result, s.cacheTTL); err != nil {
			s.logger.Warn("Не удалось закэшировать результат синхронизации", zap.Error(err))
		}
	}

	s.logger.Info("Синхронизация филиала завершена",
		zap.String("branch_id", branchID.String()),
		zap.Int("staff", result.Staff),
		zap.Int("services", result.Services),
		zap.Int("bookings", result.Bookings),
	)
	return result, nil
}

// runEntitySync изолирует отказ одного класса сущностей: ошибка
// конвертируется в запись аудита и результат с status=error, соседние
// классы продолжают работу.
func (s *SyncService) runEntitySync(ctx context.Context, branchID uuid.UUID, syncType string, fn func() (int, error)) (int, *dto.EntitySyncResultDTO) {
	count, err := fn()
	if err != nil {
		s.logger.Error("Синхронизация класса завершилась ошибкой",
			zap.String("sync_type", syncType),
			zap.Error(err),
		)
		s.recordAudit(ctx, branchID, syncType, entities.SyncOutcomeError, 0, err.Error())
		return 0, &dto.EntitySyncResultDTO{
			Count:  0,
			Status: entities.SyncOutcomeError,
			Error:  null.StringFrom(err.Error()),
		}
	}

	s.recordAudit(ctx, branchID, syncType, entities.SyncOutcomeSuccess, count, "")
	return count, &dto.EntitySyncResultDTO{
		Count:  count,
		Status: entities.SyncOutcomeSuccess,
	}
}

// recordAudit добавляет запись аудита. Сбой записи аудита не валит
// синхронизацию — он только логируется.
func (s *SyncService) recordAudit(ctx context.Context, branchID uuid.UUID, syncType, outcome string, count int, errMsg string) {
	entry := entities.SyncStatus{
		BranchID:    branchID,
		SyncType:    syncType,
		Status:      outcome,
		SyncedCount: count,
	}
	if errMsg != "" {
		entry.ErrorMessage = &errMsg
	}

	if err := s.statusRepo.Insert(ctx, entry); err != nil {
		s.logger.Error("Не удалось записать аудит синхронизации",
			zap.String("sync_type", syncType),
			zap.Error(err),
		)
	}
}

// syncStaff — реконсилер сотрудников. Ошибка upsert отдельной записи
// не прерывает пакет: запись пропускается, остальные пишутся дальше.
func (s *SyncService) syncStaff(ctx context.Context, branchID uuid.UUID, companyID int64, auth yclients.Auth) (int, error) {
	staffList, err := s.api.FetchStaff(ctx, companyID, auth)
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, member := range staffList {
		if member.ID == 0 {
			continue
		}

		staff := entities.Staff{
			BranchID:        branchID,
			YClientsStaffID: member.ID,
			Name:            member.Name,
			IsActive:        true,
		}
		if staff.Name == "" {
			staff.Name = "Unknown"
		}
		if member.IsActive != nil {
			staff.IsActive = bool(*member.IsActive)
		}

		if _, err := s.staffRepo.Upsert(ctx, staff); err != nil {
			s.logger.Error("Ошибка upsert сотрудника, запись пропущена",
				zap.Int64("yclients_staff_id", member.ID),
				zap.Error(err),
			)
			continue
		}
		synced++
	}

	return synced, nil
}

// syncServices — реконсилер услуг. Название и длительность в API
// приходят в разных полях в зависимости от филиала.
func (s *SyncService) syncServices(ctx context.Context, branchID uuid.UUID, companyID int64, auth yclients.Auth) (int, error) {
	serviceList, err := s.api.FetchServices(ctx, companyID, auth)
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, item := range serviceList {
		if item.ID == 0 {
			continue
		}

		name := item.Title
		if name == "" {
			name = item.Name
		}
		if name == "" {
			name = "Unknown Service"
		}

		duration := int(item.SeanceLength)
		if duration == 0 {
			duration = int(item.Duration)
		}
		if duration == 0 {
			duration = 60
		}

		service := entities.Service{
			BranchID:          branchID,
			YClientsServiceID: item.ID,
			Name:              name,
			DurationMinutes:   duration,
			IsMobile:          bool(item.IsMobile) || bool(item.Online),
		}

		if _, err := s.serviceRepo.Upsert(ctx, service); err != nil {
			s.logger.Error("Ошибка upsert услуги, запись пропущена",
				zap.Int64("yclients_service_id", item.ID),
				zap.Error(err),
			)
			continue
		}
		synced++
	}

	return synced, nil
}

// syncBookings — самый тяжёлый реконсилер: арифметика времени,
// маппинг статусов и разрешение двух внешних связей. Платформа
// не отдаёт явного времени окончания — оно выводится как
// начало + seance_length (по умолчанию 60 минут). Из нескольких
// услуг записи привязывается только первая: локальная колонка
// связи одна.
func (s *SyncService) syncBookings(ctx context.Context, branchID uuid.UUID, companyID int64, auth yclients.Auth) (int, error) {
	window := newSyncWindow(s.now())

	records, err := s.api.FetchRecords(ctx, companyID, auth, window.From, window.To)
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, record := range records {
		if record.ID == 0 {
			continue
		}

		startsAt, err := parseBookingDatetime(record.Datetime)
		if err != nil {
			s.logger.Warn("Не удалось разобрать datetime записи, запись пропущена",
				zap.Int64("yclients_record_id", record.ID),
				zap.String("datetime", record.Datetime),
			)
			continue
		}

		// Платформе передан фильтр дат, но на её ответ полагаться
		// нельзя: записи вне горизонта не трогаем.
		if !window.Contains(startsAt) {
			continue
		}

		var staffID *uuid.UUID
		if record.StaffID != 0 {
			staffID, err = s.resolver.ResolveStaff(ctx, branchID, record.StaffID)
			if err != nil {
				s.logger.Error("Ошибка поиска сотрудника по платформенному id",
					zap.Int64("yclients_staff_id", record.StaffID),
					zap.Error(err),
				)
				staffID = nil
			}
		}

		var serviceID *uuid.UUID
		if len(record.Services) > 0 {
			serviceID, err = s.resolver.ResolveService(ctx, branchID, record.Services[0].ID)
			if err != nil {
				s.logger.Error("Ошибка поиска услуги по платформенному id",
					zap.Int64("yclients_service_id", record.Services[0].ID),
					zap.Error(err),
				)
				serviceID = nil
			}
		}

		status := entities.BookingStatusBooked
		switch record.Attendance {
		case -1:
			status = entities.BookingStatusCancelled
		case 1:
			status = entities.BookingStatusCompleted
		}

		seanceLength := int(record.SeanceLength)
		if seanceLength == 0 {
			seanceLength = 60
		}

		booking := entities.Booking{
			BranchID:         branchID,
			YClientsRecordID: record.ID,
			StaffID:          staffID,
			ServiceID:        serviceID,
			StartsAtUTC:      startsAt,
			EndsAtUTC:        startsAt.Add(time.Duration(seanceLength) * time.Minute),
			Status:           status,
			IsMobile:         false,
		}
		if record.Client != nil {
			if record.Client.Name != "" {
				booking.ClientName = &record.Client.Name
			}
			if record.Client.Phone != "" {
				booking.ClientPhone = &record.Client.Phone
			}
		}

		if _, err := s.bookingRepo.Upsert(ctx, booking); err != nil {
			s.logger.Error("Ошибка upsert записи, запись пропущена",
				zap.Int64("yclients_record_id", record.ID),
				zap.Error(err),
			)
			continue
		}
		synced++
	}

	return synced, nil
}

// parseBookingDatetime разбирает datetime платформы: встречаются и
// RFC3339 со смещением, и форма без зоны — последняя трактуется как UTC.
func parseBookingDatetime(value string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}

	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
