package routes

import (
	"net/http"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"yplanner/internal/controllers"
	"yplanner/internal/repositories"
	"yplanner/internal/services"
	"yplanner/internal/yclients"
	"yplanner/pkg/config"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, logger *zap.Logger, cfg *config.Config) {
	logger.Info("InitRouter: Начало создания маршрутов")

	// --- 1. РЕПОЗИТОРИИ ---
	branchRepo := repositories.NewBranchRepository(dbConn, logger)
	settingsRepo := repositories.NewIntegrationSettingsRepository(dbConn, logger)
	staffRepo := repositories.NewStaffRepository(dbConn, logger)
	serviceRepo := repositories.NewServiceRepository(dbConn, logger)
	bookingRepo := repositories.NewBookingRepository(dbConn, logger)
	statusRepo := repositories.NewSyncStatusRepository(dbConn, logger)
	resultCache := repositories.NewRedisSyncResultCache(redisClient)

	// --- 2. КЛИЕНТ ПЛАТФОРМЫ И СЕРВИСЫ ---
	apiClient := yclients.NewClient(cfg.YClients, logger)
	credentialResolver := services.NewCredentialResolver(branchRepo, settingsRepo, logger)
	identityResolver := services.NewIdentityResolver(staffRepo, serviceRepo)

	syncService := services.NewSyncService(
		credentialResolver, apiClient, identityResolver,
		staffRepo, serviceRepo, bookingRepo, statusRepo,
		resultCache, cfg.Sync.StatusCacheTTL, logger,
	)
	statusService := services.NewSyncStatusService(statusRepo, resultCache, logger)
	staffService := services.NewStaffService(staffRepo)
	catalogService := services.NewServiceCatalogService(serviceRepo)
	bookingService := services.NewBookingService(bookingRepo)

	// --- 3. КОНТРОЛЛЕРЫ ---
	syncCtrl := controllers.NewSyncController(syncService, logger)
	statusCtrl := controllers.NewSyncStatusController(statusService, logger)
	staffCtrl := controllers.NewStaffController(staffService, logger)
	serviceCtrl := controllers.NewServiceController(catalogService, logger)
	bookingCtrl := controllers.NewBookingController(bookingService, logger)

	// --- 4. МАРШРУТЫ ---
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")
	api.POST("/sync", syncCtrl.HandleSync)
	api.GET("/branches/:branch_id/sync-status", statusCtrl.GetStatus)
	api.GET("/branches/:branch_id/staff", staffCtrl.GetStaff)
	api.GET("/branches/:branch_id/services", serviceCtrl.GetServices)
	api.GET("/branches/:branch_id/bookings", bookingCtrl.GetBookings)

	logger.Info("InitRouter: Маршруты созданы")
}
