package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/dib-tools/perjadin-api/api/swagger"
	"github.com/dib-tools/perjadin-api/internal/handler"
	"github.com/dib-tools/perjadin-api/internal/middleware"
	"github.com/dib-tools/perjadin-api/internal/repository"
	"github.com/dib-tools/perjadin-api/internal/service"
	"github.com/dib-tools/perjadin-api/pkg/cache"
	"github.com/dib-tools/perjadin-api/pkg/config"
	"github.com/dib-tools/perjadin-api/pkg/database"
	"github.com/dib-tools/perjadin-api/pkg/export"
	"github.com/dib-tools/perjadin-api/pkg/logger"
	corsmiddleware "github.com/dib-tools/perjadin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/dib-tools/perjadin-api/pkg/middleware/requestid"
	"github.com/dib-tools/perjadin-api/pkg/storage"
)

// @title Perjadin API
// @version 1.0.0
// @description Business travel request and at-cost expense claim service
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect redis", "error", err)
	}
	defer redisClient.Close() //nolint:errcheck

	receiptStore, err := storage.NewLocalStorage(cfg.Uploads.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init receipt storage", "error", err)
	}

	metricsService := service.NewMetricsService()

	employeeRepo := repository.NewEmployeeRepository(db)
	positionRepo := repository.NewPositionRepository(db)
	travelRequestRepo := repository.NewTravelRequestRepository(db)
	claimRepo := repository.NewClaimRepository(db)
	travelReportRepo := repository.NewTravelReportRepository(db)
	numberingRepo := repository.NewNumberingRepository(db)
	representativeRepo := repository.NewRepresentativeRepository(db)
	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	numbering := service.NumberingConfig{
		Prefix:       cfg.Numbering.Prefix,
		DivisionCode: cfg.Numbering.DivisionCode,
	}

	cacheService := service.NewCacheService(cacheRepo, metricsService, cfg.Monitoring.CacheTTL, logr, cfg.Monitoring.CacheEnabled)
	authService := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		Secret: cfg.JWT.Secret,
		Expiry: cfg.JWT.Expiration,
		Issuer: cfg.JWT.Issuer,
	})
	employeeService := service.NewEmployeeService(employeeRepo, positionRepo, nil, logr)
	positionService := service.NewPositionService(positionRepo, logr)
	reportService := service.NewReportService(travelRequestRepo, employeeRepo, cacheService, metricsService, logr)
	travelRequestService := service.NewTravelRequestService(travelRequestRepo, employeeRepo, numberingRepo, reportService, numbering, nil, logr)
	claimService := service.NewClaimService(claimRepo, travelRequestRepo, representativeRepo, numberingRepo, receiptStore, numbering, nil, logr)
	receiptService := service.NewReceiptService(service.ReceiptServiceConfig{
		MaxFileSizeBytes: cfg.Uploads.MaxFileSizeBytes,
		AllowedMIMEs:     cfg.Uploads.AllowedMIMEs,
	}, logr)
	receiptParser := service.NewReceiptParser()
	representativeService := service.NewRepresentativeService(representativeRepo, nil, logr)
	travelReportService := service.NewTravelReportService(travelReportRepo, travelRequestRepo, representativeRepo, nil, logr)
	documentService := service.NewDocumentService(travelRequestRepo, claimRepo, travelReportRepo, representativeRepo, reportService, export.NewPDFExporter(), export.NewExcelExporter(), metricsService, logr)

	authHandler := handler.NewAuthHandler(authService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	positionHandler := handler.NewPositionHandler(positionService)
	travelRequestHandler := handler.NewTravelRequestHandler(travelRequestService, reportService)
	travelReportHandler := handler.NewTravelReportHandler(travelReportService)
	claimHandler := handler.NewClaimHandler(claimService, receiptService, receiptParser, receiptStore, metricsService)
	documentHandler := handler.NewDocumentHandler(documentService)
	representativeHandler := handler.NewRepresentativeHandler(representativeService)
	monitoringHandler := handler.NewMonitoringHandler(reportService, metricsService)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metricsService.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/auth/login", authHandler.Login)

		api.GET("/employees", employeeHandler.List)
		api.GET("/employees/:id", employeeHandler.Get)
		api.GET("/positions", positionHandler.List)
		api.GET("/positions/:id", positionHandler.Get)

		api.POST("/travel-requests", travelRequestHandler.Create)
		api.GET("/travel-requests", travelRequestHandler.List)
		api.GET("/travel-requests/stats/employees", travelRequestHandler.EmployeeStats)
		api.GET("/travel-requests/:id", travelRequestHandler.Get)

		api.POST("/travel-reports", travelReportHandler.Create)
		api.GET("/travel-reports/:request_id", travelReportHandler.GetByTravelRequest)

		api.GET("/monitoring/summary", monitoringHandler.Summary)

		api.POST("/at-cost/upload-receipt", claimHandler.UploadReceipt)
		api.POST("/at-cost/claims", claimHandler.Create)
		api.GET("/at-cost/claims", claimHandler.List)
		api.GET("/at-cost/claims/:id", claimHandler.Get)
		api.GET("/at-cost/receipts/:receipt_id/download", claimHandler.DownloadReceipt)

		api.GET("/pdf/nota-permintaan/:id", documentHandler.NotaPermintaan)
		api.GET("/pdf/berita-acara/:id", documentHandler.BeritaAcara)
		api.GET("/pdf/combined/:id", documentHandler.CombinedRequest)
		api.GET("/pdf/nota-atcost/:id", documentHandler.NotaAtCost)
		api.GET("/pdf/combined-atcost/:id", documentHandler.CombinedAtCost)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.JWT(authService))
	{
		admin.POST("/employees", employeeHandler.Create)
		admin.PUT("/employees/:id", employeeHandler.Update)
		admin.DELETE("/employees/:id", employeeHandler.Delete)

		admin.PUT("/travel-requests/:id/status", travelRequestHandler.UpdateStatus)
		admin.DELETE("/travel-requests/:id", travelRequestHandler.Delete)

		admin.GET("/excel/monthly-allowance", documentHandler.MonthlyAllowanceExcel)
		admin.GET("/csv/monthly-allowance", documentHandler.MonthlyAllowanceCSV)

		admin.GET("/representative-config", representativeHandler.Get)
		admin.PUT("/representative-config", representativeHandler.Update)

		admin.GET("/at-cost/claims/travel-request/:travel_request_id", claimHandler.GetByTravelRequest)
		admin.PUT("/at-cost/claims/:id/status", claimHandler.UpdateStatus)
		admin.DELETE("/at-cost/claims/:id", claimHandler.Delete)
		admin.POST("/at-cost/parse-manual", claimHandler.ParseManual)

		admin.GET("/monitoring/system", monitoringHandler.SystemStats)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
