package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "modernc.org/sqlite"

	bookSlotsHandler "github.com/m04kA/SMC-TimeslotService/internal/api/handlers/book_slots"
	exportCalendarHandler "github.com/m04kA/SMC-TimeslotService/internal/api/handlers/export_registration_calendar"
	generateSlotsHandler "github.com/m04kA/SMC-TimeslotService/internal/api/handlers/generate_slots"
	getAvailableSlotsHandler "github.com/m04kA/SMC-TimeslotService/internal/api/handlers/get_available_slots"
	getRegistrationSlotsHandler "github.com/m04kA/SMC-TimeslotService/internal/api/handlers/get_registration_slots"
	getUpcomingSlotsHandler "github.com/m04kA/SMC-TimeslotService/internal/api/handlers/get_upcoming_slots"
	removeSlotsHandler "github.com/m04kA/SMC-TimeslotService/internal/api/handlers/remove_slots"
	"github.com/m04kA/SMC-TimeslotService/internal/api/middleware"
	"github.com/m04kA/SMC-TimeslotService/internal/config"
	bookingRepo "github.com/m04kA/SMC-TimeslotService/internal/infra/storage/booking"
	formRepo "github.com/m04kA/SMC-TimeslotService/internal/infra/storage/form"
	"github.com/m04kA/SMC-TimeslotService/internal/infra/storage/schema"
	timeslotRepo "github.com/m04kA/SMC-TimeslotService/internal/infra/storage/timeslot"
	availabilityService "github.com/m04kA/SMC-TimeslotService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-TimeslotService/internal/service/bookings"
	bookSlotsUC "github.com/m04kA/SMC-TimeslotService/internal/usecase/book_slots"
	generateSlotsUC "github.com/m04kA/SMC-TimeslotService/internal/usecase/generate_slots"
	removeSlotsUC "github.com/m04kA/SMC-TimeslotService/internal/usecase/remove_slots"
	"github.com/m04kA/SMC-TimeslotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TimeslotService/pkg/logger"
	"github.com/m04kA/SMC-TimeslotService/pkg/metrics"
	"github.com/m04kA/SMC-TimeslotService/pkg/sqlbuilder"
	"github.com/m04kA/SMC-TimeslotService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-TimeslotService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены). nil-коллектор ничего не пишет.
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	dialect := cfg.Database.Dialect()
	db, err := sql.Open(dialect.DriverName(), cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	if dialect == sqlbuilder.SQLite {
		// Одно соединение: записи в sqlite сериализуются, транзакция бронирования эксклюзивна
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	if dialect == sqlbuilder.SQLite {
		log.Info("Successfully connected to sqlite database (path=%s)", cfg.Database.SQLitePath)
	} else {
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	}

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	if cfg.Database.AutoMigrate {
		if err := schema.Apply(context.Background(), wrappedDB, dialect); err != nil {
			log.Fatal("Failed to apply schema: %v", err)
		}
		log.Info("Schema applied (dialect=%s)", dialect)
	}

	// Репозитории
	formRepository := formRepo.NewRepository(wrappedDB, dialect)
	timeslotRepository := timeslotRepo.NewRepository(wrappedDB, dialect, cfg.Database.LockTimeout())
	bookingRepository := bookingRepo.NewRepository(wrappedDB, dialect)

	txMgr := txmanager.NewTransactionManager(wrappedDB, dialect.SupportsIsolationLevels())

	// Сервисы
	availabilitySvc := availabilityService.NewService(
		formRepository,
		timeslotRepository,
		log,
		availabilityService.Options{
			DefaultLimit: cfg.Pagination.DefaultLimit,
			MaxLimit:     cfg.Pagination.MaxLimit,
		},
	)
	bookingsSvc := bookingsService.NewService(bookingRepository, log)

	// Use cases
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		formRepository,
		timeslotRepository,
		txMgr,
		metricsCollector,
		log,
	)
	removeSlotsUseCase := removeSlotsUC.NewUseCase(
		formRepository,
		timeslotRepository,
		txMgr,
		metricsCollector,
		log,
	)
	bookSlotsUseCase := bookSlotsUC.NewUseCase(
		timeslotRepository,
		bookingRepository,
		txMgr,
		metricsCollector,
		log,
		bookSlotsUC.Options{
			MaxAttempts:  cfg.Booking.MaxAttempts,
			RetryBackoff: cfg.Booking.RetryBackoff(),
		},
	)

	// Handlers
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	removeSlots := removeSlotsHandler.NewHandler(removeSlotsUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(availabilitySvc, log)
	getUpcomingSlots := getUpcomingSlotsHandler.NewHandler(availabilitySvc, log)
	bookSlots := bookSlotsHandler.NewHandler(bookSlotsUseCase, log)
	getRegistrationSlots := getRegistrationSlotsHandler.NewHandler(bookingsSvc, log)
	exportCalendar := exportCalendarHandler.NewHandler(bookingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Слоты формы ---
	api.HandleFunc("/forms/{formId}/timeslots", generateSlots.Handle).Methods(http.MethodPost)
	api.HandleFunc("/forms/{formId}/timeslots/remove", removeSlots.Handle).Methods(http.MethodPost)
	api.HandleFunc("/forms/{formId}/timeslots/available", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/forms/{formId}/timeslots", getUpcomingSlots.Handle).Methods(http.MethodGet)

	// --- Бронирования регистрации ---
	api.HandleFunc("/registrations/{registrationId}/timeslots", bookSlots.Handle).Methods(http.MethodPost)
	api.HandleFunc("/registrations/{registrationId}/timeslots", getRegistrationSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/registrations/{registrationId}/timeslots.ics", exportCalendar.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
