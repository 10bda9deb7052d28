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

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	blockTimeHandler "github.com/lumibook/booking-service/internal/api/handlers/block_time"
	changeBookingStatusHandler "github.com/lumibook/booking-service/internal/api/handlers/change_booking_status"
	createBookingHandler "github.com/lumibook/booking-service/internal/api/handlers/create_booking"
	deleteScheduleHandler "github.com/lumibook/booking-service/internal/api/handlers/delete_schedule"
	getBlockedTimesHandler "github.com/lumibook/booking-service/internal/api/handlers/get_blocked_times"
	getBookingHandler "github.com/lumibook/booking-service/internal/api/handlers/get_booking"
	getCompanyBookingsHandler "github.com/lumibook/booking-service/internal/api/handlers/get_company_bookings"
	getFreeSlotsHandler "github.com/lumibook/booking-service/internal/api/handlers/get_free_slots"
	getSpecialistScheduleHandler "github.com/lumibook/booking-service/internal/api/handlers/get_specialist_schedule"
	updateBookingHandler "github.com/lumibook/booking-service/internal/api/handlers/update_booking"
	upsertScheduleHandler "github.com/lumibook/booking-service/internal/api/handlers/upsert_schedule"
	"github.com/lumibook/booking-service/internal/api/middleware"
	"github.com/lumibook/booking-service/internal/config"
	bookingRepo "github.com/lumibook/booking-service/internal/infra/storage/booking"
	clientRepo "github.com/lumibook/booking-service/internal/infra/storage/client"
	companyRepo "github.com/lumibook/booking-service/internal/infra/storage/company"
	scheduleRepo "github.com/lumibook/booking-service/internal/infra/storage/schedule"
	serviceRepo "github.com/lumibook/booking-service/internal/infra/storage/service"
	specialistRepo "github.com/lumibook/booking-service/internal/infra/storage/specialist"
	"github.com/lumibook/booking-service/internal/service/availability"
	bookingsService "github.com/lumibook/booking-service/internal/service/bookings"
	scheduleService "github.com/lumibook/booking-service/internal/service/schedule"
	blockTimeUC "github.com/lumibook/booking-service/internal/usecase/block_time"
	createBookingUC "github.com/lumibook/booking-service/internal/usecase/create_booking"
	getFreeSlotsUC "github.com/lumibook/booking-service/internal/usecase/get_free_slots"
	updateBookingUC "github.com/lumibook/booking-service/internal/usecase/update_booking"
	"github.com/lumibook/booking-service/pkg/dbmetrics"
	"github.com/lumibook/booking-service/pkg/logger"
	"github.com/lumibook/booking-service/pkg/metrics"
	"github.com/lumibook/booking-service/pkg/simpletxmanager"
	"github.com/lumibook/booking-service/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting booking-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	if err := runMigrations(db, cfg.Database.MigrationsPath); err != nil {
		log.Fatal("Failed to run migrations: %v", err)
	}
	log.Info("Migrations applied from %s", cfg.Database.MigrationsPath)

	// Таймзона по умолчанию для компаний без явной таймзоны
	defaultLocation, err := time.LoadLocation(cfg.Booking.DefaultTimezone)
	if err != nil {
		log.Fatal("Failed to load default timezone %q: %v", cfg.Booking.DefaultTimezone, err)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository    *bookingRepo.Repository
		clientRepository     *clientRepo.Repository
		companyRepository    *companyRepo.Repository
		scheduleRepository   *scheduleRepo.Repository
		serviceRepository    *serviceRepo.Repository
		specialistRepository *specialistRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		clientRepository = clientRepo.NewRepository(wrappedDB)
		companyRepository = companyRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		specialistRepository = specialistRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		clientRepository = clientRepo.NewRepository(db)
		companyRepository = companyRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		specialistRepository = specialistRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	availabilityGuard := availability.NewGuard(bookingRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, specialistRepository, log)

	// Инициализируем use cases
	getFreeSlotsUseCase := getFreeSlotsUC.NewUseCase(
		companyRepository,
		specialistRepository,
		serviceRepository,
		scheduleRepository,
		bookingRepository,
		defaultLocation,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		companyRepository,
		specialistRepository,
		clientRepository,
		serviceRepository,
		availabilityGuard,
		txMgr,
		defaultLocation,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		companyRepository,
		specialistRepository,
		availabilityGuard,
		txMgr,
		defaultLocation,
		log,
	)
	blockTimeUseCase := blockTimeUC.NewUseCase(
		bookingRepository,
		companyRepository,
		specialistRepository,
		availabilityGuard,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getFreeSlots := getFreeSlotsHandler.NewHandler(getFreeSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	blockTime := blockTimeHandler.NewHandler(blockTimeUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, companyRepository, log)
	getCompanyBookings := getCompanyBookingsHandler.NewHandler(bookingSvc, companyRepository, log)
	getBlockedTimes := getBlockedTimesHandler.NewHandler(bookingSvc, companyRepository, log)
	changeBookingStatus := changeBookingStatusHandler.NewHandler(bookingSvc, companyRepository, log)
	getSpecialistSchedule := getSpecialistScheduleHandler.NewHandler(scheduleSvc, companyRepository, log)
	upsertSchedule := upsertScheduleHandler.NewHandler(scheduleSvc, companyRepository, log)
	deleteSchedule := deleteScheduleHandler.NewHandler(scheduleSvc, companyRepository, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты специалиста на дату
	api.HandleFunc("/schedule/specialists/{specialistId}/free-slots",
		getFreeSlots.Handle).Methods(http.MethodGet)

	// Недельное расписание специалиста
	api.HandleFunc("/schedule/specialists/{specialistId}",
		getSpecialistSchedule.Handle).Methods(http.MethodGet)

	// Создание бронирования клиентом
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Staff-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Блокировка времени специалиста (фиксированные маршруты раньше {bookingId})
	protected.HandleFunc("/bookings/block", blockTime.Handle).Methods(http.MethodPost)

	// Блокировки времени специалиста
	protected.HandleFunc("/bookings/blocked", getBlockedTimes.Handle).Methods(http.MethodGet)

	// Список бронирований компании с фильтрами
	protected.HandleFunc("/bookings", getCompanyBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Перенос бронирования / изменение комментария
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPatch)

	// Смена статуса жизненного цикла бронирования
	protected.HandleFunc("/bookings/{bookingId}/status/{status}",
		changeBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Расписание ---
	// Установка рабочего интервала на день недели
	protected.HandleFunc("/schedule/specialists/{specialistId}/days/{dayOfWeek}",
		upsertSchedule.Handle).Methods(http.MethodPut)

	// Удаление рабочего интервала (день становится выходным)
	protected.HandleFunc("/schedule/specialists/{specialistId}/days/{dayOfWeek}",
		deleteSchedule.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}

// runMigrations применяет SQL миграции из каталога path
func runMigrations(db *sql.DB, path string) error {
	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("create migrate driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+path, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}
