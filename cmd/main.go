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
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/SMC-AdmissionService/internal/api/handlers/cancel_booking"
	checkDateHandler "github.com/m04kA/SMC-AdmissionService/internal/api/handlers/check_date"
	cleanupDuplicatesHandler "github.com/m04kA/SMC-AdmissionService/internal/api/handlers/cleanup_duplicates"
	createBookingHandler "github.com/m04kA/SMC-AdmissionService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-AdmissionService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-AdmissionService/internal/api/handlers/get_booking"
	getBookingsHandler "github.com/m04kA/SMC-AdmissionService/internal/api/handlers/get_bookings"
	healthHandler "github.com/m04kA/SMC-AdmissionService/internal/api/handlers/health"
	transitionBookingHandler "github.com/m04kA/SMC-AdmissionService/internal/api/handlers/transition_booking"
	"github.com/m04kA/SMC-AdmissionService/internal/api/middleware"
	"github.com/m04kA/SMC-AdmissionService/internal/config"
	"github.com/m04kA/SMC-AdmissionService/internal/domain"
	"github.com/m04kA/SMC-AdmissionService/internal/infra/dedup"
	bookingRepo "github.com/m04kA/SMC-AdmissionService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AdmissionService/internal/integrations/identity"
	"github.com/m04kA/SMC-AdmissionService/internal/integrations/workflow"
	bookingsService "github.com/m04kA/SMC-AdmissionService/internal/service/bookings"
	admitBookingUC "github.com/m04kA/SMC-AdmissionService/internal/usecase/admit_booking"
	checkDateUC "github.com/m04kA/SMC-AdmissionService/internal/usecase/check_date"
	cleanupDuplicatesUC "github.com/m04kA/SMC-AdmissionService/internal/usecase/cleanup_duplicates"
	getAvailabilityUC "github.com/m04kA/SMC-AdmissionService/internal/usecase/get_availability"
	transitionBookingUC "github.com/m04kA/SMC-AdmissionService/internal/usecase/transition_booking"
	"github.com/m04kA/SMC-AdmissionService/internal/worker/notifier"
	"github.com/m04kA/SMC-AdmissionService/migrations"
	"github.com/m04kA/SMC-AdmissionService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AdmissionService/pkg/logger"
	"github.com/m04kA/SMC-AdmissionService/pkg/metrics"
	"github.com/m04kA/SMC-AdmissionService/pkg/migrator"
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

	log.Info("Starting SMC-AdmissionService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Миграции схемы
	if cfg.Database.AutoMigrate {
		if err := migrator.Up(migrations.FS, cfg.Database.DSN()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
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

	var bookingRepository *bookingRepo.Repository
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
	}

	// Окно дедупликации
	var dedupStore admitBookingUC.DedupStore
	switch cfg.Dedup.Backend {
	case config.DedupBackendRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		pingCancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		dedupStore = dedup.NewRedisStore(
			redisClient,
			cfg.Dedup.KeyPrefix,
			cfg.Dedup.SuppressionInterval(),
			cfg.Dedup.RetentionInterval(),
		)
		log.Info("Dedup window backed by redis (addr=%s)", cfg.Redis.Addr)
	default:
		window := dedup.NewWindow(cfg.Dedup.SuppressionInterval(), cfg.Dedup.RetentionInterval())
		dedupStore = dedup.NewLocalStore(window, metricsCollector)
		log.Info("Dedup window kept in memory (suppression=%ds, retention=%ds)",
			cfg.Dedup.Suppression, cfg.Dedup.Retention)
	}

	// Инициализируем интеграционных клиентов
	workflowClient := workflow.NewClient(
		workflow.Webhooks{
			Booking:   cfg.Workflow.BookingURL,
			Cancel:    cfg.Workflow.CancelURL,
			Approved:  cfg.Workflow.ApprovedURL,
			Declined:  cfg.Workflow.DeclinedURL,
			Completed: cfg.Workflow.CompletedURL,
		},
		cfg.Workflow.SecretHeader,
		cfg.Workflow.Secret,
		time.Duration(cfg.Workflow.Timeout)*time.Second,
		log,
	)
	verifier := identity.NewVerifier(
		cfg.Identity.Secret,
		cfg.Identity.Issuer,
		time.Duration(cfg.Identity.Leeway)*time.Second,
	)
	log.Info("Integration clients initialized (workflow=%s timeout=%ds)", cfg.Workflow.BookingURL, cfg.Workflow.Timeout)

	// Очередь уведомлений о смене статуса
	var notificationQueue *notifier.Queue
	var transitionNotifier transitionBookingUC.Notifier
	if cfg.Notifier.Enabled {
		notificationQueue = notifier.New(notifier.Config{
			Workers:     cfg.Notifier.Workers,
			BufferSize:  cfg.Notifier.BufferSize,
			MaxAttempts: cfg.Notifier.MaxAttempts,
			BaseDelay:   time.Duration(cfg.Notifier.BaseDelay) * time.Millisecond,
			MaxDelay:    time.Duration(cfg.Notifier.MaxDelay) * time.Millisecond,
			SendTimeout: time.Duration(cfg.Notifier.SendTimeout) * time.Second,
		}, workflowClient, metricsCollector, log)
		notificationQueue.Start()
		transitionNotifier = notificationQueue
		log.Info("Notification queue started (workers=%d, buffer=%d)", cfg.Notifier.Workers, cfg.Notifier.BufferSize)
	}

	policyWindow := domain.PolicyWindow{
		MinLeadDays:      cfg.Policy.MinLeadDays,
		MaxHorizonMonths: cfg.Policy.MaxHorizonMonths,
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		workflowClient,
		log,
	)

	// Инициализируем use cases
	admitBookingUseCase := admitBookingUC.NewUseCase(
		bookingRepository,
		dedupStore,
		workflowClient,
		metricsCollector,
		admitBookingUC.Config{
			CapacityPerDate: cfg.Policy.CapacityPerDate,
			Window:          policyWindow,
		},
		log,
	)
	transitionBookingUseCase := transitionBookingUC.NewUseCase(bookingRepository, transitionNotifier, log)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(bookingRepository, cfg.Policy.CapacityPerDate, policyWindow, log)
	checkDateUseCase := checkDateUC.NewUseCase(bookingRepository, cfg.Policy.CapacityPerDate, policyWindow, log)
	cleanupDuplicatesUseCase := cleanupDuplicatesUC.NewUseCase(bookingRepository, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(admitBookingUseCase, log)
	transitionBooking := transitionBookingHandler.NewHandler(transitionBookingUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	checkDate := checkDateHandler.NewHandler(checkDateUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookings := getBookingsHandler.NewHandler(bookingSvc, log)
	cleanupDuplicates := cleanupDuplicatesHandler.NewHandler(cleanupDuplicatesUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", healthHandler.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Приём заявки на запись
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Отмена бронирования (пересылается во внешний workflow)
	api.HandleFunc("/bookings/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// Занятые даты и ближайшая свободная
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Предпросмотр даты
	api.HandleFunc("/availability/check", checkDate.Handle).Methods(http.MethodGet)

	// ============================================================
	// STAFF ROUTES (требуют Authorization: Bearer)
	// ============================================================

	staff := api.PathPrefix("").Subrouter()
	staff.Use(middleware.StaffAuth(verifier, log))

	// --- Бронирования ---
	staff.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)

	// --- Смена статуса ---
	staff.HandleFunc("/bookings/{bookingId:[0-9]+}/transitions", transitionBooking.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/bookings/{bookingId:[0-9]+}/approve", transitionBooking.HandleFixed(domain.StatusApproved)).Methods(http.MethodPost)
	staff.HandleFunc("/bookings/{bookingId:[0-9]+}/decline", transitionBooking.HandleFixed(domain.StatusDeclined)).Methods(http.MethodPost)
	staff.HandleFunc("/bookings/{bookingId:[0-9]+}/complete", transitionBooking.HandleFixed(domain.StatusCompleted)).Methods(http.MethodPost)

	// --- Обслуживание ---
	staff.HandleFunc("/admin/cleanup-duplicates", cleanupDuplicates.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      middleware.CORS(cfg.CORS.AllowedOrigins)(r),
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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Недоставленные уведомления после таймаута теряются
	if notificationQueue != nil {
		if err := notificationQueue.Stop(shutdownCtx); err != nil {
			log.Warn("Notification queue workers did not stop in time: %v", err)
		}
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
