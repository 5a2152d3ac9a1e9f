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
	amqp "github.com/rabbitmq/amqp091-go"

	appointmentTypesHandler "github.com/m04kA/visa-booking-service/internal/api/handlers/appointment_types"
	availabilityRulesHandler "github.com/m04kA/visa-booking-service/internal/api/handlers/availability_rules"
	bankAccountsHandler "github.com/m04kA/visa-booking-service/internal/api/handlers/bank_accounts"
	createAppointmentHandler "github.com/m04kA/visa-booking-service/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/visa-booking-service/internal/api/handlers/get_appointment"
	getAvailableHoursHandler "github.com/m04kA/visa-booking-service/internal/api/handlers/get_available_hours"
	getCalendarHandler "github.com/m04kA/visa-booking-service/internal/api/handlers/get_calendar"
	getMeHandler "github.com/m04kA/visa-booking-service/internal/api/handlers/get_me"
	getReceiptHandler "github.com/m04kA/visa-booking-service/internal/api/handlers/get_receipt"
	listAppointmentsHandler "github.com/m04kA/visa-booking-service/internal/api/handlers/list_appointments"
	moveAppointmentHandler "github.com/m04kA/visa-booking-service/internal/api/handlers/move_appointment"
	reviewAppointmentHandler "github.com/m04kA/visa-booking-service/internal/api/handlers/review_appointment"
	signInHandler "github.com/m04kA/visa-booking-service/internal/api/handlers/sign_in"
	"github.com/m04kA/visa-booking-service/internal/api/middleware"
	"github.com/m04kA/visa-booking-service/internal/config"
	"github.com/m04kA/visa-booking-service/internal/infra/messaging/notifications"
	adminRepo "github.com/m04kA/visa-booking-service/internal/infra/storage/admin"
	appointmentRepo "github.com/m04kA/visa-booking-service/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/visa-booking-service/internal/infra/storage/availability"
	catalogRepo "github.com/m04kA/visa-booking-service/internal/infra/storage/catalog"
	"github.com/m04kA/visa-booking-service/internal/infra/storage/receipts"
	appointmentsService "github.com/m04kA/visa-booking-service/internal/service/appointments"
	authService "github.com/m04kA/visa-booking-service/internal/service/auth"
	"github.com/m04kA/visa-booking-service/internal/service/availability"
	catalogService "github.com/m04kA/visa-booking-service/internal/service/catalog"
	createAppointmentUC "github.com/m04kA/visa-booking-service/internal/usecase/create_appointment"
	getAvailableHoursUC "github.com/m04kA/visa-booking-service/internal/usecase/get_available_hours"
	moveAppointmentUC "github.com/m04kA/visa-booking-service/internal/usecase/move_appointment"
	"github.com/m04kA/visa-booking-service/pkg/dbmetrics"
	"github.com/m04kA/visa-booking-service/pkg/logger"
	"github.com/m04kA/visa-booking-service/pkg/metrics"
	"github.com/m04kA/visa-booking-service/pkg/txmanager"
)

// notifier общий интерфейс RabbitMQ-публикатора и логирующей заглушки
type notifier interface {
	Publish(ctx context.Context, event notifications.Event) error
}

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

	log.Info("Starting visa-booking-service...")
	log.Info("Configuration loaded from config.toml")

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.App.Timezone, err)
	}
	log.Info("Office timezone: %s", loc)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// С nil-метриками обертка просто проксирует запросы
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	adminRepository := adminRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	ctx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	// Снимок правил доступности: загружается до старта сервера
	ruleStore := availability.NewStore(availabilityRepository, log)
	if cfg.Metrics.Enabled {
		ruleStore = ruleStore.WithObserver(metricsCollector)
	}
	if err := ruleStore.Load(ctx); err != nil {
		log.Fatal("Failed to load availability rules: %v", err)
	}

	refresher := availability.NewRefresher(ruleStore, cfg.Availability.RefreshSchedule, log)
	if err := refresher.Start(ctx); err != nil {
		log.Fatal("Failed to start availability refresher: %v", err)
	}

	slots := availability.NewSlots(ruleStore, appointmentRepository, loc)
	ruleEditor := availability.NewEditor(availabilityRepository, ruleStore, log)

	// Хранилище чеков (MinIO / S3)
	receiptStorage, err := receipts.New(ctx, receipts.Options{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize receipt storage: %v", err)
	}
	log.Info("Receipt storage initialized (endpoint=%s, bucket=%s)", cfg.Storage.Endpoint, cfg.Storage.Bucket)

	// Уведомления: RabbitMQ или запись в лог
	var (
		eventNotifier notifier
		amqpConn      *amqp.Connection
		publisher     *notifications.Publisher
	)
	if cfg.Notifications.Enabled {
		amqpConn, err = amqp.Dial(cfg.Notifications.URL)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		publisher, err = notifications.NewPublisher(amqpConn, cfg.Notifications.Queue, log)
		if err != nil {
			log.Fatal("Failed to initialize notifications publisher: %v", err)
		}
		eventNotifier = publisher
		log.Info("Notifications enabled (queue=%s)", cfg.Notifications.Queue)
	} else {
		eventNotifier = notifications.NewLogPublisher(log)
		log.Info("Notifications disabled, events are only logged")
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, receiptStorage, eventNotifier, loc, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)
	authSvc := authService.NewService(adminRepository, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL(), log)

	if err := authSvc.EnsureAdmin(ctx, cfg.Auth.BootstrapEmail, cfg.Auth.BootstrapPassword); err != nil {
		log.Fatal("Failed to bootstrap admin account: %v", err)
	}

	// Инициализируем use cases
	getAvailableHoursUseCase := getAvailableHoursUC.NewUseCase(slots, log)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		slots,
		receiptStorage,
		eventNotifier,
		txMgr,
		log,
	)

	moveAppointmentUseCase := moveAppointmentUC.NewUseCase(
		appointmentRepository,
		slots,
		eventNotifier,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableHours := getAvailableHoursHandler.NewHandler(getAvailableHoursUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getReceipt := getReceiptHandler.NewHandler(appointmentsSvc, log)
	signIn := signInHandler.NewHandler(authSvc, log)
	me := getMeHandler.NewHandler(authSvc, log)
	availabilityRules := availabilityRulesHandler.NewHandler(availabilityRepository, ruleEditor, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	reviewAppointment := reviewAppointmentHandler.NewHandler(appointmentsSvc, log)
	moveAppointment := moveAppointmentHandler.NewHandler(moveAppointmentUseCase, log)
	getCalendar := getCalendarHandler.NewHandler(appointmentsSvc, log)
	appointmentTypes := appointmentTypesHandler.NewHandler(catalogSvc, log)
	bankAccounts := bankAccountsHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные часы на дату
	api.HandleFunc("/appointments/available-hours", getAvailableHours.Handle).Methods(http.MethodGet)

	// Справочники для формы записи
	api.HandleFunc("/appointments/types", appointmentTypes.HandleListPublic).Methods(http.MethodGet)
	api.HandleFunc("/bank-accounts", bankAccounts.HandleListPublic).Methods(http.MethodGet)

	// Создание записи (multipart с чеком)
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Проверка записи по короткому коду
	api.HandleFunc("/appointments/short/{shortId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/receipt/{shortId}", getReceipt.Handle).Methods(http.MethodGet)

	// Вход администратора
	api.HandleFunc("/sign-in", signIn.Handle).Methods(http.MethodPost)
	api.Handle("/me", middleware.Auth(authSvc)(http.HandlerFunc(me.Handle))).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют Authorization: Bearer <token>)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth(authSvc))

	// --- Правила доступности ---
	admin.HandleFunc("/availability-rules", availabilityRules.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/availability-rules/weekday", availabilityRules.HandleUpsertWeekday).Methods(http.MethodPost)
	admin.HandleFunc("/availability-rules/specific-date", availabilityRules.HandleUpsertSpecificDate).Methods(http.MethodPost)
	admin.HandleFunc("/availability-rules/weekday/{day}/toggle", availabilityRules.HandleToggleWeekday).Methods(http.MethodPost)
	admin.HandleFunc("/availability-rules/specific-date/{date}/toggle", availabilityRules.HandleToggleSpecificDate).Methods(http.MethodPost)
	admin.HandleFunc("/availability-rules/specific-date/{date}", availabilityRules.HandleDeleteSpecificDate).Methods(http.MethodDelete)

	// --- Записи ---
	admin.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/available-hours", getAvailableHours.HandleAdmin).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id}", getAppointment.HandleByID).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id}/receipt", getReceipt.HandleByID).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id}/approve", reviewAppointment.HandleApprove).Methods(http.MethodPost)
	admin.HandleFunc("/appointments/{id}/reject", reviewAppointment.HandleReject).Methods(http.MethodPost)
	admin.HandleFunc("/appointments/{id}/done", reviewAppointment.HandleDone).Methods(http.MethodPost)
	admin.HandleFunc("/appointments/{id}/move", moveAppointment.Handle).Methods(http.MethodPatch)

	// --- Календарь ---
	admin.HandleFunc("/calendar", getCalendar.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/calendar.ics", getCalendar.HandleICS).Methods(http.MethodGet)

	// --- Справочники ---
	admin.HandleFunc("/appointment-types", appointmentTypes.HandleListAdmin).Methods(http.MethodGet)
	admin.HandleFunc("/appointment-types", appointmentTypes.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/appointment-types/{id}/visibility", appointmentTypes.HandleSetVisibility).Methods(http.MethodPatch)
	admin.HandleFunc("/bank-accounts", bankAccounts.HandleListAdmin).Methods(http.MethodGet)
	admin.HandleFunc("/bank-accounts", bankAccounts.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/bank-accounts/{id}", bankAccounts.HandleUpdate).Methods(http.MethodPatch)
	admin.HandleFunc("/bank-accounts/{id}", bankAccounts.HandleDelete).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      edgeHandler(r, cfg.App),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	if cfg.App.RateLimitPerSecond > 0 {
		log.Info("Rate limit: %d requests per second per IP", cfg.App.RateLimitPerSecond)
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

	// Фоновые задачи останавливаем после того, как сервер перестал принимать запросы
	refresher.Stop()
	stopApp()

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Warn("Failed to close notifications channel: %v", err)
		}
	}
	if amqpConn != nil {
		if err := amqpConn.Close(); err != nil {
			log.Warn("Failed to close RabbitMQ connection: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
