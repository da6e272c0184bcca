package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	addServiceChargesHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/add_service_charges"
	cancelBookingHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/cancel_booking"
	checkInHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/check_in"
	checkOutHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/check_out"
	createBookingHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/create_booking"
	createRoomHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/create_room"
	getBookingHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/get_customer_bookings"
	getHotelBookingsHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/get_hotel_bookings"
	healthHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/health"
	listRoomsHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/list_rooms"
	payPenaltyHandler "github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/pay_penalty"
	"github.com/m04kA/SMC-HotelBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-HotelBookingService/internal/config"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/infra/cache"
	"github.com/m04kA/SMC-HotelBookingService/internal/infra/events"
	"github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/availability"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/billing"
	bookingsService "github.com/m04kA/SMC-HotelBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/inventory"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/projection"
	roomsService "github.com/m04kA/SMC-HotelBookingService/internal/service/rooms"
	addServiceChargesUC "github.com/m04kA/SMC-HotelBookingService/internal/usecase/add_service_charges"
	cancelBookingUC "github.com/m04kA/SMC-HotelBookingService/internal/usecase/cancel_booking"
	checkInUC "github.com/m04kA/SMC-HotelBookingService/internal/usecase/check_in"
	checkOutUC "github.com/m04kA/SMC-HotelBookingService/internal/usecase/check_out"
	createBookingUC "github.com/m04kA/SMC-HotelBookingService/internal/usecase/create_booking"
	payPenaltyUC "github.com/m04kA/SMC-HotelBookingService/internal/usecase/pay_penalty"
	"github.com/m04kA/SMC-HotelBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelBookingService/pkg/logger"
	"github.com/m04kA/SMC-HotelBookingService/pkg/metrics"
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

	log.Info("Starting SMC-HotelBookingService...")

	if cfg.Auth.JWTSecret == "" {
		log.Fatal("auth.jwt_secret (or JWT_SECRET) is required")
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	healthChecks := make(map[string]healthHandler.Pinger)
	var closers []io.Closer

	// Инициализируем хранилище
	var store *storage

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		memStore := memory.NewStore()
		if err := memStore.SeedDemo(context.Background()); err != nil {
			log.Fatal("Failed to seed memory storage: %v", err)
		}
		store = newMemoryStorage(memStore)
		log.Warn("Using in-memory storage with demo data, state is lost on restart")

		if token, err := middleware.SignToken(cfg.Auth.JWTSecret, domain.AccessScope{UserID: 1, Role: domain.RoleAdmin}, 24*time.Hour); err == nil {
			log.Debug("Demo admin token: %s", token)
		}
	default:
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

		// recorder должен быть nil-интерфейсом, если метрики выключены
		var recorder dbmetrics.Recorder
		if metricsCollector != nil {
			recorder = metricsCollector
		}
		wrappedDB := dbmetrics.WrapWithDefault(db, recorder, stopMetricsCh)
		store = newPostgresStorage(wrappedDB)
		healthChecks["postgres"] = db
	}

	// Кэш карточек бронирований
	var (
		viewCache    bookingsService.ViewCache
		bookingCache *cache.BookingCache
	)
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewClient(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		closers = append(closers, redisClient)

		bookingCache = cache.NewBookingCache(
			redisClient,
			time.Duration(cfg.Redis.TTLSeconds)*time.Second,
			time.Duration(cfg.Redis.InvalidationGuardSeconds)*time.Second,
		)
		viewCache = bookingCache
		healthChecks["redis"] = healthHandler.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
		log.Info("Booking view cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	}

	// Публикация событий жизненного цикла
	publishers := make([]events.Publisher, 0, 3)

	switch cfg.Events.Driver {
	case config.EventsDriverRabbitMQ:
		rabbit, err := events.DialRabbitMQ(cfg.Events.RabbitMQ.URL, cfg.Events.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to rabbitmq: %v", err)
		}
		closers = append(closers, rabbit)
		publishers = append(publishers, rabbit)
		log.Info("Booking events are published to rabbitmq exchange %s", cfg.Events.RabbitMQ.Exchange)
	case config.EventsDriverKafka:
		producer, err := events.NewKafkaProducer(cfg.Events.Kafka.Brokers)
		if err != nil {
			log.Fatal("Failed to create kafka producer: %v", err)
		}
		kafka := events.NewKafkaPublisher(producer, cfg.Events.Kafka.Topic)
		closers = append(closers, kafka)
		publishers = append(publishers, kafka)
		log.Info("Booking events are published to kafka topic %s", cfg.Events.Kafka.Topic)
	}

	if metricsCollector != nil {
		publishers = append(publishers, events.NewMetricsPublisher(metricsCollector))
	}
	// Любое изменение бронирования сбрасывает его карточку в кэше
	if bookingCache != nil {
		publishers = append(publishers, bookingCache)
	}
	publisher := events.NewMulti(publishers...)

	// Инициализируем сервисы
	checker := availability.NewChecker(store.bookings, store.rooms, availability.Options{
		CheckedOutBlocks: cfg.Booking.CheckedOutBlocks,
	})
	inventorySvc := inventory.NewService(store.rooms, store.bookings)
	billingRecorder := billing.NewRecorder(store.payments, store.invoices)
	viewBuilder := projection.NewBuilder(
		store.hotels,
		store.rooms,
		store.customers,
		store.payments,
		store.invoices,
		log,
	)

	bookingSvc := bookingsService.NewService(store.bookings, viewBuilder, viewCache, store.tx, log)
	roomSvc := roomsService.NewService(store.rooms, store.hotels, checker, store.tx, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		store.hotels,
		store.rooms,
		store.customers,
		store.bookings,
		checker,
		inventorySvc,
		store.tx,
		publisher,
		createBookingUC.Options{DefaultGracePeriodHours: cfg.Booking.DefaultGracePeriodHours},
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		store.bookings,
		store.rooms,
		store.customers,
		store.cancellations,
		inventorySvc,
		billingRecorder,
		store.tx,
		publisher,
		cancelBookingUC.Options{DefaultPaymentMethod: cfg.Booking.DefaultPaymentMethod},
		log,
	)
	checkInUseCase := checkInUC.NewUseCase(
		store.bookings,
		store.rooms,
		inventorySvc,
		store.tx,
		publisher,
		log,
	)
	checkOutUseCase := checkOutUC.NewUseCase(
		store.bookings,
		store.rooms,
		inventorySvc,
		billingRecorder,
		store.tx,
		publisher,
		checkOutUC.Options{DefaultPaymentMethod: cfg.Booking.DefaultPaymentMethod},
		log,
	)
	payPenaltyUseCase := payPenaltyUC.NewUseCase(
		store.bookings,
		store.cancellations,
		store.customers,
		billingRecorder,
		store.tx,
		publisher,
		payPenaltyUC.Options{DefaultPaymentMethod: cfg.Booking.DefaultPaymentMethod},
		log,
	)
	addServiceChargesUseCase := addServiceChargesUC.NewUseCase(
		store.bookings,
		billingRecorder,
		store.tx,
		publisher,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	checkIn := checkInHandler.NewHandler(checkInUseCase, log)
	checkOut := checkOutHandler.NewHandler(checkOutUseCase, log)
	payPenalty := payPenaltyHandler.NewHandler(payPenaltyUseCase, log)
	addServiceCharges := addServiceChargesHandler.NewHandler(addServiceChargesUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getHotelBookings := getHotelBookingsHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	listRooms := listRoomsHandler.NewHandler(roomSvc, log)
	createRoom := createRoomHandler.NewHandler(roomSvc, log)
	health := healthHandler.NewHandler(healthChecks, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if metricsCollector != nil {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(cfg.Auth.JWTSecret))

	// --- Номера ---
	api.HandleFunc("/hotels/{hotelId}/rooms", listRooms.Handle).Methods(http.MethodGet)
	api.HandleFunc("/hotels/{hotelId}/rooms", createRoom.Handle).Methods(http.MethodPost)

	// --- Бронирования отеля ---
	api.HandleFunc("/hotels/{hotelId}/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/hotels/{hotelId}/bookings", getHotelBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/hotels/{hotelId}/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/hotels/{hotelId}/bookings/{bookingId}/check-in", checkIn.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/hotels/{hotelId}/bookings/{bookingId}/check-out", checkOut.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/hotels/{hotelId}/bookings/{bookingId}/pay-penalty", payPenalty.Handle).Methods(http.MethodPost)
	api.HandleFunc("/hotels/{hotelId}/bookings/{bookingId}/service-charges", addServiceCharges.Handle).Methods(http.MethodPost)

	// --- Карточки бронирований ---
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/customers/me/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

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
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Закрываем брокеры и redis после остановки HTTP
	for _, c := range closers {
		if err := c.Close(); err != nil {
			log.Error("Failed to close resource: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
