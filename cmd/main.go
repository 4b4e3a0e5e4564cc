package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/agendahub/AB-BookingService/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/agendahub/AB-BookingService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/agendahub/AB-BookingService/internal/api/handlers/create_booking"
	dashboardHandler "github.com/agendahub/AB-BookingService/internal/api/handlers/dashboard"
	deleteBookingHandler "github.com/agendahub/AB-BookingService/internal/api/handlers/delete_booking"
	getAvailableSlotsHandler "github.com/agendahub/AB-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/agendahub/AB-BookingService/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/agendahub/AB-BookingService/internal/api/handlers/get_user_bookings"
	listBookingsHandler "github.com/agendahub/AB-BookingService/internal/api/handlers/list_bookings"
	loginHandler "github.com/agendahub/AB-BookingService/internal/api/handlers/login"
	registerHandler "github.com/agendahub/AB-BookingService/internal/api/handlers/register"
	servicesHandler "github.com/agendahub/AB-BookingService/internal/api/handlers/services"
	usersHandler "github.com/agendahub/AB-BookingService/internal/api/handlers/users"
	workBlocksHandler "github.com/agendahub/AB-BookingService/internal/api/handlers/work_blocks"
	"github.com/agendahub/AB-BookingService/internal/api/middleware"
	"github.com/agendahub/AB-BookingService/internal/config"
	bookingStorage "github.com/agendahub/AB-BookingService/internal/infra/storage/booking"
	serviceStorage "github.com/agendahub/AB-BookingService/internal/infra/storage/service"
	userStorage "github.com/agendahub/AB-BookingService/internal/infra/storage/user"
	workBlockStorage "github.com/agendahub/AB-BookingService/internal/infra/storage/workblock"
	authService "github.com/agendahub/AB-BookingService/internal/service/auth"
	bookingsService "github.com/agendahub/AB-BookingService/internal/service/bookings"
	catalogService "github.com/agendahub/AB-BookingService/internal/service/catalog"
	scheduleService "github.com/agendahub/AB-BookingService/internal/service/schedule"
	statsService "github.com/agendahub/AB-BookingService/internal/service/stats"
	usersService "github.com/agendahub/AB-BookingService/internal/service/users"
	createBookingUseCase "github.com/agendahub/AB-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUseCase "github.com/agendahub/AB-BookingService/internal/usecase/get_available_slots"
	"github.com/agendahub/AB-BookingService/pkg/authtoken"
	"github.com/agendahub/AB-BookingService/pkg/logger"
	"github.com/agendahub/AB-BookingService/pkg/metrics"
	"github.com/agendahub/AB-BookingService/pkg/txmanager"
)

func main() {
	configPath := flag.String("config", "config.toml", "путь к конфигурационному файлу")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("main - Starting booking service")

	// База данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("main - Failed to open database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		log.Fatal("main - Failed to ping database: %v", err)
	}
	log.Info("main - Database connection established")

	// Метрики
	stopCh := make(chan struct{})
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.ServiceName)
		go m.CollectDBStats(db, stopCh)
	}

	// Инфраструктура
	txManager := txmanager.NewTransactionManager(db)
	tokens := authtoken.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	bookingRepo := bookingStorage.NewRepository(db)
	workBlockRepo := workBlockStorage.NewRepository(db)
	serviceRepo := serviceStorage.NewRepository(db)
	userRepo := userStorage.NewRepository(db)

	// Сервисы и usecases
	bookings := bookingsService.NewService(bookingRepo, userRepo, log)
	catalog := catalogService.NewService(serviceRepo, bookingRepo, log)
	schedule := scheduleService.NewService(workBlockRepo, log)
	users := usersService.NewService(userRepo, log)
	auth := authService.NewService(userRepo, tokens, log)
	stats := statsService.NewService(bookingRepo, serviceRepo, userRepo, log)

	createBooking := createBookingUseCase.NewUseCase(bookingRepo, workBlockRepo, serviceRepo, txManager, log)
	getAvailableSlots := getAvailableSlotsUseCase.NewUseCase(bookingRepo, workBlockRepo, serviceRepo, log)

	// Хендлеры
	registerH := registerHandler.NewHandler(users, log)
	loginH := loginHandler.NewHandler(auth, log)
	servicesH := servicesHandler.NewHandler(catalog, log)
	workBlocksH := workBlocksHandler.NewHandler(schedule, log)
	usersH := usersHandler.NewHandler(users, log)
	dashboardH := dashboardHandler.NewHandler(stats, log)
	createBookingH := createBookingHandler.NewHandler(createBooking, log)
	getAvailableSlotsH := getAvailableSlotsHandler.NewHandler(getAvailableSlots, log)
	getBookingH := getBookingHandler.NewHandler(bookings, log)
	getUserBookingsH := getUserBookingsHandler.NewHandler(bookings, log)
	listBookingsH := listBookingsHandler.NewHandler(bookings, log)
	cancelBookingH := cancelBookingHandler.NewHandler(bookings, log)
	confirmBookingH := confirmBookingHandler.NewHandler(bookings, log)
	deleteBookingH := deleteBookingHandler.NewHandler(bookings, log)

	// Роутер
	router := mux.NewRouter()
	if m != nil {
		router.Use(middleware.Metrics(m))
		router.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
	}

	api := router.PathPrefix("/api/v1").Subrouter()

	// Публичные маршруты
	api.HandleFunc("/auth/register", registerH.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", loginH.Handle).Methods(http.MethodPost)
	api.HandleFunc("/services", servicesH.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", servicesH.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/available-slots", getAvailableSlotsH.Handle).Methods(http.MethodGet)
	api.HandleFunc("/work-blocks", workBlocksH.HandleList).Methods(http.MethodGet)

	// Маршруты, требующие аутентификации
	protected := api.PathPrefix("/bookings").Subrouter()
	protected.Use(middleware.Auth(tokens))
	protected.HandleFunc("", createBookingH.Handle).Methods(http.MethodPost)
	protected.HandleFunc("", getUserBookingsH.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/{bookingId}", getBookingH.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/{bookingId}/cancel", cancelBookingH.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/{bookingId}", deleteBookingH.Handle).Methods(http.MethodDelete)

	// Администраторские маршруты
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth(tokens), middleware.RequireAdmin)
	admin.HandleFunc("/bookings", listBookingsH.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/confirm", confirmBookingH.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}", deleteBookingH.HandleHard).Methods(http.MethodDelete)
	admin.HandleFunc("/services", servicesH.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId}", servicesH.HandleUpdate).Methods(http.MethodPut)
	admin.HandleFunc("/services/{serviceId}", servicesH.HandleDelete).Methods(http.MethodDelete)
	admin.HandleFunc("/work-blocks", workBlocksH.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/work-blocks/{blockId}", workBlocksH.HandleDelete).Methods(http.MethodDelete)
	admin.HandleFunc("/users", usersH.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/users", usersH.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/users/{userId}", usersH.HandleGet).Methods(http.MethodGet)
	admin.HandleFunc("/users/{userId}", usersH.HandleUpdate).Methods(http.MethodPut)
	admin.HandleFunc("/users/{userId}", usersH.HandleDelete).Methods(http.MethodDelete)
	admin.HandleFunc("/dashboard", dashboardH.Handle).Methods(http.MethodGet)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("main - HTTP server listening on port %d", cfg.Server.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("main - HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("main - Shutting down")
	close(stopCh)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("main - Failed to shutdown server gracefully: %v", err)
	}

	log.Info("main - Stopped")
}
