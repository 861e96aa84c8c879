package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	h "github.com/gorilla/handlers"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/AlexSaifo/school-management-system-sub003/internal/config"
	"github.com/AlexSaifo/school-management-system-sub003/internal/handlers"
	"github.com/AlexSaifo/school-management-system-sub003/internal/middleware"
	"github.com/AlexSaifo/school-management-system-sub003/internal/migration"
	"github.com/AlexSaifo/school-management-system-sub003/internal/notification"
	"github.com/AlexSaifo/school-management-system-sub003/internal/realtime"
	"github.com/AlexSaifo/school-management-system-sub003/internal/repository"
	"github.com/AlexSaifo/school-management-system-sub003/internal/routes"

	_ "github.com/lib/pq" // PostgreSQL driver
)

type application struct {
	config        *config.Config
	db            *sql.DB
	logger        zerolog.Logger
	registry      *realtime.Registry
	notifications *notification.Service
}

func main() {
	// Set up structured, level-based logging.
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	logger := zerolog.New(consoleWriter).With().Timestamp().Logger()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.SetFlags(0)
	log.SetOutput(logger)

	goose.SetLogger(migration.NewGooseAdapter(logger))

	// Load configuration.
	cfg := config.Load()

	// Initialize database connection.
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to the database")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to ping database")
	}

	// Run database migrations.
	migration.RunMigrations(cfg.DatabaseURL, logger)

	// The connection registry is owned here and injected everywhere a live
	// connection needs to be reached. One instance per process.
	registry := realtime.NewRegistry(logger)
	dispatcher := realtime.NewDispatcher(registry, logger)

	userRepo := repository.NewUserRepository(db)
	classRepo := repository.NewClassRepository(db)
	resolver := notification.NewResolver(userRepo, classRepo, logger)
	notificationService := notification.NewService(resolver, dispatcher, logger)

	app := &application{
		config:        cfg,
		db:            db,
		logger:        logger,
		registry:      registry,
		notifications: notificationService,
	}

	// Initialize the HTTP router and middleware.
	router := app.initRouter(userRepo, classRepo, logger)
	loggedRouter := middleware.LoggingMiddleware(app.logger)(router)
	corsHandler := h.CORS(
		h.AllowedOrigins(cfg.AllowedOrigins),
		h.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		h.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		h.AllowCredentials(),
	)(loggedRouter)

	// Start the HTTP server and handle graceful shutdown.
	app.startServer(corsHandler, logger)

	logger.Info().Msg("Application terminated.")
}

// initRouter sets up all HTTP handlers and returns the router.
func (app *application) initRouter(userRepo repository.UserRepository, classRepo repository.ClassRepository, logger zerolog.Logger) http.Handler {
	assignmentRepo := repository.NewAssignmentRepository(app.db)
	examRepo := repository.NewExamRepository(app.db)
	eventRepo := repository.NewEventRepository(app.db)
	gradeRepo := repository.NewGradeRepository(app.db)
	attendanceRepo := repository.NewAttendanceRepository(app.db)
	timetableRepo := repository.NewTimetableRepository(app.db)
	chatRepo := repository.NewChatRepository(app.db)

	authHandler := handlers.NewAuthHandler(userRepo, app.config.JWTSecret, logger)
	classroomHandler := handlers.NewClassroomHandler(classRepo, logger)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentRepo, userRepo, app.notifications, logger)
	examHandler := handlers.NewExamHandler(examRepo, userRepo, app.notifications, logger)
	eventHandler := handlers.NewEventHandler(eventRepo, userRepo, app.notifications, logger)
	gradeHandler := handlers.NewGradeHandler(gradeRepo, classRepo, userRepo, app.notifications, logger)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceRepo, classRepo, userRepo, app.notifications, logger)
	timetableHandler := handlers.NewTimetableHandler(timetableRepo, userRepo, app.notifications, logger)
	chatHandler := handlers.NewChatHandler(chatRepo, userRepo, app.notifications, logger)
	wsHandler := realtime.NewHandler(app.registry, app.config.JWTSecret, logger)

	return routes.NewRouter(
		app.config.JWTSecret,
		authHandler,
		classroomHandler,
		assignmentHandler,
		examHandler,
		eventHandler,
		gradeHandler,
		attendanceHandler,
		timetableHandler,
		chatHandler,
		wsHandler,
	)
}

// startServer launches the HTTP server and handles graceful shutdown.
func (app *application) startServer(handler http.Handler, logger zerolog.Logger) {
	server := &http.Server{
		Addr:    ":" + app.config.ServerPort,
		Handler: handler,
	}

	// Channel to listen for server errors
	serverErrCh := make(chan error, 1)
	go func() {
		logger.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
	}()

	// Wait for an interrupt signal or a server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info().Msgf("Received signal: %s. Shutting down...", sig)
	case err := <-serverErrCh:
		logger.Error().Err(err).Msg("Server error occurred")
	}

	// Gracefully shut down the HTTP server.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	} else {
		logger.Info().Msg("HTTP server shutdown complete.")
	}

	// Drop the remaining socket connections.
	app.registry.Close()
	logger.Info().Msg("Socket connections closed.")
}
