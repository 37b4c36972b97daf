package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/levkatan/lending-management/internal"
	"github.com/levkatan/lending-management/internal/auth"
	authPostgres "github.com/levkatan/lending-management/internal/auth/postgres"
	"github.com/levkatan/lending-management/internal/donation"
	donationPostgres "github.com/levkatan/lending-management/internal/donation/postgres"
	"github.com/levkatan/lending-management/internal/loan"
	loanPostgres "github.com/levkatan/lending-management/internal/loan/postgres"
	"github.com/levkatan/lending-management/internal/product"
	productPostgres "github.com/levkatan/lending-management/internal/product/postgres"
	"github.com/levkatan/lending-management/internal/settings"
	settingsPostgres "github.com/levkatan/lending-management/internal/settings/postgres"
	"github.com/levkatan/lending-management/internal/transport/rest"
	"github.com/levkatan/lending-management/internal/transport/swagger"
	"github.com/levkatan/lending-management/internal/user"
	userPostgres "github.com/levkatan/lending-management/internal/user/postgres"
	"github.com/levkatan/lending-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger

	AuthHandler     *auth.Handler
	ProductHandler  *product.Handler
	LoanHandler     *loan.Handler
	DonationHandler *donation.Handler
	SettingsHandler *settings.Handler
	UserHandler     *user.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		deps.AuthHandler,
		deps.ProductHandler,
		deps.LoanHandler,
		deps.DonationHandler,
		deps.SettingsHandler,
		deps.UserHandler,
		deps.Config.Server.AllowedOrigins,
		deps.Logger,
	)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Environment)
	appLogger := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ORM: %w", err)
	}

	// A broken contract file should not block startup, but it is worth a loud warning.
	if _, err := swagger.LoadSpec(context.Background(), "./api/openapi.yml"); err != nil {
		appLogger.Warn("openapi spec validation failed", "error", err)
	}

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)

	authService := auth.NewService(authPostgres.NewRepository(gormDB), tokenGen, config.Security.BCryptCost, appLogger)
	authHandler := auth.NewHandler(authService)

	settingsService := settings.NewService(settingsPostgres.NewSettingsRepository(gormDB), appLogger)
	settingsHandler := settings.NewHandler(settingsService)

	productService := product.NewService(productPostgres.NewProductRepository(gormDB), appLogger)
	productHandler := product.NewHandler(productService)

	loanService := loan.NewService(loanPostgres.NewLoanRepository(gormDB), settingsService, appLogger)
	loanHandler := loan.NewHandler(loanService)

	donationService := donation.NewService(donationPostgres.NewDonationRepository(gormDB), appLogger)
	donationHandler := donation.NewHandler(donationService)

	userService := user.NewService(userPostgres.NewUserRepository(gormDB), appLogger)
	userHandler := user.NewHandler(userService)

	return &Dependencies{
		Config:          config,
		DB:              db,
		GormDB:          gormDB,
		Router:          chi.NewRouter(),
		Logger:          appLogger,
		AuthHandler:     authHandler,
		ProductHandler:  productHandler,
		LoanHandler:     loanHandler,
		DonationHandler: donationHandler,
		SettingsHandler: settingsHandler,
		UserHandler:     userHandler,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
