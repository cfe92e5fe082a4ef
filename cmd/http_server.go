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

	"github.com/gigante-rh/talent-intake/internal"
	"github.com/gigante-rh/talent-intake/internal/access"
	accesspg "github.com/gigante-rh/talent-intake/internal/access/postgres"
	"github.com/gigante-rh/talent-intake/internal/audit"
	auditpg "github.com/gigante-rh/talent-intake/internal/audit/postgres"
	"github.com/gigante-rh/talent-intake/internal/auth"
	authpg "github.com/gigante-rh/talent-intake/internal/auth/postgres"
	"github.com/gigante-rh/talent-intake/internal/filerelay"
	"github.com/gigante-rh/talent-intake/internal/insights"
	"github.com/gigante-rh/talent-intake/internal/refdata"
	refdatapg "github.com/gigante-rh/talent-intake/internal/refdata/postgres"
	"github.com/gigante-rh/talent-intake/internal/sheets"
	"github.com/gigante-rh/talent-intake/internal/submission"
	submissionpg "github.com/gigante-rh/talent-intake/internal/submission/postgres"
	"github.com/gigante-rh/talent-intake/internal/transport"
	"github.com/gigante-rh/talent-intake/internal/transport/rest"
	"github.com/gigante-rh/talent-intake/internal/user"
	userpg "github.com/gigante-rh/talent-intake/internal/user/postgres"
	"github.com/gigante-rh/talent-intake/pkg/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
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
	Config  *internal.Config
	DB      *sqlx.DB
	Logger  *slog.Logger
	Handler http.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Handler,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"), config.Observability.Logging.Level)
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// gorm rides the already-open pgx connection so both layers share the
	// same pool and health state
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	csvSink, err := sheets.NewCSVSink(config.Export.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize export sink: %w", err)
	}

	base := transport.NewBaseHandler(lg)

	auditService := audit.NewService(auditpg.NewAuditRepository(gormDB))

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authpg.NewAuthRepository(gormDB), tokenGen, config.Security.BCryptCost)

	accessService := access.NewService(accesspg.NewAccessRepository(gormDB))

	refdataService := refdata.NewService(refdatapg.NewRefdataRepository(gormDB), auditService)

	relayClient := filerelay.NewClient(config.FileRelay.ScriptURL, config.FileRelay.Timeout)
	analyzer := insights.NewClient(config.Insights.APIKey, config.Insights.Model, config.Insights.Timeout)

	submissionService := submission.NewService(
		submissionpg.NewSubmissionRepository(gormDB),
		relayClient,
		analyzer,
		csvSink,
		auditService,
	)

	userService := user.NewService(userpg.NewUserRepository(gormDB), authService, auditService)

	handlers := rest.Handlers{
		Auth:       auth.NewHandler(authService),
		Access:     access.NewMiddleware(base, accessService),
		Refdata:    refdata.NewHandler(base, refdataService),
		Submission: submission.NewHandler(base, submissionService),
		User:       user.NewHandler(base, userService),
		Audit:      audit.NewHandler(base, auditService),
	}

	router := rest.NewRouter(lg, db, handlers, config.Server.AllowedOrigins)

	return &Dependencies{
		Config:  config,
		DB:      db,
		Logger:  lg,
		Handler: router,
	}, nil
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	if cfg.ConnMaxLifetime > 0 {
		dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
