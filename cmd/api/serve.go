package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/congeflow/leave-backend-go/internal/config"
	"github.com/congeflow/leave-backend-go/internal/domain/user"
	"github.com/congeflow/leave-backend-go/internal/fixtures"
	appHTTP "github.com/congeflow/leave-backend-go/internal/handler/http"
	"github.com/congeflow/leave-backend-go/internal/pkg/database"
	"github.com/congeflow/leave-backend-go/internal/pkg/jwt"
	"github.com/congeflow/leave-backend-go/internal/repository/memory"
	"github.com/congeflow/leave-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/congeflow/leave-backend-go/internal/service/auth"
	"github.com/congeflow/leave-backend-go/internal/service/leave"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	serveCmd = &cobra.Command{
		RunE:  runServer,
		Use:   "serve",
		Short: "run the HTTP API",
	}
	serveMigrate bool
)

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "apply migrations before starting when PERSISTENCE_DRIVER is postgres")
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.App.LogLevel)
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	policy, err := leave.ParseBalancePolicy(cfg.Leave.BalancePolicy)
	if err != nil {
		return err
	}
	ledgerOpts := []leave.Option{leave.WithBalancePolicy(policy)}
	var userRepo user.UserRepository = memory.NewUserRepository()

	if cfg.UsesPostgres() {
		if serveMigrate {
			if err := postgresql.Migrate(ctx, cfg.DatabaseURL(), false); err != nil {
				return err
			}
		}

		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return fmt.Errorf("error connecting to database: %w", err)
		}
		defer db.Close()

		journal := postgresql.NewJournal(db,
			postgresql.NewLeaveRequestRepository(db),
			postgresql.NewLeaveBalanceRepository(db),
		)
		ledgerOpts = append(ledgerOpts, leave.WithJournal(journal))
		userRepo = postgresql.NewUserRepository(db)
	}

	ledger := leave.NewLedger(ledgerOpts...)
	if err := ledger.Load(ctx); err != nil {
		return err
	}

	if err := fixtures.SeedUsers(ctx, userRepo, bcrypt.DefaultCost); err != nil {
		return err
	}
	if cfg.App.SeedDemoData {
		if err := fixtures.SeedBalances(ctx, ledger); err != nil {
			return err
		}
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	leaveService := leave.NewLeaveService(ledger, cfg.Leave.DefaultApprovalComment)

	router := appHTTP.NewRouter(
		JWTService,
		appHTTP.NewAuthHandler(authService),
		appHTTP.NewLeaveHandler(leaveService),
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.App.CORSAllowedOrigins,
			Env:            cfg.App.Env,
			Version:        version,
			LogLevel:       logLevel,
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "balance_policy", policy, "persistence", cfg.Persistence.Driver)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
