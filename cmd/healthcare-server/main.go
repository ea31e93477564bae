package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/healthcare/healthcare/internal/config"
	"github.com/healthcare/healthcare/internal/domain/billing"
	"github.com/healthcare/healthcare/internal/domain/clinical"
	"github.com/healthcare/healthcare/internal/domain/identity"
	"github.com/healthcare/healthcare/internal/domain/medication"
	"github.com/healthcare/healthcare/internal/domain/scheduling"
	"github.com/healthcare/healthcare/internal/platform/auth"
	"github.com/healthcare/healthcare/internal/platform/middleware"
	"github.com/healthcare/healthcare/internal/platform/sandbox"
	"github.com/healthcare/healthcare/internal/platform/store"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "healthcare-server",
		Short: "Clinical records API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(tokenCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func tokenCmd() *cobra.Command {
	var (
		subject string
		roles   []string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token signed with JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			token, err := auth.IssueToken([]byte(cfg.JWTSecret), cfg.JWTIssuer, subject, roles, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "token subject")
	cmd.Flags().StringSliceVar(&roles, "role", []string{auth.RoleStaff}, "roles to grant (admin, staff, viewer)")
	cmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "token lifetime")
	cmd.MarkFlagRequired("subject")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the server version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return logger.Level(level)
}

// app holds the services behind the HTTP routes.
type app struct {
	identity      *identity.Service
	appointments  *scheduling.Service
	prescriptions *medication.Service
	bills         *billing.Service
	records       *clinical.Service
}

// newApp builds one store per entity kind and the services over them.
func newApp() *app {
	people := identity.NewService(
		store.New[identity.Person](),
		store.New[identity.Patient](),
		store.New[identity.Doctor](),
	)
	return &app{
		identity:      people,
		appointments:  scheduling.NewService(store.New[scheduling.Appointment](), people),
		prescriptions: medication.NewService(store.New[medication.Prescription](), people),
		bills:         billing.NewService(store.New[billing.Billing](), people),
		records:       clinical.NewService(store.New[clinical.MedicalRecord](), people),
	}
}

func (a *app) sandboxServices() sandbox.Services {
	return sandbox.Services{
		Identity:      a.identity,
		Appointments:  a.appointments,
		Prescriptions: a.prescriptions,
		Bills:         a.bills,
		Records:       a.records,
	}
}

// newServer wires middleware and routes for a.
func newServer(cfg *config.Config, logger zerolog.Logger, a *app) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader, auth.UsernameHeader, auth.PasswordHeader},
	}))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})

	// Auth runs for every request; AuthSkipper lets /health through.
	switch cfg.ResolvedAuthMode() {
	case config.AuthModeBasic:
		e.Use(auth.BasicAuthMiddleware(auth.BasicConfig{
			Username: cfg.APIUsername,
			Password: cfg.APIPassword,
			Skipper:  auth.AuthSkipper,
		}))
	case config.AuthModeJWT:
		e.Use(auth.JWTMiddleware(auth.JWTConfig{
			Issuer:     cfg.JWTIssuer,
			SigningKey: []byte(cfg.JWTSecret),
			Skipper:    auth.AuthSkipper,
		}))
	default:
		e.Use(auth.DevAuthMiddleware())
	}

	apiV1 := e.Group("/api/v1")
	apiV1.Use(auth.RequireWriteRole([]string{auth.RoleViewer}, []string{auth.RoleStaff}))

	identity.NewHandler(a.identity).RegisterRoutes(apiV1)
	scheduling.NewHandler(a.appointments).RegisterRoutes(apiV1)
	medication.NewHandler(a.prescriptions).RegisterRoutes(apiV1)
	billing.NewHandler(a.bills).RegisterRoutes(apiV1)
	clinical.NewHandler(a.records).RegisterRoutes(apiV1)

	return e
}

func runServer() error {
	// Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg)
	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return err
	}
	if cfg.ResolvedAuthMode() == config.AuthModeNone {
		logger.Warn().Msg("authentication is disabled, every request gets admin access")
	}

	a := newApp()
	if cfg.SeedDemoData {
		seedCfg := sandbox.DefaultSeedConfig()
		ctx := logger.WithContext(context.Background())
		if _, err := sandbox.NewSeeder(seedCfg, a.sandboxServices()).Generate(ctx); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}

	e := newServer(cfg, logger, a)

	// Start server
	addr := ":" + cfg.Port
	go func() {
		logger.Info().Str("addr", addr).Str("auth_mode", cfg.ResolvedAuthMode()).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
