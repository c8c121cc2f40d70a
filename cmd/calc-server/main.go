package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medcalc/medcalc/internal/calc"
	"github.com/medcalc/medcalc/internal/calc/scores"
	"github.com/medcalc/medcalc/internal/config"
	"github.com/medcalc/medcalc/internal/domain/calcrun"
	"github.com/medcalc/medcalc/internal/platform/auth"
	"github.com/medcalc/medcalc/internal/platform/db"
	"github.com/medcalc/medcalc/internal/platform/middleware"
	"github.com/medcalc/medcalc/internal/verify"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "calc-server",
		Short: "Clinical calculator verification service",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(runCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the calculator API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required for migrations")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			n, err := db.NewMigrator(pool, cfg.MigrationsDir).Up(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("applied %d migration(s)\n", n)
			return nil
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered calculators",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := buildRegistry()
			if err != nil {
				return err
			}
			for _, id := range registry.IDs() {
				def, err := registry.Lookup(id)
				if err != nil {
					return err
				}
				fmt.Printf("%-28s %s\n", def.ID, def.Label)
			}
			fmt.Printf("%d calculators\n", registry.Len())
			return nil
		},
	}
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <calculator-id>",
		Short: "Run one verified calculation from the shell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, _ := cmd.Flags().GetStringArray("input")
			raw, err := parseInputFlags(inputs)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			registry, err := buildRegistry()
			if err != nil {
				return err
			}
			runner := verify.NewRunner(registry, buildPolicies(cfg), buildAuthority(cfg))

			verdict, err := runner.RunCalcAuthoritative(context.Background(), args[0], raw)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(verdict, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	cmd.Flags().StringArray("input", nil, "input as key=value (repeatable)")
	return cmd
}

// parseInputFlags turns --input k=v pairs into a raw input bag. Values
// that parse as numbers or booleans are typed; everything else stays a
// string for the normalizer to coerce.
func parseInputFlags(pairs []string) (map[string]any, error) {
	raw := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --input %q, expected key=value", p)
		}
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			raw[k] = n
		} else if b, err := strconv.ParseBool(v); err == nil {
			raw[k] = b
		} else {
			raw[k] = v
		}
	}
	return raw, nil
}

func buildRegistry() (*calc.Registry, error) {
	registry := calc.NewRegistry()
	if err := scores.Register(registry); err != nil {
		return nil, fmt.Errorf("register calculators: %w", err)
	}
	return registry, nil
}

func buildPolicies(cfg *config.Config) *verify.Table {
	table := verify.DefaultTable()
	if !cfg.StrictAll && cfg.VerifyTimeout() == 0 {
		return table
	}
	// Config overrides rebuild the fallback so per-id entries keep their
	// precision and tolerance.
	fallback := verify.Policy{Precision: 2, TolerancePct: 1.0, Strict: cfg.StrictAll, Timeout: 1500 * time.Millisecond}
	if t := cfg.VerifyTimeout(); t > 0 {
		fallback.Timeout = t
	}
	return verify.NewTable(fallback)
}

func buildAuthority(cfg *config.Config) verify.Authority {
	switch cfg.Authority {
	case "openai":
		authority, err := verify.NewLLMAuthority(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			// Validate() catches the missing key before this point.
			return verify.NewReferenceAuthority()
		}
		return authority
	case "off":
		return nil
	default:
		return verify.NewReferenceAuthority()
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Calculator library
	registry, err := buildRegistry()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build calculator registry")
	}
	logger.Info().Int("calculators", registry.Len()).Str("authority", cfg.Authority).Msg("calculator library loaded")

	runner := verify.NewRunner(registry, buildPolicies(cfg), buildAuthority(cfg))

	// Database is optional: without it the service runs stateless and the
	// run history endpoints report 501.
	ctx := context.Background()
	var runRepo calcrun.RunRecordRepository
	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		pool, err = db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()

		if n, err := db.NewMigrator(pool, cfg.MigrationsDir).Up(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to run migrations")
		} else if n > 0 {
			logger.Info().Int("applied", n).Msg("migrations applied")
		}

		runRepo = calcrun.NewRunRecordRepoPG(pool)
		logger.Info().Msg("connected to database")
	} else {
		logger.Warn().Msg("DATABASE_URL not set; running without run history")
	}

	svc := calcrun.NewService(registry, runner, runRepo, logger)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit("256K"))
	e.Use(middleware.RequestTimeout(30 * time.Second))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID", auth.HeaderAPIKey},
	}))

	// API group
	apiV1 := e.Group("/api/v1")
	apiV1.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
	apiV1.Use(auth.RequireAPIKey(auth.NewKeySet(cfg.APIKeys)))

	calcrun.NewHandler(svc).RegisterRoutes(apiV1)

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":      "ok",
			"version":     "0.1.0",
			"calculators": registry.Len(),
		})
	})
	if pool != nil {
		e.GET("/health/db", db.HealthHandler(pool))
	}

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
