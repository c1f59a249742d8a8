package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/c14220110/puskesmas-backend/config"
	"github.com/c14220110/puskesmas-backend/internal/common/metrics"
	"github.com/c14220110/puskesmas-backend/internal/routes"
	"github.com/c14220110/puskesmas-backend/pkg/storage/mariadb"
	"github.com/c14220110/puskesmas-backend/ws"
)

func main() {
	// angka uang dikirim sebagai number JSON, bukan string
	decimal.MarshalJSONWithoutQuotes = true

	root := &cobra.Command{
		Use:           "puskesmas",
		Short:         "Backend layanan Puskesmas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), migrateCmd(), seedCmd())

	if err := root.ExecuteContext(context.Background()); err != nil {
		l := newLogger("info", false)
		l.Fatal().Err(err).Msg("command failed")
	}
}

func newLogger(level string, console bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	var logger zerolog.Logger
	if console {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(lvl).With().Timestamp().Logger()
}

// setup memuat config dan logger yang dipakai semua subcommand.
func setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	logger := newLogger(cfg.LogLevel, !cfg.IsProduction())
	if err := cfg.Validate(); err != nil {
		return nil, logger, err
	}
	time.Local = cfg.Location
	return cfg, logger, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Menjalankan HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			db, err := mariadb.Connect(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewDBStatsCollector(db, cfg.DBName))
			m := metrics.New(reg)

			hub := ws.NewHub(logger)
			go hub.Run(ctx)

			e := echo.New()
			e.HideBanner = true
			e.HidePort = true
			routes.Init(e, db, cfg, hub, m, logger)

			errCh := make(chan error, 1)
			go func() {
				logger.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("server berjalan")
				if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logger.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Menerapkan skema database",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			db, err := mariadb.Connect(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := mariadb.Migrate(ctx, db)
			if err != nil {
				return err
			}
			logger.Info().Int("statements", n).Msg("migrasi selesai")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Mengisi user dan obat default",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			db, err := mariadb.Connect(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			users, obat, err := mariadb.Seed(ctx, db)
			if err != nil {
				return err
			}
			logger.Info().Int64("users", users).Int64("obat", obat).Msg("seed selesai")
			return nil
		},
	}
}
