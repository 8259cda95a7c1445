package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointease/internal/audit"
	"github.com/BruksfildServices01/appointease/internal/config"
	dbpkg "github.com/BruksfildServices01/appointease/internal/db"
	"github.com/BruksfildServices01/appointease/internal/export"
	infraRepo "github.com/BruksfildServices01/appointease/internal/infra/repository"
	"github.com/BruksfildServices01/appointease/internal/logging"
	"github.com/BruksfildServices01/appointease/internal/notify"
	"github.com/BruksfildServices01/appointease/internal/routes"
	"github.com/BruksfildServices01/appointease/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/appointease/internal/usecase/appointment"
	ucUser "github.com/BruksfildServices01/appointease/internal/usecase/user"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "appointease",
		Short:         "Appointment booking API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(promoteCmd())
	rootCmd.AddCommand(seedAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		logger := zerolog.New(os.Stderr)
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// bootstrap loads config, builds the logger and opens the database.
func bootstrap() (*config.Config, zerolog.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}

	log := logging.New(cfg.Env)

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		return nil, log, nil, err
	}
	return cfg, log, db, nil
}

// ======================================================
// SERVE
// ======================================================

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply migrations before serving")
	return cmd
}

func runServer(migrate bool) error {
	cfg, log, db, err := bootstrap()
	if err != nil {
		return err
	}

	if migrate {
		if err := dbpkg.Migrate(db, log); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bus, err := notify.NewBus(ctx, cfg.RedisURL, log)
	if err != nil {
		return err
	}
	defer bus.Close()

	hub := notify.NewHub(log, cfg.Origins())
	go hub.Run(ctx, bus.Subscribe(ctx))

	dispatcher := audit.NewDispatcher(audit.New(db), log)
	defer dispatcher.Close()

	var archiver export.Archiver
	if cfg.ExportArchiveEnabled() {
		archiver = export.NewS3Archiver(export.S3Config{
			Bucket:    cfg.ExportBucket,
			Region:    cfg.ExportRegion,
			Endpoint:  cfg.ExportEndpoint,
			AccessKey: cfg.ExportAccessKey,
			SecretKey: cfg.ExportSecretKey,
		})
		log.Info().Str("bucket", cfg.ExportBucket).Msg("export archive enabled")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Log:      log,
		Audit:    dispatcher,
		Events:   bus,
		Hub:      hub,
		Archiver: archiver,
		Now:      timezone.NowFunc(cfg.Timezone),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("timezone", cfg.Timezone).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			stop()
		}
	}()

	<-ctx.Done()

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

// ======================================================
// MIGRATE
// ======================================================

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			return dbpkg.Migrate(db, log)
		},
	}
}

// ======================================================
// PROMOTE
// ======================================================

func promoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote",
		Short: "Mark elapsed approved appointments as completed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, db, err := bootstrap()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			bus, err := notify.NewBus(ctx, cfg.RedisURL, log)
			if err != nil {
				return err
			}
			defer bus.Close()

			dispatcher := audit.NewDispatcher(audit.New(db), log)
			defer dispatcher.Close()

			n, err := ucAppointment.NewSweepElapsed(ucAppointment.Deps{
				Repo:   infraRepo.NewAppointmentGormRepository(db),
				Audit:  dispatcher,
				Events: bus,
				Now:    timezone.NowFunc(cfg.Timezone),
			}).Execute(ctx)
			if err != nil {
				return err
			}

			log.Info().Int("completed", n).Msg("elapsed appointments promoted")
			return nil
		},
	}
}

// ======================================================
// SEED ADMIN
// ======================================================

func seedAdminCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create or reset the admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, db, err := bootstrap()
			if err != nil {
				return err
			}

			if username == "" {
				username = cfg.AdminUsername
			}
			if password == "" {
				password = cfg.AdminPassword
			}
			if username == "" || password == "" {
				return errors.New("admin username and password are required (flags or ADMIN_USERNAME / ADMIN_PASSWORD)")
			}

			created, err := ucUser.NewSeedAdmin(ucUser.Deps{
				Repo: infraRepo.NewUserGormRepository(db),
			}).Execute(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			log.Info().Str("username", username).Bool("created", created).Msg("admin ready")
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "admin username")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	return cmd
}
