package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"pvp-pipeline/core/config"
	"pvp-pipeline/core/database"
	"pvp-pipeline/core/loader"
	"pvp-pipeline/core/logger"
	"pvp-pipeline/core/middleware/auth"
	"pvp-pipeline/core/middleware/rayid"
	"pvp-pipeline/core/storage"
	"pvp-pipeline/core/warehouse"
	"pvp-pipeline/feature/characters"
	"pvp-pipeline/feature/integrity"
	"pvp-pipeline/feature/landing"
	"pvp-pipeline/feature/leaderboard"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// serveCmd starts the read-only API over the curated staging tables.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the read-only HTTP API",
	Long: `Serve exposes the curated leaderboard and character tables, plus schema and
landing checks. Connections that fail are logged and the matching features stay disabled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Staging database unavailable", zap.Error(err))
		} else {
			db = conn
		}

		var dw *gorm.DB
		if conn, err := warehouse.Connect(cfg.Warehouse); err != nil {
			logg.Warn("Warehouse unavailable", zap.Error(err))
		} else {
			dw = conn
		}

		var (
			client storage.Client
			store  *landing.Store
		)
		if c, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Storage client unavailable", zap.Error(err))
		} else {
			client = c
			store = landing.NewStore(client, cfg.Storage.Bucket, cfg.Storage.LandingPrefix)
		}

		brackets := cfg.Pipeline.BracketList()

		mgr := loader.NewManager()
		mgr.Register(leaderboard.NewFeature(leaderboard.NewService(db, nil, store, logg, brackets)))
		mgr.Register(characters.NewFeature(characters.NewService(db, nil, store, logg)))
		mgr.Register(integrity.NewFeature(integrity.NewService(client, cfg.Storage, db, dw, brackets, logg)))

		app := fiber.New(fiber.Config{DisableStartupMessage: true})
		app.Use(rayid.New())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: []string{"/health"}}))

		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			return err
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("address", cfg.Server.Address()))
			errCh <- app.Listen(cfg.Server.Address())
		}()

		select {
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		case <-ctx.Done():
		}

		logg.Info("Shutting down server")
		return app.ShutdownWithContext(context.WithoutCancel(ctx))
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
