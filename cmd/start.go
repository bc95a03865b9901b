package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"catalog-sync/core/config"
	"catalog-sync/core/loader"
	"catalog-sync/core/logger"
	"catalog-sync/core/middleware/rayid"
	"catalog-sync/feature/syncjobs"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the sync daemon",
	Long:  `Schedules the catalog and inventory jobs and serves the ops endpoints until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		logg := a.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		if err := a.service.Initialize(ctx); err != nil {
			return err
		}
		defer a.service.Shutdown()

		reload := func(cfg *config.Config, err error) {
			if err != nil {
				logg.Error("Failed to reload configuration", zap.Error(err))
				return
			}
			if err := a.service.UpdateSchedule(cfg.Schedule); err != nil {
				logg.Error("Failed to apply schedule", zap.Error(err))
				return
			}
			logg.Info("Schedule reloaded",
				zap.String("catalog_time", cfg.Schedule.CatalogTime),
				zap.String("inventory_interval", cfg.Schedule.InventoryInterval))
		}
		if watching, err := config.Watch(configPath, reload); err != nil {
			logg.Warn("Config watch disabled", zap.Error(err))
		} else if watching {
			logg.Info("Watching config file for schedule changes")
		}

		var srv *fiber.App
		if a.cfg.Server.Enabled {
			srv = newOpsServer(a, logg)
			go func() {
				logg.Info("Starting ops server", zap.String("port", a.cfg.Server.Port))
				if err := srv.Listen(a.cfg.Server.Address()); err != nil {
					logg.Error("Ops server stopped", zap.Error(err))
				}
			}()
		}

		// Graceful Shutdown; SIGHUP re-reads the schedule
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
		defer signal.Stop(c)
		for sig := range c {
			if sig == syscall.SIGHUP {
				reload(config.LoadConfig(configPath))
				continue
			}
			break
		}

		logg.Info("Shutting down...")
		if srv != nil {
			_ = srv.Shutdown()
		}
		return nil
	},
}

func newOpsServer(a *app, logg *zap.Logger) *fiber.App {
	srv := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// RayID first so every log line carries it
	srv.Use(rayid.New())
	srv.Use(func(c *fiber.Ctx) error {
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

	mgr := loader.NewManager(logg)
	mgr.Register(syncjobs.NewFeature(a.service, logg))
	mgr.Register(a.integrity)
	if err := mgr.LoadAll(srv); err != nil {
		logg.Error("Failed to load features", zap.Error(err))
	}
	return srv
}

func init() {
	RootCmd.AddCommand(startCmd)
}
