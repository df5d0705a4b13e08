package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sheet-merger/core/config"
	"sheet-merger/core/loader"
	"sheet-merger/core/logger"
	"sheet-merger/core/middleware/auth"
	"sheet-merger/core/middleware/rayid"
	"sheet-merger/core/sheet"
	"sheet-merger/core/storage"

	"sheet-merger/feature/merge"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "sheet-merger/docs/swagger"
)

// @title Sheet Merger API
// @version 1.0
// @description API for reconciling key-value pairs across spreadsheet workbooks.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the sheet merger server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// 3. History (optional) and storage
		deps, err := openDependencies(ctx, cfg, logg, false)
		if err != nil {
			logg.Fatal("Failed to open dependencies", zap.Error(err))
		}
		defer deps.Close()

		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		if err := storage.EnsureBucket(ctx, store, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			logg.Warn("Exports disabled: storage unavailable", zap.Error(err))
			store = nil
		}

		// 4. Shared workbook cache
		cache := sheet.NewLoader(cfg.Merge.CacheTTL)
		go purgeLoop(ctx, logg, cache, cfg.Merge.CacheTTL)

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
			ReadTimeout:           cfg.Server.ReadTimeout,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()
		svc := merge.NewService(cfg.Merge, cache, store, cfg.Storage.Bucket, deps.repo, logg)
		mgr.Register(merge.NewFeature(svc))

		// Middleware Registration
		// RayID must be first to trace everything
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

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		if cfg.Server.AuthEnabled() {
			app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))
		} else {
			logg.Warn("API key not set, every request is accepted")
		}

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("port", cfg.Server.Port),
				zap.Bool("history", deps.repo != nil),
				zap.Bool("exports", store != nil),
			)
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

// purgeLoop evicts expired workbooks until ctx is done.
func purgeLoop(ctx context.Context, l *zap.Logger, cache *sheet.Loader, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := cache.Purge(); n > 0 {
				l.Debug("Purged cached workbooks", zap.Int("count", n))
			}
		}
	}
}

func init() {
	RootCmd.AddCommand(startCmd)
}
