package cmd

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"parking-ops/core/config"
	"parking-ops/core/database"
	"parking-ops/core/loader"
	"parking-ops/core/logger"
	"parking-ops/core/middleware/auth"
	"parking-ops/core/middleware/rayid"
	"parking-ops/core/reconcile"
	"parking-ops/core/storage"

	"parking-ops/feature/integrity"
	"parking-ops/feature/operations"
	"parking-ops/feature/receipts"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "parking-ops/docs/swagger"
)

// @title Parking Operations API
// @version 1.0
// @description Operator console API: reconciled operations, audit and payment receipts.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the operations server",
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

		// 3. Connect to Database (Optional: without it only storage checks run)
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to parking database", zap.String("driver", cfg.Database.Driver))
		}

		// 4. Initialize Storage (Optional: receipts are disabled without it)
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Warn("Optional storage client failed", zap.Error(err))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
			JSONEncoder:           json.Marshal,
			JSONDecoder:           json.Unmarshal,
		})

		// 5. Feature Loader
		var (
			source reconcile.Source
			lookup receipts.PaymentLookup
		)
		if db != nil {
			source = operations.NewDBSource(db)
		}
		ops := operations.NewService(source, logg)
		if source != nil {
			lookup = ops
		}

		mgr := loader.NewManager()
		mgr.Register(operations.NewFeature(ops, cfg.Server.Facility))
		mgr.Register(receipts.NewFeature(store, cfg.Storage, lookup, logg, cfg.Server))
		mgr.Register(integrity.NewFeature(store, cfg.Storage, logg, db))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging with the ray id attached
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

		// 3. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Auth (everything except the docs)
		app.Use(auth.New(auth.Config{
			ApiKey: cfg.Server.ApiKey,
			Next: func(c *fiber.Ctx) bool {
				return strings.HasPrefix(c.Path(), "/swagger")
			},
		}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("port", cfg.Server.Port),
				zap.Int64("facility", cfg.Server.Facility),
			)
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
