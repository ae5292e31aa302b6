package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"attendku_backend/internals/configs"
	database "attendku_backend/internals/databases"
	scheduler "attendku_backend/internals/features/users/auth/scheduler"
	middlewares "attendku_backend/internals/middlewares"
	routes "attendku_backend/internals/route"
	"attendku_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("[FATAL] config: %v", err)
	}

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		BodyLimit:               10 * 1024 * 1024,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	middlewares.SetupMiddlewares(app, cfg)

	// DB connect + pool + warm-up
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("[FATAL] database: %v", err)
	}
	database.TunePool(db)

	if cfg.AutoMigrate {
		driver, dsn := database.ResolveDSN(cfg)
		if err := database.Migrate(db, driver, dsn); err != nil {
			log.Fatalf("[FATAL] migrate: %v", err)
		}
	}
	if cfg.SeedDefault {
		if err := seeds.RunAllSeeds(db); err != nil {
			log.Printf("[WARN] seed gagal: %v", err)
		}
	}
	database.WarmUpQueries(db)

	// scheduler setelah DB siap
	bgCtx, stopBg := context.WithCancel(context.Background())
	scheduler.StartBlacklistCleanupScheduler(bgCtx, db, cfg.BlacklistTTLDays)

	routes.SetupRoutes(app, db, cfg)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("✅ Listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	stopBg()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	database.Close(db)
}
