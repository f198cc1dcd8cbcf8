package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"travel_manager/config"
	"travel_manager/database"
	"travel_manager/handler"
	"travel_manager/helper"
	"travel_manager/logger"
	"travel_manager/model"
	"travel_manager/router"
	"travel_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	defer log.Sync()

	database.ConnectDB()

	deps := buildDependencies(cfg, log)
	handler.Setup(deps)
	if pdf, ok := deps.PDF.(*utils.ChromeRenderer); ok {
		defer pdf.Close()
	}

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: cfg.App.BodyLimit,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.Middleware(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))
	router.SetupRoutes(app)

	if err := helper.StartTourStatusScheduler(time.Local); err != nil {
		log.Error("start tour status scheduler", zap.Error(err))
	}
	if deps.Catalog.Enabled() {
		if err := helper.StartCatalogRetryCron(deps.Catalog); err != nil {
			log.Error("start catalog retry cron", zap.Error(err))
		}
	}

	go func() {
		if err := app.Listen(":" + cfg.App.Port); err != nil {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	helper.StopCatalogRetryCron()
	helper.StopTourStatusScheduler()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	if deps.Redis != nil {
		deps.Redis.Close()
	}
}

// buildDependencies chỉ gán service đã cấu hình, còn lại để nil cho handler trả 503
func buildDependencies(cfg *config.AppConfig, log *zap.Logger) handler.Dependencies {
	deps := handler.Dependencies{
		Logger:     log,
		AgencyName: cfg.App.Name,
		PublicURL:  cfg.App.PublicURL,
		Currency:   cfg.WhatsApp.Currency,
		PDF: utils.NewChromeRenderer(utils.ChromeConfig{
			RemoteURL: cfg.PDF.ChromeURL,
			Timeout:   cfg.PDF.Timeout,
			NoSandbox: cfg.PDF.NoSandbox,
		}),
	}

	if cfg.Redis.Addr != "" {
		deps.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := deps.Redis.Ping(ctx).Err(); err != nil {
			log.Warn("redis unavailable", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		cancel()
	}
	deps.Cache = helper.NewTravelCache(deps.Redis, cfg.Redis.CacheTTL)

	var catalogClient helper.CatalogClient
	client, err := helper.NewCatalogClient(helper.CatalogClientConfig{
		BaseURL:     cfg.WhatsApp.BaseURL,
		Version:     cfg.WhatsApp.Version,
		CatalogID:   cfg.WhatsApp.CatalogID,
		AccessToken: cfg.WhatsApp.AccessToken,
		Timeout:     cfg.WhatsApp.Timeout,
		RetryCount:  cfg.WhatsApp.RetryCount,
	}, log)
	if err != nil {
		log.Warn("whatsapp catalog disabled", zap.Error(err))
	} else {
		catalogClient = client
	}
	deps.Catalog = helper.NewCatalogSyncer(catalogClient, deps.Redis, cfg.WhatsApp.MaxAttempts, log)

	if images, err := helper.InitCloudinary(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey,
		cfg.Cloudinary.APISecret, cfg.Cloudinary.Folder); err != nil {
		log.Warn("cloudinary disabled", zap.Error(err))
	} else {
		deps.Images = images
	}

	if cfg.MinIO.Endpoint != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		files, err := helper.NewMinioStore(ctx, cfg.MinIO.Endpoint, cfg.MinIO.AccessKey,
			cfg.MinIO.SecretKey, cfg.MinIO.Bucket, cfg.MinIO.UseSSL)
		cancel()
		if err != nil {
			log.Warn("minio disabled", zap.Error(err))
		} else {
			deps.Files = files
		}
	}

	if cfg.SMTP.Host != "" {
		smtp := utils.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}
		deps.Mailer = utils.NewGomailMailer(smtp)
		deps.SimpleMailer = utils.NewSimpleMailer(smtp)
	}

	if cfg.Places.APIKey != "" {
		deps.Places = utils.NewPlacesClient(cfg.Places.BaseURL, cfg.Places.APIKey)
	}

	publicURL := strings.TrimRight(cfg.App.PublicURL, "/")
	if gateway, err := helper.NewCheckoutGateway(model.GatewayConfig{
		MerchantCode: cfg.Checkout.MerchantCode,
		HashSecret:   cfg.Checkout.HashSecret,
		BaseURL:      cfg.Checkout.PayURL,
		ReturnURL:    publicURL + "/api/v1/checkout/return",
		IPNURL:       publicURL + "/api/v1/checkout/ipn",
	}); err != nil {
		log.Warn("online payment disabled", zap.Error(err))
	} else {
		deps.Gateway = gateway
	}
	return deps
}
