package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hr_payroll/config"
	"hr_payroll/handlers"
	"hr_payroll/middleware"
	"hr_payroll/models"
	"hr_payroll/services"
	"hr_payroll/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func initServices(ctx context.Context) error {
	db, err := gorm.Open(sqlite.Open(config.AppConfig.DBPath), &gorm.Config{})
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		return err
	}

	audit := services.NewAuditSink(config.AppConfig.AuditWebhookURL)
	handlers.InitHandlers(db, audit)

	_, err = services.EnsureOperator(ctx, db, config.AppConfig.AdminUsername, config.AppConfig.AdminPassword, models.RoleAdmin)
	if err != nil {
		return err
	}

	if config.AppConfig.SeedDemoData {
		if err := services.SeedDemoData(ctx, handlers.PersonService); err != nil {
			return err
		}
	}

	return nil
}

func newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "hr_payroll",
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger)

	handlers.RegisterRoutes(app)
	return app
}

func main() {
	config.LoadConfig()
	if err := utils.InitLogger(config.AppConfig.LogLevel); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer utils.SyncLogger()

	ctx := context.Background()
	if err := initServices(ctx); err != nil {
		utils.Logger.Fatal("Failed to initialize services", zap.Error(err))
	}

	app := newApp()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		utils.Logger.Info("Shutting down")
		if err := app.Shutdown(); err != nil {
			utils.Logger.Error("Failed to shut down", zap.Error(err))
		}
	}()

	utils.Logger.Info("Starting server", zap.String("port", config.AppConfig.Port))
	if err := app.Listen(":" + config.AppConfig.Port); err != nil {
		utils.Logger.Fatal("Server stopped", zap.Error(err))
	}
}
