package database

import (
	"fmt"
	"strconv"
	"time"

	"travel_manager/config"
	"travel_manager/logger"
	"travel_manager/model"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	p := config.Config("DB_PORT")
	port, err := strconv.ParseUint(p, 10, 32)
	if err != nil {
		zap.L().Fatal("failed to parse database port", zap.String("port", p), zap.Error(err))
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Config("DB_HOST"), port, config.Config("DB_USER"), config.Config("DB_PASSWORD"),
		config.Config("DB_NAME"), config.Config("DB_SSLMODE"))
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.NewGormLogger(zap.L(), logger.MapGormLogLevel(config.Config("DB_LOG_LEVEL")), 200*time.Millisecond),
	})
	if err != nil {
		zap.L().Fatal("failed to connect database", zap.Error(err))
	}
	zap.L().Info("Connection Opened to Database")

	if err := Migrate(DB); err != nil {
		zap.L().Fatal("failed to migrate database", zap.Error(err))
	}
	zap.L().Info("Database Migrated")

	// khởi tạo dữ liệu
	SeedData(DB)
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Account{},
		&model.Customer{},
		&model.PasswordResetToken{},
		&model.Location{},
		&model.Hotel{},
		&model.AssociatePartner{},
		&model.Supplier{},
		&model.ExpenseCategory{},
		&model.IncomeCategory{},
		&model.TourPackage{},
		&model.TourPackageQuery{},
		&model.Itinerary{},
		&model.Activity{},
		&model.Image{},
		&model.PurchaseDetail{},
		&model.SaleDetail{},
		&model.PaymentDetail{},
		&model.ReceiptDetail{},
		&model.ExpenseDetail{},
		&model.IncomeDetail{},
		&model.PurchaseReturn{},
		&model.FlightTicket{},
		&model.FlightPassenger{},
		&model.CatalogProduct{},
		&model.Inquiry{},
		&model.Payment{},
	)
}
