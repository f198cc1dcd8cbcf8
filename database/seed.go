package database

import (
	"travel_manager/config"
	"travel_manager/constants"
	"travel_manager/model"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	password := config.Config("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "123456tm"
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		zap.L().Error("failed to hash seed password", zap.Error(err))
		return
	}
	accounts := []model.Account{
		{Username: "Administration", Password: string(bytes), Active: true, Role: constants.ROLE_ADMIN, FullName: "Administrator"},
	}
	for _, account := range accounts {
		// Tạo mới nếu không tồn tại
		if err := db.Where(model.Account{Username: account.Username}).FirstOrCreate(&account).Error; err != nil {
			zap.L().Error("failed to seed account", zap.String("username", account.Username), zap.Error(err))
		}
	}

	expenseCategories := []model.ExpenseCategory{
		{Name: "Office", IsActive: true},
		{Name: "Marketing", IsActive: true},
		{Name: "Commission", IsActive: true},
		{Name: "Miscellaneous", IsActive: true},
	}
	for _, category := range expenseCategories {
		if err := db.Where(model.ExpenseCategory{Name: category.Name}).FirstOrCreate(&category).Error; err != nil {
			zap.L().Error("failed to seed expense category", zap.String("name", category.Name), zap.Error(err))
		}
	}

	incomeCategories := []model.IncomeCategory{
		{Name: "Commission", IsActive: true},
		{Name: "Cancellation Charges", IsActive: true},
		{Name: "Other", IsActive: true},
	}
	for _, category := range incomeCategories {
		if err := db.Where(model.IncomeCategory{Name: category.Name}).FirstOrCreate(&category).Error; err != nil {
			zap.L().Error("failed to seed income category", zap.String("name", category.Name), zap.Error(err))
		}
	}

	locations := []model.Location{
		{Label: "Kashmir", Value: "kashmir", IsActive: true, Lat: 34.0837, Lng: 74.7973},
		{Label: "Goa", Value: "goa", IsActive: true, Lat: 15.2993, Lng: 74.1240},
		{Label: "Kerala", Value: "kerala", IsActive: true, Lat: 10.8505, Lng: 76.2711},
	}
	for _, location := range locations {
		location.Slug = slug.Make(location.Label)
		if err := db.Where(model.Location{Label: location.Label}).FirstOrCreate(&location).Error; err != nil {
			zap.L().Error("failed to seed location", zap.String("label", location.Label), zap.Error(err))
		}
	}
}
