package handler

import (
	"time"

	"travel_manager/constants"
	"travel_manager/database"
	"travel_manager/model"
	"travel_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func sumReceipts(db *gorm.DB, day string) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	if err := db.Model(&model.ReceiptDetail{}).
		Where("receipt_date = ?", day).
		Pluck("amount", &amounts).Error; err != nil {
		return decimal.Zero, err
	}
	return decimal.Sum(decimal.Zero, amounts...), nil
}

// DashboardStatistic đếm nhanh cho màn hình tổng quan
func DashboardStatistic(c *fiber.Ctx) error {
	db := database.DB
	now := time.Now()
	today := now.Format(utils.DateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(utils.DateLayout)
	nextWeek := now.AddDate(0, 0, 7).Format(utils.DateLayout)

	stat := model.DashboardStatistic{QueriesByStatus: map[string]int64{}}
	for _, s := range []string{constants.QUERY_PENDING, constants.QUERY_CONFIRMED, constants.QUERY_CANCELLED, constants.QUERY_COMPLETED} {
		stat.QueriesByStatus[s] = 0
	}

	var byStatus []struct {
		Status string
		Total  int64
	}
	if err := db.Model(&model.TourPackageQuery{}).
		Select("status, COUNT(*) AS total").Group("status").Scan(&byStatus).Error; err != nil {
		return dbError(c, err, "statistic")
	}
	for _, row := range byStatus {
		stat.QueriesByStatus[row.Status] = row.Total
	}

	if err := db.Model(&model.TourPackageQuery{}).
		Where("status = ? AND period_from >= ? AND period_from <= ?", constants.QUERY_CONFIRMED, today, nextWeek).
		Count(&stat.UpcomingTours).Error; err != nil {
		return dbError(c, err, "statistic")
	}

	var err error
	if stat.TodayReceipts, err = sumReceipts(db, today); err != nil {
		return dbError(c, err, "statistic")
	}
	if stat.YesterdayReceipt, err = sumReceipts(db, yesterday); err != nil {
		return dbError(c, err, "statistic")
	}
	stat.ReceiptGrowth = utils.CalculateGrowth(stat.TodayReceipts, stat.YesterdayReceipt)

	if err := db.Model(&model.Inquiry{}).Where("status = ?", constants.INQUIRY_PENDING).Count(&stat.OpenInquiries).Error; err != nil {
		return dbError(c, err, "statistic")
	}
	if err := db.Model(&model.CatalogProduct{}).Where("sync_status <> ?", constants.SYNC_SYNCED).Count(&stat.PendingCatalog).Error; err != nil {
		return dbError(c, err, "statistic")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, stat)
}
