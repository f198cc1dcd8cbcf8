package helper

import (
	"fmt"
	"testing"

	"travel_manager/database"
	"travel_manager/model"
	"travel_manager/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		sqlDB.Close()
	})
	return db
}

func mustDate(t *testing.T, s string) utils.CustomDate {
	t.Helper()
	d, err := utils.ParseCustomDate(s)
	require.NoError(t, err)
	return d
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var seedSeq int

func seedQuery(t *testing.T, db *gorm.DB, status, from, to string) model.TourPackageQuery {
	t.Helper()
	seedSeq++
	loc := model.Location{Label: fmt.Sprintf("Loc %d", seedSeq), Slug: fmt.Sprintf("loc-%d", seedSeq)}
	require.NoError(t, db.Create(&loc).Error)
	q := model.TourPackageQuery{
		QueryNumber:  fmt.Sprintf("TPQ-TEST-%06d", seedSeq),
		CustomerName: "Asha",
		LocationId:   loc.ID,
		NumAdults:    2,
		PeriodFrom:   mustDate(t, from),
		PeriodTo:     mustDate(t, to),
		Status:       status,
	}
	require.NoError(t, db.Create(&q).Error)
	return q
}
