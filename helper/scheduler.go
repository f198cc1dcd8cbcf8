package helper

import (
	"context"
	"time"

	"travel_manager/constants"
	"travel_manager/database"
	"travel_manager/model"
	"travel_manager/utils"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var (
	tourScheduler gocron.Scheduler
	catalogCron   *cron.Cron
)

// AutoCompleteTours chuyển query CONFIRMED đã qua ngày kết thúc sang COMPLETED
func AutoCompleteTours() (int64, error) {
	res := database.DB.Model(&model.TourPackageQuery{}).
		Where("status = ? AND period_to < ?", constants.QUERY_CONFIRMED, utils.Today()).
		Update("status", constants.QUERY_COMPLETED)
	if res.Error != nil {
		zap.L().Error("[CRON] auto complete tours failed", zap.Error(res.Error))
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		zap.L().Info("[CRON] tours completed", zap.Int64("count", res.RowsAffected))
	}
	return res.RowsAffected, nil
}

func StartTourStatusScheduler(loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	s, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return err
	}

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(func() {
			_, _ = AutoCompleteTours()
		}),
	)
	if err != nil {
		return err
	}

	tourScheduler = s
	s.Start()
	zap.L().Info("tour status scheduler started (00:05)")
	return nil
}

func StopTourStatusScheduler() {
	if tourScheduler != nil {
		if err := tourScheduler.Shutdown(); err != nil {
			zap.L().Warn("stop tour scheduler", zap.Error(err))
		}
		tourScheduler = nil
	}
}

// StartCatalogRetryCron quét lại sản phẩm FAILED mỗi 15 phút
func StartCatalogRetryCron(syncer *CatalogSyncer) error {
	if !syncer.Enabled() {
		zap.L().Info("catalog retry cron disabled, catalog not configured")
		return nil
	}
	c := cron.New()
	_, err := c.AddFunc("*/15 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if _, err := syncer.RetryFailed(ctx); err != nil && err != ErrSyncInProgress {
			zap.L().Error("[CRON] catalog retry failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}
	catalogCron = c
	c.Start()
	zap.L().Info("catalog retry cron started (*/15)")
	return nil
}

func StopCatalogRetryCron() {
	if catalogCron != nil {
		ctx := catalogCron.Stop()
		<-ctx.Done()
		catalogCron = nil
	}
}
