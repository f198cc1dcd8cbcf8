package helper

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"travel_manager/constants"
	"travel_manager/database"
	"travel_manager/model"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrSyncInProgress = errors.New("catalog sync already running")

const (
	SyncActionUpsert = "SYNC"
	SyncActionDelete = "DELETE"
)

// CatalogSyncer ghi trạng thái đồng bộ vào DB và phát sự kiện qua redis
type CatalogSyncer struct {
	client      CatalogClient
	rdb         *redis.Client
	maxAttempts int
	logger      *zap.Logger
	running     chan struct{}
}

func NewCatalogSyncer(client CatalogClient, rdb *redis.Client, maxAttempts int, logger *zap.Logger) *CatalogSyncer {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if logger == nil {
		logger = zap.L()
	}
	return &CatalogSyncer{
		client:      client,
		rdb:         rdb,
		maxAttempts: maxAttempts,
		logger:      logger,
		running:     make(chan struct{}, 1),
	}
}

func (s *CatalogSyncer) Enabled() bool {
	return s != nil && s.client != nil
}

func (s *CatalogSyncer) Client() CatalogClient {
	return s.client
}

// SyncProduct đẩy một sản phẩm, cập nhật SYNCED hoặc FAILED
func (s *CatalogSyncer) SyncProduct(ctx context.Context, p *model.CatalogProduct) error {
	if !s.Enabled() {
		return ErrCatalogNotConfigured
	}

	externalID, err := s.client.UpsertProduct(ctx, p)
	now := time.Now()
	if err != nil {
		p.SyncStatus = constants.SYNC_FAILED
		p.SyncAttempts++
		p.LastError = err.Error()
		if dbErr := database.DB.Model(&model.CatalogProduct{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
			"sync_status":   p.SyncStatus,
			"sync_attempts": p.SyncAttempts,
			"last_error":    p.LastError,
		}).Error; dbErr != nil {
			s.logger.Error("save catalog sync failure", zap.Uint("productId", p.ID), zap.Error(dbErr))
		}
		s.publish(ctx, model.CatalogSyncEvent{
			ProductId: p.ID, RetailerId: p.RetailerId, Action: SyncActionUpsert,
			Status: p.SyncStatus, Error: p.LastError, At: now,
		})
		return err
	}

	p.SyncStatus = constants.SYNC_SYNCED
	p.ExternalId = externalID
	p.SyncAttempts = 0
	p.LastError = ""
	p.LastSyncedAt = &now
	if err := database.DB.Model(&model.CatalogProduct{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"sync_status":    p.SyncStatus,
		"external_id":    p.ExternalId,
		"sync_attempts":  0,
		"last_error":     "",
		"last_synced_at": now,
	}).Error; err != nil {
		s.logger.Error("save catalog sync result", zap.Uint("productId", p.ID), zap.Error(err))
		return err
	}
	s.publish(ctx, model.CatalogSyncEvent{
		ProductId: p.ID, RetailerId: p.RetailerId, Action: SyncActionUpsert,
		Status: p.SyncStatus, At: now,
	})
	return nil
}

// SyncPending đẩy tất cả sản phẩm PENDING và FAILED
func (s *CatalogSyncer) SyncPending(ctx context.Context) (model.CatalogSyncResult, error) {
	if !s.Enabled() {
		return model.CatalogSyncResult{}, ErrCatalogNotConfigured
	}
	var products []model.CatalogProduct
	if err := database.DB.Where("sync_status IN ?", []string{constants.SYNC_PENDING, constants.SYNC_FAILED}).
		Order("id ASC").Find(&products).Error; err != nil {
		return model.CatalogSyncResult{}, err
	}
	return s.syncBatch(ctx, products)
}

// RetryFailed chạy từ cron, chỉ lấy FAILED còn lượt thử
func (s *CatalogSyncer) RetryFailed(ctx context.Context) (model.CatalogSyncResult, error) {
	if !s.Enabled() {
		return model.CatalogSyncResult{}, ErrCatalogNotConfigured
	}
	var products []model.CatalogProduct
	if err := database.DB.Where("sync_status = ? AND sync_attempts < ?", constants.SYNC_FAILED, s.maxAttempts).
		Order("id ASC").Find(&products).Error; err != nil {
		return model.CatalogSyncResult{}, err
	}
	return s.syncBatch(ctx, products)
}

func (s *CatalogSyncer) syncBatch(ctx context.Context, products []model.CatalogProduct) (model.CatalogSyncResult, error) {
	if !s.Enabled() {
		return model.CatalogSyncResult{}, ErrCatalogNotConfigured
	}
	select {
	case s.running <- struct{}{}:
		defer func() { <-s.running }()
	default:
		return model.CatalogSyncResult{}, ErrSyncInProgress
	}

	result := model.CatalogSyncResult{Total: len(products)}
	for i := range products {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		if err := s.SyncProduct(ctx, &products[i]); err != nil {
			result.Failed++
			continue
		}
		result.Synced++
	}
	s.logger.Info("catalog sync finished",
		zap.Int("total", result.Total), zap.Int("synced", result.Synced), zap.Int("failed", result.Failed))
	return result, nil
}

// Remove xoá sản phẩm trên catalog trước, thành công mới xoá bản ghi
func (s *CatalogSyncer) Remove(ctx context.Context, p *model.CatalogProduct) error {
	if p.ExternalId != "" {
		if !s.Enabled() {
			return ErrCatalogNotConfigured
		}
		if err := s.client.DeleteProduct(ctx, p.ExternalId); err != nil {
			return err
		}
	}
	// đổi retailer id cùng transaction với xoá để id được giải phóng cho lần tạo sau
	if err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.CatalogProduct{}).Where("id = ?", p.ID).
			Update("retailer_id", p.RetailerId+"-deleted-"+time.Now().Format("20060102150405")).Error; err != nil {
			return err
		}
		return tx.Delete(&model.CatalogProduct{}, p.ID).Error
	}); err != nil {
		s.logger.Error("catalog product delete failed", zap.Uint("productId", p.ID), zap.String("retailerId", p.RetailerId), zap.Error(err))
		return err
	}
	s.publish(ctx, model.CatalogSyncEvent{
		ProductId: p.ID, RetailerId: p.RetailerId, Action: SyncActionDelete,
		Status: constants.SYNC_SYNCED, At: time.Now(),
	})
	return nil
}

func (s *CatalogSyncer) publish(ctx context.Context, ev model.CatalogSyncEvent) {
	if s == nil || s.rdb == nil {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, constants.CATALOG_SYNC_CHANNEL, payload).Err(); err != nil {
		s.logger.Warn("publish catalog event failed", zap.Error(err))
	}
}
