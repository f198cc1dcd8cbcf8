package handler

import (
	"context"
	"sync"

	"travel_manager/constants"
	"travel_manager/database"
	"travel_manager/model"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// catalogHub giữ các client đang theo dõi tiến trình đồng bộ catalog
type catalogHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	once    sync.Once
}

var hub = &catalogHub{clients: make(map[*websocket.Conn]bool)}

// listen sub kênh redis một lần cho cả process
func (h *catalogHub) listen() {
	h.once.Do(func() {
		if deps.Redis == nil {
			return
		}
		pubsub := deps.Redis.Subscribe(context.Background(), constants.CATALOG_SYNC_CHANNEL)
		go func() {
			defer pubsub.Close()
			for msg := range pubsub.Channel() {
				h.broadcast([]byte(msg.Payload))
			}
		}()
	})
}

func (h *catalogHub) broadcast(payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		// Nếu client lỗi → xoá
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *catalogHub) add(c *websocket.Conn) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
}

func (h *catalogHub) remove(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

type syncStatusCount struct {
	SyncStatus string `json:"syncStatus"`
	Count      int64  `json:"count"`
}

// CatalogSyncSocket gửi số lượng theo trạng thái rồi đẩy từng sự kiện đồng bộ
func CatalogSyncSocket(c *websocket.Conn) {
	hub.listen()

	var counts []syncStatusCount
	if err := database.DB.Model(&model.CatalogProduct{}).
		Select("sync_status, COUNT(*) AS count").Group("sync_status").
		Scan(&counts).Error; err != nil {
		log().Warn("catalog snapshot", zap.Error(err))
	}
	if err := c.WriteJSON(map[string]any{"type": "snapshot", "counts": counts}); err != nil {
		c.Close()
		return
	}

	hub.add(c)
	defer func() {
		hub.remove(c)
		c.Close()
	}()

	// chỉ đọc để phát hiện client đóng kết nối
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
