package helper

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"travel_manager/constants"
	"travel_manager/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCatalogClient(t *testing.T, url string) *GraphCatalogClient {
	client, err := NewCatalogClient(CatalogClientConfig{
		BaseURL:     url,
		Version:     "v19.0",
		CatalogID:   "cat-1",
		AccessToken: "token",
		Timeout:     2 * time.Second,
		RetryCount:  2,
	}, zap.NewNop())
	require.NoError(t, err)
	client.http.SetRetryWaitTime(time.Millisecond).SetRetryMaxWaitTime(5 * time.Millisecond)
	return client
}

func TestCatalogClientRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/v19.0/cat-1/products", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		if n == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = r.ParseForm()
		assert.Equal(t, "KSH-01", r.PostForm.Get("retailer_id"))
		assert.Equal(t, "1500000", r.PostForm.Get("price"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"remote-42"}`))
	}))
	defer srv.Close()

	client := newTestCatalogClient(t, srv.URL)
	id, err := client.UpsertProduct(context.Background(), &model.CatalogProduct{
		RetailerId: "KSH-01", Name: "Kashmir", Price: dec("15000"), Currency: "INR", Availability: "in stock",
	})
	require.NoError(t, err)
	assert.Equal(t, "remote-42", id)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestCatalogClientSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid parameter","type":"OAuthException","code":100}}`))
	}))
	defer srv.Close()

	client := newTestCatalogClient(t, srv.URL)
	_, err := client.UpsertProduct(context.Background(), &model.CatalogProduct{RetailerId: "X", Price: dec("1")})

	var apiErr *CatalogAPIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, 100, apiErr.Code)
	assert.Equal(t, "Invalid parameter", apiErr.Message)
}

func TestCatalogClientListAndDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet:
			assert.Equal(t, "10", r.URL.Query().Get("limit"))
			w.Write([]byte(`{"data":[{"id":"1","retailer_id":"A","name":"Goa"}],"paging":{"cursors":{"after":"c2"}}}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/v19.0/gone":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.Write([]byte(`{"success":true}`))
		}
	}))
	defer srv.Close()

	client := newTestCatalogClient(t, srv.URL)
	page, err := client.ListProducts(context.Background(), 10, "")
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "A", page.Data[0].RetailerId)
	assert.Equal(t, "c2", page.Paging.Cursors.After)

	assert.NoError(t, client.DeleteProduct(context.Background(), "remote-1"))
	assert.NoError(t, client.DeleteProduct(context.Background(), "gone"))
}

func TestNewCatalogClientRequiresCredentials(t *testing.T) {
	_, err := NewCatalogClient(CatalogClientConfig{BaseURL: "http://x"}, nil)
	assert.ErrorIs(t, err, ErrCatalogNotConfigured)
}

type fakeCatalogClient struct {
	fail    map[string]bool
	deleted []string
}

func (f *fakeCatalogClient) UpsertProduct(_ context.Context, p *model.CatalogProduct) (string, error) {
	if f.fail[p.RetailerId] {
		return "", &CatalogAPIError{StatusCode: 400, Message: "rejected"}
	}
	return "ext-" + p.RetailerId, nil
}

func (f *fakeCatalogClient) DeleteProduct(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCatalogClient) ListProducts(context.Context, int, string) (*RemoteProductPage, error) {
	return &RemoteProductPage{}, nil
}

func TestCatalogSyncerSyncPendingAndPublish(t *testing.T) {
	db := setupDB(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	sub := rdb.Subscribe(context.Background(), constants.CATALOG_SYNC_CHANNEL)
	defer sub.Close()
	_, err := sub.Receive(context.Background())
	require.NoError(t, err)

	products := []model.CatalogProduct{
		{RetailerId: "OK-1", Name: "Goa", Price: dec("9000"), Currency: "INR", Availability: "in stock", SyncStatus: constants.SYNC_PENDING},
		{RetailerId: "BAD-1", Name: "Bad", Price: dec("1"), Currency: "INR", Availability: "in stock", SyncStatus: constants.SYNC_FAILED, SyncAttempts: 1},
		{RetailerId: "DONE-1", Name: "Done", Price: dec("1"), Currency: "INR", Availability: "in stock", SyncStatus: constants.SYNC_SYNCED},
	}
	require.NoError(t, db.Create(&products).Error)

	fake := &fakeCatalogClient{fail: map[string]bool{"BAD-1": true}}
	syncer := NewCatalogSyncer(fake, rdb, 3, zap.NewNop())

	result, err := syncer.SyncPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.CatalogSyncResult{Total: 2, Synced: 1, Failed: 1}, result)

	var ok, bad model.CatalogProduct
	db.Where("retailer_id = ?", "OK-1").First(&ok)
	db.Where("retailer_id = ?", "BAD-1").First(&bad)
	assert.Equal(t, constants.SYNC_SYNCED, ok.SyncStatus)
	assert.Equal(t, "ext-OK-1", ok.ExternalId)
	assert.NotNil(t, ok.LastSyncedAt)
	assert.Equal(t, constants.SYNC_FAILED, bad.SyncStatus)
	assert.Equal(t, 2, bad.SyncAttempts)
	assert.Contains(t, bad.LastError, "rejected")

	msg, err := sub.ReceiveMessage(context.Background())
	require.NoError(t, err)
	var ev model.CatalogSyncEvent
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &ev))
	assert.Equal(t, SyncActionUpsert, ev.Action)

	// hết lượt thử thì cron bỏ qua
	db.Model(&model.CatalogProduct{}).Where("id = ?", bad.ID).Update("sync_attempts", 3)
	result, err = syncer.RetryFailed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
}

func TestCatalogSyncerRemoveDeletesRemoteFirst(t *testing.T) {
	db := setupDB(t)
	fake := &fakeCatalogClient{}
	syncer := NewCatalogSyncer(fake, nil, 3, zap.NewNop())

	p := model.CatalogProduct{RetailerId: "R-1", Name: "x", Price: dec("1"), ExternalId: "ext-R-1", SyncStatus: constants.SYNC_SYNCED}
	require.NoError(t, db.Create(&p).Error)

	require.NoError(t, syncer.Remove(context.Background(), &p))
	assert.Equal(t, []string{"ext-R-1"}, fake.deleted)

	var count int64
	db.Model(&model.CatalogProduct{}).Count(&count)
	assert.Zero(t, count)

	var removed model.CatalogProduct
	require.NoError(t, db.Unscoped().First(&removed, p.ID).Error)
	assert.True(t, removed.DeletedAt.Valid)
	assert.Contains(t, removed.RetailerId, "R-1-deleted-")

	again := model.CatalogProduct{RetailerId: "R-1", Name: "x", Price: dec("1")}
	assert.NoError(t, db.Create(&again).Error)
}

func TestCatalogSyncerRemoveReportsDatabaseError(t *testing.T) {
	db := setupDB(t)
	syncer := NewCatalogSyncer(&fakeCatalogClient{}, nil, 3, zap.NewNop())
	p := model.CatalogProduct{RetailerId: "LOCAL-1", Name: "x", Price: dec("1")}
	require.NoError(t, db.Create(&p).Error)

	require.NoError(t, db.Migrator().DropTable(&model.CatalogProduct{}))
	assert.Error(t, syncer.Remove(context.Background(), &p))
}

func TestCatalogSyncerDisabled(t *testing.T) {
	syncer := NewCatalogSyncer(nil, nil, 0, nil)
	assert.False(t, syncer.Enabled())
	_, err := syncer.SyncPending(context.Background())
	assert.Error(t, err)
}
