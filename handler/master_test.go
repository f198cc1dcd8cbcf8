package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travel_manager/constants"
	"travel_manager/handler"
	"travel_manager/model"
	"travel_manager/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationSlugAndDuplicateLabel(t *testing.T) {
	env := newEnv(t)
	token := env.admin()

	res := env.do("POST", "/api/v1/locations", map[string]any{"label": "North East", "lat": 26.1, "lng": 91.7}, token)
	require.Equal(t, 201, res.status)
	assert.Equal(t, "north-east", res.data()["slug"])

	res = env.do("POST", "/api/v1/locations", map[string]any{"label": "north east"}, token)
	assert.Equal(t, 409, res.status)
	assert.Equal(t, "label", res.body["keyError"])
}

func TestDeleteLocationInUse(t *testing.T) {
	env := newEnv(t)
	token := env.admin()
	used := env.location("Ladakh")
	env.tourPackage("Leh Explorer", used, "32000")
	free := env.location("Sikkim")

	res := env.do("DELETE", "/api/v1/locations/"+itoa(used.ID), nil, token)
	assert.Equal(t, 409, res.status)
	assert.Equal(t, "locationId", res.body["keyError"])

	res = env.do("DELETE", "/api/v1/locations/"+itoa(free.ID), nil, token)
	assert.Equal(t, 200, res.status)

	var count int64
	env.db.Model(&model.Location{}).Where("id = ?", free.ID).Count(&count)
	assert.Zero(t, count)
}

func TestSupplierNameConflictIncludesDeleted(t *testing.T) {
	env := newEnv(t)
	token := env.staff("MANAGER")

	res := env.do("POST", "/api/v1/suppliers", map[string]string{"name": "Blue Sky Travels"}, token)
	require.Equal(t, 201, res.status)
	supplierId := id(res.data()["id"])

	res = env.do("POST", "/api/v1/suppliers", map[string]string{"name": "BLUE SKY TRAVELS"}, token)
	assert.Equal(t, 409, res.status)
	assert.Equal(t, "name", res.body["keyError"])

	require.Equal(t, 200, env.do("DELETE", "/api/v1/suppliers/"+itoa(supplierId), nil, token).status)
	res = env.do("POST", "/api/v1/suppliers", map[string]string{"name": "Blue Sky Travels"}, token)
	assert.Equal(t, 409, res.status, "soft deleted names stay reserved")
}

func TestHotelDefaultsDestination(t *testing.T) {
	env := newEnv(t)
	token := env.admin()
	loc := env.location("Munnar")

	res := env.do("POST", "/api/v1/hotels", map[string]any{
		"name":       "Tea Valley Resort",
		"locationId": loc.ID,
		"images":     []map[string]string{{"url": "https://img.example/tea.jpg"}},
	}, token)
	require.Equal(t, 201, res.status)
	assert.Equal(t, "Munnar", res.data()["destination"])

	var images int64
	env.db.Model(&model.Image{}).Where("hotel_id = ?", id(res.data()["id"])).Count(&images)
	assert.Equal(t, int64(1), images)
}

func TestPlacesAutocompleteProxy(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/autocomplete/v3", r.URL.Path)
		assert.Equal(t, "goa", r.URL.Query().Get("text"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"ref_id":"p1","display":"Goa, India"}]`))
	}))
	defer provider.Close()

	env := newEnv(t)
	token := env.admin()

	assert.Equal(t, 400, env.do("GET", "/api/v1/places/autocomplete", nil, token).status)
	assert.Equal(t, 503, env.do("GET", "/api/v1/places/autocomplete?text=goa", nil, token).status)

	env = newEnv(t, func(d *handler.Dependencies) {
		d.Places = utils.NewPlacesClient(provider.URL, "key")
	})
	token = env.admin()
	res := env.do("GET", "/api/v1/places/autocomplete?text=goa", nil, token)
	require.Equal(t, 200, res.status)
	assert.Contains(t, string(res.raw), "Goa, India")
}

func TestDashboardStatistic(t *testing.T) {
	env := newEnv(t)
	loc := env.location("Rajasthan")
	env.query(loc, constants.QUERY_PENDING, "1000")
	env.query(loc, constants.QUERY_PENDING, "2000")
	env.query(loc, constants.QUERY_CANCELLED, "3000")
	require.NoError(t, env.db.Create(&model.Inquiry{CustomerName: "Ravi", Phone: "9000000001", LocationId: loc.ID, Status: constants.INQUIRY_PENDING}).Error)
	q := env.query(loc, constants.QUERY_CONFIRMED, "5000")
	today := utils.NewCustomDate(time.Now())
	yesterday := utils.NewCustomDate(time.Now().AddDate(0, 0, -1))
	for _, r := range []model.ReceiptDetail{
		{TourPackageQueryId: q.ID, ReceiptDate: today, Amount: dec("100.25")},
		{TourPackageQueryId: q.ID, ReceiptDate: today, Amount: dec("50.25")},
		{TourPackageQueryId: q.ID, ReceiptDate: yesterday, Amount: dec("100")},
	} {
		require.NoError(t, env.db.Create(&r).Error)
	}

	res := env.do("GET", "/api/v1/statistic", nil, env.staff(constants.ROLE_SALES))
	require.Equal(t, 200, res.status, string(res.raw))
	byStatus := res.data()["queriesByStatus"].(map[string]any)
	assert.EqualValues(t, 2, byStatus[constants.QUERY_PENDING])
	assert.EqualValues(t, 1, byStatus[constants.QUERY_CANCELLED])
	assert.EqualValues(t, 0, byStatus[constants.QUERY_COMPLETED])
	assert.EqualValues(t, 1, res.data()["openInquiries"])
	assert.True(t, dec("150.5").Equal(dec(res.data()["todayReceipts"].(string))))
	assert.True(t, dec("50.5").Equal(dec(res.data()["receiptGrowthPct"].(string))))

	assert.Equal(t, 401, env.do("GET", "/api/v1/statistic", nil, "").status)
}
