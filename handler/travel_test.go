package handler_test

import (
	"testing"
	"time"

	"travel_manager/constants"
	"travel_manager/handler"
	"travel_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTravelPackagesCacheHitAndInvalidate(t *testing.T) {
	env := newEnv(t)
	token := env.staff(constants.ROLE_SALES)
	loc := env.location("Kerala")
	env.tourPackage("Alleppey Houseboat", loc, "9000")

	res := env.do("GET", "/api/v1/travel/packages", nil, "")
	require.Equal(t, 200, res.status, string(res.raw))
	assert.Equal(t, "MISS", res.header["X-Cache"])
	assert.Len(t, res.rows(), 1)

	res = env.do("GET", "/api/v1/travel/packages", nil, "")
	assert.Equal(t, "HIT", res.header["X-Cache"])
	assert.Len(t, res.rows(), 1)

	// sửa từ admin xoá cache
	body := map[string]any{"name": "Varkala Cliffs", "locationId": loc.ID, "pricePerAdult": "7000"}
	require.Equal(t, 201, env.do("POST", "/api/v1/tourPackages", body, token).status)

	res = env.do("GET", "/api/v1/travel/packages", nil, "")
	assert.Equal(t, "MISS", res.header["X-Cache"])
	assert.Len(t, res.rows(), 2)
}

func TestTravelHidesArchivedPackages(t *testing.T) {
	env := newEnv(t)
	loc := env.location("Goa")
	env.tourPackage("North Goa", loc, "5000")
	hidden := env.tourPackage("Old Goa", loc, "4000")
	env.db.Model(&hidden).Update("is_archived", true)

	res := env.do("GET", "/api/v1/travel/packages?isArchived=true", nil, "")
	require.Equal(t, 200, res.status)
	require.Len(t, res.rows(), 1)
	assert.Equal(t, "North Goa", res.rows()[0].(map[string]any)["name"])

	assert.Equal(t, 404, env.do("GET", "/api/v1/travel/packages/old-goa", nil, "").status)

	res = env.do("GET", "/api/v1/travel/packages/North-Goa", nil, "")
	require.Equal(t, 200, res.status)
	assert.Equal(t, "north-goa", res.data()["slug"])

	res = env.do("GET", "/api/v1/travel/destinations", nil, "")
	require.Equal(t, 200, res.status)
	list := res.body["data"].([]any)
	require.Len(t, list, 1)
	assert.EqualValues(t, 1, list[0].(map[string]any)["packageCount"])

	res = env.do("GET", "/api/v1/travel/destinations/goa", nil, "")
	require.Equal(t, 200, res.status)
	assert.Len(t, res.data()["packages"], 1)

	assert.Equal(t, 404, env.do("GET", "/api/v1/travel/destinations/nowhere", nil, "").status)
}

func TestCreateInquiry(t *testing.T) {
	mailer := &fakeMailer{}
	env := newEnv(t, func(d *handler.Dependencies) { d.SimpleMailer = mailer })
	loc := env.location("Sikkim")
	other := env.location("Assam")
	pkg := env.tourPackage("Gangtok Escape", loc, "11000")

	body := map[string]any{
		"customerName":  "Nisha",
		"phone":         "9811122233",
		"email":         "Nisha@Example.com",
		"locationId":    loc.ID,
		"tourPackageId": pkg.ID,
		"journeyDate":   "2026-11-20",
	}
	res := env.do("POST", "/api/v1/travel/inquiries", body, "")
	require.Equal(t, 201, res.status, string(res.raw))
	assert.Equal(t, "nisha@example.com", res.data()["email"])
	assert.EqualValues(t, 1, res.data()["numAdults"])
	assert.Nil(t, res.data()["customerId"])

	assert.Eventually(t, func() bool { return len(mailer.messages()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"nisha@example.com"}, mailer.messages()[0].To)

	body["locationId"] = other.ID
	res = env.do("POST", "/api/v1/travel/inquiries", body, "")
	assert.Equal(t, 400, res.status)
	assert.Equal(t, "tourPackageId", res.body["keyError"])

	delete(body, "tourPackageId")
	body["locationId"] = 999
	res = env.do("POST", "/api/v1/travel/inquiries", body, "")
	assert.Equal(t, 400, res.status)
	assert.Equal(t, "locationId", res.body["keyError"])
}

func TestInquiryLinkedToLoggedInCustomer(t *testing.T) {
	env := newEnv(t)
	loc := env.location("Punjab")
	customer, token := env.customer("amrit@example.com")

	body := map[string]any{"customerName": "Amrit", "phone": "9800011122", "locationId": loc.ID}
	res := env.do("POST", "/api/v1/travel/inquiries", body, token)
	require.Equal(t, 201, res.status, string(res.raw))
	assert.EqualValues(t, customer.ID, res.data()["customerId"])

	// token hỏng vẫn cho gửi như khách vãng lai
	res = env.do("POST", "/api/v1/travel/inquiries", body, "not-a-token")
	require.Equal(t, 201, res.status)
	assert.Nil(t, res.data()["customerId"])
}

func TestConvertInquiry(t *testing.T) {
	env := newEnv(t)
	token := env.staff(constants.ROLE_SALES)
	loc := env.location("Uttarakhand")
	pkg := env.tourPackage("Rishikesh Rafting", loc, "6000")
	journey := date(t, "2026-10-02")

	inquiry := model.Inquiry{
		CustomerName: "Dev", Phone: "9700000000", LocationId: loc.ID,
		TourPackageId: &pkg.ID, JourneyDate: &journey, NumAdults: 3, Status: constants.INQUIRY_PENDING,
	}
	require.NoError(t, env.db.Create(&inquiry).Error)
	path := "/api/v1/inquiries/" + itoa(inquiry.ID)

	res := env.do("PATCH", path+"/status", map[string]string{"status": constants.INQUIRY_CONVERTED}, token)
	assert.Equal(t, 409, res.status)

	res = env.do("PATCH", path+"/status", map[string]string{"status": constants.INQUIRY_CONTACTED}, token)
	require.Equal(t, 200, res.status)

	res = env.do("POST", path+"/convert", nil, token)
	require.Equal(t, 201, res.status, string(res.raw))
	q := res.data()["query"].(map[string]any)
	assert.Equal(t, "2026-10-02", q["periodFrom"])
	assert.EqualValues(t, pkg.ID, q["tourPackageId"])
	assert.True(t, dec("18000").Equal(dec(q["totalPrice"].(string))))

	var stored model.Inquiry
	require.NoError(t, env.db.First(&stored, inquiry.ID).Error)
	assert.Equal(t, constants.INQUIRY_CONVERTED, stored.Status)
	require.NotNil(t, stored.TourPackageQueryId)
	assert.EqualValues(t, id(q["id"]), *stored.TourPackageQueryId)

	assert.Equal(t, 409, env.do("POST", path+"/convert", nil, token).status)
	assert.Equal(t, 409, env.do("PATCH", path+"/status", map[string]string{"status": constants.INQUIRY_CANCELLED}, token).status)
}

func TestConvertInquiryWithoutDateUsesToday(t *testing.T) {
	env := newEnv(t)
	token := env.staff(constants.ROLE_SALES)
	loc := env.location("Meghalaya")
	inquiry := model.Inquiry{CustomerName: "Iba", Phone: "9600000000", LocationId: loc.ID, Status: constants.INQUIRY_PENDING}
	require.NoError(t, env.db.Create(&inquiry).Error)

	res := env.do("POST", "/api/v1/inquiries/"+itoa(inquiry.ID)+"/convert", nil, token)
	require.Equal(t, 201, res.status, string(res.raw))
	q := res.data()["query"].(map[string]any)
	assert.Equal(t, time.Now().Format("2006-01-02"), q["periodFrom"])
	assert.Equal(t, "Iba", q["customerName"])
}
