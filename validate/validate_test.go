package validate

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"travel_manager/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(path string, mw fiber.Handler, local string) *fiber.App {
	app := fiber.New()
	app.Post(path, mw, func(c *fiber.Ctx) error {
		return c.JSON(c.Locals(local))
	})
	return app
}

func post(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestGetById(t *testing.T) {
	app := fiber.New()
	app.Get("/x/:id", GetById("id"), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": c.Locals("inputId")})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/x/12", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/x/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestBodyReportsFieldErrors(t *testing.T) {
	app := newApp("/q", TourPackageQuery(), "inputTourPackageQuery")

	status, body := post(t, app, "/q", `{"customerName":"","locationId":1,"numAdults":0}`)
	assert.Equal(t, 400, status)
	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "customerName")
	assert.Contains(t, fields, "numAdults")
}

func TestTourPackageQueryPeriod(t *testing.T) {
	app := newApp("/q", TourPackageQuery(), "inputTourPackageQuery")

	status, body := post(t, app, "/q", `{"customerName":"Asha","locationId":1,"numAdults":2,"periodFrom":"2026-06-05","periodTo":"2026-06-01"}`)
	assert.Equal(t, 400, status)
	assert.Equal(t, "periodTo", body["keyError"])

	status, _ = post(t, app, "/q", `{"customerName":"Asha","locationId":1,"numAdults":2,"periodFrom":"2026-06-01","periodTo":"2026-06-05",
		"itineraries":[{"itineraryTitle":"a","dayNumber":1},{"itineraryTitle":"b","dayNumber":1}]}`)
	assert.Equal(t, 400, status)

	status, body = post(t, app, "/q", `{"customerName":"Asha","locationId":1,"numAdults":2,"periodFrom":"2026-06-01","periodTo":"2026-06-05"}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, "Asha", body["customerName"])
}

func TestAccountingErrorsList(t *testing.T) {
	app := newApp("/a", Accounting(), "inputAccounting")

	status, body := post(t, app, "/a", `{"saleDetails":[{"saleDate":"2026-01-01","salePrice":100},{"salePrice":-5}]}`)
	assert.Equal(t, 400, status)
	errs, ok := body["errors"].([]any)
	require.True(t, ok)
	first := errs[0].(map[string]any)
	assert.Equal(t, "saleDetails[1].saleDate", first["field"])

	status, _ = post(t, app, "/a", `{"saleDetails":[{"saleDate":"2026-01-01","salePrice":100}]}`)
	assert.Equal(t, 200, status)
}

func TestFlightTicketDefaults(t *testing.T) {
	app := fiber.New()
	app.Post("/f", FlightTicket(), func(c *fiber.Ctx) error {
		in := c.Locals("inputFlightTicket").(model.FlightTicketInput)
		return c.JSON(fiber.Map{"total": in.TotalAmount.String(), "status": in.Status, "type": in.Passengers[0].Type})
	})

	status, body := post(t, app, "/f", `{"pnr":"AB12CD","airlineName":"IndiGo","flightNumber":"6E-1","departureAirport":"DEL","arrivalAirport":"GOI",
		"departureTime":"2026-08-01T06:00:00Z","arrivalTime":"2026-08-01T08:30:00Z","fareAmount":4000,"taxAmount":550.5,
		"passengers":[{"name":"Asha"}]}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, "4550.5", body["total"])
	assert.Equal(t, "CONFIRMED", body["status"])
	assert.Equal(t, "ADULT", body["type"])

	status, body = post(t, app, "/f", `{"pnr":"AB12CD","airlineName":"IndiGo","flightNumber":"6E-1","departureAirport":"DEL","arrivalAirport":"GOI",
		"departureTime":"2026-08-01T06:00:00Z","arrivalTime":"2026-08-01T05:00:00Z","passengers":[{"name":"Asha"}]}`)
	assert.Equal(t, 400, status)
	assert.Equal(t, "arrivalTime", body["keyError"])

	status, _ = post(t, app, "/f", `{"pnr":"AB12CD","airlineName":"IndiGo","flightNumber":"6E-1","departureAirport":"DEL","arrivalAirport":"GOI",
		"departureTime":"2026-08-01T06:00:00Z","arrivalTime":"2026-08-01T08:00:00Z","passengers":[]}`)
	assert.Equal(t, 400, status)
}

func TestPasswordsMustMatch(t *testing.T) {
	app := newApp("/p", ChangePassword(), "inputChangePassword")
	status, body := post(t, app, "/p", `{"currentPassword":"old","newPassword":"abcdef","repeatPassword":"abcdeg"}`)
	assert.Equal(t, 400, status)
	assert.Equal(t, "repeatPassword", body["keyError"])
}

func TestCatalogProductRequiresNameWithoutPackage(t *testing.T) {
	app := newApp("/c", CatalogProduct(), "inputCatalogProduct")

	status, _ := post(t, app, "/c", `{"description":"x"}`)
	assert.Equal(t, 400, status)

	status, body := post(t, app, "/c", `{"fromTourPackageId":3}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, "in stock", body["availability"])

	status, _ = post(t, app, "/c", `{"name":"Goa","price":100,"availability":"sold"}`)
	assert.Equal(t, 400, status)
}

func TestBodyNormalizesBeforeValidating(t *testing.T) {
	app := newApp("/login", CustomerLogin(), "inputCustomerLogin")
	status, body := post(t, app, "/login", `{"email":"  Priya@Example.com ","password":"x"}`)
	require.Equal(t, 200, status)
	assert.Equal(t, "priya@example.com", body["email"])

	ticket := `{"pnr":%q,"airlineName":"IndiGo","flightNumber":"6E-1","departureAirport":"del","arrivalAirport":"goi",
		"departureTime":"2026-03-10T06:00:00Z","arrivalTime":"2026-03-10T08:00:00Z","passengers":[{"name":"Asha"}]}`
	app = newApp("/t", FlightTicket(), "inputFlightTicket")

	// sau khi cắt khoảng trắng chỉ còn 4 ký tự
	status, body = post(t, app, "/t", fmt.Sprintf(ticket, "  ab12  "))
	assert.Equal(t, 400, status)
	assert.Contains(t, body["fields"], "pnr")

	status, body = post(t, app, "/t", fmt.Sprintf(ticket, " ab12c "))
	require.Equal(t, 200, status)
	assert.Equal(t, "AB12C", body["pnr"])
	assert.Equal(t, "DEL", body["departureAirport"])
}
