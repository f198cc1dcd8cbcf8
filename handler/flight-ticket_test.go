package handler_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"travel_manager/constants"
	"travel_manager/handler"
	"travel_manager/model"
	"travel_manager/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePDF struct {
	html string
}

func (f *fakePDF) RenderPDF(_ context.Context, html string) ([]byte, error) {
	f.html = html
	return []byte("%PDF-1.4 fake"), nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []utils.MailMessage
}

func (m *fakeMailer) Send(msg utils.MailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) messages() []utils.MailMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]utils.MailMessage(nil), m.sent...)
}

type fakeFiles struct {
	keys []string
}

func (f *fakeFiles) Put(_ context.Context, key string, _ []byte, _ string) error {
	f.keys = append(f.keys, key)
	return nil
}

func (f *fakeFiles) PresignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://files.example/" + key, nil
}

func ticketBody(pnr string) map[string]any {
	return map[string]any{
		"pnr":              pnr,
		"airlineName":      "IndiGo",
		"flightNumber":     "6E-203",
		"departureAirport": "DEL",
		"arrivalAirport":   "GOI",
		"departureTime":    "2026-03-10T06:00:00+05:30",
		"arrivalTime":      "2026-03-10T08:45:00+05:30",
		"fareAmount":       "5400",
		"taxAmount":        "600",
		"passengers":       []map[string]string{{"name": "Asha Rao"}, {"name": "Kabir Rao", "type": "CHILD"}},
	}
}

func TestFlightTicketLifecycle(t *testing.T) {
	env := newEnv(t)
	token := env.staff(constants.ROLE_SALES)

	res := env.do("POST", "/api/v1/flight-tickets", ticketBody("ab12cd"), token)
	require.Equal(t, 201, res.status, string(res.raw))
	ticket := res.data()
	assert.Equal(t, "AB12CD", ticket["pnr"])
	assert.Equal(t, constants.TICKET_CONFIRMED, ticket["status"])
	assert.True(t, dec("6000").Equal(dec(ticket["totalAmount"].(string))))
	passengers := ticket["passengers"].([]any)
	require.Len(t, passengers, 2)
	assert.Equal(t, "ADULT", passengers[0].(map[string]any)["type"])

	res = env.do("POST", "/api/v1/flight-tickets", ticketBody("AB12CD"), token)
	assert.Equal(t, 409, res.status)
	assert.Equal(t, "pnr", res.body["keyError"])

	res = env.do("GET", "/api/v1/flight-tickets/pnr/ab12cd", nil, token)
	require.Equal(t, 200, res.status)

	edit := ticketBody("AB12CD")
	edit["passengers"] = []map[string]string{{"name": "Asha Rao"}}
	edit["status"] = constants.TICKET_RESCHEDULED
	res = env.do("PUT", "/api/v1/flight-tickets/"+itoa(id(ticket["id"])), edit, token)
	require.Equal(t, 200, res.status, string(res.raw))
	assert.Len(t, res.data()["passengers"], 1)
	assert.Equal(t, constants.TICKET_RESCHEDULED, res.data()["status"])

	res = env.do("DELETE", "/api/v1/flight-tickets/"+itoa(id(ticket["id"])), nil, token)
	require.Equal(t, 200, res.status)

	// xoá cứng nên PNR dùng lại được
	res = env.do("POST", "/api/v1/flight-tickets", ticketBody("AB12CD"), token)
	assert.Equal(t, 201, res.status)

	var orphans int64
	env.db.Unscoped().Model(&model.FlightPassenger{}).Count(&orphans)
	assert.EqualValues(t, 2, orphans)
}

func TestFlightTicketRejectsBadTimes(t *testing.T) {
	env := newEnv(t)
	token := env.staff(constants.ROLE_SALES)

	body := ticketBody("XY9876")
	body["arrivalTime"] = "2026-03-10T05:00:00+05:30"
	res := env.do("POST", "/api/v1/flight-tickets", body, token)
	assert.Equal(t, 400, res.status)
	assert.Equal(t, "arrivalTime", res.body["keyError"])

	body = ticketBody("XY9876")
	body["passengers"] = []map[string]string{}
	assert.Equal(t, 400, env.do("POST", "/api/v1/flight-tickets", body, token).status)
}

func TestTicketPDF(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		env := newEnv(t)
		token := env.staff(constants.ROLE_SALES)
		require.Equal(t, 201, env.do("POST", "/api/v1/flight-tickets", ticketBody("PDF001"), token).status)

		res := env.do("GET", "/api/v1/flight-tickets/PDF001/pdf", nil, token)
		assert.Equal(t, 503, res.status)
	})

	t.Run("inline and archived", func(t *testing.T) {
		pdf := &fakePDF{}
		files := &fakeFiles{}
		env := newEnv(t, func(d *handler.Dependencies) {
			d.PDF = pdf
			d.Files = files
		})
		token := env.staff(constants.ROLE_SALES)
		require.Equal(t, 201, env.do("POST", "/api/v1/flight-tickets", ticketBody("PDF002"), token).status)

		res := env.do("GET", "/api/v1/flight-tickets/PDF002/pdf", nil, token)
		require.Equal(t, 200, res.status)
		assert.Equal(t, "application/pdf", res.header["Content-Type"])
		assert.True(t, strings.HasPrefix(string(res.raw), "%PDF"))
		assert.Contains(t, pdf.html, "PDF002")

		res = env.do("GET", "/api/v1/flight-tickets/PDF002/pdf?archive=true", nil, token)
		require.Equal(t, 200, res.status)
		require.Len(t, files.keys, 1)
		assert.Contains(t, res.data()["url"], files.keys[0])
	})
}

func TestSendQueryEmailsQuotation(t *testing.T) {
	mailer := &fakeMailer{}
	env := newEnv(t, func(d *handler.Dependencies) {
		d.PDF = &fakePDF{}
		d.Mailer = mailer
	})
	token := env.staff(constants.ROLE_SALES)
	q := env.query(env.location("Andaman"), constants.QUERY_PENDING, "80000")

	res := env.do("POST", "/api/v1/tourPackageQuery/"+itoa(q.ID)+"/send", map[string]string{"email": "asha@example.com"}, token)
	require.Equal(t, 200, res.status, string(res.raw))

	sent := mailer.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"asha@example.com"}, sent[0].To)
	assert.Contains(t, sent[0].Subject, q.QueryNumber)
	require.Len(t, sent[0].Attachments, 1)
	assert.Equal(t, q.QueryNumber+".pdf", sent[0].Attachments[0].Name)
}
