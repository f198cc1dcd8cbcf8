package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRDataURI(t *testing.T) {
	png, err := GenerateQRCode("PNR123", 128)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])

	uri, err := QRDataURI("PNR123", 128)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}

func TestRenderTemplate(t *testing.T) {
	html, err := RenderTemplate("reset_password.html", map[string]string{"Name": "Asha", "Link": "https://example.com/reset?token=abc"})
	require.NoError(t, err)
	assert.Contains(t, html, "Hello Asha")
	assert.Contains(t, html, "token=abc")

	_, err = RenderTemplate("missing.html", nil)
	assert.Error(t, err)
}

func TestRenderFlightTicketTemplate(t *testing.T) {
	type passenger struct{ Name, Type, SeatNumber, ETicketNumber string }
	ticket := struct {
		PNR, Status, AirlineName, AirlineCode, FlightNumber, TicketClass string
		DepartureAirport, ArrivalAirport, BaggageAllowance, BookingReference string
		DepartureTime, ArrivalTime                                           time.Time
		FareAmount, TaxAmount, TotalAmount                                   decimal.Decimal
		Passengers                                                           []passenger
	}{
		PNR: "AB12CD", Status: "CONFIRMED", AirlineName: "IndiGo", FlightNumber: "6E-201",
		DepartureAirport: "DEL", ArrivalAirport: "SXR",
		DepartureTime: time.Date(2025, 5, 1, 6, 30, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC),
		FareAmount:    decimal.NewFromInt(4500), TaxAmount: decimal.NewFromInt(500), TotalAmount: decimal.NewFromInt(5000),
		Passengers: []passenger{{Name: "Ravi Kumar", Type: "ADULT"}},
	}
	html, err := RenderTemplate("flight_ticket.html", map[string]any{"Agency": "Travel Desk", "Ticket": ticket, "QRCode": ""})
	require.NoError(t, err)
	assert.Contains(t, html, "PNR: AB12CD")
	assert.Contains(t, html, "Ravi Kumar")
	assert.Contains(t, html, "5000.00")
	assert.Contains(t, html, "01 May 2025 06:30")
}

func TestMailersRequireHost(t *testing.T) {
	msg := MailMessage{To: []string{"a@example.com"}, Subject: "x", Text: "y"}
	assert.Error(t, NewGomailMailer(SMTPConfig{}).Send(msg))
	assert.Error(t, NewSimpleMailer(SMTPConfig{}).Send(msg))
}

func TestPlacesClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.URL.Query().Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/autocomplete/v3":
			_, _ = w.Write([]byte(`[{"ref_id":"ref-1","display":"Srinagar, Kashmir"}]`))
		case "/place/v3":
			assert.Equal(t, "ref-1", r.URL.Query().Get("refid"))
			_, _ = w.Write([]byte(`{"ref_id":"ref-1","lat":34.08,"lng":74.79}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewPlacesClient(srv.URL, "key")
	body, status, err := client.Autocomplete(context.Background(), "srinagar")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "Srinagar")

	lat, lng, err := client.Geocode(context.Background(), "srinagar")
	require.NoError(t, err)
	assert.InDelta(t, 34.08, lat, 0.001)
	assert.InDelta(t, 74.79, lng, 0.001)

	_, _, err = NewPlacesClient(srv.URL, "").Autocomplete(context.Background(), "x")
	assert.ErrorIs(t, err, ErrPlacesNotConfigured)
}
