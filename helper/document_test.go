package helper

import (
	"context"
	"testing"
	"time"

	"travel_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	html string
}

func (f *fakeRenderer) RenderPDF(_ context.Context, html string) ([]byte, error) {
	f.html = html
	return []byte("%PDF-1.4 fake"), nil
}

func TestFlightTicketPDF(t *testing.T) {
	dep := time.Date(2026, 8, 1, 6, 30, 0, 0, time.UTC)
	ticket := model.FlightTicket{
		PNR: "AB12CD", AirlineName: "IndiGo", AirlineCode: "6E", FlightNumber: "6E-201",
		DepartureAirport: "DEL", ArrivalAirport: "SXR",
		DepartureTime: dep, ArrivalTime: dep.Add(90 * time.Minute),
		Status: "CONFIRMED", FareAmount: dec("4500"), TaxAmount: dec("620.5"), TotalAmount: dec("5120.5"),
		Passengers: []model.FlightPassenger{{Name: "Asha Rao", Type: "ADULT", SeatNumber: "12A"}},
	}

	r := &fakeRenderer{}
	pdf, err := RenderFlightTicketPDF(context.Background(), r, "Sunrise Travels", ticket)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(pdf))
	assert.Contains(t, r.html, "AB12CD")
	assert.Contains(t, r.html, "Asha Rao")
	assert.Contains(t, r.html, "5120.50")
	assert.Contains(t, r.html, "data:image/png;base64,")

	_, err = RenderFlightTicketPDF(context.Background(), nil, "x", ticket)
	assert.ErrorIs(t, err, ErrPDFNotConfigured)
}

func TestQuoteHTML(t *testing.T) {
	q := model.TourPackageQuery{
		QueryNumber: "TPQ-20260601-ABCDEF", CustomerName: "Meera", Status: "PENDING",
		PeriodFrom: mustDate(t, "2026-06-01"), PeriodTo: mustDate(t, "2026-06-05"),
		TotalPrice: dec("38000"),
		Itineraries: []model.Itinerary{{DayNumber: 1, ItineraryTitle: "Arrival in Srinagar",
			Activities: []model.Activity{{ActivityTitle: "Shikara ride"}}}},
	}
	html, err := QuoteHTML("Sunrise Travels", q)
	require.NoError(t, err)
	assert.Contains(t, html, "TPQ-20260601-ABCDEF")
	assert.Contains(t, html, "Arrival in Srinagar")
	assert.Contains(t, html, "Shikara ride")
}
