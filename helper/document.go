package helper

import (
	"context"
	"errors"
	"fmt"

	"travel_manager/model"
	"travel_manager/utils"
)

var ErrPDFNotConfigured = errors.New("pdf renderer is not configured")

const qrSize = 256

type ticketView struct {
	Agency string
	Ticket model.FlightTicket
	QRCode string
}

type quoteView struct {
	Agency string
	Query  model.TourPackageQuery
	QRCode string
}

// FlightTicketHTML render vé kèm QR của PNR
func FlightTicketHTML(agency string, t model.FlightTicket) (string, error) {
	qr, err := utils.QRDataURI(t.PNR, qrSize)
	if err != nil {
		return "", fmt.Errorf("ticket qr: %w", err)
	}
	return utils.RenderTemplate("flight_ticket.html", ticketView{Agency: agency, Ticket: t, QRCode: qr})
}

func QuoteHTML(agency string, q model.TourPackageQuery) (string, error) {
	qr, err := utils.QRDataURI(q.QueryNumber, qrSize)
	if err != nil {
		return "", fmt.Errorf("quote qr: %w", err)
	}
	return utils.RenderTemplate("quote.html", quoteView{Agency: agency, Query: q, QRCode: qr})
}

func RenderFlightTicketPDF(ctx context.Context, r utils.PDFRenderer, agency string, t model.FlightTicket) ([]byte, error) {
	if r == nil {
		return nil, ErrPDFNotConfigured
	}
	html, err := FlightTicketHTML(agency, t)
	if err != nil {
		return nil, err
	}
	return r.RenderPDF(ctx, html)
}

func RenderQuotePDF(ctx context.Context, r utils.PDFRenderer, agency string, q model.TourPackageQuery) ([]byte, error) {
	if r == nil {
		return nil, ErrPDFNotConfigured
	}
	html, err := QuoteHTML(agency, q)
	if err != nil {
		return nil, err
	}
	return r.RenderPDF(ctx, html)
}
