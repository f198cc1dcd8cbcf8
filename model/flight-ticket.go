package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type FlightTicket struct {
	DTO
	PNR                string            `gorm:"column:pnr;uniqueIndex;not null" json:"pnr"`
	AirlineName        string            `gorm:"not null" json:"airlineName"`
	AirlineCode        string            `json:"airlineCode"`
	FlightNumber       string            `gorm:"not null" json:"flightNumber"`
	DepartureAirport   string            `gorm:"not null" json:"departureAirport"`
	ArrivalAirport     string            `gorm:"not null" json:"arrivalAirport"`
	DepartureTime      time.Time         `gorm:"not null" json:"departureTime"`
	ArrivalTime        time.Time         `gorm:"not null" json:"arrivalTime"`
	TicketClass        string            `json:"ticketClass"`
	BaggageAllowance   string            `json:"baggageAllowance"`
	Status             string            `gorm:"not null;default:CONFIRMED" json:"status"`
	FareAmount         decimal.Decimal   `gorm:"type:numeric(14,2);default:0" json:"fareAmount"`
	TaxAmount          decimal.Decimal   `gorm:"type:numeric(14,2);default:0" json:"taxAmount"`
	TotalAmount        decimal.Decimal   `gorm:"type:numeric(14,2);default:0" json:"totalAmount"`
	BookingReference   string            `json:"bookingReference"`
	TourPackageQueryId *uint             `gorm:"index" json:"tourPackageQueryId"`
	Passengers         []FlightPassenger `gorm:"foreignKey:FlightTicketId" json:"passengers"`
}

type FlightPassenger struct {
	DTO
	FlightTicketId uint   `gorm:"not null;index" json:"flightTicketId"`
	Name           string `gorm:"not null" json:"name"`
	Type           string `gorm:"not null;default:ADULT" json:"type"`
	SeatNumber     string `json:"seatNumber"`
	ETicketNumber  string `json:"eTicketNumber"`
}

type FlightTicketInput struct {
	PNR                string                 `validate:"required,min=5,max=10" json:"pnr"`
	AirlineName        string                 `validate:"required" json:"airlineName"`
	AirlineCode        string                 `json:"airlineCode"`
	FlightNumber       string                 `validate:"required" json:"flightNumber"`
	DepartureAirport   string                 `validate:"required" json:"departureAirport"`
	ArrivalAirport     string                 `validate:"required" json:"arrivalAirport"`
	DepartureTime      time.Time              `validate:"required" json:"departureTime"`
	ArrivalTime        time.Time              `validate:"required" json:"arrivalTime"`
	TicketClass        string                 `json:"ticketClass"`
	BaggageAllowance   string                 `json:"baggageAllowance"`
	Status             string                 `validate:"omitempty,oneof=CONFIRMED CANCELLED RESCHEDULED" json:"status"`
	FareAmount         decimal.Decimal        `json:"fareAmount"`
	TaxAmount          decimal.Decimal        `json:"taxAmount"`
	TotalAmount        *decimal.Decimal       `json:"totalAmount"`
	BookingReference   string                 `json:"bookingReference"`
	TourPackageQueryId *uint                  `json:"tourPackageQueryId"`
	Passengers         []FlightPassengerInput `validate:"required,min=1,dive" json:"passengers"`
}

type FlightPassengerInput struct {
	Name          string `validate:"required" json:"name"`
	Type          string `validate:"omitempty,oneof=ADULT CHILD INFANT" json:"type"`
	SeatNumber    string `json:"seatNumber"`
	ETicketNumber string `json:"eTicketNumber"`
}

type FilterFlightTicket struct {
	Pagination
	SearchKey          string `query:"searchKey"`
	Status             string `query:"status"`
	TourPackageQueryId uint   `query:"tourPackageQueryId"`
}

// Normalize đưa PNR và mã sân bay về chữ hoa trước khi kiểm tra độ dài
func (in *FlightTicketInput) Normalize() {
	in.PNR = strings.ToUpper(strings.TrimSpace(in.PNR))
	in.DepartureAirport = strings.ToUpper(strings.TrimSpace(in.DepartureAirport))
	in.ArrivalAirport = strings.ToUpper(strings.TrimSpace(in.ArrivalAirport))
}
