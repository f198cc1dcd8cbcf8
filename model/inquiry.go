package model

import (
	"strings"

	"travel_manager/utils"
)

type Inquiry struct {
	DTO
	CustomerName       string            `gorm:"not null" json:"customerName"`
	Phone              string            `gorm:"not null" json:"phone"`
	Email              string            `json:"email"`
	LocationId         uint              `gorm:"not null;index" json:"locationId"`
	Location           *Location         `gorm:"foreignKey:LocationId" json:"location,omitempty"`
	TourPackageId      *uint             `json:"tourPackageId"`
	TourPackage        *TourPackage      `gorm:"foreignKey:TourPackageId" json:"tourPackage,omitempty"`
	JourneyDate        *utils.CustomDate `gorm:"type:date" json:"journeyDate"`
	NumAdults          int               `gorm:"default:1" json:"numAdults"`
	NumChildren        int               `json:"numChildren"`
	Remarks            string            `gorm:"type:text" json:"remarks"`
	Status             string            `gorm:"not null;default:PENDING;index" json:"status"`
	CustomerId         *uint             `json:"customerId"`
	TourPackageQueryId *uint             `json:"tourPackageQueryId"`
}

type InquiryInput struct {
	CustomerName  string            `validate:"required" json:"customerName"`
	Phone         string            `validate:"required,min=6,max=20" json:"phone"`
	Email         string            `validate:"omitempty,email" json:"email"`
	LocationId    uint              `validate:"required" json:"locationId"`
	TourPackageId *uint             `json:"tourPackageId"`
	JourneyDate   *utils.CustomDate `json:"journeyDate"`
	NumAdults     int               `validate:"min=0" json:"numAdults"`
	NumChildren   int               `validate:"min=0" json:"numChildren"`
	Remarks       string            `validate:"max=2000" json:"remarks"`
}

func (in *InquiryInput) Normalize() {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.Phone = utils.NormalizePhone(in.Phone)
	in.Email = utils.NormalizeEmail(in.Email)
}

type InquiryStatusInput struct {
	Status string `validate:"required,oneof=PENDING CONTACTED CONVERTED CANCELLED" json:"status"`
}

type FilterInquiry struct {
	Pagination
	SearchKey  string `query:"searchKey"`
	Status     string `query:"status"`
	LocationId uint   `query:"locationId"`
}

// MyBooking là query của khách kèm QR mã booking
type MyBooking struct {
	TourPackageQuery
	QRCode string `json:"qrCode"`
}
