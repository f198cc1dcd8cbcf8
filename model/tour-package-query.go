package model

import (
	"travel_manager/utils"

	"github.com/shopspring/decimal"
)

type TourPackageQuery struct {
	DTO
	QueryNumber          string            `gorm:"uniqueIndex;not null" json:"queryNumber"`
	TourPackageQueryName string            `json:"tourPackageQueryName"`
	CustomerName         string            `gorm:"not null" json:"customerName"`
	CustomerNumber       string            `json:"customerNumber"`
	CustomerId           *uint             `gorm:"index" json:"customerId"`
	Customer             *Customer         `gorm:"foreignKey:CustomerId" json:"customer,omitempty"`
	AssociatePartnerId   *uint             `json:"associatePartnerId"`
	AssociatePartner     *AssociatePartner `gorm:"foreignKey:AssociatePartnerId" json:"associatePartner,omitempty"`
	LocationId           uint              `gorm:"not null;index" json:"locationId"`
	Location             *Location         `gorm:"foreignKey:LocationId" json:"location,omitempty"`
	TourPackageId        *uint             `json:"tourPackageId"`
	TourPackage          *TourPackage      `gorm:"foreignKey:TourPackageId" json:"tourPackage,omitempty"`
	NumAdults            int               `gorm:"not null;default:1" json:"numAdults"`
	NumChild5to12        int               `json:"numChild5to12"`
	NumChildBelow5       int               `json:"numChildBelow5"`
	PeriodFrom           utils.CustomDate  `gorm:"type:date;not null;index" json:"periodFrom"`
	PeriodTo             utils.CustomDate  `gorm:"type:date;not null" json:"periodTo"`
	Transport            string            `json:"transport"`
	PickupLocation       string            `json:"pickupLocation"`
	DropLocation         string            `json:"dropLocation"`
	TotalPrice           decimal.Decimal   `gorm:"type:numeric(14,2);default:0" json:"totalPrice"`
	Remarks              string            `gorm:"type:text" json:"remarks"`
	Status               string            `gorm:"not null;default:PENDING;index" json:"status"`
	IsFeatured           bool              `gorm:"default:false" json:"isFeatured"`
	IsArchived           bool              `gorm:"default:false" json:"isArchived"`

	Images          []Image          `gorm:"foreignKey:TourPackageQueryId" json:"images"`
	Itineraries     []Itinerary      `gorm:"foreignKey:TourPackageQueryId" json:"itineraries"`
	FlightDetails   []FlightTicket   `gorm:"foreignKey:TourPackageQueryId" json:"flightDetails"`
	PurchaseDetails []PurchaseDetail `gorm:"foreignKey:TourPackageQueryId" json:"purchaseDetails,omitempty"`
	SaleDetails     []SaleDetail     `gorm:"foreignKey:TourPackageQueryId" json:"saleDetails,omitempty"`
	PaymentDetails  []PaymentDetail  `gorm:"foreignKey:TourPackageQueryId" json:"paymentDetails,omitempty"`
	ReceiptDetails  []ReceiptDetail  `gorm:"foreignKey:TourPackageQueryId" json:"receiptDetails,omitempty"`
	ExpenseDetails  []ExpenseDetail  `gorm:"foreignKey:TourPackageQueryId" json:"expenseDetails,omitempty"`
	IncomeDetails   []IncomeDetail   `gorm:"foreignKey:TourPackageQueryId" json:"incomeDetails,omitempty"`
}

type TourPackageQueryInput struct {
	QueryNumber          string           `json:"queryNumber"`
	TourPackageQueryName string           `json:"tourPackageQueryName"`
	CustomerName         string           `validate:"required" json:"customerName"`
	CustomerNumber       string           `json:"customerNumber"`
	CustomerId           *uint            `json:"customerId"`
	AssociatePartnerId   *uint            `json:"associatePartnerId"`
	LocationId           uint             `validate:"required" json:"locationId"`
	TourPackageId        *uint            `json:"tourPackageId"`
	NumAdults            int              `validate:"min=1" json:"numAdults"`
	NumChild5to12        int              `validate:"min=0" json:"numChild5to12"`
	NumChildBelow5       int              `validate:"min=0" json:"numChildBelow5"`
	PeriodFrom           utils.CustomDate `json:"periodFrom"`
	PeriodTo             utils.CustomDate `json:"periodTo"`
	Transport            string           `json:"transport"`
	PickupLocation       string           `json:"pickupLocation"`
	DropLocation         string           `json:"dropLocation"`
	TotalPrice           decimal.Decimal  `json:"totalPrice"`
	Remarks              string           `json:"remarks"`
	IsFeatured           bool             `json:"isFeatured"`
	IsArchived           bool             `json:"isArchived"`
	Images               []ImageInput     `validate:"dive" json:"images"`
	Itineraries          []ItineraryInput `validate:"dive" json:"itineraries"`
}

// FromPackageInput không có địa điểm và lịch trình, hai thứ này lấy từ package
type FromPackageInput struct {
	TourPackageQueryName string           `json:"tourPackageQueryName"`
	CustomerName         string           `validate:"required" json:"customerName"`
	CustomerNumber       string           `json:"customerNumber"`
	CustomerId           *uint            `json:"customerId"`
	AssociatePartnerId   *uint            `json:"associatePartnerId"`
	NumAdults            int              `validate:"min=0" json:"numAdults"`
	NumChild5to12        int              `validate:"min=0" json:"numChild5to12"`
	NumChildBelow5       int              `validate:"min=0" json:"numChildBelow5"`
	PeriodFrom           utils.CustomDate `json:"periodFrom"`
	PeriodTo             utils.CustomDate `json:"periodTo"`
	Transport            string           `json:"transport"`
	PickupLocation       string           `json:"pickupLocation"`
	DropLocation         string           `json:"dropLocation"`
	TotalPrice           decimal.Decimal  `json:"totalPrice"`
	Remarks              string           `json:"remarks"`
}

// EditTourPackageQueryInput chỉ cập nhật field được gửi lên, mảng nil giữ nguyên
type EditTourPackageQueryInput struct {
	TourPackageQueryName *string           `json:"tourPackageQueryName"`
	CustomerName         *string           `validate:"omitempty,min=1" json:"customerName"`
	CustomerNumber       *string           `json:"customerNumber"`
	CustomerId           *uint             `json:"customerId"`
	AssociatePartnerId   *uint             `json:"associatePartnerId"`
	LocationId           *uint             `json:"locationId"`
	NumAdults            *int              `validate:"omitempty,min=1" json:"numAdults"`
	NumChild5to12        *int              `validate:"omitempty,min=0" json:"numChild5to12"`
	NumChildBelow5       *int              `validate:"omitempty,min=0" json:"numChildBelow5"`
	PeriodFrom           *utils.CustomDate `json:"periodFrom"`
	PeriodTo             *utils.CustomDate `json:"periodTo"`
	Transport            *string           `json:"transport"`
	PickupLocation       *string           `json:"pickupLocation"`
	DropLocation         *string           `json:"dropLocation"`
	TotalPrice           *decimal.Decimal  `json:"totalPrice"`
	Remarks              *string           `json:"remarks"`
	IsFeatured           *bool             `json:"isFeatured"`
	IsArchived           *bool             `json:"isArchived"`
	Images               *[]ImageInput     `validate:"omitempty,dive" json:"images"`
	Itineraries          *[]ItineraryInput `validate:"omitempty,dive" json:"itineraries"`
}

type QueryStatusInput struct {
	Status string `validate:"required,oneof=PENDING CONFIRMED CANCELLED COMPLETED" json:"status"`
}

type SendQueryInput struct {
	Email   string `validate:"required,email" json:"email"`
	Message string `json:"message"`
}

type FilterTourPackageQuery struct {
	Pagination
	SearchKey  string `query:"searchKey"`
	Status     string `query:"status"`
	LocationId uint   `query:"locationId"`
	Archived   *bool  `query:"archived"`
	From       string `query:"from"`
	To         string `query:"to"`
}
