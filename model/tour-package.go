package model

import "github.com/shopspring/decimal"

type TourPackage struct {
	DTO
	Name                    string          `gorm:"not null" json:"name"`
	Slug                    string          `gorm:"uniqueIndex" json:"slug"`
	LocationId              uint            `gorm:"not null;index" json:"locationId"`
	Location                *Location       `gorm:"foreignKey:LocationId" json:"location,omitempty"`
	TourCategory            string          `json:"tourCategory"`
	Duration                string          `json:"duration"`
	Price                   decimal.Decimal `gorm:"type:numeric(14,2);default:0" json:"price"`
	PricePerAdult           decimal.Decimal `gorm:"type:numeric(14,2);default:0" json:"pricePerAdult"`
	PricePerChildOrExtraBed decimal.Decimal `gorm:"type:numeric(14,2);default:0" json:"pricePerChildOrExtraBed"`
	PricePerChild5to12      decimal.Decimal `gorm:"type:numeric(14,2);default:0" json:"pricePerChild5to12"`
	PricePerChildBelow5     decimal.Decimal `gorm:"type:numeric(14,2);default:0" json:"pricePerChildBelow5"`
	Inclusions              string          `gorm:"type:text" json:"inclusions"`
	Exclusions              string          `gorm:"type:text" json:"exclusions"`
	ImportantNotes          string          `gorm:"type:text" json:"importantNotes"`
	PaymentPolicy           string          `gorm:"type:text" json:"paymentPolicy"`
	CancellationPolicy      string          `gorm:"type:text" json:"cancellationPolicy"`
	IsFeatured              bool            `gorm:"default:false" json:"isFeatured"`
	IsArchived              bool            `gorm:"default:false" json:"isArchived"`
	Images                  []Image         `gorm:"foreignKey:TourPackageId" json:"images"`
	Itineraries             []Itinerary     `gorm:"foreignKey:TourPackageId" json:"itineraries"`
}

type TourPackageInput struct {
	Name                    string           `validate:"required" json:"name"`
	LocationId              uint             `validate:"required" json:"locationId"`
	TourCategory            string           `json:"tourCategory"`
	Duration                string           `json:"duration"`
	Price                   decimal.Decimal  `json:"price"`
	PricePerAdult           decimal.Decimal  `json:"pricePerAdult"`
	PricePerChildOrExtraBed decimal.Decimal  `json:"pricePerChildOrExtraBed"`
	PricePerChild5to12      decimal.Decimal  `json:"pricePerChild5to12"`
	PricePerChildBelow5     decimal.Decimal  `json:"pricePerChildBelow5"`
	Inclusions              string           `json:"inclusions"`
	Exclusions              string           `json:"exclusions"`
	ImportantNotes          string           `json:"importantNotes"`
	PaymentPolicy           string           `json:"paymentPolicy"`
	CancellationPolicy      string           `json:"cancellationPolicy"`
	IsFeatured              bool             `json:"isFeatured"`
	IsArchived              bool             `json:"isArchived"`
	Images                  []ImageInput     `validate:"dive" json:"images"`
	Itineraries             []ItineraryInput `validate:"dive" json:"itineraries"`
}

type FilterTourPackage struct {
	Pagination
	SearchKey    string `query:"searchKey"`
	LocationId   uint   `query:"locationId"`
	TourCategory string `query:"tourCategory"`
	IsFeatured   *bool  `query:"isFeatured"`
	IsArchived   *bool  `query:"isArchived"`
}
