package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type CatalogProduct struct {
	DTO
	TourPackageId *uint           `gorm:"index" json:"tourPackageId"`
	TourPackage   *TourPackage    `gorm:"foreignKey:TourPackageId" json:"tourPackage,omitempty"`
	RetailerId    string          `gorm:"uniqueIndex;not null" json:"retailerId"`
	Name          string          `gorm:"not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Price         decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"price"`
	Currency      string          `gorm:"not null;default:INR" json:"currency"`
	ImageUrl      string          `json:"imageUrl"`
	Url           string          `json:"url"`
	Availability  string          `json:"availability"`
	ExternalId    string          `json:"externalId"`
	SyncStatus    string          `gorm:"not null;default:PENDING;index" json:"syncStatus"`
	SyncAttempts  int             `gorm:"default:0" json:"syncAttempts"`
	LastError     string          `gorm:"type:text" json:"lastError"`
	LastSyncedAt  *time.Time      `json:"lastSyncedAt"`
}

type CatalogProductInput struct {
	FromTourPackageId *uint            `json:"fromTourPackageId"`
	RetailerId        string           `json:"retailerId"`
	Name              string           `validate:"required_without=FromTourPackageId" json:"name"`
	Description       string           `json:"description"`
	Price             *decimal.Decimal `validate:"required_without=FromTourPackageId" json:"price"`
	Currency          string           `validate:"omitempty,len=3" json:"currency"`
	ImageUrl          string           `validate:"omitempty,url" json:"imageUrl"`
	Url               string           `validate:"omitempty,url" json:"url"`
	Availability      string           `validate:"omitempty,oneof='in stock' 'out of stock' preorder" json:"availability"`
}

type FilterCatalogProduct struct {
	Pagination
	SyncStatus string `query:"syncStatus"`
	SearchKey  string `query:"searchKey"`
}

// CatalogSyncEvent được publish qua redis cho websocket
type CatalogSyncEvent struct {
	ProductId  uint      `json:"productId"`
	RetailerId string    `json:"retailerId"`
	Action     string    `json:"action"` // SYNC, DELETE
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	At         time.Time `json:"at"`
}

type CatalogSyncResult struct {
	Total  int `json:"total"`
	Synced int `json:"synced"`
	Failed int `json:"failed"`
}
