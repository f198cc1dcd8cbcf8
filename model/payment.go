package model

import "github.com/shopspring/decimal"

// Payment là giao dịch đặt cọc online cho một tour package query
type Payment struct {
	DTO
	TourPackageQueryId uint              `gorm:"not null;index" json:"tourPackageQueryId"`
	TourPackageQuery   *TourPackageQuery `gorm:"foreignKey:TourPackageQueryId" json:"-"`
	Amount             decimal.Decimal   `gorm:"type:numeric(14,2);not null" json:"amount"`
	PaymentCode        string            `gorm:"uniqueIndex" json:"paymentCode"`
	Status             string            `gorm:"default:PENDING" json:"status"`
	Method             string            `json:"method"`
	GatewayRef         string            `json:"gatewayRef"`
}

type CreatePaymentInput struct {
	TourPackageQueryId uint            `json:"tourPackageQueryId" validate:"required,gt=0"`
	Amount             decimal.Decimal `json:"amount"`
	Method             string          `json:"method" validate:"omitempty,oneof=CARD UPI NETBANKING"`
}

type GatewayConfig struct {
	MerchantCode string
	HashSecret   string
	BaseURL      string
	ReturnURL    string
	IPNURL       string
}

type PaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	OrderInfo string          `json:"orderInfo"`
	TxnRef    string          `json:"txnRef"`
	IPAddr    string          `json:"ipAddr"`
}

type PaymentResponse struct {
	IsSuccess bool   `json:"isSuccess"`
	TxnRef    string `json:"txnRef"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"` // 00 = thành công
	Message   string `json:"message"`
}
