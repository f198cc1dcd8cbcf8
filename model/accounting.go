package model

import (
	"travel_manager/utils"

	"github.com/shopspring/decimal"
)

type PurchaseDetail struct {
	DTO
	TourPackageQueryId uint             `gorm:"not null;index" json:"tourPackageQueryId"`
	SupplierId         uint             `gorm:"not null;index" json:"supplierId"`
	Supplier           *Supplier        `gorm:"foreignKey:SupplierId" json:"supplier,omitempty"`
	PurchaseDate       utils.CustomDate `gorm:"type:date;not null" json:"purchaseDate"`
	Price              decimal.Decimal  `gorm:"type:numeric(14,2);not null" json:"price"`
	GstAmount          decimal.Decimal  `gorm:"type:numeric(14,2);default:0" json:"gstAmount"`
	GstPercentage      decimal.Decimal  `gorm:"type:numeric(5,2);default:0" json:"gstPercentage"`
	BillNumber         string           `json:"billNumber"`
	Description        string           `json:"description"`
	PurchaseReturns    []PurchaseReturn `gorm:"foreignKey:PurchaseDetailId" json:"purchaseReturns,omitempty"`
}

type SaleDetail struct {
	DTO
	TourPackageQueryId uint             `gorm:"not null;index" json:"tourPackageQueryId"`
	CustomerId         *uint            `json:"customerId"`
	Customer           *Customer        `gorm:"foreignKey:CustomerId" json:"customer,omitempty"`
	SaleDate           utils.CustomDate `gorm:"type:date;not null" json:"saleDate"`
	SalePrice          decimal.Decimal  `gorm:"type:numeric(14,2);not null" json:"salePrice"`
	GstAmount          decimal.Decimal  `gorm:"type:numeric(14,2);default:0" json:"gstAmount"`
	GstPercentage      decimal.Decimal  `gorm:"type:numeric(5,2);default:0" json:"gstPercentage"`
	InvoiceNumber      string           `json:"invoiceNumber"`
	Description        string           `json:"description"`
}

type PaymentDetail struct {
	DTO
	TourPackageQueryId uint             `gorm:"not null;index" json:"tourPackageQueryId"`
	SupplierId         *uint            `json:"supplierId"`
	Supplier           *Supplier        `gorm:"foreignKey:SupplierId" json:"supplier,omitempty"`
	PaymentDate        utils.CustomDate `gorm:"type:date;not null" json:"paymentDate"`
	Amount             decimal.Decimal  `gorm:"type:numeric(14,2);not null" json:"amount"`
	Method             string           `json:"method"`
	TransactionId      string           `json:"transactionId"`
	Note               string           `json:"note"`
}

type ReceiptDetail struct {
	DTO
	TourPackageQueryId uint             `gorm:"not null;index" json:"tourPackageQueryId"`
	CustomerId         *uint            `json:"customerId"`
	Customer           *Customer        `gorm:"foreignKey:CustomerId" json:"customer,omitempty"`
	ReceiptDate        utils.CustomDate `gorm:"type:date;not null" json:"receiptDate"`
	Amount             decimal.Decimal  `gorm:"type:numeric(14,2);not null" json:"amount"`
	Method             string           `json:"method"`
	Reference          string           `gorm:"index" json:"reference"`
	Note               string           `json:"note"`
}

type ExpenseDetail struct {
	DTO
	TourPackageQueryId uint             `gorm:"not null;index" json:"tourPackageQueryId"`
	ExpenseCategoryId  uint             `gorm:"not null;index" json:"expenseCategoryId"`
	ExpenseCategory    *ExpenseCategory `gorm:"foreignKey:ExpenseCategoryId" json:"expenseCategory,omitempty"`
	ExpenseDate        utils.CustomDate `gorm:"type:date;not null" json:"expenseDate"`
	Amount             decimal.Decimal  `gorm:"type:numeric(14,2);not null" json:"amount"`
	Description        string           `json:"description"`
}

type IncomeDetail struct {
	DTO
	TourPackageQueryId uint             `gorm:"not null;index" json:"tourPackageQueryId"`
	IncomeCategoryId   uint             `gorm:"not null;index" json:"incomeCategoryId"`
	IncomeCategory     *IncomeCategory  `gorm:"foreignKey:IncomeCategoryId" json:"incomeCategory,omitempty"`
	IncomeDate         utils.CustomDate `gorm:"type:date;not null" json:"incomeDate"`
	Amount             decimal.Decimal  `gorm:"type:numeric(14,2);not null" json:"amount"`
	Description        string           `json:"description"`
}

type PurchaseReturn struct {
	DTO
	PurchaseDetailId uint             `gorm:"not null;index" json:"purchaseDetailId"`
	PurchaseDetail   *PurchaseDetail  `gorm:"foreignKey:PurchaseDetailId" json:"purchaseDetail,omitempty"`
	ReturnDate       utils.CustomDate `gorm:"type:date;not null" json:"returnDate"`
	Amount           decimal.Decimal  `gorm:"type:numeric(14,2);not null" json:"amount"`
	GstAmount        decimal.Decimal  `gorm:"type:numeric(14,2);default:0" json:"gstAmount"`
	Reason           string           `json:"reason"`
	Reference        string           `json:"reference"`
	Status           string           `gorm:"default:PENDING" json:"status"`
}

// === Input form kế toán ===

type PurchaseDetailInput struct {
	Id            uint             `json:"id"`
	SupplierId    uint             `json:"supplierId"`
	PurchaseDate  utils.CustomDate `json:"purchaseDate"`
	Price         decimal.Decimal  `json:"price"`
	GstAmount     decimal.Decimal  `json:"gstAmount"`
	GstPercentage decimal.Decimal  `json:"gstPercentage"`
	BillNumber    string           `json:"billNumber"`
	Description   string           `json:"description"`
}

type SaleDetailInput struct {
	CustomerId    *uint            `json:"customerId"`
	SaleDate      utils.CustomDate `json:"saleDate"`
	SalePrice     decimal.Decimal  `json:"salePrice"`
	GstAmount     decimal.Decimal  `json:"gstAmount"`
	GstPercentage decimal.Decimal  `json:"gstPercentage"`
	InvoiceNumber string           `json:"invoiceNumber"`
	Description   string           `json:"description"`
}

type PaymentDetailInput struct {
	SupplierId    *uint            `json:"supplierId"`
	PaymentDate   utils.CustomDate `json:"paymentDate"`
	Amount        decimal.Decimal  `json:"amount"`
	Method        string           `json:"method"`
	TransactionId string           `json:"transactionId"`
	Note          string           `json:"note"`
}

type ReceiptDetailInput struct {
	CustomerId  *uint            `json:"customerId"`
	ReceiptDate utils.CustomDate `json:"receiptDate"`
	Amount      decimal.Decimal  `json:"amount"`
	Method      string           `json:"method"`
	Reference   string           `json:"reference"`
	Note        string           `json:"note"`
}

type ExpenseDetailInput struct {
	ExpenseCategoryId uint             `json:"expenseCategoryId"`
	ExpenseDate       utils.CustomDate `json:"expenseDate"`
	Amount            decimal.Decimal  `json:"amount"`
	Description       string           `json:"description"`
}

type IncomeDetailInput struct {
	IncomeCategoryId uint             `json:"incomeCategoryId"`
	IncomeDate       utils.CustomDate `json:"incomeDate"`
	Amount           decimal.Decimal  `json:"amount"`
	Description      string           `json:"description"`
}

// AccountingInput: mảng nil là không gửi lên (giữ nguyên), mảng rỗng là xoá hết
type AccountingInput struct {
	PurchaseDetails *[]PurchaseDetailInput `json:"purchaseDetails"`
	SaleDetails     *[]SaleDetailInput     `json:"saleDetails"`
	PaymentDetails  *[]PaymentDetailInput  `json:"paymentDetails"`
	ReceiptDetails  *[]ReceiptDetailInput  `json:"receiptDetails"`
	ExpenseDetails  *[]ExpenseDetailInput  `json:"expenseDetails"`
	IncomeDetails   *[]IncomeDetailInput   `json:"incomeDetails"`
}

type AccountingTotals struct {
	TotalPurchases  decimal.Decimal `json:"totalPurchases"`
	TotalSales      decimal.Decimal `json:"totalSales"`
	TotalPayments   decimal.Decimal `json:"totalPayments"`
	TotalReceipts   decimal.Decimal `json:"totalReceipts"`
	TotalExpenses   decimal.Decimal `json:"totalExpenses"`
	TotalIncome     decimal.Decimal `json:"totalIncome"`
	SupplierBalance decimal.Decimal `json:"supplierBalance"`
	CustomerBalance decimal.Decimal `json:"customerBalance"`
}

type AccountingResponse struct {
	TourPackageQueryId uint             `json:"tourPackageQueryId"`
	QueryNumber        string           `json:"queryNumber"`
	PurchaseDetails    []PurchaseDetail `json:"purchaseDetails"`
	SaleDetails        []SaleDetail     `json:"saleDetails"`
	PaymentDetails     []PaymentDetail  `json:"paymentDetails"`
	ReceiptDetails     []ReceiptDetail  `json:"receiptDetails"`
	ExpenseDetails     []ExpenseDetail  `json:"expenseDetails"`
	IncomeDetails      []IncomeDetail   `json:"incomeDetails"`
	Totals             AccountingTotals `json:"totals"`
}

type PurchaseReturnInput struct {
	PurchaseDetailId uint             `validate:"required" json:"purchaseDetailId"`
	ReturnDate       utils.CustomDate `json:"returnDate"`
	Amount           decimal.Decimal  `json:"amount"`
	GstAmount        decimal.Decimal  `json:"gstAmount"`
	Reason           string           `json:"reason"`
	Reference        string           `json:"reference"`
	Status           string           `validate:"omitempty,oneof=PENDING COMPLETED" json:"status"`
}

type FilterAccounting struct {
	Pagination
	From               string `query:"from"`
	To                 string `query:"to"`
	TourPackageQueryId uint   `query:"tourPackageQueryId"`
	SupplierId         uint   `query:"supplierId"`
}
