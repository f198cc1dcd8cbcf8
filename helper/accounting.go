package helper

import (
	"errors"
	"fmt"

	"travel_manager/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccountingFieldError trỏ tới ô lỗi dạng <tab>[<index>].<field>
type AccountingFieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type accountingErrors []AccountingFieldError

func (e *accountingErrors) add(tab string, i int, field, msg string) {
	*e = append(*e, AccountingFieldError{Field: fmt.Sprintf("%s[%d].%s", tab, i, field), Message: msg})
}

func (e *accountingErrors) date(tab string, i int, field string, d interface{ IsZero() bool }) {
	if d.IsZero() {
		e.add(tab, i, field, "is required")
	}
}

func (e *accountingErrors) positive(tab string, i int, field string, v decimal.Decimal) {
	if !v.IsPositive() {
		e.add(tab, i, field, "must be greater than 0")
	}
}

func (e *accountingErrors) nonNegative(tab string, i int, field string, v decimal.Decimal) {
	if v.IsNegative() {
		e.add(tab, i, field, "must not be negative")
	}
}

// ValidateAccounting kiểm tra từng dòng của các mảng được gửi lên
func ValidateAccounting(in model.AccountingInput) []AccountingFieldError {
	var errs accountingErrors

	if in.PurchaseDetails != nil {
		for i, r := range *in.PurchaseDetails {
			if r.SupplierId == 0 {
				errs.add("purchaseDetails", i, "supplierId", "is required")
			}
			errs.date("purchaseDetails", i, "purchaseDate", r.PurchaseDate)
			errs.positive("purchaseDetails", i, "price", r.Price)
			errs.nonNegative("purchaseDetails", i, "gstAmount", r.GstAmount)
			errs.nonNegative("purchaseDetails", i, "gstPercentage", r.GstPercentage)
		}
	}
	if in.SaleDetails != nil {
		for i, r := range *in.SaleDetails {
			errs.date("saleDetails", i, "saleDate", r.SaleDate)
			errs.positive("saleDetails", i, "salePrice", r.SalePrice)
			errs.nonNegative("saleDetails", i, "gstAmount", r.GstAmount)
			errs.nonNegative("saleDetails", i, "gstPercentage", r.GstPercentage)
		}
	}
	if in.PaymentDetails != nil {
		for i, r := range *in.PaymentDetails {
			errs.date("paymentDetails", i, "paymentDate", r.PaymentDate)
			errs.positive("paymentDetails", i, "amount", r.Amount)
		}
	}
	if in.ReceiptDetails != nil {
		for i, r := range *in.ReceiptDetails {
			errs.date("receiptDetails", i, "receiptDate", r.ReceiptDate)
			errs.positive("receiptDetails", i, "amount", r.Amount)
		}
	}
	if in.ExpenseDetails != nil {
		for i, r := range *in.ExpenseDetails {
			if r.ExpenseCategoryId == 0 {
				errs.add("expenseDetails", i, "expenseCategoryId", "is required")
			}
			errs.date("expenseDetails", i, "expenseDate", r.ExpenseDate)
			errs.positive("expenseDetails", i, "amount", r.Amount)
		}
	}
	if in.IncomeDetails != nil {
		for i, r := range *in.IncomeDetails {
			if r.IncomeCategoryId == 0 {
				errs.add("incomeDetails", i, "incomeCategoryId", "is required")
			}
			errs.date("incomeDetails", i, "incomeDate", r.IncomeDate)
			errs.positive("incomeDetails", i, "amount", r.Amount)
		}
	}
	return errs
}

// AccountingConflictError là lỗi nghiệp vụ khi sửa mảng kế toán, Field trỏ tới dòng bị lỗi
type AccountingConflictError struct {
	Status  int
	Field   string
	Message string
}

func (e *AccountingConflictError) Error() string {
	return e.Field + " " + e.Message
}

var purchaseColumns = []string{"supplier_id", "purchase_date", "price", "gst_amount", "gst_percentage", "bill_number", "description"}

// syncPurchases sửa tại chỗ dòng có id, tạo dòng mới và xoá dòng không còn gửi lên.
// Dòng mua đã có phiếu trả hàng thì không được xoá và không được hạ giá dưới số đã trả
func syncPurchases(tx *gorm.DB, queryId uint, inputs []model.PurchaseDetailInput) error {
	var existing []model.PurchaseDetail
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("PurchaseReturns").
		Where("tour_package_query_id = ?", queryId).
		Order("id ASC").
		Find(&existing).Error; err != nil {
		return err
	}
	byId := make(map[uint]model.PurchaseDetail, len(existing))
	for _, p := range existing {
		byId[p.ID] = p
	}

	kept := make(map[uint]bool, len(inputs))
	for i, r := range inputs {
		row := model.PurchaseDetail{
			TourPackageQueryId: queryId, SupplierId: r.SupplierId, PurchaseDate: r.PurchaseDate,
			Price: r.Price, GstAmount: r.GstAmount, GstPercentage: r.GstPercentage,
			BillNumber: r.BillNumber, Description: r.Description,
		}
		if r.Id == 0 {
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			continue
		}

		old, ok := byId[r.Id]
		if !ok || kept[r.Id] {
			return &AccountingConflictError{
				Status: 400, Field: fmt.Sprintf("purchaseDetails[%d].id", i),
				Message: "is not a purchase row of this query",
			}
		}
		kept[r.Id] = true
		if returned := old.Price.Sub(NetPurchase(old)); r.Price.LessThan(returned) {
			return &AccountingConflictError{
				Status: 409, Field: fmt.Sprintf("purchaseDetails[%d].price", i),
				Message: "is below the returned amount " + returned.String(),
			}
		}
		if err := tx.Model(&model.PurchaseDetail{}).
			Where("id = ?", old.ID).
			Select(purchaseColumns).
			Updates(&row).Error; err != nil {
			return err
		}
	}

	for i, p := range existing {
		if kept[p.ID] {
			continue
		}
		if len(p.PurchaseReturns) > 0 {
			return &AccountingConflictError{
				Status: 409, Field: fmt.Sprintf("purchaseDetails[%d]", i),
				Message: "has purchase returns and cannot be removed",
			}
		}
		if err := tx.Unscoped().Delete(&model.PurchaseDetail{}, p.ID).Error; err != nil {
			return err
		}
	}
	return nil
}

// ReplaceAccounting thay các mảng được gửi lên, mảng nil giữ nguyên.
// Riêng purchaseDetails được đồng bộ theo id để giữ phiếu trả hàng
func ReplaceAccounting(tx *gorm.DB, queryId uint, in model.AccountingInput) error {
	if in.PurchaseDetails != nil {
		if err := syncPurchases(tx, queryId, *in.PurchaseDetails); err != nil {
			return err
		}
	}
	if in.SaleDetails != nil {
		if err := tx.Unscoped().Where("tour_package_query_id = ?", queryId).Delete(&model.SaleDetail{}).Error; err != nil {
			return err
		}
		rows := make([]model.SaleDetail, 0, len(*in.SaleDetails))
		for _, r := range *in.SaleDetails {
			rows = append(rows, model.SaleDetail{
				TourPackageQueryId: queryId, CustomerId: r.CustomerId, SaleDate: r.SaleDate,
				SalePrice: r.SalePrice, GstAmount: r.GstAmount, GstPercentage: r.GstPercentage,
				InvoiceNumber: r.InvoiceNumber, Description: r.Description,
			})
		}
		if err := createRows(tx, rows); err != nil {
			return err
		}
	}
	if in.PaymentDetails != nil {
		if err := tx.Unscoped().Where("tour_package_query_id = ?", queryId).Delete(&model.PaymentDetail{}).Error; err != nil {
			return err
		}
		rows := make([]model.PaymentDetail, 0, len(*in.PaymentDetails))
		for _, r := range *in.PaymentDetails {
			rows = append(rows, model.PaymentDetail{
				TourPackageQueryId: queryId, SupplierId: r.SupplierId, PaymentDate: r.PaymentDate,
				Amount: r.Amount, Method: r.Method, TransactionId: r.TransactionId, Note: r.Note,
			})
		}
		if err := createRows(tx, rows); err != nil {
			return err
		}
	}
	if in.ReceiptDetails != nil {
		if err := tx.Unscoped().Where("tour_package_query_id = ?", queryId).Delete(&model.ReceiptDetail{}).Error; err != nil {
			return err
		}
		rows := make([]model.ReceiptDetail, 0, len(*in.ReceiptDetails))
		for _, r := range *in.ReceiptDetails {
			rows = append(rows, model.ReceiptDetail{
				TourPackageQueryId: queryId, CustomerId: r.CustomerId, ReceiptDate: r.ReceiptDate,
				Amount: r.Amount, Method: r.Method, Reference: r.Reference, Note: r.Note,
			})
		}
		if err := createRows(tx, rows); err != nil {
			return err
		}
	}
	if in.ExpenseDetails != nil {
		if err := tx.Unscoped().Where("tour_package_query_id = ?", queryId).Delete(&model.ExpenseDetail{}).Error; err != nil {
			return err
		}
		rows := make([]model.ExpenseDetail, 0, len(*in.ExpenseDetails))
		for _, r := range *in.ExpenseDetails {
			rows = append(rows, model.ExpenseDetail{
				TourPackageQueryId: queryId, ExpenseCategoryId: r.ExpenseCategoryId,
				ExpenseDate: r.ExpenseDate, Amount: r.Amount, Description: r.Description,
			})
		}
		if err := createRows(tx, rows); err != nil {
			return err
		}
	}
	if in.IncomeDetails != nil {
		if err := tx.Unscoped().Where("tour_package_query_id = ?", queryId).Delete(&model.IncomeDetail{}).Error; err != nil {
			return err
		}
		rows := make([]model.IncomeDetail, 0, len(*in.IncomeDetails))
		for _, r := range *in.IncomeDetails {
			rows = append(rows, model.IncomeDetail{
				TourPackageQueryId: queryId, IncomeCategoryId: r.IncomeCategoryId,
				IncomeDate: r.IncomeDate, Amount: r.Amount, Description: r.Description,
			})
		}
		if err := createRows(tx, rows); err != nil {
			return err
		}
	}
	return nil
}

func createRows[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

// NetPurchase là giá mua trừ các phiếu trả hàng
func NetPurchase(p model.PurchaseDetail) decimal.Decimal {
	net := p.Price
	for _, r := range p.PurchaseReturns {
		net = net.Sub(r.Amount)
	}
	return net
}

func ComputeAccountingTotals(r model.AccountingResponse) model.AccountingTotals {
	var t model.AccountingTotals
	for _, p := range r.PurchaseDetails {
		t.TotalPurchases = t.TotalPurchases.Add(NetPurchase(p))
	}
	for _, s := range r.SaleDetails {
		t.TotalSales = t.TotalSales.Add(s.SalePrice)
	}
	for _, p := range r.PaymentDetails {
		t.TotalPayments = t.TotalPayments.Add(p.Amount)
	}
	for _, rc := range r.ReceiptDetails {
		t.TotalReceipts = t.TotalReceipts.Add(rc.Amount)
	}
	for _, e := range r.ExpenseDetails {
		t.TotalExpenses = t.TotalExpenses.Add(e.Amount)
	}
	for _, i := range r.IncomeDetails {
		t.TotalIncome = t.TotalIncome.Add(i.Amount)
	}
	t.SupplierBalance = t.TotalPurchases.Sub(t.TotalPayments)
	t.CustomerBalance = t.TotalSales.Sub(t.TotalReceipts)
	return t
}

// LoadAccounting đọc sáu mảng kế toán của một query kèm tổng
func LoadAccounting(db *gorm.DB, q model.TourPackageQuery) (model.AccountingResponse, error) {
	resp := model.AccountingResponse{
		TourPackageQueryId: q.ID,
		QueryNumber:        q.QueryNumber,
		PurchaseDetails:    []model.PurchaseDetail{},
		SaleDetails:        []model.SaleDetail{},
		PaymentDetails:     []model.PaymentDetail{},
		ReceiptDetails:     []model.ReceiptDetail{},
		ExpenseDetails:     []model.ExpenseDetail{},
		IncomeDetails:      []model.IncomeDetail{},
	}
	byQuery := func() *gorm.DB { return db.Where("tour_package_query_id = ?", q.ID).Order("id ASC") }

	if err := byQuery().Preload("Supplier").Preload("PurchaseReturns").Find(&resp.PurchaseDetails).Error; err != nil {
		return resp, err
	}
	if err := byQuery().Preload("Customer").Find(&resp.SaleDetails).Error; err != nil {
		return resp, err
	}
	if err := byQuery().Preload("Supplier").Find(&resp.PaymentDetails).Error; err != nil {
		return resp, err
	}
	if err := byQuery().Preload("Customer").Find(&resp.ReceiptDetails).Error; err != nil {
		return resp, err
	}
	if err := byQuery().Preload("ExpenseCategory").Find(&resp.ExpenseDetails).Error; err != nil {
		return resp, err
	}
	if err := byQuery().Preload("IncomeCategory").Find(&resp.IncomeDetails).Error; err != nil {
		return resp, err
	}
	resp.Totals = ComputeAccountingTotals(resp)
	return resp, nil
}

// ReturnableAmount là phần giá mua còn có thể trả, bỏ qua phiếu excludeId khi sửa
func ReturnableAmount(db *gorm.DB, purchase model.PurchaseDetail, excludeId uint) (decimal.Decimal, error) {
	var returns []model.PurchaseReturn
	q := db.Where("purchase_detail_id = ?", purchase.ID)
	if excludeId != 0 {
		q = q.Where("id != ?", excludeId)
	}
	if err := q.Find(&returns).Error; err != nil {
		return decimal.Zero, err
	}
	remaining := purchase.Price
	for _, r := range returns {
		remaining = remaining.Sub(r.Amount)
	}
	return remaining, nil
}

var ErrPurchaseNotFound = errors.New("purchase detail not found")

// ReturnExceedsError: số tiền trả vượt phần giá mua còn lại
type ReturnExceedsError struct {
	Remaining decimal.Decimal
}

func (e *ReturnExceedsError) Error() string {
	return "amount exceeds returnable " + e.Remaining.StringFixed(2)
}

// SavePurchaseReturn khoá dòng mua, kiểm tra phần còn trả được rồi ghi phiếu trong cùng transaction
func SavePurchaseReturn(db *gorm.DB, pr *model.PurchaseReturn) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var purchase model.PurchaseDetail
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&purchase, pr.PurchaseDetailId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPurchaseNotFound
			}
			return err
		}
		remaining, err := ReturnableAmount(tx, purchase, pr.ID)
		if err != nil {
			return err
		}
		if pr.Amount.GreaterThan(remaining) {
			return &ReturnExceedsError{Remaining: remaining}
		}
		return tx.Omit("PurchaseDetail").Save(pr).Error
	})
}
