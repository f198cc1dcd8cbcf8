package helper

import (
	"testing"

	"travel_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestValidateAccountingReportsCellPaths(t *testing.T) {
	in := model.AccountingInput{
		PurchaseDetails: &[]model.PurchaseDetailInput{
			{SupplierId: 1, PurchaseDate: mustDate(t, "2026-03-01"), Price: dec("100")},
			{Price: dec("0"), GstAmount: dec("-1")},
		},
		ExpenseDetails: &[]model.ExpenseDetailInput{{ExpenseDate: mustDate(t, "2026-03-01"), Amount: dec("5")}},
	}

	errs := ValidateAccounting(in)
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{
		"purchaseDetails[1].supplierId",
		"purchaseDetails[1].purchaseDate",
		"purchaseDetails[1].price",
		"purchaseDetails[1].gstAmount",
		"expenseDetails[0].expenseCategoryId",
	}, fields)

	assert.Empty(t, ValidateAccounting(model.AccountingInput{}))
}

func TestReplaceAccountingOnlyTouchesSentArrays(t *testing.T) {
	db := setupDB(t)
	q := seedQuery(t, db, "CONFIRMED", "2026-03-01", "2026-03-04")
	supplier := model.Supplier{Name: "Houseboat Co"}
	require.NoError(t, db.Create(&supplier).Error)
	category := model.ExpenseCategory{Name: "Commission"}
	require.NoError(t, db.Create(&category).Error)

	first := model.AccountingInput{
		PurchaseDetails: &[]model.PurchaseDetailInput{
			{SupplierId: supplier.ID, PurchaseDate: mustDate(t, "2026-02-20"), Price: dec("30000")},
		},
		SaleDetails: &[]model.SaleDetailInput{
			{SaleDate: mustDate(t, "2026-02-21"), SalePrice: dec("45000")},
		},
		PaymentDetails: &[]model.PaymentDetailInput{
			{PaymentDate: mustDate(t, "2026-02-22"), Amount: dec("10000")},
		},
		ReceiptDetails: &[]model.ReceiptDetailInput{
			{ReceiptDate: mustDate(t, "2026-02-22"), Amount: dec("20000")},
		},
		ExpenseDetails: &[]model.ExpenseDetailInput{
			{ExpenseCategoryId: category.ID, ExpenseDate: mustDate(t, "2026-02-23"), Amount: dec("1500")},
		},
	}
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error { return ReplaceAccounting(tx, q.ID, first) }))

	second := model.AccountingInput{
		ReceiptDetails: &[]model.ReceiptDetailInput{
			{ReceiptDate: mustDate(t, "2026-02-25"), Amount: dec("20000")},
			{ReceiptDate: mustDate(t, "2026-02-26"), Amount: dec("5000")},
		},
		ExpenseDetails: &[]model.ExpenseDetailInput{},
	}
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error { return ReplaceAccounting(tx, q.ID, second) }))

	resp, err := LoadAccounting(db, q)
	require.NoError(t, err)
	assert.Len(t, resp.PurchaseDetails, 1)
	assert.Len(t, resp.SaleDetails, 1)
	assert.Len(t, resp.ReceiptDetails, 2)
	assert.Empty(t, resp.ExpenseDetails)
	assert.NotNil(t, resp.IncomeDetails)

	assert.True(t, resp.Totals.TotalPurchases.Equal(dec("30000")))
	assert.True(t, resp.Totals.TotalReceipts.Equal(dec("25000")))
	assert.True(t, resp.Totals.SupplierBalance.Equal(dec("20000")))
	assert.True(t, resp.Totals.CustomerBalance.Equal(dec("20000")))
	assert.True(t, resp.Totals.TotalExpenses.IsZero())
}

func TestReturnableAmount(t *testing.T) {
	db := setupDB(t)
	q := seedQuery(t, db, "PENDING", "2026-04-01", "2026-04-03")
	supplier := model.Supplier{Name: "Cabs"}
	require.NoError(t, db.Create(&supplier).Error)
	purchase := model.PurchaseDetail{TourPackageQueryId: q.ID, SupplierId: supplier.ID, PurchaseDate: mustDate(t, "2026-03-01"), Price: dec("1000")}
	require.NoError(t, db.Create(&purchase).Error)
	ret := model.PurchaseReturn{PurchaseDetailId: purchase.ID, ReturnDate: mustDate(t, "2026-03-05"), Amount: dec("400")}
	require.NoError(t, db.Create(&ret).Error)

	left, err := ReturnableAmount(db, purchase, 0)
	require.NoError(t, err)
	assert.True(t, left.Equal(dec("600")))

	left, err = ReturnableAmount(db, purchase, ret.ID)
	require.NoError(t, err)
	assert.True(t, left.Equal(dec("1000")))

	purchase.PurchaseReturns = []model.PurchaseReturn{ret}
	assert.True(t, NetPurchase(purchase).Equal(dec("600")))
}

func TestSyncPurchasesUpdatesInPlaceAndDropsRemoved(t *testing.T) {
	db := setupDB(t)
	q := seedQuery(t, db, "CONFIRMED", "2026-05-01", "2026-05-03")
	supplier := model.Supplier{Name: "Jeep Safari"}
	require.NoError(t, db.Create(&supplier).Error)
	kept := model.PurchaseDetail{TourPackageQueryId: q.ID, SupplierId: supplier.ID, PurchaseDate: mustDate(t, "2026-04-01"), Price: dec("8000")}
	dropped := model.PurchaseDetail{TourPackageQueryId: q.ID, SupplierId: supplier.ID, PurchaseDate: mustDate(t, "2026-04-02"), Price: dec("2000")}
	require.NoError(t, db.Create(&kept).Error)
	require.NoError(t, db.Create(&dropped).Error)
	require.NoError(t, db.Create(&model.PurchaseReturn{PurchaseDetailId: kept.ID, ReturnDate: mustDate(t, "2026-04-05"), Amount: dec("1000")}).Error)

	in := model.AccountingInput{PurchaseDetails: &[]model.PurchaseDetailInput{
		{Id: kept.ID, SupplierId: supplier.ID, PurchaseDate: mustDate(t, "2026-04-01"), Price: dec("9000"), BillNumber: "B-7"},
		{SupplierId: supplier.ID, PurchaseDate: mustDate(t, "2026-04-03"), Price: dec("500")},
	}}
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error { return ReplaceAccounting(tx, q.ID, in) }))

	resp, err := LoadAccounting(db, q)
	require.NoError(t, err)
	require.Len(t, resp.PurchaseDetails, 2)
	assert.Equal(t, kept.ID, resp.PurchaseDetails[0].ID)
	assert.Equal(t, "B-7", resp.PurchaseDetails[0].BillNumber)
	assert.Len(t, resp.PurchaseDetails[0].PurchaseReturns, 1)
	assert.True(t, resp.Totals.TotalPurchases.Equal(dec("8500")))

	var count int64
	db.Unscoped().Model(&model.PurchaseDetail{}).Where("id = ?", dropped.ID).Count(&count)
	assert.Zero(t, count)

	err = db.Transaction(func(tx *gorm.DB) error {
		return ReplaceAccounting(tx, q.ID, model.AccountingInput{PurchaseDetails: &[]model.PurchaseDetailInput{}})
	})
	var conflict *AccountingConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 409, conflict.Status)
	assert.Equal(t, "purchaseDetails[0]", conflict.Field)
}

func TestSavePurchaseReturnChecksRemainingInTransaction(t *testing.T) {
	db := setupDB(t)
	q := seedQuery(t, db, "CONFIRMED", "2026-06-01", "2026-06-04")
	supplier := model.Supplier{Name: "Ferry Line"}
	require.NoError(t, db.Create(&supplier).Error)
	purchase := model.PurchaseDetail{TourPackageQueryId: q.ID, SupplierId: supplier.ID, PurchaseDate: mustDate(t, "2026-05-01"), Price: dec("1000")}
	require.NoError(t, db.Create(&purchase).Error)

	first := model.PurchaseReturn{PurchaseDetailId: purchase.ID, ReturnDate: mustDate(t, "2026-05-02"), Amount: dec("700")}
	require.NoError(t, SavePurchaseReturn(db, &first))
	require.NotZero(t, first.ID)

	second := model.PurchaseReturn{PurchaseDetailId: purchase.ID, ReturnDate: mustDate(t, "2026-05-03"), Amount: dec("400")}
	var exceeds *ReturnExceedsError
	require.ErrorAs(t, SavePurchaseReturn(db, &second), &exceeds)
	assert.True(t, exceeds.Remaining.Equal(dec("300")))
	assert.Zero(t, second.ID)

	// sửa phiếu đầu không tính chính nó
	first.Amount = dec("1000")
	require.NoError(t, SavePurchaseReturn(db, &first))

	missing := model.PurchaseReturn{PurchaseDetailId: 9999, ReturnDate: mustDate(t, "2026-05-02"), Amount: dec("1")}
	assert.ErrorIs(t, SavePurchaseReturn(db, &missing), ErrPurchaseNotFound)

	var count int64
	db.Model(&model.PurchaseReturn{}).Count(&count)
	assert.EqualValues(t, 1, count)
}
