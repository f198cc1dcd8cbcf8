package handler_test

import (
	"testing"

	"travel_manager/constants"
	"travel_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountingRequiresAccountingRole(t *testing.T) {
	env := newEnv(t)
	q := env.query(env.location("Kashmir"), constants.QUERY_CONFIRMED, "60000")
	path := "/api/v1/tourPackageQuery/" + itoa(q.ID) + "/accounting"

	assert.Equal(t, 403, env.do("GET", path, nil, env.staff(constants.ROLE_SALES)).status)
	assert.Equal(t, 200, env.do("GET", path, nil, env.staff(constants.ROLE_ACCOUNTANT)).status)
	assert.Equal(t, 200, env.do("GET", path, nil, env.admin()).status)
}

func TestUpdateAccountingReplacesSentArrays(t *testing.T) {
	env := newEnv(t)
	token := env.staff(constants.ROLE_ACCOUNTANT)
	q := env.query(env.location("Kerala"), constants.QUERY_CONFIRMED, "60000")
	supplier := model.Supplier{Name: "Backwater Stays"}
	require.NoError(t, env.db.Create(&supplier).Error)
	path := "/api/v1/tourPackageQuery/" + itoa(q.ID) + "/accounting"

	body := map[string]any{
		"purchaseDetails": []map[string]any{{"supplierId": supplier.ID, "purchaseDate": "2026-03-01", "price": "30000"}},
		"saleDetails":     []map[string]any{{"saleDate": "2026-03-01", "salePrice": "60000"}},
		"receiptDetails":  []map[string]any{{"receiptDate": "2026-03-02", "amount": "20000"}},
	}
	res := env.do("PATCH", path, body, token)
	require.Equal(t, 200, res.status, string(res.raw))
	totals := res.data()["totals"].(map[string]any)
	assert.True(t, dec("30000").Equal(dec(totals["supplierBalance"].(string))))
	assert.True(t, dec("40000").Equal(dec(totals["customerBalance"].(string))))

	// chỉ gửi receipts: purchases và sales giữ nguyên
	res = env.do("PATCH", path, map[string]any{"receiptDetails": []map[string]any{}}, token)
	require.Equal(t, 200, res.status)
	assert.Len(t, res.data()["purchaseDetails"], 1)
	assert.Empty(t, res.data()["receiptDetails"])

	res = env.do("PATCH", path, map[string]any{
		"paymentDetails": []map[string]any{{"paymentDate": "2026-03-02", "amount": "-5"}},
	}, token)
	assert.Equal(t, 400, res.status)
	assert.NotEmpty(t, res.body["errors"])
}

func TestPurchaseReturnLimitedToPurchasePrice(t *testing.T) {
	env := newEnv(t)
	token := env.staff(constants.ROLE_ACCOUNTANT)
	q := env.query(env.location("Goa"), constants.QUERY_CONFIRMED, "20000")
	supplier := model.Supplier{Name: "Goa Cabs"}
	require.NoError(t, env.db.Create(&supplier).Error)
	purchase := model.PurchaseDetail{
		TourPackageQueryId: q.ID,
		SupplierId:         supplier.ID,
		PurchaseDate:       date(t, "2026-03-01"),
		Price:              dec("10000"),
	}
	require.NoError(t, env.db.Create(&purchase).Error)

	body := map[string]any{"purchaseDetailId": purchase.ID, "returnDate": "2026-03-05", "amount": "6000"}
	res := env.do("POST", "/api/v1/purchase-returns", body, token)
	require.Equal(t, 201, res.status, string(res.raw))
	assert.Equal(t, constants.PURCHASE_RETURN_PENDING, res.data()["status"])
	first := id(res.data()["id"])

	res = env.do("POST", "/api/v1/purchase-returns", body, token)
	assert.Equal(t, 400, res.status)
	assert.Equal(t, "amount", res.body["keyError"])

	// sửa phiếu cũ không tính chính nó
	body["amount"] = "9000"
	res = env.do("PUT", "/api/v1/purchase-returns/"+itoa(first), body, token)
	assert.Equal(t, 200, res.status)

	body["purchaseDetailId"] = 999
	res = env.do("POST", "/api/v1/purchase-returns", body, token)
	assert.Equal(t, 400, res.status)
	assert.Equal(t, "purchaseDetailId", res.body["keyError"])

	assert.Equal(t, 403, env.do("GET", "/api/v1/purchase-returns", nil, env.staff(constants.ROLE_SALES)).status)
}

func TestProfitReport(t *testing.T) {
	env := newEnv(t)
	token := env.staff(constants.ROLE_MANAGER)
	q := env.query(env.location("Kerala"), constants.QUERY_COMPLETED, "50000")
	supplier := model.Supplier{Name: "Hotel Lagoon"}
	require.NoError(t, env.db.Create(&supplier).Error)
	category := model.ExpenseCategory{Name: "Guide"}
	require.NoError(t, env.db.Create(&category).Error)

	require.NoError(t, env.db.Create(&model.SaleDetail{TourPackageQueryId: q.ID, SaleDate: date(t, "2026-03-01"), SalePrice: dec("50000")}).Error)
	purchase := model.PurchaseDetail{TourPackageQueryId: q.ID, SupplierId: supplier.ID, PurchaseDate: date(t, "2026-03-01"), Price: dec("30000")}
	require.NoError(t, env.db.Create(&purchase).Error)
	require.NoError(t, env.db.Create(&model.PurchaseReturn{PurchaseDetailId: purchase.ID, ReturnDate: date(t, "2026-03-03"), Amount: dec("5000")}).Error)
	require.NoError(t, env.db.Create(&model.ExpenseDetail{TourPackageQueryId: q.ID, ExpenseCategoryId: category.ID, ExpenseDate: date(t, "2026-03-02"), Amount: dec("2000")}).Error)

	res := env.do("GET", "/api/v1/reports/profit?from=2026-01-01&to=2026-12-31", nil, token)
	require.Equal(t, 200, res.status, string(res.raw))
	totals := res.data()["totals"].(map[string]any)
	assert.EqualValues(t, 1, totals["queryCount"])
	assert.True(t, dec("25000").Equal(dec(totals["grossProfit"].(string))))
	assert.True(t, dec("23000").Equal(dec(totals["netProfit"].(string))))

	res = env.do("GET", "/api/v1/reports/profit?from=2026-06-01&to=2026-01-01", nil, token)
	assert.Equal(t, 400, res.status)

	res = env.do("GET", "/api/v1/reports/profit?from=2026-01-01&to=2026-12-31", nil, env.staff(constants.ROLE_SALES))
	assert.Equal(t, 403, res.status)

	res = env.do("GET", "/api/v1/reports/profit/export?from=2026-01-01&to=2026-12-31", nil, token)
	require.Equal(t, 200, res.status)
	assert.Contains(t, res.header["Content-Type"], "spreadsheetml")
	assert.Equal(t, "PK", string(res.raw[:2]))
}

func TestEditPurchaseRowKeepsReturns(t *testing.T) {
	env := newEnv(t)
	token := env.staff(constants.ROLE_ACCOUNTANT)
	q := env.query(env.location("Sikkim"), constants.QUERY_CONFIRMED, "50000")
	supplier := model.Supplier{Name: "Gangtok Stays"}
	require.NoError(t, env.db.Create(&supplier).Error)
	path := "/api/v1/tourPackageQuery/" + itoa(q.ID) + "/accounting"

	row := map[string]any{"supplierId": supplier.ID, "purchaseDate": "2026-03-01", "price": "30000", "description": "hotel"}
	res := env.do("PATCH", path, map[string]any{"purchaseDetails": []map[string]any{row}}, token)
	require.Equal(t, 200, res.status, string(res.raw))
	purchaseId := id(res.data()["purchaseDetails"].([]any)[0].(map[string]any)["id"])

	res = env.do("POST", "/api/v1/purchase-returns", map[string]any{"purchaseDetailId": purchaseId, "returnDate": "2026-03-05", "amount": "5000"}, token)
	require.Equal(t, 201, res.status, string(res.raw))

	// chỉ đổi mô tả, phiếu trả hàng phải còn
	row["id"] = purchaseId
	row["description"] = "hotel + breakfast"
	res = env.do("PATCH", path, map[string]any{"purchaseDetails": []map[string]any{row}}, token)
	require.Equal(t, 200, res.status, string(res.raw))
	purchases := res.data()["purchaseDetails"].([]any)
	require.Len(t, purchases, 1)
	assert.EqualValues(t, purchaseId, id(purchases[0].(map[string]any)["id"]))
	assert.Equal(t, "hotel + breakfast", purchases[0].(map[string]any)["description"])
	totals := res.data()["totals"].(map[string]any)
	assert.True(t, dec("25000").Equal(dec(totals["totalPurchases"].(string))))

	var returns int64
	env.db.Unscoped().Model(&model.PurchaseReturn{}).Where("purchase_detail_id = ?", purchaseId).Count(&returns)
	assert.EqualValues(t, 1, returns)

	row["price"] = "4000"
	res = env.do("PATCH", path, map[string]any{"purchaseDetails": []map[string]any{row}}, token)
	assert.Equal(t, 409, res.status)
	assert.Equal(t, "purchaseDetails[0].price", res.body["keyError"])

	res = env.do("PATCH", path, map[string]any{"purchaseDetails": []map[string]any{}}, token)
	assert.Equal(t, 409, res.status)
	assert.Equal(t, "purchaseDetails[0]", res.body["keyError"])

	row["id"] = 9999
	row["price"] = "30000"
	res = env.do("PATCH", path, map[string]any{"purchaseDetails": []map[string]any{row}}, token)
	assert.Equal(t, 400, res.status)
	assert.Equal(t, "purchaseDetails[0].id", res.body["keyError"])

	res = env.do("GET", path, nil, token)
	require.Equal(t, 200, res.status)
	assert.Len(t, res.data()["purchaseDetails"], 1)
}

func TestProfitReportErrors(t *testing.T) {
	env := newEnv(t)
	token := env.staff(constants.ROLE_MANAGER)
	env.query(env.location("Kerala"), constants.QUERY_CONFIRMED, "10000")

	res := env.do("GET", "/api/v1/reports/profit?from=2026-06-01&to=2026-01-01", nil, token)
	assert.Equal(t, 400, res.status)
	assert.Equal(t, "from", res.body["keyError"])

	res = env.do("GET", "/api/v1/reports/profit/export?from=not-a-date", nil, token)
	assert.Equal(t, 400, res.status)

	// lỗi đọc DB không được báo như lỗi tham số
	require.NoError(t, env.db.Migrator().DropTable(&model.SaleDetail{}))
	res = env.do("GET", "/api/v1/reports/profit?from=2026-01-01&to=2026-12-31", nil, token)
	assert.Equal(t, 500, res.status)
	assert.Equal(t, constants.ERROR_SOMETHING_WRONG, res.body["message"])
	assert.Nil(t, res.body["keyError"])
}
