package handler

import (
	"errors"
	"fmt"

	"travel_manager/constants"
	"travel_manager/database"
	"travel_manager/helper"
	"travel_manager/model"
	"travel_manager/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func GetAccounting(c *fiber.Ctx) error {
	var q model.TourPackageQuery
	if err := database.DB.First(&q, inputId(c)).Error; err != nil {
		return dbError(c, err, "tour package query")
	}
	resp, err := helper.LoadAccounting(database.DB, q)
	if err != nil {
		return dbError(c, err, "accounting")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, resp)
}

// UpdateAccounting thay các mảng được gửi lên trong một transaction
func UpdateAccounting(c *fiber.Ctx) error {
	input := c.Locals("inputAccounting").(model.AccountingInput)

	var q model.TourPackageQuery
	if err := database.DB.First(&q, inputId(c)).Error; err != nil {
		return dbError(c, err, "tour package query")
	}

	if err := database.DB.Transaction(func(tx *gorm.DB) error {
		return helper.ReplaceAccounting(tx, q.ID, input)
	}); err != nil {
		var conflict *helper.AccountingConflictError
		if errors.As(err, &conflict) {
			return utils.ErrorResponseHaveKey(c, conflict.Status, constants.ERROR_EDIT, err, conflict.Field)
		}
		log().Error("accounting update failed", zap.Uint("queryId", q.ID), zap.Error(err))
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	resp, err := helper.LoadAccounting(database.DB, q)
	if err != nil {
		return dbError(c, err, "accounting")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, resp)
}

type accountingKind struct {
	model      func() any
	rows       func() any
	dateColumn string
	preloads   []string
	supplier   bool
}

var accountingKinds = map[string]accountingKind{
	"purchases": {
		model: func() any { return &model.PurchaseDetail{} }, rows: func() any { return &[]model.PurchaseDetail{} },
		dateColumn: "purchase_date", preloads: []string{"Supplier", "PurchaseReturns"}, supplier: true,
	},
	"sales": {
		model: func() any { return &model.SaleDetail{} }, rows: func() any { return &[]model.SaleDetail{} },
		dateColumn: "sale_date", preloads: []string{"Customer"},
	},
	"payments": {
		model: func() any { return &model.PaymentDetail{} }, rows: func() any { return &[]model.PaymentDetail{} },
		dateColumn: "payment_date", preloads: []string{"Supplier"}, supplier: true,
	},
	"receipts": {
		model: func() any { return &model.ReceiptDetail{} }, rows: func() any { return &[]model.ReceiptDetail{} },
		dateColumn: "receipt_date", preloads: []string{"Customer"},
	},
	"expenses": {
		model: func() any { return &model.ExpenseDetail{} }, rows: func() any { return &[]model.ExpenseDetail{} },
		dateColumn: "expense_date", preloads: []string{"ExpenseCategory"},
	},
	"incomes": {
		model: func() any { return &model.IncomeDetail{} }, rows: func() any { return &[]model.IncomeDetail{} },
		dateColumn: "income_date", preloads: []string{"IncomeCategory"},
	},
}

// GetAccountingByKind liệt kê một loại chứng từ theo khoảng ngày cho dashboard
func GetAccountingByKind(c *fiber.Ctx) error {
	kind, ok := accountingKinds[c.Params("kind")]
	if !ok {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS,
			fmt.Errorf("unknown accounting kind %q", c.Params("kind")), "kind")
	}
	filterInput := new(model.FilterAccounting)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	from, to, err := utils.ParseDateRange(filterInput.From, filterInput.To)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err, "from")
	}

	condition := database.DB.Model(kind.model())
	if from != nil {
		condition = condition.Where(kind.dateColumn+" >= ?", from.Format(utils.DateLayout))
	}
	if to != nil {
		condition = condition.Where(kind.dateColumn+" <= ?", to.Format(utils.DateLayout))
	}
	if filterInput.TourPackageQueryId > 0 {
		condition = condition.Where("tour_package_query_id = ?", filterInput.TourPackageQueryId)
	}
	if kind.supplier && filterInput.SupplierId > 0 {
		condition = condition.Where("supplier_id = ?", filterInput.SupplierId)
	}

	var totalCount int64
	if err := condition.Count(&totalCount).Error; err != nil {
		return dbError(c, err, "accounting")
	}
	limit, page := utils.NormalizePage(filterInput.Limit, filterInput.Page)
	query := utils.ApplyPagination(condition, limit, page)
	for _, p := range kind.preloads {
		query = query.Preload(p)
	}
	rows := kind.rows()
	if err := query.Order(kind.dateColumn + " DESC, id DESC").Find(rows).Error; err != nil {
		return dbError(c, err, "accounting")
	}
	return listResponse(c, rows, limit, page, totalCount)
}
