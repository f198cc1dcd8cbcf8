package handler

import (
	"errors"
	"fmt"
	"time"

	"travel_manager/constants"
	"travel_manager/database"
	"travel_manager/helper"
	"travel_manager/model"
	"travel_manager/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// profitPeriod mặc định từ đầu năm tới hôm nay
func profitPeriod(f model.FilterProfit) (string, string, error) {
	now := time.Now()
	if f.From == "" {
		f.From = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()).Format(utils.DateLayout)
	}
	if f.To == "" {
		f.To = now.Format(utils.DateLayout)
	}
	if _, _, err := utils.ParseDateRange(f.From, f.To); err != nil {
		return "", "", err
	}
	return f.From, f.To, nil
}

// LoadProfitInputs đọc số liệu kế toán của các query có PeriodFrom trong khoảng
func LoadProfitInputs(db *gorm.DB, from, to string, locationId uint) ([]utils.ProfitInput, error) {
	condition := db.Model(&model.TourPackageQuery{}).
		Where("period_from >= ? AND period_from <= ?", from, to)
	if locationId > 0 {
		condition = condition.Where("location_id = ?", locationId)
	}

	var queries []model.TourPackageQuery
	err := condition.
		Preload("Location").
		Preload("SaleDetails").
		Preload("PurchaseDetails.PurchaseReturns").
		Preload("ExpenseDetails.ExpenseCategory").
		Preload("IncomeDetails.IncomeCategory").
		Order("period_from ASC, id ASC").
		Find(&queries).Error
	if err != nil {
		return nil, err
	}

	inputs := make([]utils.ProfitInput, 0, len(queries))
	for _, q := range queries {
		in := utils.ProfitInput{
			QueryId:      q.ID,
			QueryNumber:  q.QueryNumber,
			Name:         q.TourPackageQueryName,
			CustomerName: q.CustomerName,
			PeriodFrom:   q.PeriodFrom,
		}
		if q.Location != nil {
			in.Location = q.Location.Label
		}
		for _, s := range q.SaleDetails {
			in.Sales = in.Sales.Add(s.SalePrice)
		}
		for _, p := range q.PurchaseDetails {
			in.Purchases = in.Purchases.Add(helper.NetPurchase(p))
		}
		for _, e := range q.ExpenseDetails {
			name := "Uncategorized"
			if e.ExpenseCategory != nil {
				name = e.ExpenseCategory.Name
			}
			in.Expenses = append(in.Expenses, utils.ProfitAmount{Category: name, Amount: e.Amount})
		}
		for _, i := range q.IncomeDetails {
			name := "Uncategorized"
			if i.IncomeCategory != nil {
				name = i.IncomeCategory.Name
			}
			in.Incomes = append(in.Incomes, utils.ProfitAmount{Category: name, Amount: i.Amount})
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// reportInputError là lỗi do tham số lọc, khác với lỗi đọc DB
type reportInputError struct {
	key string
	err error
}

func (e *reportInputError) Error() string { return e.err.Error() }
func (e *reportInputError) Unwrap() error { return e.err }

func buildProfitReport(c *fiber.Ctx) (utils.ProfitReport, model.FilterProfit, error) {
	var filter model.FilterProfit
	if err := c.QueryParser(&filter); err != nil {
		return utils.ProfitReport{}, filter, &reportInputError{err: err}
	}
	from, to, err := profitPeriod(filter)
	if err != nil {
		return utils.ProfitReport{}, filter, &reportInputError{key: "from", err: err}
	}
	inputs, err := LoadProfitInputs(database.DB, from, to, filter.LocationId)
	if err != nil {
		return utils.ProfitReport{}, filter, err
	}
	report := utils.BuildProfitReport(inputs)
	report.From, report.To = from, to
	return report, filter, nil
}

func profitReportError(c *fiber.Ctx, err error) error {
	var input *reportInputError
	if !errors.As(err, &input) {
		return dbError(c, err, "profit report")
	}
	if input.key == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err, input.key)
}

func ProfitReport(c *fiber.Ctx) error {
	report, _, err := buildProfitReport(c)
	if err != nil {
		return profitReportError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, report)
}

// ExportProfitReport xuất xlsx, archive=true thì lưu lên kho tài liệu và trả link
func ExportProfitReport(c *fiber.Ctx) error {
	report, filter, err := buildProfitReport(c)
	if err != nil {
		return profitReportError(c, err)
	}
	data, err := utils.ProfitReportWorkbook(report)
	if err != nil {
		log().Error("build profit workbook failed", zap.Error(err))
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_SOMETHING_WRONG, err)
	}

	name := fmt.Sprintf("profit-%s-%s", report.From, report.To)
	if filter.Archive {
		url, err := helper.ArchiveDocument(c.UserContext(), deps.Files, helper.ObjectKey("reports", name, ".xlsx"), data, xlsxContentType)
		if err != nil {
			log().Error("archive profit report failed", zap.Error(err))
			return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, constants.UPLOAD_FAILED, err)
		}
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"url": url})
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.xlsx"`, name))
	return c.Send(data)
}
