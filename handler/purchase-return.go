package handler

import (
	"errors"

	"travel_manager/constants"
	"travel_manager/database"
	"travel_manager/helper"
	"travel_manager/model"
	"travel_manager/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func GetPurchaseReturns(c *fiber.Ctx) error {
	filterInput := new(model.FilterAccounting)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	from, to, err := utils.ParseDateRange(filterInput.From, filterInput.To)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err, "from")
	}

	condition := database.DB.Model(&model.PurchaseReturn{})
	if from != nil {
		condition = condition.Where("return_date >= ?", from.Format(utils.DateLayout))
	}
	if to != nil {
		condition = condition.Where("return_date <= ?", to.Format(utils.DateLayout))
	}
	if filterInput.TourPackageQueryId > 0 || filterInput.SupplierId > 0 {
		purchases := database.DB.Model(&model.PurchaseDetail{}).Select("id")
		if filterInput.TourPackageQueryId > 0 {
			purchases = purchases.Where("tour_package_query_id = ?", filterInput.TourPackageQueryId)
		}
		if filterInput.SupplierId > 0 {
			purchases = purchases.Where("supplier_id = ?", filterInput.SupplierId)
		}
		condition = condition.Where("purchase_detail_id IN (?)", purchases)
	}

	var totalCount int64
	if err := condition.Count(&totalCount).Error; err != nil {
		return dbError(c, err, "purchase return")
	}
	limit, page := utils.NormalizePage(filterInput.Limit, filterInput.Page)
	var returns []model.PurchaseReturn
	if err := utils.ApplyPagination(condition, limit, page).
		Preload("PurchaseDetail.Supplier").Order("return_date DESC, id DESC").Find(&returns).Error; err != nil {
		return dbError(c, err, "purchase return")
	}
	return listResponse(c, returns, limit, page, totalCount)
}

func GetPurchaseReturnById(c *fiber.Ctx) error {
	var pr model.PurchaseReturn
	if err := database.DB.Preload("PurchaseDetail.Supplier").First(&pr, inputId(c)).Error; err != nil {
		return dbError(c, err, "purchase return")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, pr)
}

// savePurchaseReturn ghi phiếu, số tiền trả không vượt giá mua trừ các phiếu trả trước
func savePurchaseReturn(c *fiber.Ctx, pr *model.PurchaseReturn, status int, failMessage string) error {
	err := helper.SavePurchaseReturn(database.DB, pr)
	var exceeds *helper.ReturnExceedsError
	switch {
	case err == nil:
		return utils.SuccessResponse(c, status, pr)
	case errors.Is(err, helper.ErrPurchaseNotFound):
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.NOT_FOUND_RECORDS, err, "purchaseDetailId")
	case errors.As(err, &exceeds):
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err, "amount")
	default:
		log().Error("save purchase return failed", zap.Uint("purchaseDetailId", pr.PurchaseDetailId), zap.Error(err))
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, failMessage, err)
	}
}

func CreatePurchaseReturn(c *fiber.Ctx) error {
	input := c.Locals("inputPurchaseReturn").(model.PurchaseReturnInput)

	pr := model.PurchaseReturn{
		PurchaseDetailId: input.PurchaseDetailId,
		ReturnDate:       input.ReturnDate,
		Amount:           input.Amount,
		GstAmount:        input.GstAmount,
		Reason:           input.Reason,
		Reference:        input.Reference,
		Status:           input.Status,
	}
	return savePurchaseReturn(c, &pr, fiber.StatusCreated, constants.ERROR_CREATE)
}

func EditPurchaseReturn(c *fiber.Ctx) error {
	input := c.Locals("inputPurchaseReturn").(model.PurchaseReturnInput)

	var pr model.PurchaseReturn
	if err := database.DB.First(&pr, inputId(c)).Error; err != nil {
		return dbError(c, err, "purchase return")
	}
	pr.PurchaseDetailId = input.PurchaseDetailId
	pr.ReturnDate = input.ReturnDate
	pr.Amount = input.Amount
	pr.GstAmount = input.GstAmount
	pr.Reason = input.Reason
	pr.Reference = input.Reference
	pr.Status = input.Status
	return savePurchaseReturn(c, &pr, fiber.StatusOK, constants.ERROR_EDIT)
}

func DeletePurchaseReturn(c *fiber.Ctx) error {
	id := inputId(c)
	var pr model.PurchaseReturn
	if err := database.DB.First(&pr, id).Error; err != nil {
		return dbError(c, err, "purchase return")
	}
	if err := database.DB.Delete(&pr).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	return c.JSON(fiber.Map{"message": "deleted", "id": id})
}
