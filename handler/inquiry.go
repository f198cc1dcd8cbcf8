package handler

import (
	"time"

	"travel_manager/constants"
	"travel_manager/database"
	"travel_manager/helper"
	"travel_manager/model"
	"travel_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetInquiries(c *fiber.Ctx) error {
	filterInput := new(model.FilterInquiry)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	condition := database.DB.Model(&model.Inquiry{})
	if filterInput.SearchKey != "" {
		pattern := likePattern(filterInput.SearchKey)
		condition = condition.Where("LOWER(customer_name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?", pattern, pattern, pattern)
	}
	if filterInput.Status != "" {
		condition = condition.Where("status = ?", filterInput.Status)
	}
	if filterInput.LocationId > 0 {
		condition = condition.Where("location_id = ?", filterInput.LocationId)
	}

	var totalCount int64
	if err := condition.Count(&totalCount).Error; err != nil {
		return dbError(c, err, "inquiry")
	}
	limit, page := utils.NormalizePage(filterInput.Limit, filterInput.Page)
	var inquiries []model.Inquiry
	if err := utils.ApplyPagination(condition, limit, page).
		Preload("Location").Preload("TourPackage").
		Order("id DESC").Find(&inquiries).Error; err != nil {
		return dbError(c, err, "inquiry")
	}
	return listResponse(c, inquiries, limit, page, totalCount)
}

// UpdateInquiryStatus: CONVERTED chỉ được gán qua ConvertInquiry
func UpdateInquiryStatus(c *fiber.Ctx) error {
	input := c.Locals("inputInquiryStatus").(model.InquiryStatusInput)

	var inquiry model.Inquiry
	if err := database.DB.First(&inquiry, inputId(c)).Error; err != nil {
		return dbError(c, err, "inquiry")
	}
	if inquiry.Status == constants.INQUIRY_CONVERTED || input.Status == constants.INQUIRY_CONVERTED {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.INVALID_STATUS_TRANSITION, nil, "status")
	}
	if err := database.DB.Model(&inquiry).Update("status", input.Status).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}
	inquiry.Status = input.Status
	return utils.SuccessResponse(c, fiber.StatusOK, inquiry)
}

// queryFromInquiry dựng query từ lead, nếu lead chọn package thì copy lịch trình của package
func queryFromInquiry(db *gorm.DB, inquiry model.Inquiry) (model.TourPackageQuery, error) {
	in := model.TourPackageQueryInput{
		CustomerName:   inquiry.CustomerName,
		CustomerNumber: inquiry.Phone,
		CustomerId:     inquiry.CustomerId,
		LocationId:     inquiry.LocationId,
		NumAdults:      inquiry.NumAdults,
		NumChild5to12:  inquiry.NumChildren,
		Remarks:        inquiry.Remarks,
	}
	in.PeriodFrom = utils.NewCustomDate(time.Now())
	if inquiry.JourneyDate != nil && !inquiry.JourneyDate.IsZero() {
		in.PeriodFrom = *inquiry.JourneyDate
	}
	in.PeriodTo = in.PeriodFrom
	if in.NumAdults < 1 {
		in.NumAdults = 1
	}

	if inquiry.TourPackageId != nil {
		pkg, err := loadTourPackage(db, *inquiry.TourPackageId)
		if err != nil {
			return model.TourPackageQuery{}, err
		}
		return helper.QueryFromPackage(pkg, in), nil
	}
	return model.TourPackageQuery{
		TourPackageQueryName: inquiry.CustomerName,
		CustomerName:         in.CustomerName,
		CustomerNumber:       in.CustomerNumber,
		CustomerId:           in.CustomerId,
		LocationId:           in.LocationId,
		NumAdults:            in.NumAdults,
		NumChild5to12:        in.NumChild5to12,
		PeriodFrom:           in.PeriodFrom,
		PeriodTo:             in.PeriodTo,
		Remarks:              in.Remarks,
	}, nil
}

func ConvertInquiry(c *fiber.Ctx) error {
	var inquiry model.Inquiry
	if err := database.DB.First(&inquiry, inputId(c)).Error; err != nil {
		return dbError(c, err, "inquiry")
	}
	if inquiry.Status == constants.INQUIRY_CONVERTED || inquiry.Status == constants.INQUIRY_CANCELLED {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.INVALID_STATUS_TRANSITION, nil, "status")
	}

	q, err := queryFromInquiry(database.DB, inquiry)
	if err != nil {
		return dbError(c, err, "tour package")
	}
	if err := createQuery(c.UserContext(), &q); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	// điều kiện status tránh convert hai lần khi bấm đồng thời
	res := database.DB.Model(&model.Inquiry{}).
		Where("id = ? AND status = ?", inquiry.ID, inquiry.Status).
		Updates(map[string]interface{}{"status": constants.INQUIRY_CONVERTED, "tour_package_query_id": q.ID})
	if res.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, res.Error)
	}
	if res.RowsAffected == 0 {
		database.DB.Delete(&model.TourPackageQuery{}, q.ID)
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.INVALID_STATUS_TRANSITION, nil, "status")
	}

	created, err := loadQueryTree(database.DB, q.ID)
	if err != nil {
		return dbError(c, err, "tour package query")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{"inquiryId": inquiry.ID, "query": created})
}
