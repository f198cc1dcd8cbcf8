package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel_manager/constants"
	"travel_manager/database"
	"travel_manager/helper"
	"travel_manager/model"
	"travel_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func GetTourPackageQueries(c *fiber.Ctx) error {
	filterInput := new(model.FilterTourPackageQuery)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	condition := database.DB.Model(&model.TourPackageQuery{})
	if filterInput.SearchKey != "" {
		pattern := likePattern(filterInput.SearchKey)
		condition = condition.Where(
			"LOWER(query_number) LIKE ? OR LOWER(customer_name) LIKE ? OR LOWER(tour_package_query_name) LIKE ? OR customer_number LIKE ?",
			pattern, pattern, pattern, pattern)
	}
	if filterInput.Status != "" {
		condition = condition.Where("status = ?", filterInput.Status)
	}
	if filterInput.LocationId > 0 {
		condition = condition.Where("location_id = ?", filterInput.LocationId)
	}
	if filterInput.Archived != nil {
		condition = condition.Where("is_archived = ?", *filterInput.Archived)
	}
	from, to, err := utils.ParseDateRange(filterInput.From, filterInput.To)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err, "from")
	}
	if from != nil {
		condition = condition.Where("period_from >= ?", from.Format(utils.DateLayout))
	}
	if to != nil {
		condition = condition.Where("period_from <= ?", to.Format(utils.DateLayout))
	}

	var totalCount int64
	if err := condition.Count(&totalCount).Error; err != nil {
		return dbError(c, err, "tour package query")
	}
	limit, page := utils.NormalizePage(filterInput.Limit, filterInput.Page)
	var queries []model.TourPackageQuery
	if err := utils.ApplyPagination(condition, limit, page).
		Preload("Location").Preload("Customer").
		Order("period_from DESC, id DESC").Find(&queries).Error; err != nil {
		return dbError(c, err, "tour package query")
	}
	return listResponse(c, queries, limit, page, totalCount)
}

func loadQueryTree(db *gorm.DB, id uint) (model.TourPackageQuery, error) {
	var q model.TourPackageQuery
	err := helper.PreloadQueryTree(db).First(&q, id).Error
	return q, err
}

func GetTourPackageQueryById(c *fiber.Ctx) error {
	q, err := loadQueryTree(database.DB, inputId(c))
	if err != nil {
		return dbError(c, err, "tour package query")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, q)
}

// createQuery gán mã query nếu thiếu rồi lưu cả cây trong một transaction
func createQuery(ctx context.Context, q *model.TourPackageQuery) error {
	images, itineraries := q.Images, q.Itineraries
	q.Images, q.Itineraries = nil, nil

	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if q.QueryNumber == "" {
			number, err := helper.GenerateQueryNumber(tx, time.Now())
			if err != nil {
				return err
			}
			q.QueryNumber = number
		}
		if q.Status == "" {
			q.Status = constants.QUERY_PENDING
		}
		if err := tx.Omit(queryAssociations...).Create(q).Error; err != nil {
			return err
		}
		if err := helper.ReplaceOwnerImages(tx, "tour_package_query_id", q.ID, images); err != nil {
			return err
		}
		return helper.ReplaceItineraries(tx, model.ItineraryOwner{TourPackageQueryId: &q.ID}, itineraries)
	})
}

var queryAssociations = []string{
	"Customer", "AssociatePartner", "Location", "TourPackage",
	"Images", "Itineraries", "FlightDetails", "PurchaseDetails", "SaleDetails",
	"PaymentDetails", "ReceiptDetails", "ExpenseDetails", "IncomeDetails",
}

func queryNumberTaken(number string) (bool, error) {
	if number == "" {
		return false, nil
	}
	return nameTaken(&model.TourPackageQuery{}, "query_number", number, 0)
}

func CreateTourPackageQuery(c *fiber.Ctx) error {
	input := c.Locals("inputTourPackageQuery").(model.TourPackageQueryInput)

	taken, err := queryNumberTaken(input.QueryNumber)
	if err != nil {
		return dbError(c, err, "tour package query")
	}
	if taken {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Query number already exists", nil, "queryNumber")
	}
	itineraries, err := helper.BuildItineraries(input.Itineraries)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err, "itineraries")
	}

	q := model.TourPackageQuery{
		QueryNumber:          input.QueryNumber,
		TourPackageQueryName: input.TourPackageQueryName,
		CustomerName:         input.CustomerName,
		CustomerNumber:       input.CustomerNumber,
		CustomerId:           input.CustomerId,
		AssociatePartnerId:   input.AssociatePartnerId,
		LocationId:           input.LocationId,
		TourPackageId:        input.TourPackageId,
		NumAdults:            input.NumAdults,
		NumChild5to12:        input.NumChild5to12,
		NumChildBelow5:       input.NumChildBelow5,
		PeriodFrom:           input.PeriodFrom,
		PeriodTo:             input.PeriodTo,
		Transport:            input.Transport,
		PickupLocation:       input.PickupLocation,
		DropLocation:         input.DropLocation,
		TotalPrice:           input.TotalPrice.Round(2),
		Remarks:              input.Remarks,
		IsFeatured:           input.IsFeatured,
		IsArchived:           input.IsArchived,
		Images:               helper.BuildImages(input.Images),
		Itineraries:          itineraries,
	}
	if err := createQuery(c.UserContext(), &q); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	log().Info("tour package query created", zap.Uint("id", q.ID), zap.String("queryNumber", q.QueryNumber))
	created, err := loadQueryTree(database.DB, q.ID)
	if err != nil {
		return dbError(c, err, "tour package query")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, created)
}

// CreateQueryFromPackage dựng query từ tour package: sao chép lịch trình, ảnh, giá
func CreateQueryFromPackage(c *fiber.Ctx) error {
	fromPackage := c.Locals("inputFromPackage").(model.FromPackageInput)

	pkg, err := loadTourPackage(database.DB, inputId(c))
	if err != nil {
		return dbError(c, err, "tour package")
	}
	var input model.TourPackageQueryInput
	if err := copier.Copy(&input, &fromPackage); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	if input.NumAdults < 1 {
		input.NumAdults = 1
	}

	q := helper.QueryFromPackage(pkg, input)
	if err := createQuery(c.UserContext(), &q); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	created, err := loadQueryTree(database.DB, q.ID)
	if err != nil {
		return dbError(c, err, "tour package query")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, created)
}

// EditTourPackageQuery chỉ cập nhật field được gửi, mảng gửi lên thay toàn bộ
func EditTourPackageQuery(c *fiber.Ctx) error {
	input := c.Locals("inputEditTourPackageQuery").(model.EditTourPackageQueryInput)

	var q model.TourPackageQuery
	if err := database.DB.First(&q, inputId(c)).Error; err != nil {
		return dbError(c, err, "tour package query")
	}

	from, to := q.PeriodFrom, q.PeriodTo
	if input.PeriodFrom != nil {
		from = *input.PeriodFrom
	}
	if input.PeriodTo != nil {
		to = *input.PeriodTo
	}
	if err := helper.ValidatePeriod(from.Time, to.Time); err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err, "periodTo")
	}

	var itineraries []model.Itinerary
	if input.Itineraries != nil {
		built, err := helper.BuildItineraries(*input.Itineraries)
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err, "itineraries")
		}
		itineraries = built
	}

	updates := map[string]any{}
	setIf := func(column string, ok bool, value func() any) {
		if ok {
			updates[column] = value()
		}
	}
	setIf("tour_package_query_name", input.TourPackageQueryName != nil, func() any { return *input.TourPackageQueryName })
	setIf("customer_name", input.CustomerName != nil, func() any { return *input.CustomerName })
	setIf("customer_number", input.CustomerNumber != nil, func() any { return *input.CustomerNumber })
	setIf("customer_id", input.CustomerId != nil, func() any { return *input.CustomerId })
	setIf("associate_partner_id", input.AssociatePartnerId != nil, func() any { return *input.AssociatePartnerId })
	setIf("location_id", input.LocationId != nil, func() any { return *input.LocationId })
	setIf("num_adults", input.NumAdults != nil, func() any { return *input.NumAdults })
	setIf("num_child5to12", input.NumChild5to12 != nil, func() any { return *input.NumChild5to12 })
	setIf("num_child_below5", input.NumChildBelow5 != nil, func() any { return *input.NumChildBelow5 })
	setIf("period_from", input.PeriodFrom != nil, func() any { return *input.PeriodFrom })
	setIf("period_to", input.PeriodTo != nil, func() any { return *input.PeriodTo })
	setIf("transport", input.Transport != nil, func() any { return *input.Transport })
	setIf("pickup_location", input.PickupLocation != nil, func() any { return *input.PickupLocation })
	setIf("drop_location", input.DropLocation != nil, func() any { return *input.DropLocation })
	setIf("total_price", input.TotalPrice != nil, func() any { return input.TotalPrice.Round(2) })
	setIf("remarks", input.Remarks != nil, func() any { return *input.Remarks })
	setIf("is_featured", input.IsFeatured != nil, func() any { return *input.IsFeatured })
	setIf("is_archived", input.IsArchived != nil, func() any { return *input.IsArchived })

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&q).Updates(updates).Error; err != nil {
				return err
			}
		}
		if input.Images != nil {
			if err := helper.ReplaceOwnerImages(tx, "tour_package_query_id", q.ID, helper.BuildImages(*input.Images)); err != nil {
				return err
			}
		}
		if input.Itineraries != nil {
			return helper.ReplaceItineraries(tx, model.ItineraryOwner{TourPackageQueryId: &q.ID}, itineraries)
		}
		return nil
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	updated, err := loadQueryTree(database.DB, q.ID)
	if err != nil {
		return dbError(c, err, "tour package query")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, updated)
}

// DeleteTourPackageQuery xoá mềm, không cho xoá khi đã có thu tiền
func DeleteTourPackageQuery(c *fiber.Ctx) error {
	id := inputId(c)
	var q model.TourPackageQuery
	if err := database.DB.First(&q, id).Error; err != nil {
		return dbError(c, err, "tour package query")
	}

	var receipts int64
	if err := database.DB.Model(&model.ReceiptDetail{}).Where("tour_package_query_id = ?", id).Count(&receipts).Error; err != nil {
		return dbError(c, err, "tour package query")
	}
	if receipts > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.RECORD_IN_USE, errors.New("query has receipts"))
	}

	if err := database.DB.Delete(&q).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	return c.JSON(fiber.Map{"message": "deleted", "id": id})
}

func UpdateQueryStatus(c *fiber.Ctx) error {
	input := c.Locals("inputQueryStatus").(model.QueryStatusInput)

	var q model.TourPackageQuery
	if err := database.DB.First(&q, inputId(c)).Error; err != nil {
		return dbError(c, err, "tour package query")
	}
	if !helper.CanTransitionQuery(q.Status, input.Status) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.INVALID_STATUS_TRANSITION,
			fmt.Errorf("%s -> %s", q.Status, input.Status), "status")
	}

	// chỉ cập nhật khi trạng thái chưa bị request khác đổi
	result := database.DB.Model(&model.TourPackageQuery{}).
		Where("id = ? AND status = ?", q.ID, q.Status).
		Update("status", input.Status)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.INVALID_STATUS_TRANSITION, errors.New("status changed concurrently"), "status")
	}

	log().Info("query status changed", zap.Uint("id", q.ID), zap.String("from", q.Status), zap.String("to", input.Status))
	q.Status = input.Status
	return utils.SuccessResponse(c, fiber.StatusOK, q)
}

func renderQueryPDF(c *fiber.Ctx, q model.TourPackageQuery) ([]byte, error) {
	ctx, cancel := context.WithTimeout(c.UserContext(), 60*time.Second)
	defer cancel()
	return helper.RenderQuotePDF(ctx, deps.PDF, deps.AgencyName, q)
}

func pdfError(c *fiber.Ctx, err error) error {
	if errors.Is(err, helper.ErrPDFNotConfigured) {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, constants.PDF_RENDER_FAILED, err)
	}
	log().Error("pdf render failed", zap.String("path", c.Path()), zap.Error(err))
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.PDF_RENDER_FAILED, err)
}

// sendPDF trả file, hoặc lưu lên kho tài liệu và trả link khi archive=true
func sendPDF(c *fiber.Ctx, prefix, name string, pdf []byte) error {
	if c.QueryBool("archive") {
		url, err := helper.ArchiveDocument(c.UserContext(), deps.Files, helper.ObjectKey(prefix, name, ".pdf"), pdf, "application/pdf")
		if errors.Is(err, helper.ErrFileStoreNotConfigured) {
			return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, err.Error(), nil)
		}
		if err != nil {
			log().Error("archive pdf failed", zap.String("name", name), zap.Error(err))
			return utils.ErrorResponse(c, fiber.StatusBadGateway, constants.UPLOAD_FAILED, err)
		}
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"url": url})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s.pdf"`, name))
	return c.Send(pdf)
}

func QueryPDF(c *fiber.Ctx) error {
	q, err := loadQueryTree(database.DB, inputId(c))
	if err != nil {
		return dbError(c, err, "tour package query")
	}
	pdf, err := renderQueryPDF(c, q)
	if err != nil {
		return pdfError(c, err)
	}
	return sendPDF(c, "quotes", q.QueryNumber, pdf)
}

// SendQuery gửi báo giá PDF qua email
func SendQuery(c *fiber.Ctx) error {
	input := c.Locals("inputSendQuery").(model.SendQueryInput)
	if deps.Mailer == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, constants.EMAIL_SEND_FAILED, errors.New("mailer is not configured"))
	}

	q, err := loadQueryTree(database.DB, inputId(c))
	if err != nil {
		return dbError(c, err, "tour package query")
	}
	pdf, err := renderQueryPDF(c, q)
	if err != nil {
		return pdfError(c, err)
	}
	html, err := utils.RenderTemplate("quote_email.html", fiber.Map{
		"Agency":  deps.AgencyName,
		"Query":   q,
		"Message": input.Message,
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.EMAIL_SEND_FAILED, err)
	}

	err = deps.Mailer.Send(utils.MailMessage{
		To:      []string{input.Email},
		Subject: fmt.Sprintf("%s - quotation %s", deps.AgencyName, q.QueryNumber),
		HTML:    html,
		Attachments: []utils.Attachment{{
			Name:        q.QueryNumber + ".pdf",
			ContentType: "application/pdf",
			Data:        pdf,
		}},
	})
	if err != nil {
		log().Error("send quotation failed", zap.String("queryNumber", q.QueryNumber), zap.String("to", input.Email), zap.Error(err))
		return utils.ErrorResponse(c, fiber.StatusBadGateway, constants.EMAIL_SEND_FAILED, err)
	}
	return c.JSON(fiber.Map{"message": "quotation sent", "email": input.Email})
}
