package handler

import (
	"context"
	"errors"
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

// nameTaken kiểm tra trùng tên không phân biệt hoa thường, kể cả bản ghi đã xoá mềm
func nameTaken(m any, column, value string, excludeId uint) (bool, error) {
	var count int64
	query := database.DB.Model(m).Unscoped().Where("LOWER("+column+") = LOWER(?)", value)
	if excludeId != 0 {
		query = query.Where("id != ?", excludeId)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func conflictName(c *fiber.Ctx, key string) error {
	return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.NAME_EXISTS, nil, key)
}

func invalidateTravelCache(c *fiber.Ctx) {
	deps.Cache.Invalidate(c.UserContext())
}

// geocodeLocation lấy toạ độ khi form không gửi, lỗi chỉ log
func geocodeLocation(ctx context.Context, loc *model.Location) {
	if deps.Places == nil || (loc.Lat != 0 || loc.Lng != 0) {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	lat, lng, err := deps.Places.Geocode(ctx, loc.Label)
	if err != nil {
		if !errors.Is(err, utils.ErrPlacesNotConfigured) {
			log().Warn("geocode location failed", zap.String("label", loc.Label), zap.Error(err))
		}
		return
	}
	loc.Lat, loc.Lng = lat, lng
}

func GetLocations(c *fiber.Ctx) error {
	filterInput := new(model.FilterMaster)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	condition := database.DB.Model(&model.Location{})
	if filterInput.SearchKey != "" {
		pattern := likePattern(filterInput.SearchKey)
		condition = condition.Where("LOWER(label) LIKE ? OR LOWER(tags) LIKE ?", pattern, pattern)
	}
	if filterInput.Active != nil {
		condition = condition.Where("is_active = ?", *filterInput.Active)
	}

	var totalCount int64
	if err := condition.Count(&totalCount).Error; err != nil {
		return dbError(c, err, "location")
	}
	limit, page := utils.NormalizePage(filterInput.Limit, filterInput.Page)
	var locations []model.Location
	if err := utils.ApplyPagination(condition, limit, page).Order("label ASC").Find(&locations).Error; err != nil {
		return dbError(c, err, "location")
	}
	return listResponse(c, locations, limit, page, totalCount)
}

func GetLocationById(c *fiber.Ctx) error {
	var location model.Location
	if err := database.DB.First(&location, inputId(c)).Error; err != nil {
		return dbError(c, err, "location")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, location)
}

func applyLocationInput(loc *model.Location, input model.LocationInput) {
	loc.Label = input.Label
	loc.Value = input.Value
	loc.Description = input.Description
	loc.ImageUrl = input.ImageUrl
	loc.Tags = input.Tags
	loc.IsActive = boolOr(input.IsActive, true)
	if input.Lat != nil {
		loc.Lat = *input.Lat
	}
	if input.Lng != nil {
		loc.Lng = *input.Lng
	}
}

func CreateLocation(c *fiber.Ctx) error {
	input := c.Locals("inputLocation").(model.LocationInput)

	taken, err := nameTaken(&model.Location{}, "label", input.Label, 0)
	if err != nil {
		return dbError(c, err, "location")
	}
	if taken {
		return conflictName(c, "label")
	}

	var location model.Location
	applyLocationInput(&location, input)
	geocodeLocation(c.UserContext(), &location)

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		location.Slug = helper.GenerateUniqueSlug(tx, &model.Location{}, location.Label, 0)
		return tx.Create(&location).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return conflictName(c, "label")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	invalidateTravelCache(c)
	return utils.SuccessResponse(c, fiber.StatusCreated, location)
}

func EditLocation(c *fiber.Ctx) error {
	input := c.Locals("inputLocation").(model.LocationInput)
	id := inputId(c)

	var location model.Location
	if err := database.DB.First(&location, id).Error; err != nil {
		return dbError(c, err, "location")
	}
	taken, err := nameTaken(&model.Location{}, "label", input.Label, id)
	if err != nil {
		return dbError(c, err, "location")
	}
	if taken {
		return conflictName(c, "label")
	}

	labelChanged := location.Label != input.Label
	applyLocationInput(&location, input)
	geocodeLocation(c.UserContext(), &location)

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if labelChanged {
			location.Slug = helper.GenerateUniqueSlug(tx, &model.Location{}, location.Label, location.ID)
		}
		return tx.Save(&location).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return conflictName(c, "label")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	invalidateTravelCache(c)
	return utils.SuccessResponse(c, fiber.StatusOK, location)
}

// DeleteLocation từ chối khi còn package, query, hotel hoặc inquiry tham chiếu
func DeleteLocation(c *fiber.Ctx) error {
	id := inputId(c)

	var location model.Location
	if err := database.DB.First(&location, id).Error; err != nil {
		return dbError(c, err, "location")
	}

	for _, ref := range []any{&model.TourPackage{}, &model.TourPackageQuery{}, &model.Hotel{}, &model.Inquiry{}} {
		var count int64
		if err := database.DB.Model(ref).Where("location_id = ?", id).Count(&count).Error; err != nil {
			return dbError(c, err, "location")
		}
		if count > 0 {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.RECORD_IN_USE, nil, "locationId")
		}
	}

	if err := database.DB.Delete(&location).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	invalidateTravelCache(c)
	return c.JSON(fiber.Map{"message": "deleted", "id": id})
}

// PlacesAutocomplete chuyển tiếp nguyên response của nhà cung cấp bản đồ
func PlacesAutocomplete(c *fiber.Ctx) error {
	text := c.Query("text")
	if text == "" {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("text is required"), "text")
	}
	if deps.Places == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, utils.ErrPlacesNotConfigured.Error(), nil)
	}

	body, status, err := deps.Places.Autocomplete(c.UserContext(), text)
	if errors.Is(err, utils.ErrPlacesNotConfigured) {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, err.Error(), nil)
	}
	if err != nil {
		log().Warn("places autocomplete failed", zap.String("text", text), zap.Error(err))
		return utils.ErrorResponse(c, fiber.StatusBadGateway, constants.ERROR_SOMETHING_WRONG, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(status).Send(body)
}
