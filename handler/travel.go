package handler

import (
	"encoding/json"
	"errors"
	"strings"

	"travel_manager/constants"
	"travel_manager/database"
	"travel_manager/model"
	"travel_manager/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// cached trả response từ redis nếu có, nếu không thì build rồi lưu lại
func cached(c *fiber.Ctx, key string, build func() (any, error)) error {
	var raw json.RawMessage
	if deps.Cache.Get(c.UserContext(), key, &raw) {
		c.Set("X-Cache", "HIT")
		return utils.SuccessResponse(c, fiber.StatusOK, raw)
	}
	data, err := build()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
		}
		log().Error("travel page", zap.String("key", key), zap.Error(err))
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	deps.Cache.Set(c.UserContext(), key, data)
	c.Set("X-Cache", "MISS")
	return utils.SuccessResponse(c, fiber.StatusOK, data)
}

func publicPackages(db *gorm.DB) *gorm.DB {
	return db.Model(&model.TourPackage{}).Where("is_archived = ?", false)
}

func TravelDestinations(c *fiber.Ctx) error {
	return cached(c, "destinations", func() (any, error) {
		var locations []model.Location
		if err := database.DB.Where("is_active = ?", true).Order("label ASC").Find(&locations).Error; err != nil {
			return nil, err
		}
		var counts []struct {
			LocationId uint
			Total      int64
		}
		if err := publicPackages(database.DB).Select("location_id, COUNT(*) AS total").
			Group("location_id").Scan(&counts).Error; err != nil {
			return nil, err
		}
		byLocation := make(map[uint]int64, len(counts))
		for _, row := range counts {
			byLocation[row.LocationId] = row.Total
		}
		for i := range locations {
			locations[i].PackageCount = byLocation[locations[i].ID]
		}
		return locations, nil
	})
}

func TravelDestination(c *fiber.Ctx) error {
	slugParam := strings.ToLower(c.Params("slug"))
	return cached(c, "destinations:"+slugParam, func() (any, error) {
		var location model.Location
		if err := database.DB.Where("slug = ? AND is_active = ?", slugParam, true).First(&location).Error; err != nil {
			return nil, err
		}
		var packages []model.TourPackage
		if err := publicPackages(database.DB).Preload("Images").
			Where("location_id = ?", location.ID).
			Order("is_featured DESC, id DESC").Find(&packages).Error; err != nil {
			return nil, err
		}
		location.PackageCount = int64(len(packages))
		return fiber.Map{"location": location, "packages": packages}, nil
	})
}

func TravelPackages(c *fiber.Ctx) error {
	filterInput := new(model.FilterTourPackage)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	// trang public không cho xem package đã lưu trữ
	filterInput.IsArchived = nil
	limit, page := utils.NormalizePage(filterInput.Limit, filterInput.Page)

	return cached(c, "packages?"+string(c.Request().URI().QueryString()), func() (any, error) {
		condition := filterTourPackages(publicPackages(database.DB), filterInput)
		var totalCount int64
		if err := condition.Count(&totalCount).Error; err != nil {
			return nil, err
		}
		var packages []model.TourPackage
		if err := utils.ApplyPagination(condition, limit, page).Preload("Location").Preload("Images").
			Order("is_featured DESC, id DESC").Find(&packages).Error; err != nil {
			return nil, err
		}
		return &model.ResponseCustom{Rows: packages, Limit: &limit, Page: &page, TotalCount: totalCount}, nil
	})
}

func TravelPackage(c *fiber.Ctx) error {
	slugParam := strings.ToLower(c.Params("slug"))
	return cached(c, "packages:"+slugParam, func() (any, error) {
		var pkg model.TourPackage
		if err := publicPackages(database.DB).Select("id").Where("slug = ?", slugParam).First(&pkg).Error; err != nil {
			return nil, err
		}
		return loadTourPackage(database.DB, pkg.ID)
	})
}

// CreateInquiry lưu yêu cầu tư vấn từ trang public, gửi mail xác nhận nếu khách có email
func CreateInquiry(c *fiber.Ctx) error {
	input := c.Locals("inputInquiry").(model.InquiryInput)

	var location model.Location
	if err := database.DB.Where("id = ? AND is_active = ?", input.LocationId, true).First(&location).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.NOT_FOUND_RECORDS, err, "locationId")
	}
	if input.TourPackageId != nil {
		var count int64
		publicPackages(database.DB).Where("id = ? AND location_id = ?", *input.TourPackageId, location.ID).Count(&count)
		if count == 0 {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.NOT_FOUND_RECORDS, nil, "tourPackageId")
		}
	}
	if input.NumAdults < 1 {
		input.NumAdults = 1
	}

	inquiry := model.Inquiry{
		CustomerName:  strings.TrimSpace(input.CustomerName),
		Phone:         strings.TrimSpace(input.Phone),
		Email:         strings.ToLower(strings.TrimSpace(input.Email)),
		LocationId:    location.ID,
		TourPackageId: input.TourPackageId,
		JourneyDate:   input.JourneyDate,
		NumAdults:     input.NumAdults,
		NumChildren:   input.NumChildren,
		Remarks:       input.Remarks,
		Status:        constants.INQUIRY_PENDING,
	}
	if customer := currentCustomer(c); customer != nil {
		inquiry.CustomerId = &customer.ID
	}
	if err := database.DB.Create(&inquiry).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	if inquiry.Email != "" {
		html, err := utils.RenderTemplate("inquiry_ack.html", fiber.Map{
			"Agency":       deps.AgencyName,
			"CustomerName": inquiry.CustomerName,
			"Destination":  location.Label,
			"Phone":        inquiry.Phone,
		})
		if err != nil {
			log().Error("render inquiry mail", zap.Error(err))
		} else {
			utils.SendAsync(deps.SimpleMailer, utils.MailMessage{
				To:      []string{inquiry.Email},
				Subject: deps.AgencyName + " - We received your enquiry",
				HTML:    html,
			})
		}
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, inquiry)
}
