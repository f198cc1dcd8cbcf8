package handler

import (
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

func GetTourPackages(c *fiber.Ctx) error {
	filterInput := new(model.FilterTourPackage)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	condition := filterTourPackages(database.DB.Model(&model.TourPackage{}), filterInput)

	var totalCount int64
	if err := condition.Count(&totalCount).Error; err != nil {
		return dbError(c, err, "tour package")
	}
	limit, page := utils.NormalizePage(filterInput.Limit, filterInput.Page)
	var packages []model.TourPackage
	if err := utils.ApplyPagination(condition, limit, page).
		Preload("Location").Preload("Images").Order("id DESC").Find(&packages).Error; err != nil {
		return dbError(c, err, "tour package")
	}
	return listResponse(c, packages, limit, page, totalCount)
}

func filterTourPackages(condition *gorm.DB, f *model.FilterTourPackage) *gorm.DB {
	if f.SearchKey != "" {
		pattern := likePattern(f.SearchKey)
		condition = condition.Where("LOWER(name) LIKE ? OR LOWER(tour_category) LIKE ?", pattern, pattern)
	}
	if f.LocationId > 0 {
		condition = condition.Where("location_id = ?", f.LocationId)
	}
	if f.TourCategory != "" {
		condition = condition.Where("tour_category = ?", f.TourCategory)
	}
	if f.IsFeatured != nil {
		condition = condition.Where("is_featured = ?", *f.IsFeatured)
	}
	if f.IsArchived != nil {
		condition = condition.Where("is_archived = ?", *f.IsArchived)
	}
	return condition
}

func loadTourPackage(db *gorm.DB, id uint) (model.TourPackage, error) {
	var pkg model.TourPackage
	err := helper.PreloadItineraries(db).Preload("Location").Preload("Images").First(&pkg, id).Error
	return pkg, err
}

func GetTourPackageById(c *fiber.Ctx) error {
	pkg, err := loadTourPackage(database.DB, inputId(c))
	if err != nil {
		return dbError(c, err, "tour package")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, pkg)
}

// writeTourPackage lưu package, ảnh và cây lịch trình trong một transaction
func writeTourPackage(tx *gorm.DB, pkg *model.TourPackage, images []model.Image, itineraries []model.Itinerary, renamed bool) error {
	if renamed {
		pkg.Slug = helper.GenerateUniqueSlug(tx, &model.TourPackage{}, pkg.Name, pkg.ID)
	}
	if err := tx.Omit("Images", "Itineraries", "Location").Save(pkg).Error; err != nil {
		return err
	}
	if err := helper.ReplaceOwnerImages(tx, "tour_package_id", pkg.ID, images); err != nil {
		return err
	}
	return helper.ReplaceItineraries(tx, model.ItineraryOwner{TourPackageId: &pkg.ID}, itineraries)
}

func CreateTourPackage(c *fiber.Ctx) error {
	input := c.Locals("inputTourPackage").(model.TourPackageInput)

	itineraries, err := helper.BuildItineraries(input.Itineraries)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err, "itineraries")
	}

	pkg := new(model.TourPackage)
	if err := copier.CopyWithOption(pkg, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	pkg.Images, pkg.Itineraries = nil, nil

	if err := database.DB.Transaction(func(tx *gorm.DB) error {
		return writeTourPackage(tx, pkg, helper.BuildImages(input.Images), itineraries, true)
	}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	invalidateTravelCache(c)
	created, err := loadTourPackage(database.DB, pkg.ID)
	if err != nil {
		return dbError(c, err, "tour package")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, created)
}

func EditTourPackage(c *fiber.Ctx) error {
	input := c.Locals("inputTourPackage").(model.TourPackageInput)

	var pkg model.TourPackage
	if err := database.DB.First(&pkg, inputId(c)).Error; err != nil {
		return dbError(c, err, "tour package")
	}
	itineraries, err := helper.BuildItineraries(input.Itineraries)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err, "itineraries")
	}

	renamed := pkg.Name != input.Name
	if err := copier.Copy(&pkg, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}
	pkg.Images, pkg.Itineraries = nil, nil

	if err := database.DB.Transaction(func(tx *gorm.DB) error {
		return writeTourPackage(tx, &pkg, helper.BuildImages(input.Images), itineraries, renamed)
	}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	invalidateTravelCache(c)
	updated, err := loadTourPackage(database.DB, pkg.ID)
	if err != nil {
		return dbError(c, err, "tour package")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, updated)
}

// DuplicateTourPackage sao chép package kèm ảnh và lịch trình, bản sao không nổi bật
func DuplicateTourPackage(c *fiber.Ctx) error {
	src, err := loadTourPackage(database.DB, inputId(c))
	if err != nil {
		return dbError(c, err, "tour package")
	}

	clone := src
	clone.DTO = model.DTO{}
	clone.Location = nil
	clone.Name = src.Name + " (Copy)"
	clone.IsFeatured = false
	images := make([]model.Image, 0, len(src.Images))
	for _, img := range src.Images {
		images = append(images, model.Image{Url: img.Url, PublicID: img.PublicID})
	}
	itineraries := helper.CloneItineraries(src.Itineraries)
	clone.Images, clone.Itineraries = nil, nil

	if err := database.DB.Transaction(func(tx *gorm.DB) error {
		return writeTourPackage(tx, &clone, images, itineraries, true)
	}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	log().Info("tour package duplicated", zap.Uint("from", src.ID), zap.Uint("to", clone.ID))
	invalidateTravelCache(c)
	created, err := loadTourPackage(database.DB, clone.ID)
	if err != nil {
		return dbError(c, err, "tour package")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, created)
}

// DeleteTourPackage xoá mềm, query đã tạo từ package vẫn giữ bản sao lịch trình
func DeleteTourPackage(c *fiber.Ctx) error {
	id := inputId(c)
	var pkg model.TourPackage
	if err := database.DB.First(&pkg, id).Error; err != nil {
		return dbError(c, err, "tour package")
	}
	if err := database.DB.Delete(&pkg).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	invalidateTravelCache(c)
	return c.JSON(fiber.Map{"message": "deleted", "id": id})
}
