package handler

import (
	"errors"
	"strings"

	"travel_manager/constants"
	"travel_manager/database"
	"travel_manager/helper"
	"travel_manager/model"
	"travel_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

func GetCatalogProducts(c *fiber.Ctx) error {
	filterInput := new(model.FilterCatalogProduct)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	condition := database.DB.Model(&model.CatalogProduct{})
	if filterInput.SyncStatus != "" {
		condition = condition.Where("sync_status = ?", filterInput.SyncStatus)
	}
	if filterInput.SearchKey != "" {
		pattern := likePattern(filterInput.SearchKey)
		condition = condition.Where("LOWER(name) LIKE ? OR LOWER(retailer_id) LIKE ?", pattern, pattern)
	}

	var totalCount int64
	if err := condition.Count(&totalCount).Error; err != nil {
		return dbError(c, err, "catalog product")
	}
	limit, page := utils.NormalizePage(filterInput.Limit, filterInput.Page)
	var products []model.CatalogProduct
	if err := utils.ApplyPagination(condition, limit, page).Order("id DESC").Find(&products).Error; err != nil {
		return dbError(c, err, "catalog product")
	}
	return listResponse(c, products, limit, page, totalCount)
}

// productFromPackage lấy tên, giá, ảnh, link từ tour package, field nhập tay được ưu tiên
func productFromPackage(p *model.CatalogProduct, pkg model.TourPackage) {
	p.TourPackageId = &pkg.ID
	if p.Name == "" {
		p.Name = pkg.Name
	}
	if p.Description == "" {
		p.Description = strings.TrimSpace(pkg.Duration + " " + pkg.TourCategory)
	}
	if p.Price.IsZero() {
		p.Price = pkg.PricePerAdult
		if p.Price.IsZero() {
			p.Price = pkg.Price
		}
	}
	if p.ImageUrl == "" && len(pkg.Images) > 0 {
		p.ImageUrl = pkg.Images[0].Url
	}
	if p.Url == "" && deps.PublicURL != "" {
		p.Url = deps.PublicURL + "/packages/" + pkg.Slug
	}
	if p.RetailerId == "" {
		p.RetailerId = "TP-" + pkg.Slug
	}
}

func applyCatalogInput(p *model.CatalogProduct, input model.CatalogProductInput) {
	if retailerId := strings.TrimSpace(input.RetailerId); retailerId != "" {
		p.RetailerId = retailerId
	}
	p.Name = strings.TrimSpace(input.Name)
	p.Description = input.Description
	if input.Price != nil {
		p.Price = input.Price.Round(2)
	}
	p.Currency = strings.ToUpper(input.Currency)
	if p.Currency == "" {
		p.Currency = deps.Currency
	}
	p.ImageUrl = input.ImageUrl
	p.Url = input.Url
	p.Availability = input.Availability
	p.SyncStatus = constants.SYNC_PENDING
	p.SyncAttempts = 0
	p.LastError = ""
}

// prepareProduct điền dữ liệu từ package nếu có, kiểm tra giá và retailer id
func prepareProduct(c *fiber.Ctx, p *model.CatalogProduct, input model.CatalogProductInput) (bool, error) {
	applyCatalogInput(p, input)
	if input.FromTourPackageId != nil {
		var pkg model.TourPackage
		if err := database.DB.Preload("Images").First(&pkg, *input.FromTourPackageId).Error; err != nil {
			return false, utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.NOT_FOUND_RECORDS, err, "fromTourPackageId")
		}
		productFromPackage(p, pkg)
	}
	if p.RetailerId == "" {
		p.RetailerId = slug.Make(p.Name)
	}
	if !p.Price.IsPositive() {
		return false, utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("price must be greater than 0"), "price")
	}
	taken, err := nameTaken(&model.CatalogProduct{}, "retailer_id", p.RetailerId, p.ID)
	if err != nil {
		return false, dbError(c, err, "catalog product")
	}
	if taken {
		return false, utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Retailer id already exists", nil, "retailerId")
	}
	return true, nil
}

func CreateCatalogProduct(c *fiber.Ctx) error {
	input := c.Locals("inputCatalogProduct").(model.CatalogProductInput)

	var product model.CatalogProduct
	if ok, err := prepareProduct(c, &product, input); !ok {
		return err
	}
	if err := database.DB.Create(&product).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, product)
}

// EditCatalogProduct sửa sản phẩm, đánh dấu PENDING để đồng bộ lại
func EditCatalogProduct(c *fiber.Ctx) error {
	input := c.Locals("inputCatalogProduct").(model.CatalogProductInput)

	var product model.CatalogProduct
	if err := database.DB.First(&product, inputId(c)).Error; err != nil {
		return dbError(c, err, "catalog product")
	}
	if ok, err := prepareProduct(c, &product, input); !ok {
		return err
	}
	if err := database.DB.Omit("TourPackage").Save(&product).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, product)
}

// catalogError đổi lỗi Graph API thành response có status và message từ xa
func catalogError(c *fiber.Ctx, err error) error {
	if errors.Is(err, helper.ErrCatalogNotConfigured) {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, constants.CATALOG_NOT_CONFIGURED, err)
	}
	if errors.Is(err, helper.ErrSyncInProgress) {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.CATALOG_SYNC_FAILED, err)
	}
	var apiErr *helper.CatalogAPIError
	if errors.As(err, &apiErr) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message":      constants.CATALOG_SYNC_FAILED,
			"error":        apiErr.Message,
			"remoteStatus": apiErr.StatusCode,
			"remoteCode":   apiErr.Code,
		})
	}
	log().Error("catalog request failed", zap.String("path", c.Path()), zap.Error(err))
	return utils.ErrorResponse(c, fiber.StatusBadGateway, constants.CATALOG_SYNC_FAILED, err)
}

func DeleteCatalogProduct(c *fiber.Ctx) error {
	var product model.CatalogProduct
	if err := database.DB.First(&product, inputId(c)).Error; err != nil {
		return dbError(c, err, "catalog product")
	}
	if err := deps.Catalog.Remove(c.UserContext(), &product); err != nil {
		return catalogError(c, err)
	}
	return c.JSON(fiber.Map{"message": "deleted", "id": product.ID})
}

func SyncCatalogProduct(c *fiber.Ctx) error {
	var product model.CatalogProduct
	if err := database.DB.First(&product, inputId(c)).Error; err != nil {
		return dbError(c, err, "catalog product")
	}
	if err := deps.Catalog.SyncProduct(c.UserContext(), &product); err != nil {
		return catalogError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, product)
}

func SyncAllCatalog(c *fiber.Ctx) error {
	result, err := deps.Catalog.SyncPending(c.UserContext())
	if err != nil {
		return catalogError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, result)
}

func GetRemoteCatalog(c *fiber.Ctx) error {
	if !deps.Catalog.Enabled() {
		return catalogError(c, helper.ErrCatalogNotConfigured)
	}
	limit := c.QueryInt("limit", 25)
	if limit <= 0 || limit > utils.MaxLimit {
		limit = 25
	}
	page, err := deps.Catalog.Client().ListProducts(c.UserContext(), limit, c.Query("after"))
	if err != nil {
		return catalogError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, page)
}
