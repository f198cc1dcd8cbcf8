package handler

import (
	"travel_manager/constants"
	"travel_manager/database"
	"travel_manager/helper"
	"travel_manager/model"
	"travel_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type reference struct {
	model  any
	column string
}

// listNamed dùng chung cho các danh mục có cột name và is_active
func listNamed(c *fiber.Ctx, m any, dest any, entity string) error {
	filterInput := new(model.FilterMaster)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	condition := database.DB.Model(m)
	if filterInput.SearchKey != "" {
		condition = condition.Where("LOWER(name) LIKE ?", likePattern(filterInput.SearchKey))
	}
	if filterInput.Active != nil {
		condition = condition.Where("is_active = ?", *filterInput.Active)
	}

	var totalCount int64
	if err := condition.Count(&totalCount).Error; err != nil {
		return dbError(c, err, entity)
	}
	limit, page := utils.NormalizePage(filterInput.Limit, filterInput.Page)
	if err := utils.ApplyPagination(condition, limit, page).Order("name ASC").Find(dest).Error; err != nil {
		return dbError(c, err, entity)
	}
	return listResponse(c, dest, limit, page, totalCount)
}

func getNamed(c *fiber.Ctx, dest any, entity string) error {
	if err := database.DB.First(dest, inputId(c)).Error; err != nil {
		return dbError(c, err, entity)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, dest)
}

// saveNamed tạo hoặc cập nhật bản ghi sau khi kiểm tra trùng tên
func saveNamed(c *fiber.Ctx, m any, name string, id uint, create bool) error {
	taken, err := nameTaken(m, "name", name, id)
	if err != nil {
		return dbError(c, err, "master")
	}
	if taken {
		return conflictName(c, "name")
	}

	status, message := fiber.StatusOK, constants.ERROR_EDIT
	if create {
		status, message = fiber.StatusCreated, constants.ERROR_CREATE
		err = database.DB.Create(m).Error
	} else {
		err = database.DB.Save(m).Error
	}
	if err != nil {
		if isUniqueViolation(err) {
			return conflictName(c, "name")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, message, err)
	}
	return utils.SuccessResponse(c, status, m)
}

// deleteUnreferenced xoá mềm, trả 409 khi còn bản ghi khác tham chiếu
func deleteUnreferenced(c *fiber.Ctx, m any, entity string, refs ...reference) error {
	id := inputId(c)
	if err := database.DB.First(m, id).Error; err != nil {
		return dbError(c, err, entity)
	}
	for _, ref := range refs {
		var count int64
		if err := database.DB.Model(ref.model).Where(ref.column+" = ?", id).Count(&count).Error; err != nil {
			return dbError(c, err, entity)
		}
		if count > 0 {
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.RECORD_IN_USE, nil)
		}
	}
	if err := database.DB.Delete(m).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	return c.JSON(fiber.Map{"message": "deleted", "id": id})
}

// === Hotel ===

func GetHotels(c *fiber.Ctx) error {
	filterInput := new(model.FilterMaster)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	condition := database.DB.Model(&model.Hotel{})
	if filterInput.SearchKey != "" {
		pattern := likePattern(filterInput.SearchKey)
		condition = condition.Where("LOWER(name) LIKE ? OR LOWER(destination) LIKE ?", pattern, pattern)
	}
	if filterInput.LocationId > 0 {
		condition = condition.Where("location_id = ?", filterInput.LocationId)
	}

	var totalCount int64
	if err := condition.Count(&totalCount).Error; err != nil {
		return dbError(c, err, "hotel")
	}
	limit, page := utils.NormalizePage(filterInput.Limit, filterInput.Page)
	var hotels []model.Hotel
	if err := utils.ApplyPagination(condition, limit, page).
		Preload("Location").Preload("Images").Order("name ASC").Find(&hotels).Error; err != nil {
		return dbError(c, err, "hotel")
	}
	return listResponse(c, hotels, limit, page, totalCount)
}

func GetHotelById(c *fiber.Ctx) error {
	var hotel model.Hotel
	if err := database.DB.Preload("Location").Preload("Images").First(&hotel, inputId(c)).Error; err != nil {
		return dbError(c, err, "hotel")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, hotel)
}

func saveHotel(c *fiber.Ctx, hotel *model.Hotel, input model.HotelInput, status int) error {
	var location model.Location
	if err := database.DB.First(&location, input.LocationId).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.NOT_FOUND_RECORDS, err, "locationId")
	}

	hotel.Name = input.Name
	hotel.LocationId = input.LocationId
	hotel.Link = input.Link
	hotel.Destination = input.Destination
	if hotel.Destination == "" {
		hotel.Destination = location.Label
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Images").Save(hotel).Error; err != nil {
			return err
		}
		return helper.ReplaceOwnerImages(tx, "hotel_id", hotel.ID, helper.BuildImages(input.Images))
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	database.DB.Preload("Location").Preload("Images").First(hotel, hotel.ID)
	return utils.SuccessResponse(c, status, hotel)
}

func CreateHotel(c *fiber.Ctx) error {
	input := c.Locals("inputHotel").(model.HotelInput)
	return saveHotel(c, &model.Hotel{}, input, fiber.StatusCreated)
}

func EditHotel(c *fiber.Ctx) error {
	input := c.Locals("inputHotel").(model.HotelInput)
	var hotel model.Hotel
	if err := database.DB.First(&hotel, inputId(c)).Error; err != nil {
		return dbError(c, err, "hotel")
	}
	return saveHotel(c, &hotel, input, fiber.StatusOK)
}

func DeleteHotel(c *fiber.Ctx) error {
	return deleteUnreferenced(c, &model.Hotel{}, "hotel", reference{&model.Itinerary{}, "hotel_id"})
}

// === Associate partner ===

func GetAssociatePartners(c *fiber.Ctx) error {
	return listNamed(c, &model.AssociatePartner{}, &[]model.AssociatePartner{}, "associate partner")
}

func GetAssociatePartnerById(c *fiber.Ctx) error {
	return getNamed(c, &model.AssociatePartner{}, "associate partner")
}

func CreateAssociatePartner(c *fiber.Ctx) error {
	input := c.Locals("inputAssociatePartner").(model.AssociatePartnerInput)
	partner := new(model.AssociatePartner)
	if err := copier.Copy(partner, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	partner.IsActive = boolOr(input.IsActive, true)
	return saveNamed(c, partner, partner.Name, 0, true)
}

func EditAssociatePartner(c *fiber.Ctx) error {
	input := c.Locals("inputAssociatePartner").(model.AssociatePartnerInput)
	var partner model.AssociatePartner
	if err := database.DB.First(&partner, inputId(c)).Error; err != nil {
		return dbError(c, err, "associate partner")
	}
	active := boolOr(input.IsActive, partner.IsActive)
	if err := copier.Copy(&partner, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}
	partner.IsActive = active
	return saveNamed(c, &partner, partner.Name, partner.ID, false)
}

func DeleteAssociatePartner(c *fiber.Ctx) error {
	return deleteUnreferenced(c, &model.AssociatePartner{}, "associate partner",
		reference{&model.Customer{}, "associate_partner_id"},
		reference{&model.TourPackageQuery{}, "associate_partner_id"},
	)
}

// === Supplier ===

func GetSuppliers(c *fiber.Ctx) error {
	return listNamed(c, &model.Supplier{}, &[]model.Supplier{}, "supplier")
}

func GetSupplierById(c *fiber.Ctx) error {
	return getNamed(c, &model.Supplier{}, "supplier")
}

func CreateSupplier(c *fiber.Ctx) error {
	input := c.Locals("inputSupplier").(model.SupplierInput)
	supplier := new(model.Supplier)
	if err := copier.Copy(supplier, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	supplier.IsActive = boolOr(input.IsActive, true)
	return saveNamed(c, supplier, supplier.Name, 0, true)
}

func EditSupplier(c *fiber.Ctx) error {
	input := c.Locals("inputSupplier").(model.SupplierInput)
	var supplier model.Supplier
	if err := database.DB.First(&supplier, inputId(c)).Error; err != nil {
		return dbError(c, err, "supplier")
	}
	active := boolOr(input.IsActive, supplier.IsActive)
	if err := copier.Copy(&supplier, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}
	supplier.IsActive = active
	return saveNamed(c, &supplier, supplier.Name, supplier.ID, false)
}

func DeleteSupplier(c *fiber.Ctx) error {
	return deleteUnreferenced(c, &model.Supplier{}, "supplier",
		reference{&model.PurchaseDetail{}, "supplier_id"},
		reference{&model.PaymentDetail{}, "supplier_id"},
	)
}

// === Danh mục thu / chi ===

func GetExpenseCategories(c *fiber.Ctx) error {
	return listNamed(c, &model.ExpenseCategory{}, &[]model.ExpenseCategory{}, "expense category")
}

func GetIncomeCategories(c *fiber.Ctx) error {
	return listNamed(c, &model.IncomeCategory{}, &[]model.IncomeCategory{}, "income category")
}

func GetExpenseCategoryById(c *fiber.Ctx) error {
	return getNamed(c, &model.ExpenseCategory{}, "expense category")
}

func GetIncomeCategoryById(c *fiber.Ctx) error {
	return getNamed(c, &model.IncomeCategory{}, "income category")
}

func CreateExpenseCategory(c *fiber.Ctx) error {
	input := c.Locals("inputCategory").(model.CategoryInput)
	category := &model.ExpenseCategory{Name: input.Name, Description: input.Description, IsActive: boolOr(input.IsActive, true)}
	return saveNamed(c, category, category.Name, 0, true)
}

func CreateIncomeCategory(c *fiber.Ctx) error {
	input := c.Locals("inputCategory").(model.CategoryInput)
	category := &model.IncomeCategory{Name: input.Name, Description: input.Description, IsActive: boolOr(input.IsActive, true)}
	return saveNamed(c, category, category.Name, 0, true)
}

func EditExpenseCategory(c *fiber.Ctx) error {
	input := c.Locals("inputCategory").(model.CategoryInput)
	var category model.ExpenseCategory
	if err := database.DB.First(&category, inputId(c)).Error; err != nil {
		return dbError(c, err, "expense category")
	}
	category.Name, category.Description = input.Name, input.Description
	category.IsActive = boolOr(input.IsActive, category.IsActive)
	return saveNamed(c, &category, category.Name, category.ID, false)
}

func EditIncomeCategory(c *fiber.Ctx) error {
	input := c.Locals("inputCategory").(model.CategoryInput)
	var category model.IncomeCategory
	if err := database.DB.First(&category, inputId(c)).Error; err != nil {
		return dbError(c, err, "income category")
	}
	category.Name, category.Description = input.Name, input.Description
	category.IsActive = boolOr(input.IsActive, category.IsActive)
	return saveNamed(c, &category, category.Name, category.ID, false)
}

func DeleteExpenseCategory(c *fiber.Ctx) error {
	return deleteUnreferenced(c, &model.ExpenseCategory{}, "expense category", reference{&model.ExpenseDetail{}, "expense_category_id"})
}

func DeleteIncomeCategory(c *fiber.Ctx) error {
	return deleteUnreferenced(c, &model.IncomeCategory{}, "income category", reference{&model.IncomeDetail{}, "income_category_id"})
}
