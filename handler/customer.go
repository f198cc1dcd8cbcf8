package handler

import (
	"errors"

	"travel_manager/constants"
	"travel_manager/database"
	"travel_manager/model"
	"travel_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// === Khách hàng (back office) ===

func GetCustomer(c *fiber.Ctx) error {
	filterInput := new(model.FilterCustomer)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	condition := database.DB.Model(&model.Customer{})
	if filterInput.SearchKey != "" {
		pattern := likePattern(filterInput.SearchKey)
		condition = condition.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?", pattern, pattern, pattern)
	}
	if filterInput.AssociatePartnerId > 0 {
		condition = condition.Where("associate_partner_id = ?", filterInput.AssociatePartnerId)
	}
	if filterInput.Active != nil {
		condition = condition.Where("is_active = ?", *filterInput.Active)
	}

	var totalCount int64
	if err := condition.Count(&totalCount).Error; err != nil {
		return dbError(c, err, "customer")
	}

	limit, page := utils.NormalizePage(filterInput.Limit, filterInput.Page)
	var customers model.Customers
	if err := utils.ApplyPagination(condition, limit, page).
		Preload("AssociatePartner").Order("id DESC").Find(&customers).Error; err != nil {
		return dbError(c, err, "customer")
	}
	return listResponse(c, customers, limit, page, totalCount)
}

func GetCustomerById(c *fiber.Ctx) error {
	var customer model.Customer
	if err := database.DB.Preload("AssociatePartner").First(&customer, inputId(c)).Error; err != nil {
		return dbError(c, err, "customer")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, customer)
}

func CreateCustomer(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateCustomer").(model.CustomerInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	customer := new(model.Customer)
	if err := copier.Copy(customer, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	customer.IsActive = boolOr(input.IsActive, true)

	if err := database.DB.Create(customer).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, customer)
}

func EditCustomer(c *fiber.Ctx) error {
	input := c.Locals("inputEditCustomer").(model.CustomerInput)

	var customer model.Customer
	if err := database.DB.First(&customer, inputId(c)).Error; err != nil {
		return dbError(c, err, "customer")
	}

	updates := map[string]any{
		"name":                 input.Name,
		"email":                input.Email,
		"phone":                input.Phone,
		"associate_partner_id": input.AssociatePartnerId,
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if err := database.DB.Model(&customer).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	database.DB.Preload("AssociatePartner").First(&customer, customer.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, customer)
}

// DeleteCustomer xoá mềm, query cũ vẫn giữ tên và số điện thoại khách
func DeleteCustomer(c *fiber.Ctx) error {
	input := c.Locals("deleteIds").(model.ArrayId)

	var deleted int64
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id IN ?", input.IDs).Delete(&model.Customer{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return tx.Where("customer_id IN ?", input.IDs).Delete(&model.PasswordResetToken{}).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	return c.JSON(fiber.Map{"message": "deleted", "deleted": deleted})
}
