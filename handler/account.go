package handler

import (
	"errors"

	"travel_manager/constants"
	"travel_manager/database"
	"travel_manager/helper"
	"travel_manager/model"
	"travel_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"go.uber.org/zap"
)

func GetAccounts(c *fiber.Ctx) error {
	filterInput := new(model.FilterAccount)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	db := database.DB

	condition := db.Model(&model.Account{})
	if filterInput.SearchKey != "" {
		pattern := likePattern(filterInput.SearchKey)
		condition = condition.Where("LOWER(username) LIKE ? OR LOWER(full_name) LIKE ?", pattern, pattern)
	}
	if filterInput.Active != nil {
		condition = condition.Where("active = ?", *filterInput.Active)
	}
	if filterInput.Role != nil {
		condition = condition.Where("role = ?", *filterInput.Role)
	}

	var totalCount int64
	if err := condition.Count(&totalCount).Error; err != nil {
		return dbError(c, err, "account")
	}

	limit, page := utils.NormalizePage(filterInput.Limit, filterInput.Page)
	var accounts model.Accounts
	if err := utils.ApplyPagination(condition, limit, page).Order("id ASC").Find(&accounts).Error; err != nil {
		return dbError(c, err, "account")
	}
	return listResponse(c, accounts, limit, page, totalCount)
}

func CreateAccount(c *fiber.Ctx) error {
	accountInput, ok := c.Locals("inputCreateAccount").(model.CreateAccountInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	hash, err := helper.HashPassword(accountInput.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}

	newAccount := new(model.Account)
	if err := copier.Copy(newAccount, &accountInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	newAccount.Password = hash
	newAccount.Active = true
	if err := database.DB.Create(newAccount).Error; err != nil {
		if isUniqueViolation(err) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.USERNAME_EXISTS, err, "username")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	log().Info("account created", zap.Uint("accountId", newAccount.ID), zap.String("role", newAccount.Role))
	return utils.SuccessResponse(c, fiber.StatusCreated, newAccount)
}

// ActiveAccount bật/tắt tài khoản, không cho tự khoá chính mình
func ActiveAccount(c *fiber.Ctx) error {
	input := c.Locals("inputActiveAccount").(model.ActiveAccountInput)
	accountId := inputId(c)

	if current := helper.CurrentAccount(c); current != nil && current.ID == accountId && !*input.Active {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.NOT_PERMISSION, errors.New("cannot deactivate your own account"))
	}

	var account model.Account
	if err := database.DB.First(&account, accountId).Error; err != nil {
		return dbError(c, err, "account")
	}
	updates := map[string]any{"active": *input.Active}
	if !*input.Active {
		updates["refresh_token"] = ""
	}
	if err := database.DB.Model(&account).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}
	account.Active = *input.Active

	return utils.SuccessResponse(c, fiber.StatusOK, account)
}

func AdminChangePassword(c *fiber.Ctx) error {
	changePasswordInput, ok := c.Locals("inputAdminChangePassword").(model.AdminChangePassword)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	var account model.Account
	if err := database.DB.First(&account, changePasswordInput.AccountId).Error; err != nil {
		return dbError(c, err, "account")
	}

	newPasswordHash, err := helper.HashPassword(changePasswordInput.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}
	// đổi mật khẩu thì thu hồi phiên cũ
	if err := database.DB.Model(&account).Updates(map[string]any{
		"password":      newPasswordHash,
		"refresh_token": "",
	}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, account)
}

func ChangePassword(c *fiber.Ctx) error {
	input := c.Locals("inputChangePassword").(model.ChangePasswordInput)
	account := helper.CurrentAccount(c)
	if account == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_PERMISSION, helper.ErrInvalidToken)
	}
	if !helper.CheckPasswordHash(input.CurrentPassword, account.Password) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.INVALID_PASSWORD, nil, "currentPassword")
	}

	hash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}
	if err := database.DB.Model(account).Update("password", hash).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}
	return c.JSON(fiber.Map{"message": "password changed"})
}
