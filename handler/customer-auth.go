package handler

import (
	"errors"
	"time"

	"travel_manager/constants"
	"travel_manager/database"
	"travel_manager/helper"
	"travel_manager/model"
	"travel_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	customerCookiePrefix = "customer_"
	resetTokenTTL        = time.Hour
)

// === Khách hàng tự đăng ký / đăng nhập trên site công khai ===

func RegisterCustomer(c *fiber.Ctx) error {
	input := c.Locals("inputRegisterCustomer").(model.RegisterCustomerInput)

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err, "password")
	}

	newCustomer := new(model.Customer)
	if err := copier.Copy(newCustomer, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	newCustomer.Password = hash
	newCustomer.IsActive = true

	if err := database.DB.Create(newCustomer).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	return issueCustomerTokens(c, newCustomer, fiber.StatusCreated, "register success")
}

func CustomerLogin(c *fiber.Ctx) error {
	input := c.Locals("inputCustomerLogin").(model.CustomerLoginInput)

	customer, err := helper.GetCustomerByEmail(input.Email)
	if err != nil {
		return dbError(c, err, "customer")
	}
	if customer == nil || customer.Password == "" {
		return utils.ErrorResponseHaveKey(c, fiber.StatusUnauthorized, constants.INVALID_EMAIL, nil, "email")
	}
	if !helper.CheckPasswordHash(input.Password, customer.Password) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusUnauthorized, constants.INVALID_PASSWORD, nil, "password")
	}
	if !customer.IsActive {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_ACTIVE, nil)
	}
	return issueCustomerTokens(c, customer, fiber.StatusOK, "login success")
}

func issueCustomerTokens(c *fiber.Ctx, customer *model.Customer, status int, message string) error {
	tokens, err := helper.GenerateTokenPair(model.TokenClaim{CustomerId: customer.ID, Username: customer.Email})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	helper.SetAuthCookies(c, tokens, customerCookiePrefix)
	return c.Status(status).JSON(fiber.Map{
		"message":     message,
		"customer":    customer,
		"accessToken": tokens.AccessToken,
	})
}

func CustomerRefreshToken(c *fiber.Ctx) error {
	refresh := c.Cookies(customerCookiePrefix + "refresh_token")
	if refresh == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		_ = c.BodyParser(&body)
		refresh = body.RefreshToken
	}
	token, err := helper.ParseToken(refresh)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", err)
	}
	claim, tokenType := helper.ClaimFromToken(token)
	if tokenType != helper.TokenTypeRefresh || claim.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", helper.ErrInvalidToken)
	}

	var customer model.Customer
	if err := database.DB.Where("id = ? AND is_active = ?", claim.CustomerId, true).First(&customer).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", err)
	}
	return issueCustomerTokens(c, &customer, fiber.StatusOK, "refresh success")
}

func currentCustomer(c *fiber.Ctx) *model.Customer {
	customer, _ := c.Locals("customer").(*model.Customer)
	return customer
}

func CustomerMe(c *fiber.Ctx) error {
	customer := currentCustomer(c)
	if customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_PERMISSION, helper.ErrInvalidToken)
	}
	database.DB.Preload("AssociatePartner").First(customer, customer.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, customer)
}

func CustomerChangePassword(c *fiber.Ctx) error {
	input := c.Locals("inputChangePassword").(model.ChangePasswordInput)
	customer := currentCustomer(c)
	if customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_PERMISSION, helper.ErrInvalidToken)
	}
	if !helper.CheckPasswordHash(input.CurrentPassword, customer.Password) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.INVALID_PASSWORD, nil, "currentPassword")
	}
	hash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}
	if err := database.DB.Model(customer).Update("password", hash).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}
	return c.JSON(fiber.Map{"message": "password changed"})
}

// ForgotPassword luôn trả 200 để không lộ email nào đã đăng ký
func ForgotPassword(c *fiber.Ctx) error {
	input := c.Locals("inputForgotPassword").(model.ForgotPasswordRequest)
	response := fiber.Map{"message": "if the email is registered, a reset link has been sent"}

	customer, err := helper.GetCustomerByEmail(input.Email)
	if err != nil {
		return dbError(c, err, "customer")
	}
	if customer == nil || !customer.IsActive {
		return c.JSON(response)
	}

	resetToken := model.PasswordResetToken{
		CustomerId: customer.ID,
		Token:      uuid.NewString(),
		ExpiresAt:  time.Now().Add(resetTokenTTL),
	}
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		// token cũ chưa dùng hết hiệu lực
		if err := tx.Where("customer_id = ? AND used_at IS NULL", customer.ID).Delete(&model.PasswordResetToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&resetToken).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	html, err := utils.RenderTemplate("reset_password.html", fiber.Map{
		"Name": customer.Name,
		"Link": deps.PublicURL + "/reset-password?token=" + resetToken.Token,
	})
	if err != nil {
		log().Error("render reset password mail failed", zap.Error(err))
		return c.JSON(response)
	}
	utils.SendAsync(deps.SimpleMailer, utils.MailMessage{
		To:      []string{customer.Email},
		Subject: deps.AgencyName + " - reset your password",
		HTML:    html,
	})
	return c.JSON(response)
}

func ResetPassword(c *fiber.Ctx) error {
	input := c.Locals("inputResetPassword").(model.ResetPasswordRequest)

	var resetToken model.PasswordResetToken
	if err := database.DB.Where("token = ?", input.Token).First(&resetToken).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Invalid or expired token", nil, "token")
		}
		return dbError(c, err, "reset token")
	}
	now := time.Now()
	if resetToken.UsedAt != nil || now.After(resetToken.ExpiresAt) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Invalid or expired token", nil, "token")
	}

	hash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		// chỉ một request được đánh dấu used_at
		result := tx.Model(&model.PasswordResetToken{}).
			Where("id = ? AND used_at IS NULL", resetToken.ID).
			Update("used_at", now)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&model.Customer{}).Where("id = ?", resetToken.CustomerId).Update("password", hash).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Invalid or expired token", nil, "token")
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}
	return c.JSON(fiber.Map{"message": "password has been reset"})
}

// MyBookings trả các query của khách đang đăng nhập kèm QR mã booking
func MyBookings(c *fiber.Ctx) error {
	customer := currentCustomer(c)
	if customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_PERMISSION, helper.ErrInvalidToken)
	}

	var queries []model.TourPackageQuery
	if err := database.DB.Preload("Location").
		Where("customer_id = ?", customer.ID).
		Order("period_from DESC").Find(&queries).Error; err != nil {
		return dbError(c, err, "tour package query")
	}

	bookings := make([]model.MyBooking, 0, len(queries))
	for _, q := range queries {
		qr, err := utils.QRDataURI(q.QueryNumber, 256)
		if err != nil {
			log().Warn("booking qr failed", zap.String("queryNumber", q.QueryNumber), zap.Error(err))
		}
		bookings = append(bookings, model.MyBooking{TourPackageQuery: q, QRCode: qr})
	}
	return utils.SuccessResponse(c, fiber.StatusOK, bookings)
}
