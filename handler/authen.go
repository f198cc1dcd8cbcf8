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
	"go.uber.org/zap"
)

func accountSummary(a *model.Account) fiber.Map {
	return fiber.Map{
		"id":       a.ID,
		"username": a.Username,
		"role":     a.Role,
		"fullName": a.FullName,
		"email":    a.Email,
	}
}

func Login(c *fiber.Ctx) error {
	input := c.Locals("inputLogin").(model.LoginInput)

	account, err := helper.GetAccountByUsername(input.Username)
	if err != nil {
		return dbError(c, err, "account")
	}
	if account == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_USERNAME, errors.New("username not exists"))
	}
	if !helper.CheckPasswordHash(input.Password, account.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_PASSWORD, errors.New("password does not match username"))
	}
	if !account.Active {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_ACTIVE, errors.New("active false"))
	}

	return issueAccountTokens(c, account, "login success")
}

func issueAccountTokens(c *fiber.Ctx, account *model.Account, message string) error {
	tokens, err := helper.GenerateTokenPair(model.TokenClaim{
		AccountId: account.ID,
		Username:  account.Username,
		Role:      account.Role,
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := database.DB.Model(account).Update("refresh_token", tokens.RefreshToken).Error; err != nil {
		return dbError(c, err, "account")
	}

	helper.SetAuthCookies(c, tokens, "")
	log().Info("account authenticated", zap.Uint("accountId", account.ID), zap.String("username", account.Username))

	return c.JSON(fiber.Map{
		"message":     message,
		"account":     accountSummary(account),
		"accessToken": tokens.AccessToken,
	})
}

// RefreshToken xoay vòng token, refresh token cũ hết hiệu lực
func RefreshToken(c *fiber.Ctx) error {
	refresh := c.Cookies("refresh_token")
	if refresh == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		_ = c.BodyParser(&body)
		refresh = body.RefreshToken
	}
	if refresh == "" {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "refresh token not found", nil)
	}

	token, err := helper.ParseToken(refresh)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", err)
	}
	claim, tokenType := helper.ClaimFromToken(token)
	if tokenType != helper.TokenTypeRefresh || claim.AccountId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", helper.ErrInvalidToken)
	}

	var account model.Account
	if err := database.DB.First(&account, claim.AccountId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", err)
	}
	if account.RefreshToken != refresh {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Refresh token revoked", helper.ErrInvalidToken)
	}
	if !account.Active {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_ACTIVE, nil)
	}

	return issueAccountTokens(c, &account, "refresh success")
}

func Logout(c *fiber.Ctx) error {
	if account := helper.CurrentAccount(c); account != nil {
		database.DB.Model(account).Update("refresh_token", "")
	}
	expired := time.Now().Add(-time.Hour)
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{Name: name, Value: "", Expires: expired, HTTPOnly: true})
	}
	return c.JSON(fiber.Map{"message": "logout success"})
}

func Me(c *fiber.Ctx) error {
	account := helper.CurrentAccount(c)
	if account == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_PERMISSION, helper.ErrInvalidToken)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, account)
}
