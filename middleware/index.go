package middleware

import (
	"errors"
	"strings"

	"travel_manager/constants"
	"travel_manager/helper"
	"travel_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// tokenFrom đọc token từ cookie trước, sau đó tới header Authorization: Bearer xxx
func tokenFrom(c *fiber.Ctx, cookie string) string {
	if token := c.Cookies(cookie); token != "" {
		return token
	}
	auth := c.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

func protect(cookie string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFrom(c, cookie)
		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Missing token", errors.New("no token"))
		}

		jwtToken, err := helper.ParseToken(token)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token", err)
		}

		c.Locals("user", jwtToken)
		return c.Next()
	}
}

// Protected dùng cho route của nhân viên
func Protected() fiber.Handler {
	return protect("access_token")
}

// CustomerProtected dùng cho route của khách hàng đã đăng nhập
func CustomerProtected() fiber.Handler {
	return protect("customer_access_token")
}

// RequireRoles nạp account vào Locals, rỗng roles nghĩa là mọi nhân viên đang hoạt động
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, account, err := helper.GetInfoAccountFromToken(c)
		if err != nil {
			if err.Error() == constants.ACCOUNT_NOT_ACTIVE {
				return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_ACTIVE, err)
			}
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token", err)
		}
		if len(roles) > 0 && !helper.HasRole(account, roles...) {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_PERMISSION, errors.New("role "+account.Role))
		}
		c.Locals("account", account)
		return c.Next()
	}
}

// CustomerOnly nạp khách hàng đang đăng nhập vào Locals "customer"
func CustomerOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		customer := helper.GetInfoCustomerFromToken(c)
		if customer == nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token", helper.ErrInvalidToken)
		}
		c.Locals("customer", customer)
		return c.Next()
	}
}

// OptionalCustomer không chặn khách vãng lai, chỉ gán customer khi token hợp lệ
func OptionalCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFrom(c, "customer_access_token")
		if token == "" {
			return c.Next()
		}
		jwtToken, err := helper.ParseToken(token)
		if err != nil {
			return c.Next()
		}
		c.Locals("user", jwtToken)
		if customer := helper.GetInfoCustomerFromToken(c); customer != nil {
			c.Locals("customer", customer)
		}
		return c.Next()
	}
}
