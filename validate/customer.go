package validate

import (
	"strconv"

	"travel_manager/constants"
	"travel_manager/helper"
	"travel_manager/model"

	"github.com/gofiber/fiber/v2"
)

// checkCustomerContact kiểm tra email/phone trùng, bỏ qua khách hàng đang sửa
func checkCustomerContact(c *fiber.Ctx, email, phone string, id *uint) error {
	if phone != "" {
		exists, err := helper.CheckByPhoneNumberCustomer(phone, id)
		if err != nil {
			return halt(c, fiber.StatusInternalServerError, constants.ERROR_SOMETHING_WRONG, err, "")
		}
		if exists {
			return halt(c, fiber.StatusConflict, constants.PHONE_EXISTS, nil, "phone")
		}
	}
	if email != "" {
		exists, err := helper.CheckByEmailCustomer(email, id)
		if err != nil {
			return halt(c, fiber.StatusInternalServerError, constants.ERROR_SOMETHING_WRONG, err, "")
		}
		if exists {
			return halt(c, fiber.StatusConflict, constants.EMAIL_EXISTS, nil, "email")
		}
	}
	return nil
}

func CreateCustomer() fiber.Handler {
	return Body("inputCreateCustomer", func(c *fiber.Ctx, input *model.CustomerInput) error {
		return checkCustomerContact(c, input.Email, input.Phone, nil)
	})
}

func EditCustomer() fiber.Handler {
	return Body("inputEditCustomer", func(c *fiber.Ctx, input *model.CustomerInput) error {
		id64, err := strconv.ParseUint(c.Params("customerId"), 10, 32)
		if err != nil {
			return halt(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err, "")
		}
		id := uint(id64)
		return checkCustomerContact(c, input.Email, input.Phone, &id)
	})
}

func RegisterCustomer() fiber.Handler {
	return Body("inputRegisterCustomer", func(c *fiber.Ctx, input *model.RegisterCustomerInput) error {
		return checkCustomerContact(c, input.Email, input.Phone, nil)
	})
}

func CustomerLogin() fiber.Handler {
	return Body[model.CustomerLoginInput]("inputCustomerLogin")
}

func ForgotPassword() fiber.Handler {
	return Body[model.ForgotPasswordRequest]("inputForgotPassword")
}

func ResetPassword() fiber.Handler {
	return Body[model.ResetPasswordRequest]("inputResetPassword")
}
