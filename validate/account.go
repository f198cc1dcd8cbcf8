package validate

import (
	"errors"

	"travel_manager/constants"
	"travel_manager/database"
	"travel_manager/model"

	"github.com/gofiber/fiber/v2"
)

func Login() fiber.Handler {
	return Body[model.LoginInput]("inputLogin")
}

func CreateAccount() fiber.Handler {
	return Body("inputCreateAccount", func(c *fiber.Ctx, input *model.CreateAccountInput) error {
		// Kiểm tra username đã tồn tại
		var count int64
		if err := database.DB.Model(&model.Account{}).Where("username = ?", input.Username).Count(&count).Error; err != nil {
			return halt(c, fiber.StatusInternalServerError, constants.ERROR_SOMETHING_WRONG, err, "")
		}
		if count > 0 {
			return halt(c, fiber.StatusConflict, constants.USERNAME_EXISTS, nil, "username")
		}
		return nil
	})
}

func ActiveAccount() fiber.Handler {
	return Body[model.ActiveAccountInput]("inputActiveAccount")
}

func AdminChangePassword() fiber.Handler {
	return Body("inputAdminChangePassword", func(c *fiber.Ctx, input *model.AdminChangePassword) error {
		if input.NewPassword != input.RepeatPassword {
			return halt(c, fiber.StatusBadRequest, constants.PASSWORD_NOT_MATCH, errors.New("newPassword not same repeatPassword"), "repeatPassword")
		}
		return nil
	})
}

// ChangePassword dùng chung cho nhân viên và khách hàng
func ChangePassword() fiber.Handler {
	return Body("inputChangePassword", func(c *fiber.Ctx, input *model.ChangePasswordInput) error {
		if input.NewPassword != input.RepeatPassword {
			return halt(c, fiber.StatusBadRequest, constants.PASSWORD_NOT_MATCH, errors.New("newPassword not same repeatPassword"), "repeatPassword")
		}
		return nil
	})
}
