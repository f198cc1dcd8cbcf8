package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"travel_manager/constants"
	"travel_manager/model"
	"travel_manager/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

// newValidator báo lỗi theo tên json để client map được vào form
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// normalizer được gọi sau khi parse, trước khi validate struct
type normalizer interface {
	Normalize()
}

// Body parse JSON vào T, chuẩn hoá, validate struct, chạy thêm checks rồi lưu vào Locals
func Body[T any](local string, checks ...func(c *fiber.Ctx, input *T) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input T

		// Parse JSON từ request body vào struct
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, fmt.Errorf("invalid input: %w", err))
		}

		if n, ok := any(&input).(normalizer); ok {
			n.Normalize()
		}

		// Validate input
		if err := validate.Struct(input); err != nil {
			return utils.ValidationErrorResponse(c, constants.VALIDATION_FAILED, err)
		}

		for _, check := range checks {
			if err := check(c, &input); err != nil {
				if Halted(err) {
					return nil
				}
				return err
			}
		}

		// Save input to context locals
		c.Locals(local, input)

		// Continue to next handler
		return c.Next()
	}
}

// stop trả lỗi sau khi đã ghi response, để Body dừng chuỗi middleware
type stop struct{ err error }

func (s stop) Error() string { return s.err.Error() }

func halt(c *fiber.Ctx, status int, message string, err error, key string) error {
	var writeErr error
	if key != "" {
		writeErr = utils.ErrorResponseHaveKey(c, status, message, err, key)
	} else {
		writeErr = utils.ErrorResponse(c, status, message, err)
	}
	if writeErr != nil {
		return writeErr
	}
	return stop{err: errOrMessage(err, message)}
}

func errOrMessage(err error, message string) error {
	if err != nil {
		return err
	}
	return errors.New(message)
}

// Halted: response lỗi đã được ghi, không cần xử lý thêm
func Halted(err error) bool {
	var s stop
	return errors.As(err, &s)
}

func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil || valueKey <= 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		c.Locals("inputId", valueKey)
		return c.Next()
	}
}

func Delete() fiber.Handler {
	return Body[model.ArrayId]("deleteIds")
}
