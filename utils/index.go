package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DefaultLimit = 10
	MaxLimit     = 500
)

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	var errMsg interface{}
	if err != nil {
		errMsg = err.Error()
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   errMsg,
	})
}

func ErrorResponseHaveKey(c *fiber.Ctx, status int, message string, err error, keyError string) error {
	var errMsg interface{}
	if err != nil {
		errMsg = err.Error()
	}
	return c.Status(status).JSON(fiber.Map{
		"message":  message,
		"error":    errMsg,
		"keyError": keyError,
	})
}

// ValidationErrorResponse trả về map field -> lỗi của validator
func ValidationErrorResponse(c *fiber.Ctx, message string, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return ErrorResponse(c, fiber.StatusBadRequest, message, err)
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[lowerFirst(fe.Field())] = fieldMessage(fe)
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
		"fields":  fields,
	})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}

// GetFirstValue lấy giá trị đầu tiên từ slice, nếu rỗng thì trả về ""
func GetFirstValue(values map[string][]string, key string) string {
	if v, ok := values[key]; ok && len(v) > 0 {
		return v[0]
	}
	return ""
}

func SuccessResponse(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

// NormalizePage trả về limit/page mặc định khi client không gửi
func NormalizePage(limit, page *int) (int, int) {
	l, p := DefaultLimit, 1
	if limit != nil && *limit > 0 {
		l = *limit
		if l > MaxLimit {
			l = MaxLimit
		}
	}
	if page != nil && *page > 0 {
		p = *page
	}
	return l, p
}

func ApplyPagination(query *gorm.DB, limit, page int) *gorm.DB {
	if limit > 0 && page >= 1 {
		query = query.Limit(limit).Offset(limit * (page - 1))
	}
	return query
}

// ParseDateRange đọc from/to dạng YYYY-MM-DD, chuỗi rỗng thì bỏ qua
func ParseDateRange(from, to string) (*time.Time, *time.Time, error) {
	var f, t *time.Time
	if from != "" {
		v, err := time.Parse(DateLayout, from)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid from date: %s", from)
		}
		f = &v
	}
	if to != "" {
		v, err := time.Parse(DateLayout, to)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid to date: %s", to)
		}
		t = &v
	}
	if f != nil && t != nil && t.Before(*f) {
		return nil, nil, errors.New("to date must not be before from date")
	}
	return f, t, nil
}

// CalculateGrowth là phần trăm thay đổi so với hôm qua, làm tròn 2 chữ số
func CalculateGrowth(today, yesterday decimal.Decimal) decimal.Decimal {
	if yesterday.IsZero() {
		if today.IsZero() {
			return decimal.Zero
		}
		return decimal.NewFromInt(100) // từ 0 lên >0
	}
	return today.Sub(yesterday).Div(yesterday).Mul(decimal.NewFromInt(100)).Round(2)
}

func Ptr[T any](v T) *T {
	return &v
}
