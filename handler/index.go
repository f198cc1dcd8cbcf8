package handler

import (
	"errors"
	"strings"

	"travel_manager/constants"
	"travel_manager/helper"
	"travel_manager/model"
	"travel_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies là các client bên ngoài handler dùng, nil nghĩa là chưa cấu hình
type Dependencies struct {
	Logger       *zap.Logger
	Redis        *redis.Client
	Cache        *helper.TravelCache
	Catalog      *helper.CatalogSyncer
	PDF          utils.PDFRenderer
	Files        helper.FileStore
	Images       helper.ImageStore
	Mailer       utils.Mailer
	SimpleMailer utils.Mailer
	Places       *utils.PlacesClient
	Gateway      *helper.CheckoutGateway
	AgencyName   string
	PublicURL    string
	Currency     string
}

var deps = Dependencies{Logger: zap.NewNop()}

func Setup(d Dependencies) {
	if d.Logger == nil {
		d.Logger = zap.L()
	}
	if d.AgencyName == "" {
		d.AgencyName = "Travel Manager"
	}
	if d.Currency == "" {
		d.Currency = "INR"
	}
	d.PublicURL = strings.TrimRight(d.PublicURL, "/")
	deps = d
}

func log() *zap.Logger {
	return deps.Logger
}

func inputId(c *fiber.Ctx) uint {
	id, _ := c.Locals("inputId").(int)
	return uint(id)
}

// dbError: không tìm thấy trả 404, lỗi khác log và trả 500
func dbError(c *fiber.Ctx, err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, errors.New(what+" not found"))
	}
	log().Error("database error", zap.String("entity", what), zap.String("path", c.Path()), zap.Error(err))
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_SOMETHING_WRONG, err)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

func listResponse(c *fiber.Ctx, rows any, limit, page int, total int64) error {
	return utils.SuccessResponse(c, fiber.StatusOK, &model.ResponseCustom{
		Rows:       rows,
		Limit:      &limit,
		Page:       &page,
		TotalCount: total,
	})
}

func likePattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
