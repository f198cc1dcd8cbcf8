package handler

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"travel_manager/constants"
	"travel_manager/database"
	"travel_manager/helper"
	"travel_manager/model"
	"travel_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// depositRate là tỉ lệ đặt cọc mặc định khi khách không nhập số tiền
var depositRate = decimal.NewFromFloat(0.3)

// outstanding trả về tổng giá trừ số đã thu của query
func outstanding(db *gorm.DB, q model.TourPackageQuery) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	if err := db.Model(&model.ReceiptDetail{}).Where("tour_package_query_id = ?", q.ID).
		Pluck("amount", &amounts).Error; err != nil {
		return decimal.Zero, err
	}
	return q.TotalPrice.Sub(decimal.Sum(decimal.Zero, amounts...)), nil
}

func CreatePayment(c *fiber.Ctx) error {
	input := c.Locals("inputPayment").(model.CreatePaymentInput)
	customer := currentCustomer(c)

	if deps.Gateway == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Online payment is not configured", nil)
	}

	var query model.TourPackageQuery
	if err := database.DB.Where("id = ? AND customer_id = ?", input.TourPackageQueryId, customer.ID).
		First(&query).Error; err != nil {
		return dbError(c, err, "tour package query")
	}
	if query.Status == constants.QUERY_CANCELLED || query.Status == constants.QUERY_COMPLETED {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.INVALID_STATUS_TRANSITION, nil, "tourPackageQueryId")
	}

	remaining, err := outstanding(database.DB, query)
	if err != nil {
		return dbError(c, err, "receipt")
	}
	if !remaining.IsPositive() {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Booking is already fully paid", nil, "tourPackageQueryId")
	}

	amount := input.Amount.Round(2)
	if !amount.IsPositive() {
		amount = query.TotalPrice.Mul(depositRate).Round(2)
	}
	if amount.GreaterThan(remaining) || !amount.IsPositive() {
		amount = remaining
	}

	payment := model.Payment{
		TourPackageQueryId: query.ID,
		Amount:             amount,
		PaymentCode:        "PAY-" + uuid.NewString(),
		Status:             constants.PAYMENT_PENDING,
		Method:             input.Method,
	}
	paymentUrl, err := deps.Gateway.BuildPaymentUrl(model.PaymentRequest{
		Amount:    amount,
		OrderInfo: fmt.Sprintf("Booking %s", query.QueryNumber),
		TxnRef:    payment.PaymentCode,
		IPAddr:    c.IP(),
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not create payment url", err)
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Payment created",
		"paymentUrl":  paymentUrl,
		"paymentCode": payment.PaymentCode,
		"amount":      payment.Amount,
	})
}

func GetMyPayment(c *fiber.Ctx) error {
	customer := currentCustomer(c)
	var payment model.Payment
	err := database.DB.Joins("JOIN tour_package_queries ON tour_package_queries.id = payments.tour_package_query_id").
		Where("payments.payment_code = ? AND tour_package_queries.customer_id = ?", c.Params("code"), customer.ID).
		First(&payment).Error
	if err != nil {
		return dbError(c, err, "payment")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, payment)
}

// settlePayment chỉ chuyển PENDING sang PAID một lần và ghi phiếu thu tương ứng
func settlePayment(tx *gorm.DB, result model.PaymentResponse) error {
	var payment model.Payment
	if err := tx.Where("payment_code = ?", result.TxnRef).First(&payment).Error; err != nil {
		return err
	}
	if !payment.Amount.Equal(helper.MinorToDecimal(result.Amount)) {
		return errAmountMismatch
	}

	if !result.IsSuccess {
		return tx.Model(&model.Payment{}).
			Where("id = ? AND status = ?", payment.ID, constants.PAYMENT_PENDING).
			Updates(map[string]interface{}{"status": constants.PAYMENT_FAILED, "gateway_ref": result.Status}).Error
	}

	res := tx.Model(&model.Payment{}).
		Where("id = ? AND status != ?", payment.ID, constants.PAYMENT_PAID).
		Updates(map[string]interface{}{"status": constants.PAYMENT_PAID, "gateway_ref": result.Status})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}

	var query model.TourPackageQuery
	if err := tx.Select("id", "customer_id").First(&query, payment.TourPackageQueryId).Error; err != nil {
		return err
	}
	var existing int64
	if err := tx.Model(&model.ReceiptDetail{}).Where("reference = ?", payment.PaymentCode).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}
	return tx.Create(&model.ReceiptDetail{
		TourPackageQueryId: payment.TourPackageQueryId,
		CustomerId:         query.CustomerId,
		ReceiptDate:        utils.NewCustomDate(time.Now()),
		Amount:             payment.Amount,
		Method:             "ONLINE",
		Reference:          payment.PaymentCode,
		Note:               "Online payment " + payment.Method,
	}).Error
}

var errAmountMismatch = errors.New("amount mismatch")

// CheckoutReturn xử lý redirect của trình duyệt, chỉ hiển thị kết quả
func CheckoutReturn(c *fiber.Ctx) error {
	if deps.Gateway == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Online payment is not configured", nil)
	}
	query, _ := url.ParseQuery(string(c.Request().URI().QueryString()))
	result := deps.Gateway.VerifyReturnUrl(query)
	if result.IsSuccess {
		return c.Redirect(fmt.Sprintf("%s/payment/success?code=%s", deps.PublicURL, url.QueryEscape(result.TxnRef)))
	}
	return c.Redirect(fmt.Sprintf("%s/payment/failed?reason=%s", deps.PublicURL, url.QueryEscape(result.Message)))
}

// CheckoutIPN nhận callback server-to-server, có thể được gọi lại nhiều lần
func CheckoutIPN(c *fiber.Ctx) error {
	if deps.Gateway == nil {
		return c.JSON(fiber.Map{"RspCode": "99", "Message": "Not configured"})
	}
	raw := string(c.Body())
	if raw == "" {
		raw = string(c.Request().URI().QueryString())
	}
	query, err := url.ParseQuery(raw)
	if err != nil {
		return c.JSON(fiber.Map{"RspCode": "99", "Message": "Invalid request"})
	}

	result := deps.Gateway.VerifyIPN(query)
	if result.TxnRef == "" {
		return c.JSON(fiber.Map{"RspCode": "97", "Message": "Invalid signature"})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return settlePayment(tx, result)
	})
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(fiber.Map{"RspCode": "01", "Message": "Order not found"})
	case errors.Is(err, errAmountMismatch):
		return c.JSON(fiber.Map{"RspCode": "04", "Message": "Invalid amount"})
	case err != nil:
		log().Error("settle payment", zap.String("txnRef", result.TxnRef), zap.Error(err))
		return c.JSON(fiber.Map{"RspCode": "99", "Message": "Unknown error"})
	}
	return c.JSON(fiber.Map{"RspCode": "00", "Message": "Confirm success"})
}
