package helper

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"net/url"
	"strconv"
	"time"

	"travel_manager/model"

	"github.com/shopspring/decimal"
)

var ErrGatewayNotConfigured = errors.New("checkout gateway is not configured")

// CheckoutGateway ký và xác thực tham số thanh toán bằng HMAC-SHA512
type CheckoutGateway struct {
	Config model.GatewayConfig
}

func NewCheckoutGateway(cfg model.GatewayConfig) (*CheckoutGateway, error) {
	if cfg.MerchantCode == "" || cfg.HashSecret == "" || cfg.BaseURL == "" {
		return nil, ErrGatewayNotConfigured
	}
	return &CheckoutGateway{Config: cfg}, nil
}

// BuildPaymentUrl: số tiền gửi theo đơn vị nhỏ nhất (x100)
func (g *CheckoutGateway) BuildPaymentUrl(req model.PaymentRequest) (string, error) {
	now := time.Now()
	params := url.Values{}
	params.Add("cp_Version", "1.0")
	params.Add("cp_Command", "pay")
	params.Add("cp_MerchantCode", g.Config.MerchantCode)
	params.Add("cp_Amount", strconv.FormatInt(req.Amount.Shift(2).Round(0).IntPart(), 10))
	params.Add("cp_CreateDate", now.Format("20060102150405"))
	params.Add("cp_CurrCode", "INR")
	params.Add("cp_IpAddr", req.IPAddr)
	params.Add("cp_OrderInfo", req.OrderInfo)
	params.Add("cp_ReturnUrl", g.Config.ReturnURL)
	params.Add("cp_IpnUrl", g.Config.IPNURL)
	params.Add("cp_TxnRef", req.TxnRef)
	params.Add("cp_ExpireDate", now.Add(15*time.Minute).Format("20060102150405"))

	// Encode sắp xếp key theo alphabet
	query := params.Encode()
	return g.Config.BaseURL + "?" + query + "&cp_SecureHash=" + g.Sign(query), nil
}

// VerifyReturnUrl dùng cho redirect của trình duyệt
func (g *CheckoutGateway) VerifyReturnUrl(query url.Values) model.PaymentResponse {
	return g.verify(query, "Invalid hash", "Payment failed")
}

// VerifyIPN dùng cho callback server-to-server
func (g *CheckoutGateway) VerifyIPN(query url.Values) model.PaymentResponse {
	return g.verify(query, "Invalid IPN hash", "IPN failed")
}

func (g *CheckoutGateway) verify(query url.Values, invalidMsg, failedMsg string) model.PaymentResponse {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	secureHash := q.Get("cp_SecureHash")
	q.Del("cp_SecureHash")

	expected := g.Sign(q.Encode())
	if !hmac.Equal([]byte(secureHash), []byte(expected)) {
		return model.PaymentResponse{IsSuccess: false, Message: invalidMsg}
	}

	amount, _ := strconv.ParseInt(q.Get("cp_Amount"), 10, 64)
	resp := model.PaymentResponse{
		TxnRef: q.Get("cp_TxnRef"),
		Amount: amount,
		Status: q.Get("cp_ResponseCode"),
	}
	if resp.Status == "00" {
		resp.IsSuccess = true
		return resp
	}
	resp.Message = failedMsg
	return resp
}

func (g *CheckoutGateway) Sign(data string) string {
	h := hmac.New(sha512.New, []byte(g.Config.HashSecret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

// MinorToDecimal đổi số tiền từ gateway (x100) về decimal
func MinorToDecimal(amount int64) decimal.Decimal {
	return decimal.New(amount, -2)
}
