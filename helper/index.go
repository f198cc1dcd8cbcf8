package helper

import (
	"errors"
	"fmt"
	"net/mail"
	"time"

	"travel_manager/config"
	"travel_manager/constants"
	"travel_manager/database"
	"travel_manager/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid token")

func jwtSecret() []byte {
	return []byte(config.Config("JWT_SECRET"))
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(config.Config(key)); err == nil && d > 0 {
		return d
	}
	return fallback
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func GetAccountByUsername(u string) (*model.Account, error) {
	var account model.Account
	if err := database.DB.Where(&model.Account{Username: u}).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func GetCustomerByEmail(e string) (*model.Customer, error) {
	var customer model.Customer
	if err := database.DB.Where("LOWER(email) = LOWER(?)", e).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func Valid(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func generateToken(claim model.TokenClaim, tokenType string, ttl time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = claim.Username
	claims["customerId"] = claim.CustomerId
	claims["accountId"] = claim.AccountId
	claims["role"] = claim.Role
	claims["type"] = tokenType
	claims["exp"] = time.Now().Add(ttl).Unix()
	// jti giúp hai token phát cùng giây vẫn khác nhau
	claims["jti"] = fmt.Sprintf("%d", time.Now().UnixNano())

	return token.SignedString(jwtSecret())
}

func GenerateAccessToken(claim model.TokenClaim) (string, error) {
	return generateToken(claim, TokenTypeAccess, durationOr("JWT_ACCESS_TTL", time.Hour))
}

func GenerateRefreshToken(claim model.TokenClaim) (string, error) {
	return generateToken(claim, TokenTypeRefresh, durationOr("JWT_REFRESH_TTL", 7*24*time.Hour))
}

func GenerateTokenPair(claim model.TokenClaim) (model.TokenData, error) {
	access, err := GenerateAccessToken(claim)
	if err != nil {
		return model.TokenData{}, err
	}
	refresh, err := GenerateRefreshToken(claim)
	if err != nil {
		return model.TokenData{}, err
	}
	return model.TokenData{AccessToken: access, RefreshToken: refresh}, nil
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Xác thực thuật toán ký là HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return token, nil
}

// ClaimFromToken đọc TokenClaim từ MapClaims
func ClaimFromToken(token *jwt.Token) (model.TokenClaim, string) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.TokenClaim{}, ""
	}
	var claim model.TokenClaim
	if v, ok := claims["accountId"].(float64); ok {
		claim.AccountId = uint(v)
	}
	if v, ok := claims["customerId"].(float64); ok {
		claim.CustomerId = uint(v)
	}
	claim.Username, _ = claims["username"].(string)
	claim.Role, _ = claims["role"].(string)
	tokenType, _ := claims["type"].(string)
	return claim, tokenType
}

func SetAuthCookies(c *fiber.Ctx, tokens model.TokenData, prefix string) {
	secure := config.Config("APP_ENV") == "production"
	c.Cookie(&fiber.Cookie{
		Name:     prefix + "access_token",
		Value:    tokens.AccessToken,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(durationOr("JWT_ACCESS_TTL", time.Hour)),
	})
	c.Cookie(&fiber.Cookie{
		Name:     prefix + "refresh_token",
		Value:    tokens.RefreshToken,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(durationOr("JWT_REFRESH_TTL", 7*24*time.Hour)),
	})
}

// GetInfoAccountFromToken nạp tài khoản nhân viên từ token đã xác thực
func GetInfoAccountFromToken(c *fiber.Ctx) (model.TokenClaim, *model.Account, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return model.TokenClaim{}, nil, ErrInvalidToken
	}
	claim, tokenType := ClaimFromToken(token)
	if tokenType != TokenTypeAccess || claim.AccountId == 0 {
		return model.TokenClaim{}, nil, ErrInvalidToken
	}

	var account model.Account
	if err := database.DB.First(&account, claim.AccountId).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zap.L().Error("query account from token failed", zap.Uint("accountId", claim.AccountId), zap.Error(err))
			return model.TokenClaim{}, nil, err
		}
		return model.TokenClaim{}, nil, ErrInvalidToken
	}
	if !account.Active {
		return model.TokenClaim{}, nil, errors.New(constants.ACCOUNT_NOT_ACTIVE)
	}
	claim.Role = account.Role
	return claim, &account, nil
}

// CurrentAccount lấy account đã được middleware nạp vào Locals
func CurrentAccount(c *fiber.Ctx) *model.Account {
	account, _ := c.Locals("account").(*model.Account)
	return account
}

// GetInfoCustomerFromToken trả về khách hàng đăng nhập, nil nếu là khách vãng lai
func GetInfoCustomerFromToken(c *fiber.Ctx) *model.Customer {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil
	}
	claim, tokenType := ClaimFromToken(token)
	if tokenType != TokenTypeAccess || claim.CustomerId == 0 {
		return nil
	}

	var customer model.Customer
	if err := database.DB.Where("id = ? AND is_active = ?", claim.CustomerId, true).First(&customer).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zap.L().Error("query customer from token failed", zap.Uint("customerId", claim.CustomerId), zap.Error(err))
		}
		return nil
	}
	return &customer
}

func HasRole(account *model.Account, roles ...string) bool {
	if account == nil {
		return false
	}
	for _, r := range roles {
		if account.Role == r {
			return true
		}
	}
	return false
}
