package helper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"travel_manager/model"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

var ErrCatalogNotConfigured = errors.New("whatsapp catalog is not configured")

// CatalogAPIError mang status code và thông báo lỗi từ Graph API
type CatalogAPIError struct {
	StatusCode int
	Code       int
	Type       string
	Message    string
}

func (e *CatalogAPIError) Error() string {
	return fmt.Sprintf("catalog api error (status %d, code %d): %s", e.StatusCode, e.Code, e.Message)
}

type graphErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

type RemoteProduct struct {
	ID           string `json:"id"`
	RetailerId   string `json:"retailer_id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Price        string `json:"price,omitempty"`
	Currency     string `json:"currency,omitempty"`
	ImageUrl     string `json:"image_url,omitempty"`
	Url          string `json:"url,omitempty"`
	Availability string `json:"availability,omitempty"`
}

type RemoteProductPage struct {
	Data   []RemoteProduct `json:"data"`
	Paging struct {
		Cursors struct {
			Before string `json:"before"`
			After  string `json:"after"`
		} `json:"cursors"`
		Next string `json:"next"`
	} `json:"paging"`
}

// CatalogClient đẩy sản phẩm lên WhatsApp catalog
type CatalogClient interface {
	UpsertProduct(ctx context.Context, p *model.CatalogProduct) (string, error)
	DeleteProduct(ctx context.Context, externalID string) error
	ListProducts(ctx context.Context, limit int, after string) (*RemoteProductPage, error)
}

type CatalogClientConfig struct {
	BaseURL     string
	Version     string
	CatalogID   string
	AccessToken string
	Timeout     time.Duration
	RetryCount  int
}

type GraphCatalogClient struct {
	http      *resty.Client
	catalogID string
	logger    *zap.Logger
}

func NewCatalogClient(cfg CatalogClientConfig, logger *zap.Logger) (*GraphCatalogClient, error) {
	if cfg.CatalogID == "" || cfg.AccessToken == "" {
		return nil, ErrCatalogNotConfigured
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if logger == nil {
		logger = zap.L()
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL+"/"+cfg.Version).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.AccessToken).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(5*time.Second).
		SetHeader("Accept", "application/json").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		})

	return &GraphCatalogClient{http: client, catalogID: cfg.CatalogID, logger: logger}, nil
}

// productFields: Graph API nhận giá theo đơn vị nhỏ nhất (paise, cent)
func productFields(p *model.CatalogProduct) map[string]string {
	fields := map[string]string{
		"retailer_id":  p.RetailerId,
		"name":         p.Name,
		"description":  p.Description,
		"price":        strconv.FormatInt(p.Price.Shift(2).Round(0).IntPart(), 10),
		"currency":     p.Currency,
		"availability": p.Availability,
	}
	if p.ImageUrl != "" {
		fields["image_url"] = p.ImageUrl
	}
	if p.Url != "" {
		fields["url"] = p.Url
	}
	return fields
}

func toAPIError(resp *resty.Response) error {
	if resp == nil || !resp.IsError() {
		return nil
	}
	apiErr := &CatalogAPIError{StatusCode: resp.StatusCode(), Message: resp.String()}
	if body, ok := resp.Error().(*graphErrorBody); ok && body.Error.Message != "" {
		apiErr.Message = body.Error.Message
		apiErr.Type = body.Error.Type
		apiErr.Code = body.Error.Code
	}
	return apiErr
}

func (c *GraphCatalogClient) UpsertProduct(ctx context.Context, p *model.CatalogProduct) (string, error) {
	var result struct {
		ID      string `json:"id"`
		Success bool   `json:"success"`
	}
	path := "/" + c.catalogID + "/products"
	if p.ExternalId != "" {
		path = "/" + p.ExternalId
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(productFields(p)).
		SetResult(&result).
		SetError(&graphErrorBody{}).
		Post(path)
	if err != nil {
		c.logger.Error("catalog upsert request failed", zap.String("retailerId", p.RetailerId), zap.Error(err))
		return "", fmt.Errorf("catalog upsert %s: %w", p.RetailerId, err)
	}
	if apiErr := toAPIError(resp); apiErr != nil {
		c.logger.Warn("catalog upsert rejected", zap.String("retailerId", p.RetailerId), zap.Error(apiErr))
		return "", apiErr
	}

	if result.ID != "" {
		return result.ID, nil
	}
	return p.ExternalId, nil
}

func (c *GraphCatalogClient) DeleteProduct(ctx context.Context, externalID string) error {
	if externalID == "" {
		return nil
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetError(&graphErrorBody{}).
		Delete("/" + externalID)
	if err != nil {
		return fmt.Errorf("catalog delete %s: %w", externalID, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil
	}
	return toAPIError(resp)
}

func (c *GraphCatalogClient) ListProducts(ctx context.Context, limit int, after string) (*RemoteProductPage, error) {
	if limit <= 0 {
		limit = 25
	}
	var page RemoteProductPage
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("fields", "id,retailer_id,name,description,price,currency,image_url,url,availability").
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(&page).
		SetError(&graphErrorBody{})
	if after != "" {
		req.SetQueryParam("after", after)
	}

	resp, err := req.Get("/" + c.catalogID + "/products")
	if err != nil {
		return nil, fmt.Errorf("catalog list: %w", err)
	}
	if apiErr := toAPIError(resp); apiErr != nil {
		return nil, apiErr
	}
	return &page, nil
}
