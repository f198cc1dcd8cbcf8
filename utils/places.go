package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

var ErrPlacesNotConfigured = errors.New("places api key is not configured")

// PlacesClient gọi API autocomplete/place của nhà cung cấp bản đồ
type PlacesClient struct {
	client *resty.Client
	apiKey string
}

type PlaceDetail struct {
	RefId   string  `json:"ref_id"`
	Display string  `json:"display"`
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type placeSuggestion struct {
	RefId   string `json:"ref_id"`
	Display string `json:"display"`
}

func NewPlacesClient(baseURL, apiKey string) *PlacesClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(300*time.Millisecond).
		SetHeader("Accept", "application/json")
	return &PlacesClient{client: client, apiKey: apiKey}
}

// Autocomplete trả nguyên body và status của nhà cung cấp
func (p *PlacesClient) Autocomplete(ctx context.Context, text string) ([]byte, int, error) {
	if p.apiKey == "" {
		return nil, 0, ErrPlacesNotConfigured
	}
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"apikey": p.apiKey, "text": text}).
		Get("/autocomplete/v3")
	if err != nil {
		return nil, 0, fmt.Errorf("places autocomplete: %w", err)
	}
	return resp.Body(), resp.StatusCode(), nil
}

func (p *PlacesClient) Place(ctx context.Context, refId string) (*PlaceDetail, error) {
	if p.apiKey == "" {
		return nil, ErrPlacesNotConfigured
	}
	var detail PlaceDetail
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"apikey": p.apiKey, "refid": refId}).
		SetResult(&detail).
		Get("/place/v3")
	if err != nil {
		return nil, fmt.Errorf("places detail: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("places detail: status %d", resp.StatusCode())
	}
	return &detail, nil
}

// Geocode lấy toạ độ của gợi ý đầu tiên
func (p *PlacesClient) Geocode(ctx context.Context, text string) (float64, float64, error) {
	if p.apiKey == "" {
		return 0, 0, ErrPlacesNotConfigured
	}
	var suggestions []placeSuggestion
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"apikey": p.apiKey, "text": text}).
		SetResult(&suggestions).
		Get("/autocomplete/v3")
	if err != nil {
		return 0, 0, fmt.Errorf("places geocode: %w", err)
	}
	if resp.IsError() || len(suggestions) == 0 {
		return 0, 0, fmt.Errorf("no place found for %q", text)
	}
	detail, err := p.Place(ctx, suggestions[0].RefId)
	if err != nil {
		return 0, 0, err
	}
	return detail.Lat, detail.Lng, nil
}
