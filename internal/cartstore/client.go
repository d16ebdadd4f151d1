package cartstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pakety/internal/domain"
)

// Client is the typed HTTP client for the storefront cart API. It carries
// the session id on every request.
type Client struct {
	baseURL   string
	sessionID string
	httpc     *http.Client
}

func NewClient(baseURL, sessionID string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		sessionID: sessionID,
		httpc:     &http.Client{Timeout: 15 * time.Second},
	}
}

// APIError is a non-success response from the cart API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cart api: status %d: %s", e.Status, e.Message)
}

func (c *Client) FetchLines(ctx context.Context) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (c *Client) AddLine(ctx context.Context, productID string, quantity decimal.Decimal) (*domain.CartLine, error) {
	body := map[string]any{"productId": productID, "quantity": quantity}
	var line domain.CartLine
	if err := c.do(ctx, http.MethodPost, "/cart", body, &line); err != nil {
		return nil, err
	}
	return &line, nil
}

func (c *Client) UpdateQuantity(ctx context.Context, lineID string, quantity decimal.Decimal) error {
	body := map[string]any{"quantity": quantity}
	return c.do(ctx, http.MethodPatch, "/cart/"+lineID, body, nil)
}

func (c *Client) RemoveLine(ctx context.Context, lineID string) error {
	return c.do(ctx, http.MethodDelete, "/cart/"+lineID, nil, nil)
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/cart", nil, nil)
}

func (c *Client) FetchTiers(ctx context.Context) ([]domain.PromotionTier, error) {
	var tiers []domain.PromotionTier
	if err := c.do(ctx, http.MethodGet, "/promotions/tiers", nil, &tiers); err != nil {
		return nil, err
	}
	return tiers, nil
}

func (c *Client) FetchDeliveryFee(ctx context.Context) (decimal.Decimal, error) {
	var out struct {
		BaseDeliveryFee decimal.Decimal `json:"baseDeliveryFee"`
	}
	if err := c.do(ctx, http.MethodGet, "/settings/delivery-fee", nil, &out); err != nil {
		return decimal.Zero, err
	}
	return out.BaseDeliveryFee, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Session-ID", c.sessionID)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return &APIError{Status: resp.StatusCode, Message: payload.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
