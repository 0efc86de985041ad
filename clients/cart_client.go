package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"checkout-service/models"
)

type CartClient struct {
	baseURL string
	client  *http.Client
}

func NewCartClient(baseURL string, timeout time.Duration) *CartClient {
	return &CartClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// GetCart fetches the caller's current cart from the cart service.
func (c *CartClient) GetCart(ctx context.Context, token string) (*models.Cart, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/cart", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cart service returned %d", resp.StatusCode)
	}

	var envelope struct {
		Success bool        `json:"success"`
		Message string      `json:"message"`
		Data    models.Cart `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, fmt.Errorf("cart service error: %s", envelope.Message)
	}
	return &envelope.Data, nil
}
