package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"app/internal/domain/model"
)

// OrderHTTPGateway は注文APIのHTTPクライアント。
type OrderHTTPGateway struct {
	baseURL string
	client  *http.Client
}

func NewOrderHTTPGateway(baseURL string, timeout time.Duration) *OrderHTTPGateway {
	return &OrderHTTPGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// PlaceOrder は POST /orders を叩く。
// 冪等キーはヘッダにも載せる（注文APIの再送対策）。
func (g *OrderHTTPGateway) PlaceOrder(ctx context.Context, orderReq model.OrderRequest) (model.OrderConfirmation, error) {
	body, err := json.Marshal(orderReq)
	if err != nil {
		return model.OrderConfirmation{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return model.OrderConfirmation{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", orderReq.IdempotencyKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return model.OrderConfirmation{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return model.OrderConfirmation{}, fmt.Errorf("order api: unexpected status %d", resp.StatusCode)
	}

	var conf model.OrderConfirmation
	if err := json.NewDecoder(resp.Body).Decode(&conf); err != nil {
		return model.OrderConfirmation{}, fmt.Errorf("order api: decode: %w", err)
	}
	return conf, nil
}
