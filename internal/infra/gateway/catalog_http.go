package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// CatalogHTTPGateway は商品カタログAPIのHTTPクライアント。
type CatalogHTTPGateway struct {
	baseURL string
	client  *http.Client
}

func NewCatalogHTTPGateway(baseURL string, timeout time.Duration) *CatalogHTTPGateway {
	return &CatalogHTTPGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchProduct は GET /products/{id} を叩く。404は ErrNotFound。
func (g *CatalogHTTPGateway) FetchProduct(ctx context.Context, productID string) (model.Product, error) {
	u := g.baseURL + "/products/" + url.PathEscape(productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.Product{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return model.Product{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return model.Product{}, repo.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return model.Product{}, fmt.Errorf("catalog api: unexpected status %d", resp.StatusCode)
	}

	var p model.Product
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return model.Product{}, fmt.Errorf("catalog api: decode: %w", err)
	}
	return p, nil
}
