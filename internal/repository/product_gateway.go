package repository

import (
	"context"

	"app/internal/domain/model"
)

// ProductGateway はリモートの商品カタログAPI。
type ProductGateway interface {
	// FetchProduct は商品を取得する。無ければ ErrNotFound。
	FetchProduct(ctx context.Context, productID string) (model.Product, error)
}
