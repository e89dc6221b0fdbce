package repository

import (
	"context"

	"app/internal/domain/model"
)

// OrderGateway はリモートの注文APIです。
type OrderGateway interface {
	PlaceOrder(ctx context.Context, req model.OrderRequest) (model.OrderConfirmation, error)
}
