package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/cartstore"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// IDGenerator は冪等キーの生成
type IDGenerator interface {
	NewID() string
}

// CheckoutUsecase はカート内容をリモートの注文APIへ送る。
// 成功したら呼び出し元の責務どおりカートをクリアする。
type CheckoutUsecase struct {
	store  *cartstore.Store
	orders repo.OrderGateway
	idGen  IDGenerator
}

// DI
func NewCheckoutUsecase(store *cartstore.Store, orders repo.OrderGateway, idGen IDGenerator) *CheckoutUsecase {
	return &CheckoutUsecase{store: store, orders: orders, idGen: idGen}
}

// OAS: CheckoutRequest
type CheckoutInput struct {
	Shipping model.ShippingDetails
	Payment  model.PaymentDetails
}

// OAS: CheckoutResponse
type CheckoutOutput struct {
	OrderID string          `json:"order_id"`
	Status  string          `json:"status"`
	Total   decimal.Decimal `json:"total"`
}

// PlaceOrder は注文確定。
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, scope model.Scope, in CheckoutInput) (CheckoutOutput, error) {
	if strings.TrimSpace(in.Shipping.FullName) == "" ||
		strings.TrimSpace(in.Shipping.Address) == "" ||
		strings.TrimSpace(in.Shipping.City) == "" ||
		strings.TrimSpace(in.Shipping.PostalCode) == "" {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "invalid shipping")
	}
	if strings.TrimSpace(in.Payment.Method) == "" {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment")
	}

	items, err := u.store.List(ctx, scope)
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	if len(items) == 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	total, err := u.store.Total(ctx, scope)
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	orderReq := model.OrderRequest{
		IdempotencyKey: u.idGen.NewID(),
		Items:          items,
		Total:          total,
		Shipping:       in.Shipping,
		Payment:        in.Payment,
	}
	if userID, ok := scope.UserID(); ok {
		orderReq.UserID = userID
	}

	conf, err := u.orders.PlaceOrder(ctx, orderReq)
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadGateway, "order error")
	}

	//注文は成立しているので、クリアに失敗しても結果は返す
	_, _ = u.store.Clear(ctx, scope)

	return CheckoutOutput{
		OrderID: conf.OrderID,
		Status:  conf.Status,
		Total:   total,
	}, nil
}
