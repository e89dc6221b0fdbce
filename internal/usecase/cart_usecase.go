package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"app/internal/cartstore"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// CartUsecase は /cart の業務ロジックです。
// 在庫チェックに使う今の在庫数は、毎回カタログAPIから取り直してストアに渡す。
type CartUsecase struct {
	store   *cartstore.Store
	catalog repo.ProductGateway
}

// DI
func NewCartUsecase(store *cartstore.Store, catalog repo.ProductGateway) *CartUsecase {
	return &CartUsecase{store: store, catalog: catalog}
}

// OAS: CartResponse
type CartResponse struct {
	Items []model.CartLineItem `json:"items"`
	Total decimal.Decimal      `json:"total"`
	Count int64                `json:"count"`
}

// OAS: CartCountResponse（バッジ用）
type CartCountResponse struct {
	Count int64 `json:"count"`
}

// OAS: AddCartRequest
type AddCartInput struct {
	ProductID string
}

// OAS: UpdateCartItemRequest
type UpdateCartItemInput struct {
	Quantity int64
}

// GetCart はカート取得（無ければ空を返す）。
func (u *CartUsecase) GetCart(ctx context.Context, scope model.Scope) (CartResponse, error) {
	items, err := u.store.List(ctx, scope)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return u.buildCartResponse(items), nil
}

// CountItems はバッジ表示用の数量合計。
func (u *CartUsecase) CountItems(ctx context.Context, scope model.Scope) (CartCountResponse, error) {
	count, err := u.store.Count(ctx, scope)
	if err != nil {
		return CartCountResponse{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return CartCountResponse{Count: count}, nil
}

// AddToCart はカートに追加（同一商品は数量+1）。
func (u *CartUsecase) AddToCart(ctx context.Context, scope model.Scope, in AddCartInput) (CartResponse, error) {
	if in.ProductID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	//商品チェック（今の在庫数もここで取れる）
	p, err := u.catalog.FetchProduct(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusBadGateway, "catalog error")
	}

	items, err := u.store.Add(ctx, scope, p)
	if errors.Is(err, cartstore.ErrOutOfStock) {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "out of stock")
	}
	if errors.Is(err, cartstore.ErrQuantityLimitExceeded) {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "stock exceeded")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	return u.buildCartResponse(items), nil
}

// 数量変更（在庫チェックあり）。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, scope model.Scope, productID string, in UpdateCartItemInput) (CartResponse, error) {
	if productID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	p, err := u.catalog.FetchProduct(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusBadGateway, "catalog error")
	}

	items, err := u.store.SetQuantity(ctx, scope, productID, in.Quantity, p.Quantity)
	if errors.Is(err, cartstore.ErrQuantityLimitExceeded) {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "stock exceeded")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	return u.buildCartResponse(items), nil
}

// 明細削除
func (u *CartUsecase) RemoveCartItem(ctx context.Context, scope model.Scope, productID string) (CartResponse, error) {
	if productID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	items, err := u.store.Remove(ctx, scope, productID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return u.buildCartResponse(items), nil
}

// ClearCart はカート全削除（ログアウト時・注文完了時）。
func (u *CartUsecase) ClearCart(ctx context.Context, scope model.Scope) (CartResponse, error) {
	items, err := u.store.Clear(ctx, scope)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return u.buildCartResponse(items), nil
}

// 明細からCartResponseを作る。
func (u *CartUsecase) buildCartResponse(items []model.CartLineItem) CartResponse {
	total := decimal.Zero
	var count int64 = 0

	for _, it := range items {
		total = total.Add(it.Subtotal())
		count += it.Quantity
	}

	return CartResponse{Items: items, Total: total, Count: count}
}
