package model

import "github.com/shopspring/decimal"

// カートの明細1行。
// 追加時点の商品スナップショット（価格・在庫上限など）を必ず保存。
// JSONのフィールド名は永続化レイアウト（medcare_cart_<scopeId>）と同じ。
type CartLineItem struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Price                decimal.Decimal `json:"price"`
	Quantity             int64           `json:"quantity"`
	Image                string          `json:"image"`
	Brand                string          `json:"brand"`
	Category             string          `json:"category"`
	PrescriptionRequired bool            `json:"prescriptionRequired"`
	ExpiryDate           string          `json:"expiryDate"`
	AvailableQuantity    int64           `json:"availableQuantity"`
}

// Subtotal は price × quantity。
func (i CartLineItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}
