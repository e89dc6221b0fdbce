package model

import "github.com/shopspring/decimal"

// 配送先。中身の検証は注文APIに任せる。
type ShippingDetails struct {
	FullName    string `json:"full_name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
	PhoneNumber string `json:"phone_number"`
}

// 支払い情報。決済処理はリモートなので参照だけを渡す。
type PaymentDetails struct {
	Method    string `json:"method"`
	Reference string `json:"reference"`
}

// 注文APIへ送るリクエスト。
type OrderRequest struct {
	IdempotencyKey string          `json:"idempotency_key"`
	UserID         string          `json:"user_id,omitempty"`
	Items          []CartLineItem  `json:"items"`
	Total          decimal.Decimal `json:"total"`
	Shipping       ShippingDetails `json:"shipping"`
	Payment        PaymentDetails  `json:"payment"`
}

// 注文APIの成功レスポンス。
type OrderConfirmation struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}
