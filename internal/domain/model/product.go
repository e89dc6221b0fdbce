package model

import "github.com/shopspring/decimal"

// 商品カタログAPIが返す商品レコード。
// Quantity は呼び出し時点の在庫数（鮮度の検証はしない）。
type Product struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Price                decimal.Decimal `json:"price"`
	Image                string          `json:"image"`
	Brand                string          `json:"brand"`
	Category             string          `json:"category"`
	PrescriptionRequired bool            `json:"prescriptionRequired"`
	ExpiryDate           string          `json:"expiryDate"`
	Quantity             int64           `json:"quantity"`
}
