package model

import "time"

// 永続化されたカート1件（スコープごとに1行のKV）。
// Value はバージョン付きJSONエンベロープ。
type CartRecord struct {
	Key       string    `gorm:"primaryKey;type:varchar(255)" json:"key"`
	Value     string    `gorm:"type:jsonb;not null" json:"value"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (CartRecord) TableName() string {
	return "cart_records"
}
