package config

import (
	"fmt"
	"os"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	JWTSecret string // アクセストークン検証用シークレット（発行はリモートの認証基盤）

	CatalogAPIURL string // 商品カタログAPIのベースURL
	OrderAPIURL   string // 注文APIのベースURL

	GoEnv string // dev/prod
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port: os.Getenv("PORT"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		CatalogAPIURL: os.Getenv("CATALOG_API_URL"),
		OrderAPIURL:   os.Getenv("ORDER_API_URL"),

		GoEnv: os.Getenv("GO_ENV"),
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.CatalogAPIURL == "" {
		return Config{}, fmt.Errorf("CATALOG_API_URL is required")
	}
	if cfg.OrderAPIURL == "" {
		return Config{}, fmt.Errorf("ORDER_API_URL is required")
	}
	if cfg.GoEnv == "" {
		return Config{}, fmt.Errorf("GO_ENV is required")
	}

	return cfg, nil
}
