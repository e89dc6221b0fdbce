package main

import (
	"log"
	"time"

	"app/internal/cartstore"
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	"app/internal/infra/gateway"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

func main() {
	//.envは無ければ無いでよい
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(&model.CartRecord{}); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	kvRepo := infraRepo.NewCartKVGormRepository(gormDB)

	//カートストア生成＋変更ログの購読
	store := cartstore.New(kvRepo)
	store.Subscribe(func() {
		log.Println("cart updated")
	})

	//リモートAPIクライアント
	apiTimeout := 5 * time.Second
	catalog := gateway.NewCatalogHTTPGateway(cfg.CatalogAPIURL, apiTimeout)
	orders := gateway.NewOrderHTTPGateway(cfg.OrderAPIURL, apiTimeout)

	//Usecase生成
	cartUC := usecase.NewCartUsecase(store, catalog)
	checkoutUC := usecase.NewCheckoutUsecase(store, orders, &uuidGenerator{})

	//Handler生成
	cartH := handler.NewCartHandler(cartUC)
	checkoutH := handler.NewCheckoutHandler(checkoutUC)

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(addr, cfg, cartH, checkoutH); err != nil {
		panic(err)
	}
}
