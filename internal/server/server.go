package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func Start(addr string, cfg config.Config, cartH *handler.CartHandler, checkoutH *handler.CheckoutHandler) error {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	cartH.RegisterRoutes(e, cfg)
	checkoutH.RegisterRoutes(e, cfg)

	return e.Start(addr)
}
