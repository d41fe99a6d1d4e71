package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Nikolay2099/airtickets/internal/service/auth"
	"github.com/Nikolay2099/airtickets/internal/service/catalog"
	"github.com/Nikolay2099/airtickets/internal/service/flights"
	"github.com/Nikolay2099/airtickets/internal/service/orders"
)

type RouterDeps struct {
	Auth      auth.AuthUseCase
	Catalog   catalog.CatalogUseCase
	Flights   flights.FlightUseCase
	Orders    orders.OrderUseCase
	JWTSecret string
	MediaDir  string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.Default()

	v1 := router.Group("/api/v1")

	NewAuthHandler(deps.Auth).Register(v1.Group("/auth"))

	authed := v1.Group("", JWTAuth(deps.JWTSecret))
	NewAirplaneTypeHandler(deps.Catalog).Register(authed.Group("/airplane-types"))
	NewAirplaneHandler(deps.Catalog, deps.MediaDir).Register(authed.Group("/airplanes"))
	NewAirportHandler(deps.Catalog).Register(authed.Group("/airports"))
	NewRouteHandler(deps.Catalog).Register(authed.Group("/routes"))
	NewCrewHandler(deps.Catalog).Register(authed.Group("/crews"))
	NewFlightHandler(deps.Flights).Register(authed.Group("/flights"))
	NewOrderHandler(deps.Orders).Register(authed.Group("/orders"))

	router.Static("/media", deps.MediaDir)

	return router
}
