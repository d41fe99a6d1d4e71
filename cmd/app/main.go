package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nikolay2099/airtickets/api"
	"github.com/Nikolay2099/airtickets/config"
	"github.com/Nikolay2099/airtickets/internal/bootstrap"
	"github.com/Nikolay2099/airtickets/internal/cache"
	"github.com/Nikolay2099/airtickets/internal/kafka"
	"github.com/Nikolay2099/airtickets/internal/logger"
	"github.com/Nikolay2099/airtickets/internal/repository"
	"github.com/Nikolay2099/airtickets/internal/service/auth"
	"github.com/Nikolay2099/airtickets/internal/service/catalog"
	"github.com/Nikolay2099/airtickets/internal/service/flights"
	"github.com/Nikolay2099/airtickets/internal/service/orders"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLog := logger.New("airtickets")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := repository.Open(ctx, cfg.Database, appLog)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	listTTL := time.Duration(cfg.Cache.ListTTLSeconds) * time.Second
	redisCache := cache.NewRedisCache(cfg.Redis, listTTL)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	userRepo := repository.NewUserRepository(pool)
	typeRepo := repository.NewAirplaneTypeRepository(pool)
	airplaneRepo := repository.NewAirplaneRepository(pool)
	airportRepo := repository.NewAirportRepository(pool)
	routeRepo := repository.NewRouteRepository(pool)
	crewRepo := repository.NewCrewRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	authService := auth.NewAuthService(
		userRepo,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.AccessTTLMinutes)*time.Minute,
		cfg.Auth.BcryptCost,
	)
	catalogService := catalog.NewCatalogService(typeRepo, airplaneRepo, airportRepo, routeRepo, crewRepo, redisCache, appLog)
	flightService := flights.NewFlightService(flightRepo, routeRepo, airplaneRepo, crewRepo, redisCache, appLog)
	orderService := orders.NewOrderService(
		orderRepo,
		flightRepo,
		userRepo,
		producer,
		cfg.Kafka.OrdersTopic,
		appLog,
		orders.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	router := api.NewRouter(api.RouterDeps{
		Auth:      authService,
		Catalog:   catalogService,
		Flights:   flightService,
		Orders:    orderService,
		JWTSecret: cfg.Auth.JWTSecret,
		MediaDir:  cfg.Media.Dir,
	})

	if err := bootstrap.Run(ctx, cfg, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
