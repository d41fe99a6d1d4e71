package catalog

import (
	"context"

	"github.com/Nikolay2099/airtickets/internal/domain"
	"github.com/Nikolay2099/airtickets/internal/logger"
	"github.com/Nikolay2099/airtickets/internal/repository"
)

// CatalogUseCase covers the reference data the rest of the system depends
// on: airplane types, airplanes, airports, routes and crews. Each entity's
// validator runs here again right before persistence, independent of the
// request-boundary check in the handlers.
type CatalogUseCase interface {
	CreateAirplaneType(ctx context.Context, t *domain.AirplaneType) error
	UpdateAirplaneType(ctx context.Context, t *domain.AirplaneType) error
	GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error)
	ListAirplaneTypes(ctx context.Context, limit, offset int) ([]domain.AirplaneType, error)

	CreateAirplane(ctx context.Context, a *domain.Airplane) error
	UpdateAirplane(ctx context.Context, a *domain.Airplane) error
	GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error)
	ListAirplanes(ctx context.Context, filter repository.AirplaneFilter) ([]domain.Airplane, error)
	SetAirplaneImage(ctx context.Context, id int64, path string) error

	CreateAirport(ctx context.Context, a *domain.Airport) error
	UpdateAirport(ctx context.Context, a *domain.Airport) error
	GetAirport(ctx context.Context, id int64) (*domain.Airport, error)
	ListAirports(ctx context.Context, limit, offset int) ([]domain.Airport, error)

	CreateRoute(ctx context.Context, route *domain.Route) error
	UpdateRoute(ctx context.Context, route *domain.Route) error
	GetRoute(ctx context.Context, id int64) (*domain.Route, error)
	ListRoutes(ctx context.Context, filter repository.RouteFilter) ([]domain.Route, error)

	CreateCrew(ctx context.Context, c *domain.Crew) error
	UpdateCrew(ctx context.Context, c *domain.Crew) error
	GetCrew(ctx context.Context, id int64) (*domain.Crew, error)
	ListCrews(ctx context.Context, limit, offset int) ([]domain.Crew, error)
}

type Cache interface {
	GetAirports(ctx context.Context) ([]domain.Airport, error)
	SetAirports(ctx context.Context, airports []domain.Airport) error
	InvalidateAirports(ctx context.Context) error
}

type CatalogService struct {
	types     repository.AirplaneTypeRepository
	airplanes repository.AirplaneRepository
	airports  repository.AirportRepository
	routes    repository.RouteRepository
	crews     repository.CrewRepository
	cache     Cache
	log       logger.Logger
}

func NewCatalogService(
	types repository.AirplaneTypeRepository,
	airplanes repository.AirplaneRepository,
	airports repository.AirportRepository,
	routes repository.RouteRepository,
	crews repository.CrewRepository,
	cache Cache,
	log logger.Logger,
) *CatalogService {
	return &CatalogService{
		types:     types,
		airplanes: airplanes,
		airports:  airports,
		routes:    routes,
		crews:     crews,
		cache:     cache,
		log:       log,
	}
}

func (s *CatalogService) CreateAirplaneType(ctx context.Context, t *domain.AirplaneType) error {
	if err := t.Validate(); err != nil {
		return err
	}
	return s.types.Create(ctx, t)
}

func (s *CatalogService) UpdateAirplaneType(ctx context.Context, t *domain.AirplaneType) error {
	if err := t.Validate(); err != nil {
		return err
	}
	return s.types.Update(ctx, t)
}

func (s *CatalogService) GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	return s.types.GetByID(ctx, id)
}

func (s *CatalogService) ListAirplaneTypes(ctx context.Context, limit, offset int) ([]domain.AirplaneType, error) {
	return s.types.List(ctx, limit, offset)
}

func (s *CatalogService) CreateAirplane(ctx context.Context, a *domain.Airplane) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if _, err := s.types.GetByID(ctx, a.AirplaneTypeID); err != nil {
		return err
	}
	return s.airplanes.Create(ctx, a)
}

func (s *CatalogService) UpdateAirplane(ctx context.Context, a *domain.Airplane) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if _, err := s.types.GetByID(ctx, a.AirplaneTypeID); err != nil {
		return err
	}
	return s.airplanes.Update(ctx, a)
}

func (s *CatalogService) GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error) {
	return s.airplanes.GetByID(ctx, id)
}

func (s *CatalogService) ListAirplanes(ctx context.Context, filter repository.AirplaneFilter) ([]domain.Airplane, error) {
	return s.airplanes.List(ctx, filter)
}

func (s *CatalogService) SetAirplaneImage(ctx context.Context, id int64, path string) error {
	return s.airplanes.SetImagePath(ctx, id, path)
}

func (s *CatalogService) CreateAirport(ctx context.Context, a *domain.Airport) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := s.airports.Create(ctx, a); err != nil {
		return err
	}
	s.invalidateAirports(ctx)
	return nil
}

func (s *CatalogService) UpdateAirport(ctx context.Context, a *domain.Airport) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := s.airports.Update(ctx, a); err != nil {
		return err
	}
	s.invalidateAirports(ctx)
	return nil
}

func (s *CatalogService) GetAirport(ctx context.Context, id int64) (*domain.Airport, error) {
	return s.airports.GetByID(ctx, id)
}

// ListAirports serves the unfiltered first page from cache when possible.
func (s *CatalogService) ListAirports(ctx context.Context, limit, offset int) ([]domain.Airport, error) {
	cacheable := limit == 0 && offset == 0
	if cacheable && s.cache != nil {
		if cached, err := s.cache.GetAirports(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	airports, err := s.airports.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if cacheable && s.cache != nil {
		if err := s.cache.SetAirports(ctx, airports); err != nil {
			s.log.Warn("failed to cache airports", logger.Error(err))
		}
	}
	return airports, nil
}

// CreateRoute validates the source/destination invariant a second time before
// persistence and resolves both airports, so a missing reference surfaces as
// NotFound instead of a foreign key error.
func (s *CatalogService) CreateRoute(ctx context.Context, route *domain.Route) error {
	if err := s.prepareRoute(ctx, route); err != nil {
		return err
	}
	return s.routes.Create(ctx, route)
}

func (s *CatalogService) UpdateRoute(ctx context.Context, route *domain.Route) error {
	if err := s.prepareRoute(ctx, route); err != nil {
		return err
	}
	return s.routes.Update(ctx, route)
}

func (s *CatalogService) prepareRoute(ctx context.Context, route *domain.Route) error {
	if err := route.Validate(); err != nil {
		return err
	}
	if _, err := s.airports.GetByID(ctx, route.SourceID); err != nil {
		return err
	}
	if _, err := s.airports.GetByID(ctx, route.DestinationID); err != nil {
		return err
	}
	return nil
}

func (s *CatalogService) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	return s.routes.GetByID(ctx, id)
}

func (s *CatalogService) ListRoutes(ctx context.Context, filter repository.RouteFilter) ([]domain.Route, error) {
	return s.routes.List(ctx, filter)
}

func (s *CatalogService) CreateCrew(ctx context.Context, c *domain.Crew) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return s.crews.Create(ctx, c)
}

func (s *CatalogService) UpdateCrew(ctx context.Context, c *domain.Crew) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return s.crews.Update(ctx, c)
}

func (s *CatalogService) GetCrew(ctx context.Context, id int64) (*domain.Crew, error) {
	return s.crews.GetByID(ctx, id)
}

func (s *CatalogService) ListCrews(ctx context.Context, limit, offset int) ([]domain.Crew, error) {
	return s.crews.List(ctx, limit, offset)
}

func (s *CatalogService) invalidateAirports(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAirports(ctx); err != nil {
		s.log.Warn("failed to invalidate airports cache", logger.Error(err))
	}
}

var _ CatalogUseCase = (*CatalogService)(nil)
