package flights

import (
	"context"

	"github.com/Nikolay2099/airtickets/internal/domain"
	"github.com/Nikolay2099/airtickets/internal/logger"
	"github.com/Nikolay2099/airtickets/internal/repository"
)

type FlightUseCase interface {
	Create(ctx context.Context, flight *domain.Flight, crewIDs []int64) (*domain.Flight, error)
	Update(ctx context.Context, flight *domain.Flight, crewIDs []int64) (*domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	List(ctx context.Context, filter repository.FlightFilter) ([]domain.Flight, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	flights   repository.FlightRepository
	routes    repository.RouteRepository
	airplanes repository.AirplaneRepository
	crews     repository.CrewRepository
	cache     Cache
	log       logger.Logger
}

func NewFlightService(
	flights repository.FlightRepository,
	routes repository.RouteRepository,
	airplanes repository.AirplaneRepository,
	crews repository.CrewRepository,
	cache Cache,
	log logger.Logger,
) *FlightService {
	return &FlightService{
		flights:   flights,
		routes:    routes,
		airplanes: airplanes,
		crews:     crews,
		cache:     cache,
		log:       log,
	}
}

func (s *FlightService) Create(ctx context.Context, flight *domain.Flight, crewIDs []int64) (*domain.Flight, error) {
	if err := s.prepare(ctx, flight, crewIDs); err != nil {
		return nil, err
	}
	if err := s.flights.Create(ctx, flight, crewIDs); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return s.flights.GetByID(ctx, flight.ID)
}

func (s *FlightService) Update(ctx context.Context, flight *domain.Flight, crewIDs []int64) (*domain.Flight, error) {
	if err := s.prepare(ctx, flight, crewIDs); err != nil {
		return nil, err
	}
	if err := s.flights.Update(ctx, flight, crewIDs); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return s.flights.GetByID(ctx, flight.ID)
}

// prepare re-runs the temporal validator immediately before persistence and
// resolves every referenced entity, so programmatic callers get the same
// protection as the HTTP path.
func (s *FlightService) prepare(ctx context.Context, flight *domain.Flight, crewIDs []int64) error {
	if err := flight.Validate(); err != nil {
		return err
	}
	if _, err := s.routes.GetByID(ctx, flight.RouteID); err != nil {
		return err
	}
	if _, err := s.airplanes.GetByID(ctx, flight.AirplaneID); err != nil {
		return err
	}
	if _, err := s.crews.GetByIDs(ctx, crewIDs); err != nil {
		return err
	}
	return nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.flights.GetByID(ctx, id)
}

// List serves the unfiltered first page from cache when possible.
func (s *FlightService) List(ctx context.Context, filter repository.FlightFilter) ([]domain.Flight, error) {
	cacheable := filter.SourceCity == "" && filter.DestinationCity == "" && filter.Offset == 0 && filter.Limit == 0
	if cacheable && s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.flights.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if cacheable && s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			s.log.Warn("failed to cache flights", logger.Error(err))
		}
	}
	return flights, nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.log.Warn("failed to invalidate flights cache", logger.Error(err))
	}
}

var _ FlightUseCase = (*FlightService)(nil)
