package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Nikolay2099/airtickets/internal/domain"
	"github.com/Nikolay2099/airtickets/internal/kafka"
	"github.com/Nikolay2099/airtickets/internal/logger"
	"github.com/Nikolay2099/airtickets/internal/repository"
)

type OrderUseCase interface {
	Create(ctx context.Context, userID int64, specs []domain.TicketSpec) (*domain.Order, error)
	GetByID(ctx context.Context, userID, id int64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error)
}

type FlightResolver interface {
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
}

type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type OrderService struct {
	orders             repository.OrderRepository
	flights            FlightResolver
	users              UserDirectory
	producer           Producer
	ordersTopic        string
	notificationsTopic string
	log                logger.Logger
}

type OrderServiceOption func(*OrderService)

func WithNotificationsTopic(topic string) OrderServiceOption {
	return func(s *OrderService) {
		s.notificationsTopic = topic
	}
}

func NewOrderService(
	orders repository.OrderRepository,
	flights FlightResolver,
	users UserDirectory,
	producer Producer,
	ordersTopic string,
	log logger.Logger,
	opts ...OrderServiceOption,
) *OrderService {
	service := &OrderService{
		orders:      orders,
		flights:     flights,
		users:       users,
		producer:    producer,
		ordersTopic: ordersTopic,
		log:         log,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Create persists a new order with its tickets as one atomic unit, or nothing
// at all. Every spec is validated against its flight's airplane grid before
// any write; the storage-level unique constraint on (flight, row, seat) is
// the final arbiter for concurrent submissions racing for the same seat, so
// a domain.ErrSeatTaken from the repository means another order won the seat
// and this submission was fully rolled back. No automatic retry is performed.
func (s *OrderService) Create(ctx context.Context, userID int64, specs []domain.TicketSpec) (*domain.Order, error) {
	if len(specs) == 0 {
		return nil, domain.NewValidationError("tickets", "at least one ticket is required")
	}

	bounds := make(map[int64]domain.SeatBounds, len(specs))
	for i, spec := range specs {
		b, ok := bounds[spec.FlightID]
		if !ok {
			flight, err := s.flights.GetByID(ctx, spec.FlightID)
			if err != nil {
				return nil, fmt.Errorf("ticket %d: %w", i, err)
			}
			b = flight.Airplane.Bounds()
			bounds[spec.FlightID] = b
		}
		if err := domain.ValidateSeat(spec.Row, spec.Seat, b); err != nil {
			return nil, fmt.Errorf("ticket %d: %w", i, err)
		}
	}

	order := &domain.Order{
		Reference: uuid.NewString(),
		UserID:    userID,
		Tickets:   make([]domain.Ticket, 0, len(specs)),
	}
	for _, spec := range specs {
		order.Tickets = append(order.Tickets, domain.Ticket{
			Row:      spec.Row,
			Seat:     spec.Seat,
			FlightID: spec.FlightID,
		})
	}

	// Second gate right before persistence: the same pure validator guards
	// callers that bypass the request path.
	for i := range order.Tickets {
		t := order.Tickets[i]
		if err := domain.ValidateSeat(t.Row, t.Seat, bounds[t.FlightID]); err != nil {
			return nil, fmt.Errorf("ticket %d: %w", i, err)
		}
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, "order_created", order)
	return order, nil
}

func (s *OrderService) GetByID(ctx context.Context, userID, id int64) (*domain.Order, error) {
	return s.orders.GetByID(ctx, userID, id)
}

func (s *OrderService) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID, limit, offset)
}

// publish is best effort: the order is already durable, so a broker failure
// is logged and never surfaced to the caller.
func (s *OrderService) publish(ctx context.Context, eventType string, order *domain.Order) {
	if s.producer == nil || s.ordersTopic == "" {
		return
	}

	event := kafka.OrderEvent{
		Type:      eventType,
		Reference: order.Reference,
		OrderID:   order.ID,
		UserID:    order.UserID,
		CreatedAt: order.CreatedAt,
	}
	if s.users != nil {
		if user, err := s.users.GetByID(ctx, order.UserID); err == nil {
			event.Email = user.Email
		}
	}
	for _, t := range order.Tickets {
		event.Tickets = append(event.Tickets, kafka.TicketEvent{
			FlightID: t.FlightID,
			Row:      t.Row,
			Seat:     t.Seat,
		})
	}

	if err := s.producer.Publish(ctx, s.ordersTopic, order.Reference, event); err != nil {
		s.log.Warn("failed to publish order event",
			logger.String("reference", order.Reference), logger.Error(err))
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, order.Reference, event); err != nil {
			s.log.Warn("failed to publish order notification",
				logger.String("reference", order.Reference), logger.Error(err))
		}
	}
}

var _ OrderUseCase = (*OrderService)(nil)
