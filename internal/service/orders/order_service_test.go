package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Nikolay2099/airtickets/internal/domain"
	"github.com/Nikolay2099/airtickets/internal/logger"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, userID, id int64) (*domain.Order, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

type MockFlightResolver struct {
	mock.Mock
}

func (m *MockFlightResolver) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func flightWithGrid(id int64, rows, seatsInRow int) *domain.Flight {
	return &domain.Flight{
		ID: id,
		Airplane: &domain.Airplane{
			ID:         id,
			Name:       "Test Airplane",
			Rows:       rows,
			SeatsInRow: seatsInRow,
		},
	}
}

func newTestService(orders *MockOrderRepository, flights *MockFlightResolver, users *MockUserDirectory, producer *MockProducer) *OrderService {
	return &OrderService{
		orders:      orders,
		flights:     flights,
		users:       users,
		producer:    producer,
		ordersTopic: "orders",
		log:         logger.Nop(),
	}
}

func TestOrderService_Create_Success(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightResolver{}
	mockUsers := &MockUserDirectory{}
	mockProducer := &MockProducer{}

	service := newTestService(mockOrders, mockFlights, mockUsers, mockProducer)

	ctx := context.Background()
	specs := []domain.TicketSpec{
		{Row: 1, Seat: 1, FlightID: 4},
		{Row: 1, Seat: 2, FlightID: 4},
		{Row: 3, Seat: 6, FlightID: 4},
	}

	// One resolver call per distinct flight, not per ticket.
	mockFlights.On("GetByID", ctx, int64(4)).Return(flightWithGrid(4, 5, 6), nil).Once()
	mockOrders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
	mockUsers.On("GetByID", ctx, int64(7)).Return(&domain.User{ID: 7, Email: "test@example.com"}, nil).Once()
	mockProducer.On("Publish", ctx, "orders", mock.Anything, mock.Anything).Return(nil).Once()

	order, err := service.Create(ctx, 7, specs)

	assert.NoError(t, err)
	assert.NotNil(t, order)
	assert.NotEmpty(t, order.Reference)
	assert.Equal(t, int64(7), order.UserID)
	assert.Len(t, order.Tickets, 3)
	assert.Equal(t, 1, order.Tickets[0].Row)
	assert.Equal(t, 6, order.Tickets[2].Seat)

	mockFlights.AssertExpectations(t)
	mockOrders.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestOrderService_Create_EmptyTickets(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightResolver{}
	mockUsers := &MockUserDirectory{}
	mockProducer := &MockProducer{}

	service := newTestService(mockOrders, mockFlights, mockUsers, mockProducer)

	order, err := service.Create(context.Background(), 7, nil)

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, domain.IsValidation(err))

	mockFlights.AssertNotCalled(t, "GetByID")
	mockOrders.AssertNotCalled(t, "Create")
	mockProducer.AssertNotCalled(t, "Publish")
}

func TestOrderService_Create_RowOutOfBounds(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightResolver{}
	mockUsers := &MockUserDirectory{}
	mockProducer := &MockProducer{}

	service := newTestService(mockOrders, mockFlights, mockUsers, mockProducer)

	ctx := context.Background()
	specs := []domain.TicketSpec{
		{Row: 2, Seat: 3, FlightID: 4},
		{Row: 10, Seat: 2, FlightID: 4},
	}

	mockFlights.On("GetByID", ctx, int64(4)).Return(flightWithGrid(4, 5, 6), nil).Once()

	order, err := service.Create(ctx, 7, specs)

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "ticket 1")
	assert.Contains(t, err.Error(), "row must be in range 1..5")

	// No write happens when any ticket is invalid.
	mockOrders.AssertNotCalled(t, "Create")
	mockProducer.AssertNotCalled(t, "Publish")
}

func TestOrderService_Create_SeatOutOfBounds(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightResolver{}
	mockUsers := &MockUserDirectory{}
	mockProducer := &MockProducer{}

	service := newTestService(mockOrders, mockFlights, mockUsers, mockProducer)

	ctx := context.Background()
	specs := []domain.TicketSpec{
		{Row: 3, Seat: 7, FlightID: 4},
	}

	mockFlights.On("GetByID", ctx, int64(4)).Return(flightWithGrid(4, 5, 6), nil).Once()

	order, err := service.Create(ctx, 7, specs)

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.Contains(t, err.Error(), "seat must be in range 1..6, got 7")

	mockOrders.AssertNotCalled(t, "Create")
}

func TestOrderService_Create_FlightNotFound(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightResolver{}
	mockUsers := &MockUserDirectory{}
	mockProducer := &MockProducer{}

	service := newTestService(mockOrders, mockFlights, mockUsers, mockProducer)

	ctx := context.Background()
	specs := []domain.TicketSpec{
		{Row: 1, Seat: 1, FlightID: 99},
	}

	mockFlights.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrNotFound).Once()

	order, err := service.Create(ctx, 7, specs)

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	mockOrders.AssertNotCalled(t, "Create")
}

func TestOrderService_Create_SeatTaken(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightResolver{}
	mockUsers := &MockUserDirectory{}
	mockProducer := &MockProducer{}

	service := newTestService(mockOrders, mockFlights, mockUsers, mockProducer)

	ctx := context.Background()
	specs := []domain.TicketSpec{
		{Row: 2, Seat: 2, FlightID: 4},
	}

	mockFlights.On("GetByID", ctx, int64(4)).Return(flightWithGrid(4, 5, 6), nil).Once()
	mockOrders.On("Create", ctx, mock.Anything).Return(domain.ErrSeatTaken).Once()

	order, err := service.Create(ctx, 7, specs)

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domain.ErrSeatTaken))

	mockOrders.AssertExpectations(t)
	mockProducer.AssertNotCalled(t, "Publish")
}

func TestOrderService_Create_PublishFailureIgnored(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightResolver{}
	mockUsers := &MockUserDirectory{}
	mockProducer := &MockProducer{}

	service := newTestService(mockOrders, mockFlights, mockUsers, mockProducer)

	ctx := context.Background()
	specs := []domain.TicketSpec{
		{Row: 1, Seat: 1, FlightID: 4},
	}

	mockFlights.On("GetByID", ctx, int64(4)).Return(flightWithGrid(4, 5, 6), nil).Once()
	mockOrders.On("Create", ctx, mock.Anything).Return(nil).Once()
	mockUsers.On("GetByID", ctx, int64(7)).Return(&domain.User{ID: 7, Email: "test@example.com"}, nil).Once()
	mockProducer.On("Publish", ctx, "orders", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	// The order is already durable, so a broker failure is not surfaced.
	order, err := service.Create(ctx, 7, specs)

	assert.NoError(t, err)
	assert.NotNil(t, order)

	mockProducer.AssertExpectations(t)
}

func TestOrderService_Create_NotificationsTopic(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightResolver{}
	mockUsers := &MockUserDirectory{}
	mockProducer := &MockProducer{}

	service := newTestService(mockOrders, mockFlights, mockUsers, mockProducer)
	service.notificationsTopic = "order_notifications"

	ctx := context.Background()
	specs := []domain.TicketSpec{
		{Row: 1, Seat: 1, FlightID: 4},
	}

	mockFlights.On("GetByID", ctx, int64(4)).Return(flightWithGrid(4, 5, 6), nil).Once()
	mockOrders.On("Create", ctx, mock.Anything).Return(nil).Once()
	mockUsers.On("GetByID", ctx, int64(7)).Return(&domain.User{ID: 7, Email: "test@example.com"}, nil).Once()
	mockProducer.On("Publish", ctx, "orders", mock.Anything, mock.Anything).Return(nil).Once()
	mockProducer.On("Publish", ctx, "order_notifications", mock.Anything, mock.Anything).Return(nil).Once()

	order, err := service.Create(ctx, 7, specs)

	assert.NoError(t, err)
	assert.NotNil(t, order)

	mockProducer.AssertExpectations(t)
}

func TestOrderService_GetByID_ScopedToUser(t *testing.T) {
	mockOrders := &MockOrderRepository{}

	service := newTestService(mockOrders, &MockFlightResolver{}, &MockUserDirectory{}, &MockProducer{})

	ctx := context.Background()
	mockOrders.On("GetByID", ctx, int64(7), int64(12)).Return(nil, domain.ErrNotFound).Once()

	order, err := service.GetByID(ctx, 7, 12)

	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	mockOrders.AssertExpectations(t)
}

func TestOrderService_ListByUser(t *testing.T) {
	mockOrders := &MockOrderRepository{}

	service := newTestService(mockOrders, &MockFlightResolver{}, &MockUserDirectory{}, &MockProducer{})

	ctx := context.Background()
	stored := []domain.Order{
		{ID: 2, UserID: 7, Reference: "ref-2"},
		{ID: 1, UserID: 7, Reference: "ref-1"},
	}
	mockOrders.On("ListByUser", ctx, int64(7), 50, 0).Return(stored, nil).Once()

	orders, err := service.ListByUser(ctx, 7, 50, 0)

	assert.NoError(t, err)
	assert.Equal(t, stored, orders)

	mockOrders.AssertExpectations(t)
}
