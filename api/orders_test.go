package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Nikolay2099/airtickets/internal/domain"
)

type MockOrderUseCase struct {
	mock.Mock
}

func (m *MockOrderUseCase) Create(ctx context.Context, userID int64, specs []domain.TicketSpec) (*domain.Order, error) {
	args := m.Called(ctx, userID, specs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderUseCase) GetByID(ctx context.Context, userID, id int64) (*domain.Order, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderUseCase) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func newOrderTestContext(t *testing.T, userID int64) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(ctxUserID, userID)
	return c, w
}

func TestOrderHandler_create(t *testing.T) {
	mockService := &MockOrderUseCase{}
	handler := NewOrderHandler(mockService)

	c, w := newOrderTestContext(t, 7)

	req := orderRequest{Tickets: []ticketRequest{
		{Row: 1, Seat: 1, FlightID: 4},
		{Row: 1, Seat: 2, FlightID: 4},
	}}
	body, _ := json.Marshal(req)
	c.Request = httptest.NewRequest("POST", "/api/v1/orders", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	specs := []domain.TicketSpec{
		{Row: 1, Seat: 1, FlightID: 4},
		{Row: 1, Seat: 2, FlightID: 4},
	}
	created := &domain.Order{
		ID:        1,
		Reference: "ref-123",
		UserID:    7,
		CreatedAt: time.Now().UTC(),
		Tickets: []domain.Ticket{
			{ID: 1, Row: 1, Seat: 1, FlightID: 4, OrderID: 1},
			{ID: 2, Row: 1, Seat: 2, FlightID: 4, OrderID: 1},
		},
	}

	// The owner comes from the token, not the payload.
	mockService.On("Create", c.Request.Context(), int64(7), specs).Return(created, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response orderResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "ref-123", response.Reference)
	assert.Len(t, response.Tickets, 2)

	mockService.AssertExpectations(t)
}

func TestOrderHandler_create_SeatTaken(t *testing.T) {
	mockService := &MockOrderUseCase{}
	handler := NewOrderHandler(mockService)

	c, w := newOrderTestContext(t, 7)

	req := orderRequest{Tickets: []ticketRequest{{Row: 1, Seat: 1, FlightID: 4}}}
	body, _ := json.Marshal(req)
	c.Request = httptest.NewRequest("POST", "/api/v1/orders", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Create", c.Request.Context(), int64(7), mock.Anything).Return(nil, domain.ErrSeatTaken)

	handler.create(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	mockService.AssertExpectations(t)
}

func TestOrderHandler_create_OutOfBounds(t *testing.T) {
	mockService := &MockOrderUseCase{}
	handler := NewOrderHandler(mockService)

	c, w := newOrderTestContext(t, 7)

	req := orderRequest{Tickets: []ticketRequest{{Row: 10, Seat: 2, FlightID: 4}}}
	body, _ := json.Marshal(req)
	c.Request = httptest.NewRequest("POST", "/api/v1/orders", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Create", c.Request.Context(), int64(7), mock.Anything).
		Return(nil, domain.NewValidationError("row", "row must be in range 1..5, got 10"))

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "row must be in range 1..5")

	mockService.AssertExpectations(t)
}

func TestOrderHandler_get_NotFound(t *testing.T) {
	mockService := &MockOrderUseCase{}
	handler := NewOrderHandler(mockService)

	c, w := newOrderTestContext(t, 7)
	c.Params = gin.Params{{Key: "id", Value: "12"}}
	c.Request = httptest.NewRequest("GET", "/api/v1/orders/12", nil)

	mockService.On("GetByID", c.Request.Context(), int64(7), int64(12)).Return(nil, domain.ErrNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	mockService.AssertExpectations(t)
}

func TestOrderHandler_list(t *testing.T) {
	mockService := &MockOrderUseCase{}
	handler := NewOrderHandler(mockService)

	c, w := newOrderTestContext(t, 7)
	c.Request = httptest.NewRequest("GET", "/api/v1/orders", nil)

	stored := []domain.Order{
		{ID: 2, Reference: "ref-2", UserID: 7},
		{ID: 1, Reference: "ref-1", UserID: 7},
	}
	mockService.On("ListByUser", c.Request.Context(), int64(7), 0, 0).Return(stored, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []orderResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 2)
	assert.Equal(t, "ref-2", response[0].Reference)

	mockService.AssertExpectations(t)
}
