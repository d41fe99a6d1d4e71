package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nikolay2099/airtickets/internal/domain"
	"github.com/Nikolay2099/airtickets/internal/service/orders"
)

type OrderHandler struct {
	service orders.OrderUseCase
}

type orderRequest struct {
	Tickets []ticketRequest `json:"tickets"`
}

type ticketRequest struct {
	Row      int   `json:"row"`
	Seat     int   `json:"seat"`
	FlightID int64 `json:"flight"`
}

type orderResponse struct {
	ID        int64            `json:"id"`
	Reference string           `json:"reference"`
	CreatedAt string           `json:"created_at"`
	Tickets   []ticketResponse `json:"tickets"`
}

type ticketResponse struct {
	ID       int64 `json:"id"`
	Row      int   `json:"row"`
	Seat     int   `json:"seat"`
	FlightID int64 `json:"flight"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	resp := orderResponse{
		ID:        o.ID,
		Reference: o.Reference,
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
		Tickets:   make([]ticketResponse, 0, len(o.Tickets)),
	}
	for i := range o.Tickets {
		t := &o.Tickets[i]
		resp.Tickets = append(resp.Tickets, ticketResponse{
			ID:       t.ID,
			Row:      t.Row,
			Seat:     t.Seat,
			FlightID: t.FlightID,
		})
	}
	return resp
}

func NewOrderHandler(service orders.OrderUseCase) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", h.create)
}

// create books every ticket in the request for the authenticated user.
// The owner always comes from the token, not the payload.
func (h *OrderHandler) create(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	specs := make([]domain.TicketSpec, 0, len(req.Tickets))
	for _, t := range req.Tickets {
		specs = append(specs, domain.TicketSpec{Row: t.Row, Seat: t.Seat, FlightID: t.FlightID})
	}

	order, err := h.service.Create(c.Request.Context(), currentUserID(c), specs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(order))
}

func (h *OrderHandler) list(c *gin.Context) {
	limit, offset := pageParams(c)

	orders, err := h.service.ListByUser(c.Request.Context(), currentUserID(c), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, toOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	order, err := h.service.GetByID(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}
