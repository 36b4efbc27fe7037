package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"ero_shop/internal/middleware"
	"ero_shop/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// mapOrderError translates service errors to an HTTP status. Validation and
// state conflicts are 400, unknown or foreign rows are 404.
func mapOrderError(err error) int {
	switch {
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrProductUnavailable),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrMissingDeliveryInfo),
		errors.Is(err, services.ErrInvalidPaymentMethod),
		errors.Is(err, services.ErrNotCancellable),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidTransition):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *OrderHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req struct {
		Items []services.CheckoutItem `json:"items" binding:"required"`
		services.DeliveryInfo
		PaymentMethod string `json:"payment_method" binding:"required"`
		CustomerNotes string `json:"customer_notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orderService.CreateOrder(user.ID, req.Items, req.DeliveryInfo, req.PaymentMethod, req.CustomerNotes)
	if err != nil {
		status := mapOrderError(err)
		if status == http.StatusInternalServerError {
			c.JSON(status, gin.H{"error": "Failed to create order"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	orders, err := h.orderService.GetUserOrders(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, err := h.orderService.GetOrder(user.ID, uint(id))
	if err != nil {
		c.JSON(mapOrderError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, err := h.orderService.CancelOrder(user.ID, uint(id))
	if err != nil {
		status := mapOrderError(err)
		if status == http.StatusInternalServerError {
			c.JSON(status, gin.H{"error": "Failed to cancel order"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Stats(c *gin.Context) {
	user := middleware.CurrentUser(c)
	stats, err := h.orderService.GetStats(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orderService.UpdateStatus(uint(id), req.Status)
	if err != nil {
		status := mapOrderError(err)
		if status == http.StatusInternalServerError {
			c.JSON(status, gin.H{"error": "Failed to update order status"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}
