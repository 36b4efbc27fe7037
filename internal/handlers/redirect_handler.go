package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"ero_shop/internal/middleware"
	"ero_shop/internal/services"

	"github.com/gin-gonic/gin"
)

type RedirectHandler struct {
	redirectService services.RedirectService
}

func NewRedirectHandler(redirectService services.RedirectService) *RedirectHandler {
	return &RedirectHandler{redirectService: redirectService}
}

func mapRedirectError(err error) int {
	switch {
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrCityNotFound),
		errors.Is(err, services.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrProductUnavailable),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrCityInactive),
		errors.Is(err, services.ErrInvalidStatus):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *RedirectHandler) Initiate(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
		CityID    uint `json:"city_id" binding:"required"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	result, err := h.redirectService.Initiate(user, req.ProductID, req.CityID, req.Quantity)
	if err != nil {
		status := mapRedirectError(err)
		if status == http.StatusInternalServerError {
			c.JSON(status, gin.H{"error": "Failed to initiate order"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *RedirectHandler) InitiateCart(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req struct {
		Items  []services.CheckoutItem `json:"items" binding:"required"`
		CityID uint                    `json:"city_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.redirectService.InitiateCart(user, req.Items, req.CityID)
	if err != nil {
		status := mapRedirectError(err)
		if status == http.StatusInternalServerError {
			c.JSON(status, gin.H{"error": "Failed to initiate order"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *RedirectHandler) UpdateStatus(c *gin.Context) {
	user := middleware.CurrentUser(c)
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

	order, err := h.redirectService.UpdateStatus(user.ID, uint(id), req.Status)
	if err != nil {
		status := mapRedirectError(err)
		if status == http.StatusInternalServerError {
			c.JSON(status, gin.H{"error": "Failed to update status"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *RedirectHandler) History(c *gin.Context) {
	user := middleware.CurrentUser(c)
	orders, err := h.redirectService.GetUserTrackingOrders(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order history"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *RedirectHandler) Cities(c *gin.Context) {
	cities, err := h.redirectService.GetCities()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list cities"})
		return
	}
	c.JSON(http.StatusOK, cities)
}
