package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"ero_shop/internal/models"
	"ero_shop/internal/repository"
	"ero_shop/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	catalogService services.CatalogService
}

func NewProductHandler(catalogService services.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

func (h *ProductHandler) List(c *gin.Context) {
	filter := repository.ProductFilter{
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
	}
	if raw := c.Query("category"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
			return
		}
		filter.CategoryID = uint(id)
	}

	products, err := h.catalogService.ListProducts(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.catalogService.GetProduct(c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Featured(c *gin.Context) {
	products, err := h.catalogService.Featured()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load featured products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) BestSellers(c *gin.Context) {
	products, err := h.catalogService.BestSellers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load best sellers"})
		return
	}
	c.JSON(http.StatusOK, products)
}

type productRequest struct {
	Name          string          `json:"name" binding:"required"`
	Slug          string          `json:"slug" binding:"required"`
	Description   string          `json:"description"`
	CategoryID    uint            `json:"category_id" binding:"required"`
	PriceChina    decimal.Decimal `json:"price_china"`
	PriceCameroon decimal.Decimal `json:"price_cameroon" binding:"required"`
	Stock         int             `json:"stock"`
	IsAvailable   *bool           `json:"is_available"`
	MainImage     string          `json:"main_image"`
	Weight        decimal.Decimal `json:"weight"`
	Dimensions    string          `json:"dimensions"`
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	product := &models.Product{
		Name:          req.Name,
		Slug:          req.Slug,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		PriceChina:    req.PriceChina,
		PriceCameroon: req.PriceCameroon,
		Stock:         req.Stock,
		IsAvailable:   available,
		MainImage:     req.MainImage,
		Weight:        req.Weight,
		Dimensions:    req.Dimensions,
	}
	if err := h.catalogService.CreateProduct(product); err != nil {
		if errors.Is(err, services.ErrInvalidPrice) || errors.Is(err, services.ErrInvalidStock) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	product := &models.Product{
		ID:            uint(id),
		Name:          req.Name,
		Slug:          req.Slug,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		PriceChina:    req.PriceChina,
		PriceCameroon: req.PriceCameroon,
		Stock:         req.Stock,
		IsAvailable:   available,
		MainImage:     req.MainImage,
		Weight:        req.Weight,
		Dimensions:    req.Dimensions,
	}
	if err := h.catalogService.UpdateProduct(product); err != nil {
		if errors.Is(err, services.ErrInvalidPrice) || errors.Is(err, services.ErrInvalidStock) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}
