package services

import (
	"errors"
	"fmt"

	"ero_shop/internal/models"
	"ero_shop/internal/repository"
	"ero_shop/pkg/whatsapp"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RedirectResult is what the client needs to open WhatsApp for one product.
type RedirectResult struct {
	OrderID     uint            `json:"order_id"`
	WhatsAppURL string          `json:"whatsapp_url"`
	City        string          `json:"city"`
	Product     string          `json:"product"`
	Price       decimal.Decimal `json:"price"`
}

// CartRedirectResult is the aggregate result for a multi-product redirect.
type CartRedirectResult struct {
	OrderIDs    []uint          `json:"order_ids"`
	WhatsAppURL string          `json:"whatsapp_url"`
	City        string          `json:"city"`
	ItemsCount  int             `json:"items_count"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// RedirectService is the WhatsApp checkout engine: instead of a paid order it
// records a lightweight tracking row and hands back a wa.me deep link. Stock
// is checked but never reserved; the sale is finalized manually over WhatsApp.
type RedirectService interface {
	Initiate(user *models.User, productID, cityID uint, quantity int) (*RedirectResult, error)
	InitiateCart(user *models.User, items []CheckoutItem, cityID uint) (*CartRedirectResult, error)
	UpdateStatus(userID, trackingID uint, status string) (*models.TrackingOrder, error)
	GetUserTrackingOrders(userID uint) ([]models.TrackingOrder, error)
	GetCities() ([]models.City, error)
}

type redirectService struct {
	trackingRepo repository.TrackingOrderRepository
	productRepo  repository.ProductRepository
	cityRepo     repository.CityRepository
}

func NewRedirectService(
	trackingRepo repository.TrackingOrderRepository,
	productRepo repository.ProductRepository,
	cityRepo repository.CityRepository,
) RedirectService {
	return &redirectService{
		trackingRepo: trackingRepo,
		productRepo:  productRepo,
		cityRepo:     cityRepo,
	}
}

func (s *redirectService) activeCity(cityID uint) (*models.City, error) {
	city, err := s.cityRepo.GetByID(cityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrCityNotFound, cityID)
		}
		return nil, err
	}
	if !city.IsActive {
		return nil, fmt.Errorf("%w: %q", ErrCityInactive, city.Name)
	}
	return city, nil
}

func (s *redirectService) checkedProduct(productID uint, quantity int) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrProductNotFound, productID)
		}
		return nil, err
	}
	if err := ValidateLine(product, quantity); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *redirectService) Initiate(user *models.User, productID, cityID uint, quantity int) (*RedirectResult, error) {
	city, err := s.activeCity(cityID)
	if err != nil {
		return nil, err
	}
	product, err := s.checkedProduct(productID, quantity)
	if err != nil {
		return nil, err
	}

	tracking := newTrackingOrder(user.ID, product, city, quantity)
	if err := s.trackingRepo.Create(tracking); err != nil {
		return nil, err
	}

	line := whatsapp.OrderLine{
		ProductName: product.Name,
		UnitPrice:   product.PriceCameroon,
		Quantity:    quantity,
	}
	message := whatsapp.BuildOrderMessage(line, user.DisplayName(), city.Name)

	return &RedirectResult{
		OrderID:     tracking.ID,
		WhatsAppURL: whatsapp.Link(city.WhatsAppNumber, message),
		City:        city.Name,
		Product:     product.Name,
		Price:       product.PriceCameroon,
	}, nil
}

// InitiateCart batches several products into one message and one URL,
// creating one tracking row per product.
func (s *redirectService) InitiateCart(user *models.User, items []CheckoutItem, cityID uint) (*CartRedirectResult, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	city, err := s.activeCity(cityID)
	if err != nil {
		return nil, err
	}

	lines := make([]whatsapp.OrderLine, 0, len(items))
	ids := make([]uint, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		product, err := s.checkedProduct(item.ProductID, item.Quantity)
		if err != nil {
			return nil, err
		}

		tracking := newTrackingOrder(user.ID, product, city, item.Quantity)
		if err := s.trackingRepo.Create(tracking); err != nil {
			return nil, err
		}
		ids = append(ids, tracking.ID)

		line := whatsapp.OrderLine{
			ProductName: product.Name,
			UnitPrice:   product.PriceCameroon,
			Quantity:    item.Quantity,
		}
		lines = append(lines, line)
		total = total.Add(line.Subtotal())
	}

	message := whatsapp.BuildCartMessage(lines, user.DisplayName(), city.Name)

	return &CartRedirectResult{
		OrderIDs:    ids,
		WhatsAppURL: whatsapp.Link(city.WhatsAppNumber, message),
		City:        city.Name,
		ItemsCount:  len(items),
		TotalPrice:  total,
	}, nil
}

// UpdateStatus marks a tracking order completed or cancelled. Any other value
// is rejected, and inventory is never touched: the redirect flow only ever
// checked stock, it never decremented it.
func (s *redirectService) UpdateStatus(userID, trackingID uint, status string) (*models.TrackingOrder, error) {
	next := models.TrackingStatus(status)
	if next != models.TrackingCompleted && next != models.TrackingCancelled {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	tracking, err := s.trackingRepo.GetByIDForUser(trackingID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	tracking.Status = string(next)
	if err := s.trackingRepo.Update(tracking); err != nil {
		return nil, err
	}
	return tracking, nil
}

func (s *redirectService) GetUserTrackingOrders(userID uint) ([]models.TrackingOrder, error) {
	return s.trackingRepo.GetByUserID(userID)
}

func (s *redirectService) GetCities() ([]models.City, error) {
	return s.cityRepo.GetActive()
}

func newTrackingOrder(userID uint, product *models.Product, city *models.City, quantity int) *models.TrackingOrder {
	productID := product.ID
	cityID := city.ID
	return &models.TrackingOrder{
		UserID:       userID,
		ProductID:    &productID,
		CityID:       &cityID,
		ProductName:  product.Name,
		ProductPrice: product.PriceCameroon,
		Quantity:     quantity,
		CityName:     city.Name,
		Total:        product.PriceCameroon.Mul(decimal.NewFromInt(int64(quantity))),
		Status:       string(models.TrackingRedirected),
	}
}
