package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"ero_shop/internal/models"
	"ero_shop/internal/redis"
	"ero_shop/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DeliveryInfo carries the destination for a checkout.
type DeliveryInfo struct {
	Address string `json:"delivery_address" binding:"required"`
	City    string `json:"delivery_city" binding:"required"`
	Phone   string `json:"delivery_phone" binding:"required"`
}

// OrderStats aggregates a user's orders by status bucket.
type OrderStats struct {
	TotalOrders int64 `json:"total_orders"`
	Pending     int64 `json:"pending"`
	InTransit   int64 `json:"in_transit"`
	Delivered   int64 `json:"delivered"`
}

type OrderService interface {
	CreateOrder(userID uint, items []CheckoutItem, delivery DeliveryInfo, paymentMethod, customerNotes string) (*models.Order, error)
	GetOrder(userID, orderID uint) (*models.Order, error)
	GetUserOrders(userID uint) ([]models.Order, error)
	CancelOrder(userID, orderID uint) (*models.Order, error)
	UpdateStatus(orderID uint, status string) (*models.Order, error)
	GetStats(userID uint) (*OrderStats, error)
}

type orderService struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	itemRepo    repository.OrderItemRepository
	productRepo repository.ProductRepository
	cache       *redis.Client
	shipping    decimal.Decimal
	statsTTL    time.Duration
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	itemRepo repository.OrderItemRepository,
	productRepo repository.ProductRepository,
	cache *redis.Client,
	shippingCost decimal.Decimal,
	statsTTL time.Duration,
) OrderService {
	return &orderService{
		db:          db,
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		productRepo: productRepo,
		cache:       cache,
		shipping:    shippingCost,
		statsTTL:    statsTTL,
	}
}

// generateOrderNumber builds the human-readable order number, e.g. ERO3FA85C21.
// Generated once at creation, immutable afterwards.
func generateOrderNumber() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "ERO" + strings.ToUpper(hex[:8])
}

// CreateOrder validates the cart, snapshots product data onto line items,
// computes the totals and adjusts stock, all inside one transaction. On any
// failure nothing is persisted.
func (s *orderService) CreateOrder(userID uint, items []CheckoutItem, delivery DeliveryInfo, paymentMethod, customerNotes string) (*models.Order, error) {
	if delivery.Address == "" || delivery.City == "" || delivery.Phone == "" {
		return nil, ErrMissingDeliveryInfo
	}
	if !models.ValidPaymentMethod(paymentMethod) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, paymentMethod)
	}

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		products := s.productRepo.WithTx(tx)
		orders := s.orderRepo.WithTx(tx)
		orderItems := s.itemRepo.WithTx(tx)

		merged, fetched, err := validateAndFetch(products, items)
		if err != nil {
			return err
		}

		order = &models.Order{
			OrderNumber:     generateOrderNumber(),
			UserID:          userID,
			Status:          string(models.OrderPending),
			PaymentStatus:   string(models.PaymentPending),
			PaymentMethod:   paymentMethod,
			DeliveryAddress: delivery.Address,
			DeliveryCity:    delivery.City,
			DeliveryPhone:   delivery.Phone,
			CustomerNotes:   customerNotes,
			Subtotal:        decimal.Zero,
			ShippingCost:    s.shipping,
			Total:           decimal.Zero,
		}
		if err := orders.Create(order); err != nil {
			return err
		}

		subtotal := decimal.Zero
		for i, item := range merged {
			product := fetched[i]
			productID := product.ID

			line := &models.OrderItem{
				OrderID:      order.ID,
				ProductID:    &productID,
				ProductName:  product.Name,
				ProductImage: product.MainImage,
				Price:        product.PriceCameroon,
				Quantity:     item.Quantity,
			}
			line.ComputeSubtotal()
			if err := orderItems.Create(line); err != nil {
				return err
			}

			if err := products.AdjustStock(product.ID, -item.Quantity, item.Quantity); err != nil {
				return err
			}

			subtotal = subtotal.Add(line.Subtotal)
			order.Items = append(order.Items, *line)
		}

		order.Subtotal = subtotal
		order.Total = subtotal.Add(order.ShippingCost)
		return orders.Update(order)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStats(userID)
	return order, nil
}

func (s *orderService) GetOrder(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDForUser(orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetUserOrders(userID uint) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}

// CancelOrder sets the order to cancelled and restores stock for every line
// item whose product still exists. A deleted product reference is skipped
// silently; the resulting inventory drift is accepted.
func (s *orderService) CancelOrder(userID, orderID uint) (*models.Order, error) {
	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		orders := s.orderRepo.WithTx(tx)
		products := s.productRepo.WithTx(tx)

		var err error
		order, err = orders.GetByIDForUser(orderID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if !order.IsCancellable() {
			return fmt.Errorf("%w: status is %q", ErrNotCancellable, order.Status)
		}

		order.Status = string(models.OrderCancelled)
		if err := orders.Update(order); err != nil {
			return err
		}

		for _, item := range order.Items {
			if item.ProductID == nil {
				continue
			}
			if _, err := products.GetByIDForUpdate(*item.ProductID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			if err := products.AdjustStock(*item.ProductID, item.Quantity, -item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStats(userID)
	return order, nil
}

// UpdateStatus is the admin-driven status change. Fulfilment statuses only
// move forward; cancellation must go through CancelOrder so stock is restored.
func (s *orderService) UpdateStatus(orderID uint, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if models.OrderStatus(status) == models.OrderCancelled {
		return nil, fmt.Errorf("%w: use the cancel endpoint to cancel an order", ErrInvalidTransition)
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if !order.CanTransitionTo(models.OrderStatus(status)) {
		return nil, fmt.Errorf("%w: %q -> %q", ErrInvalidTransition, order.Status, status)
	}

	order.Status = status
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	s.invalidateStats(order.UserID)
	return order, nil
}

// GetStats returns per-status counts for the user's orders, served from the
// Redis cache when possible.
func (s *orderService) GetStats(userID uint) (*OrderStats, error) {
	if s.cache != nil {
		var cached OrderStats
		if err := s.cache.GetOrderStats(userID, &cached); err == nil {
			return &cached, nil
		}
	}

	counts, err := s.orderRepo.CountByStatus(userID)
	if err != nil {
		return nil, err
	}

	stats := &OrderStats{}
	for _, c := range counts {
		stats.TotalOrders += c.Count
		switch models.OrderStatus(c.Status) {
		case models.OrderPending:
			stats.Pending += c.Count
		case models.OrderShipped, models.OrderInTransit:
			stats.InTransit += c.Count
		case models.OrderDelivered:
			stats.Delivered += c.Count
		}
	}

	if s.cache != nil {
		if err := s.cache.SetOrderStats(userID, stats, s.statsTTL); err != nil {
			log.Printf("Warning: failed to cache order stats: %v", err)
		}
	}
	return stats, nil
}

func (s *orderService) invalidateStats(userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateOrderStats(userID); err != nil {
		log.Printf("Warning: failed to invalidate order stats: %v", err)
	}
}
