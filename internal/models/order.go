package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	OrderNumber string `json:"order_number" gorm:"unique;not null"`
	UserID      uint   `json:"user_id" gorm:"not null;index"`
	User        User   `json:"-" gorm:"foreignKey:UserID"`

	Status        string `json:"status" gorm:"default:'pending'"`
	PaymentStatus string `json:"payment_status" gorm:"default:'pending'"` // pending, paid, failed
	PaymentMethod string `json:"payment_method" gorm:"default:'cash_on_delivery'"`

	DeliveryAddress string `json:"delivery_address" gorm:"type:text;not null"`
	DeliveryCity    string `json:"delivery_city" gorm:"not null"`
	DeliveryPhone   string `json:"delivery_phone" gorm:"not null"`

	Subtotal     decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	ShippingCost decimal.Decimal `json:"shipping_cost" gorm:"type:decimal(10,2);not null"`
	Total        decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null"`

	CustomerNotes string `json:"customer_notes" gorm:"type:text"`
	AdminNotes    string `json:"admin_notes" gorm:"type:text"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID"`

	EstimatedDelivery *time.Time     `json:"estimated_delivery"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type OrderStatus string

const (
	OrderPending     OrderStatus = "pending"
	OrderConfirmed   OrderStatus = "confirmed"
	OrderProcessing  OrderStatus = "processing"
	OrderShipped     OrderStatus = "shipped"
	OrderInTransit   OrderStatus = "in_transit"
	OrderArrived     OrderStatus = "arrived"
	OrderReadyPickup OrderStatus = "ready_pickup"
	OrderDelivered   OrderStatus = "delivered"
	OrderCancelled   OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentAtPickup       PaymentMethod = "pickup_payment"
)

// statusRank orders the normal fulfillment progression. Cancelled sits
// outside the progression and is handled separately.
var statusRank = map[OrderStatus]int{
	OrderPending:     0,
	OrderConfirmed:   1,
	OrderProcessing:  2,
	OrderShipped:     3,
	OrderInTransit:   4,
	OrderArrived:     5,
	OrderReadyPickup: 6,
	OrderDelivered:   7,
}

// ValidOrderStatus reports whether s names a known order status.
func ValidOrderStatus(s string) bool {
	if OrderStatus(s) == OrderCancelled {
		return true
	}
	_, ok := statusRank[OrderStatus(s)]
	return ok
}

// CanTransitionTo reports whether an order may move from its current status
// to next. Delivered and cancelled are terminal; cancellation from fulfilment
// statuses goes through the cancel flow, not a plain status update.
func (o *Order) CanTransitionTo(next OrderStatus) bool {
	current := OrderStatus(o.Status)
	if current == OrderDelivered || current == OrderCancelled {
		return false
	}
	if next == OrderCancelled {
		return o.IsCancellable()
	}
	curRank, ok := statusRank[current]
	if !ok {
		return false
	}
	nextRank, ok := statusRank[next]
	if !ok {
		return false
	}
	return nextRank > curRank
}

// IsCancellable reports whether the customer may still cancel the order.
func (o *Order) IsCancellable() bool {
	s := OrderStatus(o.Status)
	return s == OrderPending || s == OrderConfirmed
}

// ValidPaymentMethod reports whether m names a supported payment method.
func ValidPaymentMethod(m string) bool {
	switch PaymentMethod(m) {
	case PaymentCashOnDelivery, PaymentAtPickup:
		return true
	}
	return false
}
