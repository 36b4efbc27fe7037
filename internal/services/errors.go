package services

import "errors"

// Sentinel errors for the checkout and account flows. Handlers map these to
// HTTP statuses with errors.Is, so detail is added by wrapping (%w), never by
// replacing the sentinel.
var (
	ErrEmptyCart          = errors.New("order must contain at least one product")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product is not available")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidQuantity    = errors.New("quantity must be positive")

	ErrMissingDeliveryInfo  = errors.New("delivery address, city and phone are required")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	ErrOrderNotFound     = errors.New("order not found")
	ErrNotCancellable    = errors.New("order can no longer be cancelled")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("status transition not allowed")

	ErrCityNotFound = errors.New("city not found")
	ErrCityInactive = errors.New("city is not active")

	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrForbidden          = errors.New("insufficient permissions")

	ErrInvalidPrice = errors.New("price must be greater than zero")
	ErrInvalidStock = errors.New("stock cannot be negative")
)
