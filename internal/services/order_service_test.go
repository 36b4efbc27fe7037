package services

import (
	"strings"
	"testing"

	"ero_shop/internal/models"
	"ero_shop/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderTotals(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	category := seedCategory(t, db)
	productA := seedProduct(t, db, category.ID, "Produit A", 5000, 10)
	productB := seedProduct(t, db, category.ID, "Produit B", 3000, 5)
	svc := newTestOrderService(db)

	order, err := svc.CreateOrder(user.ID, []CheckoutItem{
		{ProductID: productA.ID, Quantity: 2},
		{ProductID: productB.ID, Quantity: 1},
	}, testDelivery(), string(models.PaymentCashOnDelivery), "livrer le matin")
	require.NoError(t, err)

	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(13000)), "subtotal = %s", order.Subtotal)
	assert.True(t, order.ShippingCost.Equal(decimal.NewFromInt(2000)))
	assert.True(t, order.Total.Equal(decimal.NewFromInt(15000)), "total = %s", order.Total)
	assert.True(t, order.Total.Equal(order.Subtotal.Add(order.ShippingCost)))

	// Subtotal must be the exact sum of line subtotals
	sum := decimal.Zero
	for _, item := range order.Items {
		assert.True(t, item.Subtotal.Equal(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))))
		sum = sum.Add(item.Subtotal)
	}
	assert.True(t, order.Subtotal.Equal(sum))

	assert.Equal(t, string(models.OrderPending), order.Status)
	assert.Equal(t, string(models.PaymentPending), order.PaymentStatus)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ERO"))
	assert.Len(t, order.OrderNumber, 11)
}

func TestCreateOrderSnapshotsAndStock(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, "Produit A", 5000, 10)
	svc := newTestOrderService(db)

	order, err := svc.CreateOrder(user.ID, []CheckoutItem{
		{ProductID: product.ID, Quantity: 3},
	}, testDelivery(), string(models.PaymentAtPickup), "")
	require.NoError(t, err)
	require.Len(t, order.Items, 1)

	item := order.Items[0]
	assert.Equal(t, "Produit A", item.ProductName)
	assert.Equal(t, product.MainImage, item.ProductImage)
	assert.True(t, item.Price.Equal(decimal.NewFromInt(5000)))

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 7, reloaded.Stock)
	assert.Equal(t, 3, reloaded.SalesCount)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	svc := newTestOrderService(db)

	_, err := svc.CreateOrder(user.ID, nil, testDelivery(), string(models.PaymentCashOnDelivery), "")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, "Produit A", 5000, 2)
	svc := newTestOrderService(db)

	_, err := svc.CreateOrder(user.ID, []CheckoutItem{
		{ProductID: product.ID, Quantity: 3},
	}, testDelivery(), string(models.PaymentCashOnDelivery), "")
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Produit A")
}

// Repeated lines for the same product must be checked against the cumulative
// quantity, otherwise each line passes individually and stock goes negative.
func TestCreateOrderMergesDuplicateLineItems(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, "Produit A", 5000, 4)
	svc := newTestOrderService(db)

	_, err := svc.CreateOrder(user.ID, []CheckoutItem{
		{ProductID: product.ID, Quantity: 3},
		{ProductID: product.ID, Quantity: 3},
	}, testDelivery(), string(models.PaymentCashOnDelivery), "")
	require.ErrorIs(t, err, ErrInsufficientStock)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 4, reloaded.Stock, "stock must be untouched by the rejected order")

	// A cumulative quantity that fits becomes one merged line item
	order, err := svc.CreateOrder(user.ID, []CheckoutItem{
		{ProductID: product.ID, Quantity: 2},
		{ProductID: product.ID, Quantity: 2},
	}, testDelivery(), string(models.PaymentCashOnDelivery), "")
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 4, order.Items[0].Quantity)
	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(20000)))

	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 0, reloaded.Stock)
	assert.Equal(t, 4, reloaded.SalesCount)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	svc := newTestOrderService(db)

	_, err := svc.CreateOrder(user.ID, []CheckoutItem{
		{ProductID: 9999, Quantity: 1},
	}, testDelivery(), string(models.PaymentCashOnDelivery), "")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateOrderUnavailableProduct(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, "Produit A", 5000, 10)
	require.NoError(t, db.Model(product).Update("is_available", false).Error)
	svc := newTestOrderService(db)

	_, err := svc.CreateOrder(user.ID, []CheckoutItem{
		{ProductID: product.ID, Quantity: 1},
	}, testDelivery(), string(models.PaymentCashOnDelivery), "")
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

// A failing line item must abort the whole checkout with no partial mutation.
func TestCreateOrderAtomicity(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	category := seedCategory(t, db)
	good := seedProduct(t, db, category.ID, "Produit A", 5000, 10)
	scarce := seedProduct(t, db, category.ID, "Produit B", 3000, 1)
	svc := newTestOrderService(db)

	_, err := svc.CreateOrder(user.ID, []CheckoutItem{
		{ProductID: good.ID, Quantity: 2},
		{ProductID: scarce.ID, Quantity: 5},
	}, testDelivery(), string(models.PaymentCashOnDelivery), "")
	require.ErrorIs(t, err, ErrInsufficientStock)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, good.ID).Error)
	assert.Equal(t, 10, reloaded.Stock, "stock of the valid item must be untouched")
	assert.Equal(t, 0, reloaded.SalesCount)

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)
}

func TestCreateOrderValidatesDeliveryAndPayment(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, "Produit A", 5000, 10)
	svc := newTestOrderService(db)
	items := []CheckoutItem{{ProductID: product.ID, Quantity: 1}}

	_, err := svc.CreateOrder(user.ID, items, DeliveryInfo{}, string(models.PaymentCashOnDelivery), "")
	assert.ErrorIs(t, err, ErrMissingDeliveryInfo)

	_, err = svc.CreateOrder(user.ID, items, testDelivery(), "carrier_pigeon", "")
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestCancelOrderRestoresStock(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, "Produit A", 5000, 10)
	svc := newTestOrderService(db)

	order, err := svc.CreateOrder(user.ID, []CheckoutItem{
		{ProductID: product.ID, Quantity: 4},
	}, testDelivery(), string(models.PaymentCashOnDelivery), "")
	require.NoError(t, err)

	cancelled, err := svc.CancelOrder(user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.OrderCancelled), cancelled.Status)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 10, reloaded.Stock, "stock must return to the pre-order level")
	assert.Equal(t, 0, reloaded.SalesCount)
}

func TestCancelOrderRejectedAfterShipping(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, "Produit A", 5000, 10)
	svc := newTestOrderService(db)

	order, err := svc.CreateOrder(user.ID, []CheckoutItem{
		{ProductID: product.ID, Quantity: 2},
	}, testDelivery(), string(models.PaymentCashOnDelivery), "")
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Order{}).
		Where("id = ?", order.ID).
		Update("status", string(models.OrderShipped)).Error)

	_, err = svc.CancelOrder(user.ID, order.ID)
	require.ErrorIs(t, err, ErrNotCancellable)

	// State unchanged: stock stays decremented, status stays shipped
	var reloadedOrder models.Order
	require.NoError(t, db.First(&reloadedOrder, order.ID).Error)
	assert.Equal(t, string(models.OrderShipped), reloadedOrder.Status)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 8, reloaded.Stock)
}

func TestCancelOrderSkipsDeletedProducts(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	category := seedCategory(t, db)
	kept := seedProduct(t, db, category.ID, "Produit A", 5000, 10)
	doomed := seedProduct(t, db, category.ID, "Produit B", 3000, 10)
	svc := newTestOrderService(db)

	order, err := svc.CreateOrder(user.ID, []CheckoutItem{
		{ProductID: kept.ID, Quantity: 1},
		{ProductID: doomed.ID, Quantity: 2},
	}, testDelivery(), string(models.PaymentCashOnDelivery), "")
	require.NoError(t, err)

	require.NoError(t, repository.NewProductRepository(db).Delete(doomed.ID))

	cancelled, err := svc.CancelOrder(user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.OrderCancelled), cancelled.Status)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, kept.ID).Error)
	assert.Equal(t, 10, reloaded.Stock, "resolvable product restored")
}

func TestOrderSnapshotSurvivesProductDeletion(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, "Produit A", 5000, 10)
	svc := newTestOrderService(db)

	order, err := svc.CreateOrder(user.ID, []CheckoutItem{
		{ProductID: product.ID, Quantity: 1},
	}, testDelivery(), string(models.PaymentCashOnDelivery), "")
	require.NoError(t, err)

	require.NoError(t, repository.NewProductRepository(db).Delete(product.ID))

	reloaded, err := svc.GetOrder(user.ID, order.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, "Produit A", reloaded.Items[0].ProductName)
	assert.True(t, reloaded.Items[0].Price.Equal(decimal.NewFromInt(5000)))
}

func TestGetOrderScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, "Produit A", 5000, 10)
	svc := newTestOrderService(db)

	order, err := svc.CreateOrder(user.ID, []CheckoutItem{
		{ProductID: product.ID, Quantity: 1},
	}, testDelivery(), string(models.PaymentCashOnDelivery), "")
	require.NoError(t, err)

	// Another user's lookup sees nothing
	_, err = svc.GetOrder(user.ID+1, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = svc.CancelOrder(user.ID+1, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateStatusTransitions(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, "Produit A", 5000, 10)
	svc := newTestOrderService(db)

	order, err := svc.CreateOrder(user.ID, []CheckoutItem{
		{ProductID: product.ID, Quantity: 1},
	}, testDelivery(), string(models.PaymentCashOnDelivery), "")
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(order.ID, string(models.OrderConfirmed))
	require.NoError(t, err)
	assert.Equal(t, string(models.OrderConfirmed), updated.Status)

	// Forward jumps are allowed
	updated, err = svc.UpdateStatus(order.ID, string(models.OrderShipped))
	require.NoError(t, err)
	assert.Equal(t, string(models.OrderShipped), updated.Status)

	// Backwards is not
	_, err = svc.UpdateStatus(order.ID, string(models.OrderConfirmed))
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Cancellation must go through the cancel flow
	_, err = svc.UpdateStatus(order.ID, string(models.OrderCancelled))
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Unknown status names are rejected outright
	_, err = svc.UpdateStatus(order.ID, "teleported")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// Delivered is terminal
	_, err = svc.UpdateStatus(order.ID, string(models.OrderDelivered))
	require.NoError(t, err)
	_, err = svc.UpdateStatus(order.ID, string(models.OrderArrived))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestGetStatsCountsByBucket(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	category := seedCategory(t, db)
	product := seedProduct(t, db, category.ID, "Produit A", 5000, 100)
	svc := newTestOrderService(db)

	mkOrder := func(status models.OrderStatus) {
		order, err := svc.CreateOrder(user.ID, []CheckoutItem{
			{ProductID: product.ID, Quantity: 1},
		}, testDelivery(), string(models.PaymentCashOnDelivery), "")
		require.NoError(t, err)
		if status != models.OrderPending {
			require.NoError(t, db.Model(&models.Order{}).
				Where("id = ?", order.ID).
				Update("status", string(status)).Error)
		}
	}

	mkOrder(models.OrderPending)
	mkOrder(models.OrderPending)
	mkOrder(models.OrderShipped)
	mkOrder(models.OrderInTransit)
	mkOrder(models.OrderDelivered)

	stats, err := svc.GetStats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.TotalOrders)
	assert.Equal(t, int64(2), stats.Pending)
	assert.Equal(t, int64(2), stats.InTransit)
	assert.Equal(t, int64(1), stats.Delivered)
}
