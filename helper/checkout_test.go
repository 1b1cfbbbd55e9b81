package helper

import (
	"fmt"
	"regexp"
	"sync"
	"testing"

	"hearthroot_shop/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func checkoutInput() model.CheckoutInput {
	return model.CheckoutInput{
		CustomerName:          "Ada Lovelace",
		CustomerEmail:         "ada@example.com",
		CustomerPhone:         "5550001111",
		ShippingStreet:        "12 Analytical St",
		ShippingCity:          "London",
		ShippingPostalCode:    "N1 9GU",
		ShippingCountry:       "GB",
		BillingSameAsShipping: true,
	}
}

func TestProcessCheckoutHappyPath(t *testing.T) {
	db := newTestDB(t)
	board := createProduct(t, db, "Walnut Serving Board", "HR-WSB-001", "39.00", 5)
	coasters := createProduct(t, db, "Oak Coaster Set", "HR-OCS-001", "18.00", 5)

	cart, err := GetOrCreateCart(db, nil, "checkout-1")
	require.NoError(t, err)
	_, err = AddCartItem(db, cart, board, 2)
	require.NoError(t, err)
	_, err = AddCartItem(db, cart, coasters, 1)
	require.NoError(t, err)

	order, err := ProcessCheckout(db, cart.ID, checkoutInput(), nil)
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.True(t, order.Subtotal.Equal(dec("96")), "got %s", order.Subtotal)
	assert.True(t, order.Total.Equal(dec("96")), "got %s", order.Total)
	assert.Len(t, order.Items, 2)
	assert.Nil(t, order.BillingStreet)

	// Stock moved, purchases counted.
	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, board.ID).Error)
	assert.Equal(t, 3, reloaded.Stock)
	assert.Equal(t, 2, reloaded.Purchases)

	// Cart emptied inside the same transaction.
	var itemCount int64
	require.NoError(t, db.Model(&model.CartItem{}).Where("cart_id = ?", cart.ID).Count(&itemCount).Error)
	assert.Zero(t, itemCount)
}

func TestProcessCheckoutSnapshotsProductFields(t *testing.T) {
	db := newTestDB(t)
	board := createProduct(t, db, "Walnut Serving Board", "HR-WSB-001", "39.00", 5)

	cart, err := GetOrCreateCart(db, nil, "checkout-2")
	require.NoError(t, err)
	_, err = AddCartItem(db, cart, board, 1)
	require.NoError(t, err)

	order, err := ProcessCheckout(db, cart.ID, checkoutInput(), nil)
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	line := order.Items[0]
	assert.Equal(t, "Walnut Serving Board", line.ProductName)
	assert.Equal(t, "HR-WSB-001", line.Sku)
	assert.True(t, line.Price.Equal(dec("39")))
	assert.True(t, line.Subtotal.Equal(dec("39")))
}

func TestProcessCheckoutEmptyCart(t *testing.T) {
	db := newTestDB(t)

	cart, err := GetOrCreateCart(db, nil, "checkout-3")
	require.NoError(t, err)

	_, err = ProcessCheckout(db, cart.ID, checkoutInput(), nil)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestProcessCheckoutInsufficientStockRollsBack(t *testing.T) {
	db := newTestDB(t)
	board := createProduct(t, db, "Walnut Serving Board", "HR-WSB-001", "39.00", 5)
	scarce := createProduct(t, db, "Maple Knife Block", "HR-MKB-001", "89.00", 1)

	cart, err := GetOrCreateCart(db, nil, "checkout-4")
	require.NoError(t, err)
	_, err = AddCartItem(db, cart, board, 2)
	require.NoError(t, err)
	_, err = AddCartItem(db, cart, scarce, 3)
	require.NoError(t, err)

	_, err = ProcessCheckout(db, cart.ID, checkoutInput(), nil)
	require.ErrorIs(t, err, ErrInsufficientStock)

	// Everything rolled back: no order, stock untouched, cart intact.
	var orderCount int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)

	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, board.ID).Error)
	assert.Equal(t, 5, reloaded.Stock)

	var itemCount int64
	require.NoError(t, db.Model(&model.CartItem{}).Where("cart_id = ?", cart.ID).Count(&itemCount).Error)
	assert.Equal(t, int64(2), itemCount)
}

func TestProcessCheckoutAppliesCoupon(t *testing.T) {
	db := newTestDB(t)
	customer := createCustomer(t, db, "coupons@example.com")
	board := createProduct(t, db, "Walnut Serving Board", "HR-WSB-001", "39.00", 5)

	coupon := model.Coupon{
		Code:           "WELCOME10",
		Type:           model.CouponTypePercentage,
		Value:          dec("10"),
		MinOrderAmount: dec("20"),
		IsActive:       true,
	}
	require.NoError(t, db.Create(&coupon).Error)

	cart, err := GetOrCreateCart(db, &customer.ID, "")
	require.NoError(t, err)
	_, err = AddCartItem(db, cart, board, 2)
	require.NoError(t, err)

	input := checkoutInput()
	input.CouponCode = "WELCOME10"

	order, err := ProcessCheckout(db, cart.ID, input, &customer.ID)
	require.NoError(t, err)

	assert.True(t, order.Discount.Equal(dec("7.80")), "got %s", order.Discount)
	assert.True(t, order.Total.Equal(dec("70.20")), "got %s", order.Total)
	assert.Equal(t, "WELCOME10", order.CouponCode)

	// Usage recorded in the same transaction.
	var reloaded model.Coupon
	require.NoError(t, db.First(&reloaded, coupon.ID).Error)
	assert.Equal(t, 1, reloaded.UsageCount)

	used, err := CustomerUsageCount(db, coupon.ID, &customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, used)
}

func TestProcessCheckoutRejectsIneligibleCoupon(t *testing.T) {
	db := newTestDB(t)
	board := createProduct(t, db, "Walnut Serving Board", "HR-WSB-001", "39.00", 5)

	coupon := model.Coupon{
		Code:           "BIGSPEND",
		Type:           model.CouponTypeFixed,
		Value:          dec("5"),
		MinOrderAmount: dec("500"),
		IsActive:       true,
	}
	require.NoError(t, db.Create(&coupon).Error)

	cart, err := GetOrCreateCart(db, nil, "checkout-5")
	require.NoError(t, err)
	_, err = AddCartItem(db, cart, board, 1)
	require.NoError(t, err)

	input := checkoutInput()
	input.CouponCode = "BIGSPEND"

	_, err = ProcessCheckout(db, cart.ID, input, nil)
	var couponErr *CouponError
	require.ErrorAs(t, err, &couponErr)

	// Rejection leaves the cart alone.
	var itemCount int64
	require.NoError(t, db.Model(&model.CartItem{}).Where("cart_id = ?", cart.ID).Count(&itemCount).Error)
	assert.Equal(t, int64(1), itemCount)
}

func TestProcessCheckoutUnknownCoupon(t *testing.T) {
	db := newTestDB(t)
	board := createProduct(t, db, "Walnut Serving Board", "HR-WSB-001", "39.00", 5)

	cart, err := GetOrCreateCart(db, nil, "checkout-6")
	require.NoError(t, err)
	_, err = AddCartItem(db, cart, board, 1)
	require.NoError(t, err)

	input := checkoutInput()
	input.CouponCode = "NOPE"

	_, err = ProcessCheckout(db, cart.ID, input, nil)
	assert.ErrorIs(t, err, ErrCouponNotFound)
}

func seedOrderWithNumber(t *testing.T, db *gorm.DB, number string) {
	t.Helper()

	order := model.Order{
		OrderNumber:        number,
		Status:             model.OrderStatusPending,
		CustomerName:       "Existing Buyer",
		CustomerEmail:      "existing@example.com",
		CustomerPhone:      "5550002222",
		ShippingStreet:     "1 Occupied Ln",
		ShippingCity:       "Leeds",
		ShippingPostalCode: "LS1 1AA",
		ShippingCountry:    "GB",
		Subtotal:           dec("10"),
		Total:              dec("10"),
	}
	require.NoError(t, db.Create(&order).Error)
}

func TestProcessCheckoutRegeneratesOnOrderNumberCollision(t *testing.T) {
	db := newTestDB(t)
	board := createProduct(t, db, "Walnut Serving Board", "HR-WSB-001", "39.00", 5)

	const taken = "HR-000000-AAAA"
	seedOrderWithNumber(t, db, taken)

	// First attempt collides with the seeded order, the retry regenerates.
	calls := 0
	newOrderNumber = func() string {
		calls++
		if calls == 1 {
			return taken
		}
		return GenerateOrderNumber()
	}
	defer func() { newOrderNumber = GenerateOrderNumber }()

	cart, err := GetOrCreateCart(db, nil, "collide-1")
	require.NoError(t, err)
	_, err = AddCartItem(db, cart, board, 1)
	require.NoError(t, err)

	order, err := ProcessCheckout(db, cart.ID, checkoutInput(), nil)
	require.NoError(t, err)
	assert.NotEqual(t, taken, order.OrderNumber)
	assert.Regexp(t, `^HR-\d{6}-[0-9A-F]{4}$`, order.OrderNumber)
	assert.GreaterOrEqual(t, calls, 2)

	// The collided attempt rolled back, the retry decremented stock once.
	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, board.ID).Error)
	assert.Equal(t, 4, reloaded.Stock)
}

func TestProcessCheckoutGivesUpAfterRepeatedCollisions(t *testing.T) {
	db := newTestDB(t)
	board := createProduct(t, db, "Walnut Serving Board", "HR-WSB-001", "39.00", 5)

	const taken = "HR-000000-AAAA"
	seedOrderWithNumber(t, db, taken)

	calls := 0
	newOrderNumber = func() string {
		calls++
		return taken
	}
	defer func() { newOrderNumber = GenerateOrderNumber }()

	cart, err := GetOrCreateCart(db, nil, "collide-2")
	require.NoError(t, err)
	_, err = AddCartItem(db, cart, board, 1)
	require.NoError(t, err)

	_, err = ProcessCheckout(db, cart.ID, checkoutInput(), nil)
	require.Error(t, err)
	assert.True(t, isDuplicateOrderNumber(err), "expected duplicate order number error, got %v", err)
	assert.Equal(t, orderNumberAttempts, calls)

	// Nothing committed across the failed attempts.
	var orderCount int64
	require.NoError(t, db.Model(&model.Order{}).Where("order_number != ?", taken).Count(&orderCount).Error)
	assert.Zero(t, orderCount)

	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, board.ID).Error)
	assert.Equal(t, 5, reloaded.Stock)
}

func TestConcurrentCheckoutsGetUniqueOrderNumbers(t *testing.T) {
	db := newTestDB(t)

	// A single connection keeps sqlite happy under parallel transactions.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	const parallel = 8
	board := createProduct(t, db, "Walnut Serving Board", "HR-WSB-001", "39.00", parallel)

	cartIds := make([]uint, parallel)
	for i := 0; i < parallel; i++ {
		cart, err := GetOrCreateCart(db, nil, fmt.Sprintf("stress-%d", i))
		require.NoError(t, err)
		_, err = AddCartItem(db, cart, board, 1)
		require.NoError(t, err)
		cartIds[i] = cart.ID
	}

	numbers := make(chan string, parallel)
	var wg sync.WaitGroup
	for i := 0; i < parallel; i++ {
		wg.Add(1)
		go func(cartId uint) {
			defer wg.Done()
			order, err := ProcessCheckout(db, cartId, checkoutInput(), nil)
			if assert.NoError(t, err) {
				numbers <- order.OrderNumber
			}
		}(cartIds[i])
	}
	wg.Wait()
	close(numbers)

	pattern := regexp.MustCompile(`^HR-\d{6}-[0-9A-F]{4}$`)
	seen := make(map[string]bool)
	for number := range numbers {
		assert.Regexp(t, pattern, number)
		assert.False(t, seen[number], "order number %s issued twice", number)
		seen[number] = true
	}
	assert.Len(t, seen, parallel)

	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, board.ID).Error)
	assert.Zero(t, reloaded.Stock)
}

func TestProcessCheckoutStoresBillingWhenDifferent(t *testing.T) {
	db := newTestDB(t)
	board := createProduct(t, db, "Walnut Serving Board", "HR-WSB-001", "39.00", 5)

	cart, err := GetOrCreateCart(db, nil, "checkout-7")
	require.NoError(t, err)
	_, err = AddCartItem(db, cart, board, 1)
	require.NoError(t, err)

	street := "99 Invoice Rd"
	city := "Manchester"
	postal := "M1 1AA"
	country := "GB"

	input := checkoutInput()
	input.BillingSameAsShipping = false
	input.BillingStreet = &street
	input.BillingCity = &city
	input.BillingPostalCode = &postal
	input.BillingCountry = &country

	order, err := ProcessCheckout(db, cart.ID, input, nil)
	require.NoError(t, err)

	require.NotNil(t, order.BillingStreet)
	assert.Equal(t, "99 Invoice Rd", *order.BillingStreet)
}
