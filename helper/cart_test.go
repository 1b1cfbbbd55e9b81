package helper

import (
	"testing"

	"hearthroot_shop/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCartItemUpsertsSingleLine(t *testing.T) {
	db := newTestDB(t)
	product := createProduct(t, db, "Walnut Serving Board", "HR-WSB-001", "39.00", 10)

	cart, err := GetOrCreateCart(db, nil, "session-a")
	require.NoError(t, err)

	_, err = AddCartItem(db, cart, product, 2)
	require.NoError(t, err)
	_, err = AddCartItem(db, cart, product, 3)
	require.NoError(t, err)

	cart, err = GetCartWithItems(db, cart.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestAddCartItemQuantityFloorsAtOne(t *testing.T) {
	db := newTestDB(t)
	product := createProduct(t, db, "Oak Coaster Set", "HR-OCS-001", "18.00", 10)

	cart, err := GetOrCreateCart(db, nil, "session-b")
	require.NoError(t, err)

	item, err := AddCartItem(db, cart, product, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
}

func TestUpdateCartItemQuantityZeroRemovesLine(t *testing.T) {
	db := newTestDB(t)
	product := createProduct(t, db, "Walnut Serving Board", "HR-WSB-001", "39.00", 10)

	cart, err := GetOrCreateCart(db, nil, "session-c")
	require.NoError(t, err)
	item, err := AddCartItem(db, cart, product, 2)
	require.NoError(t, err)

	_, deleted, err := UpdateCartItemQuantity(db, item, 0)
	require.NoError(t, err)
	assert.True(t, deleted)

	cart, err = GetCartWithItems(db, cart.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestUpdateCartItemQuantitySets(t *testing.T) {
	db := newTestDB(t)
	product := createProduct(t, db, "Walnut Serving Board", "HR-WSB-001", "39.00", 10)

	cart, err := GetOrCreateCart(db, nil, "session-d")
	require.NoError(t, err)
	item, err := AddCartItem(db, cart, product, 2)
	require.NoError(t, err)

	updated, deleted, err := UpdateCartItemQuantity(db, item, 7)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 7, updated.Quantity)
}

func TestBuildCartSummary(t *testing.T) {
	db := newTestDB(t)
	board := createProduct(t, db, "Walnut Serving Board", "HR-WSB-001", "39.00", 10)
	coasters := createProduct(t, db, "Oak Coaster Set", "HR-OCS-001", "18.00", 10)

	cart, err := GetOrCreateCart(db, nil, "session-e")
	require.NoError(t, err)
	_, err = AddCartItem(db, cart, board, 2)
	require.NoError(t, err)
	_, err = AddCartItem(db, cart, coasters, 1)
	require.NoError(t, err)

	cart, err = GetCartWithItems(db, cart.ID)
	require.NoError(t, err)

	summary := BuildCartSummary(cart)
	assert.True(t, summary.Subtotal.Equal(dec("96")), "got %s", summary.Subtotal)
	assert.Equal(t, 3, summary.TotalItems)
	assert.Equal(t, 2, summary.ItemCount)
}

func TestMergeGuestCartIntoCustomerCart(t *testing.T) {
	db := newTestDB(t)
	customer := createCustomer(t, db, "merge@example.com")
	product := createProduct(t, db, "Walnut Serving Board", "HR-WSB-001", "39.00", 10)

	// Customer already has 2 in their cart from a previous session.
	userCart, err := GetOrCreateCart(db, &customer.ID, "")
	require.NoError(t, err)
	_, err = AddCartItem(db, userCart, product, 2)
	require.NoError(t, err)

	// Guest browses and adds 3 of the same product.
	guestCart, err := GetOrCreateCart(db, nil, "guest-session")
	require.NoError(t, err)
	_, err = AddCartItem(db, guestCart, product, 3)
	require.NoError(t, err)

	// Login resolves the cart with both customer id and session token.
	merged, err := GetOrCreateCart(db, &customer.ID, "guest-session")
	require.NoError(t, err)
	require.Len(t, merged.Items, 1)
	assert.Equal(t, 5, merged.Items[0].Quantity)

	// Guest cart is gone, so the merge cannot run twice.
	var count int64
	require.NoError(t, db.Model(&model.Cart{}).Where("session_token = ?", "guest-session").Count(&count).Error)
	assert.Zero(t, count)

	again, err := GetOrCreateCart(db, &customer.ID, "guest-session")
	require.NoError(t, err)
	require.Len(t, again.Items, 1)
	assert.Equal(t, 5, again.Items[0].Quantity)
}

func TestMergeGuestCartMovesDistinctProducts(t *testing.T) {
	db := newTestDB(t)
	customer := createCustomer(t, db, "distinct@example.com")
	board := createProduct(t, db, "Walnut Serving Board", "HR-WSB-001", "39.00", 10)
	coasters := createProduct(t, db, "Oak Coaster Set", "HR-OCS-001", "18.00", 10)

	userCart, err := GetOrCreateCart(db, &customer.ID, "")
	require.NoError(t, err)
	_, err = AddCartItem(db, userCart, board, 1)
	require.NoError(t, err)

	guestCart, err := GetOrCreateCart(db, nil, "guest-session-2")
	require.NoError(t, err)
	_, err = AddCartItem(db, guestCart, coasters, 4)
	require.NoError(t, err)

	merged, err := GetOrCreateCart(db, &customer.ID, "guest-session-2")
	require.NoError(t, err)
	assert.Len(t, merged.Items, 2)
}

func TestFindCartItemScopedToCart(t *testing.T) {
	db := newTestDB(t)
	product := createProduct(t, db, "Walnut Serving Board", "HR-WSB-001", "39.00", 10)

	cartA, err := GetOrCreateCart(db, nil, "session-f")
	require.NoError(t, err)
	item, err := AddCartItem(db, cartA, product, 1)
	require.NoError(t, err)

	cartB, err := GetOrCreateCart(db, nil, "session-g")
	require.NoError(t, err)

	_, err = FindCartItem(db, cartB.ID, item.ID)
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	found, err := FindCartItem(db, cartA.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, found.ID)
}
