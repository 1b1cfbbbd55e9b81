package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStockReportsViolations(t *testing.T) {
	db := newTestDB(t)
	board := createProduct(t, db, "Walnut Serving Board", "HR-WSB-001", "39.00", 2)
	coasters := createProduct(t, db, "Oak Coaster Set", "HR-OCS-001", "18.00", 10)

	cart, err := GetOrCreateCart(db, nil, "stock-1")
	require.NoError(t, err)
	_, err = AddCartItem(db, cart, board, 5)
	require.NoError(t, err)
	_, err = AddCartItem(db, cart, coasters, 3)
	require.NoError(t, err)

	cart, err = GetCartWithItems(db, cart.ID)
	require.NoError(t, err)

	violations, err := ValidateStock(db, cart)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, board.ID, violations[0].ProductId)
	assert.Equal(t, 5, violations[0].Requested)
	assert.Equal(t, 2, violations[0].Available)
}

func TestValidateStockCleanCart(t *testing.T) {
	db := newTestDB(t)
	board := createProduct(t, db, "Walnut Serving Board", "HR-WSB-001", "39.00", 10)

	cart, err := GetOrCreateCart(db, nil, "stock-2")
	require.NoError(t, err)
	_, err = AddCartItem(db, cart, board, 3)
	require.NoError(t, err)

	cart, err = GetCartWithItems(db, cart.ID)
	require.NoError(t, err)

	violations, err := ValidateStock(db, cart)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestValidateStockSeesFreshStock(t *testing.T) {
	db := newTestDB(t)
	board := createProduct(t, db, "Walnut Serving Board", "HR-WSB-001", "39.00", 10)

	cart, err := GetOrCreateCart(db, nil, "stock-3")
	require.NoError(t, err)
	_, err = AddCartItem(db, cart, board, 3)
	require.NoError(t, err)

	cart, err = GetCartWithItems(db, cart.ID)
	require.NoError(t, err)

	// Stock drained after the cart was loaded.
	require.NoError(t, db.Model(board).UpdateColumn("stock", 1).Error)

	violations, err := ValidateStock(db, cart)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, 1, violations[0].Available)
}
