package helper

import (
	"fmt"
	"strings"
	"testing"

	"hearthroot_shop/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a named in-memory database so every pooled connection in
// one test sees the same data while tests stay isolated from each other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Customer{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Coupon{},
		&model.CouponUsage{},
	))

	return db
}

func createProduct(t *testing.T, db *gorm.DB, name, sku string, price string, stock int) *model.Product {
	t.Helper()

	product := model.Product{
		Name:     name,
		Slug:     sku,
		Sku:      sku,
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
		IsActive: true,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func createCustomer(t *testing.T, db *gorm.DB, email string) *model.Customer {
	t.Helper()

	customer := model.Customer{
		Email:    email,
		Phone:    "5550001111",
		Password: "irrelevant",
		IsActive: true,
	}
	require.NoError(t, db.Create(&customer).Error)
	return &customer
}
