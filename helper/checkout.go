package helper

import (
	"errors"
	"fmt"
	"hearthroot_shop/model"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")
)

const orderNumberAttempts = 5

// Indirection so tests can force order-number collisions.
var newOrderNumber = GenerateOrderNumber

// ProcessCheckout turns a cart into an order. Order row, item snapshots,
// stock decrements, coupon usage and cart clearing all commit or roll back
// together. An order-number collision retries the whole transaction with a
// regenerated number.
func ProcessCheckout(db *gorm.DB, cartId uint, input model.CheckoutInput, customerId *uint) (*model.Order, error) {
	var order *model.Order
	var err error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order, err = runCheckout(db, cartId, input, customerId)
		if err != nil && isDuplicateOrderNumber(err) {
			continue
		}
		break
	}
	return order, err
}

func runCheckout(db *gorm.DB, cartId uint, input model.CheckoutInput, customerId *uint) (*model.Order, error) {
	var order model.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var cart model.Cart
		if err := tx.Preload("Items.Product").First(&cart, cartId).Error; err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		subtotal := decimal.Zero
		for _, item := range cart.Items {
			subtotal = subtotal.Add(item.Subtotal())
		}

		discount := decimal.Zero
		var coupon *model.Coupon
		if input.CouponCode != "" {
			var err error
			coupon, err = GetCouponByCode(tx, input.CouponCode)
			if err != nil {
				return err
			}
			used, err := CustomerUsageCount(tx, coupon.ID, customerId)
			if err != nil {
				return err
			}
			if reason := ValidationError(coupon, used, subtotal, tx.NowFunc()); reason != "" {
				return &CouponError{Reason: reason}
			}
			discount = CalculateDiscount(coupon, subtotal)
		}

		// No tax or shipping computation in this flow, total is a flat sum.
		order = model.Order{
			OrderNumber:        newOrderNumber(),
			CustomerId:         customerId,
			Status:             model.OrderStatusPending,
			CustomerName:       input.CustomerName,
			CustomerEmail:      input.CustomerEmail,
			CustomerPhone:      input.CustomerPhone,
			ShippingStreet:     input.ShippingStreet,
			ShippingCity:       input.ShippingCity,
			ShippingState:      input.ShippingState,
			ShippingPostalCode: input.ShippingPostalCode,
			ShippingCountry:    input.ShippingCountry,
			Subtotal:           subtotal,
			Tax:                decimal.Zero,
			Discount:           discount,
			Total:              subtotal.Sub(discount),
			Notes:              input.Notes,
			PaymentStatus:      model.PaymentStatusUnpaid,
		}
		if coupon != nil {
			order.CouponCode = coupon.Code
		}
		if !input.BillingSameAsShipping {
			order.BillingStreet = input.BillingStreet
			order.BillingCity = input.BillingCity
			order.BillingState = input.BillingState
			order.BillingPostalCode = input.BillingPostalCode
			order.BillingCountry = input.BillingCountry
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, item := range cart.Items {
			orderItem := model.OrderItem{
				OrderId:     order.ID,
				ProductId:   item.ProductId,
				ProductName: item.Product.Name,
				Sku:         item.Product.Sku,
				Price:       item.Product.Price,
				Quantity:    item.Quantity,
				Subtotal:    item.Subtotal(),
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
			order.Items = append(order.Items, orderItem)

			// Conditional decrement: the WHERE guard keeps stock from going
			// negative under concurrent checkouts, zero rows affected means
			// someone else got the units first.
			res := tx.Model(&model.Product{}).
				Where("id = ? AND stock >= ?", item.ProductId, item.Quantity).
				Updates(map[string]interface{}{
					"stock":     gorm.Expr("stock - ?", item.Quantity),
					"purchases": gorm.Expr("purchases + ?", item.Quantity),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, item.Product.Name)
			}
		}

		if coupon != nil {
			if err := IncrementCouponUsage(tx, coupon, customerId); err != nil {
				return err
			}
		}

		return tx.Where("cart_id = ?", cart.ID).Delete(&model.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func isDuplicateOrderNumber(err error) bool {
	msg := err.Error()
	if strings.Contains(msg, "duplicate key value violates unique constraint") && strings.Contains(msg, "order_number") {
		return true
	}
	return strings.Contains(msg, "UNIQUE constraint failed: orders.order_number")
}
