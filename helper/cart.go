package helper

import (
	"errors"
	"hearthroot_shop/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrCartItemNotFound = errors.New("cart item not found")

// GetOrCreateCart resolves the cart for the current request. With a customer
// it returns the customer's cart, first folding in any guest cart left under
// the session token; without one it returns the session-scoped cart. The
// guest cart is deleted inside the merge transaction, so a repeat call with
// the same session token cannot merge twice.
func GetOrCreateCart(db *gorm.DB, customerId *uint, sessionToken string) (*model.Cart, error) {
	if customerId == nil {
		var cart model.Cart
		if err := db.Where(model.Cart{SessionToken: &sessionToken}).FirstOrCreate(&cart).Error; err != nil {
			return nil, err
		}
		return GetCartWithItems(db, cart.ID)
	}

	var userCart model.Cart
	if err := db.Where(model.Cart{CustomerId: customerId}).FirstOrCreate(&userCart).Error; err != nil {
		return nil, err
	}

	if sessionToken != "" {
		var guestCart model.Cart
		err := db.Preload("Items").
			Where("session_token = ? AND customer_id IS NULL", sessionToken).
			First(&guestCart).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err == nil && len(guestCart.Items) > 0 {
			if err := db.Transaction(func(tx *gorm.DB) error {
				return mergeGuestCart(tx, &guestCart, &userCart)
			}); err != nil {
				return nil, err
			}
		}
	}

	return GetCartWithItems(db, userCart.ID)
}

// mergeGuestCart folds every guest line into the user cart, summing
// quantities on shared products, then removes the guest cart.
func mergeGuestCart(tx *gorm.DB, guestCart, userCart *model.Cart) error {
	for _, guestItem := range guestCart.Items {
		var userItem model.CartItem
		err := tx.Where("cart_id = ? AND product_id = ?", userCart.ID, guestItem.ProductId).
			First(&userItem).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			newItem := model.CartItem{
				CartId:    userCart.ID,
				ProductId: guestItem.ProductId,
				Quantity:  guestItem.Quantity,
			}
			if err := tx.Create(&newItem).Error; err != nil {
				return err
			}
			continue
		}

		userItem.Quantity += guestItem.Quantity
		if err := tx.Save(&userItem).Error; err != nil {
			return err
		}
	}

	if err := tx.Where("cart_id = ?", guestCart.ID).Delete(&model.CartItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Cart{}, guestCart.ID).Error
}

func GetCartWithItems(db *gorm.DB, cartId uint) (*model.Cart, error) {
	var cart model.Cart
	if err := db.Preload("Items.Product").First(&cart, cartId).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddCartItem upserts a line on (cart, product): an existing line gets its
// quantity incremented, never a second row for the same product.
func AddCartItem(db *gorm.DB, cart *model.Cart, product *model.Product, quantity int) (*model.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}

	var item model.CartItem
	err := db.Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).First(&item).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		item = model.CartItem{
			CartId:    cart.ID,
			ProductId: product.ID,
			Quantity:  quantity,
		}
		if err := db.Create(&item).Error; err != nil {
			return nil, err
		}
	} else {
		item.Quantity += quantity
		if err := db.Save(&item).Error; err != nil {
			return nil, err
		}
	}

	item.Product = *product
	return &item, nil
}

// UpdateCartItemQuantity sets the line quantity; zero or below deletes the
// line. The second return reports whether the line was removed.
func UpdateCartItemQuantity(db *gorm.DB, item *model.CartItem, quantity int) (*model.CartItem, bool, error) {
	if quantity <= 0 {
		if err := db.Delete(&model.CartItem{}, item.ID).Error; err != nil {
			return nil, false, err
		}
		return nil, true, nil
	}

	item.Quantity = quantity
	if err := db.Save(item).Error; err != nil {
		return nil, false, err
	}
	return item, false, nil
}

func RemoveCartItem(db *gorm.DB, item *model.CartItem) error {
	return db.Delete(&model.CartItem{}, item.ID).Error
}

func ClearCart(db *gorm.DB, cartId uint) error {
	return db.Where("cart_id = ?", cartId).Delete(&model.CartItem{}).Error
}

// FindCartItem looks a line up within one cart, protecting against ids from
// someone else's cart.
func FindCartItem(db *gorm.DB, cartId, itemId uint) (*model.CartItem, error) {
	var item model.CartItem
	if err := db.Where("cart_id = ? AND id = ?", cartId, itemId).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// BuildCartSummary derives totals from live product prices.
func BuildCartSummary(cart *model.Cart) model.CartSummary {
	summary := model.CartSummary{
		Items:    cart.Items,
		Subtotal: decimal.Zero,
	}
	for _, item := range cart.Items {
		summary.Subtotal = summary.Subtotal.Add(item.Subtotal())
		summary.TotalItems += item.Quantity
	}
	summary.ItemCount = len(cart.Items)
	return summary
}
