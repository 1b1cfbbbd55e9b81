package model

import "github.com/shopspring/decimal"

// Cart belongs either to a customer or to an anonymous session, never both.
// The unique indexes enforce one cart per customer and one per session token.
type Cart struct {
	DTO
	CustomerId   *uint      `gorm:"uniqueIndex" json:"customerId,omitempty"`
	SessionToken *string    `gorm:"uniqueIndex" json:"-"`
	Items        []CartItem `gorm:"foreignKey:CartId;constraint:OnDelete:CASCADE" json:"items"`
}

type CartItem struct {
	DTO
	CartId    uint    `gorm:"not null;uniqueIndex:idx_cart_product" json:"cartId"`
	ProductId uint    `gorm:"not null;uniqueIndex:idx_cart_product" json:"productId"`
	Quantity  int     `gorm:"not null;default:1" json:"quantity"`
	Product   Product `gorm:"foreignKey:ProductId" json:"product"`
}

// Subtotal reads the live product price, it is not frozen at add time.
func (ci CartItem) Subtotal() decimal.Decimal {
	return ci.Product.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

type CartSummary struct {
	Items      []CartItem      `json:"items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	TotalItems int             `json:"totalItems"`
	ItemCount  int             `json:"itemCount"`
}

type AddCartItemInput struct {
	ProductId uint `validate:"required" json:"productId"`
	Quantity  int  `validate:"omitempty,min=1" json:"quantity"`
}

type UpdateCartItemInput struct {
	Quantity int `json:"quantity"`
}

type StockViolation struct {
	ProductId   uint   `json:"productId"`
	ProductName string `json:"productName"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
}
