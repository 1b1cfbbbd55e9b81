package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

const (
	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

type Order struct {
	DTO
	OrderNumber string    `gorm:"uniqueIndex;size:20;not null" json:"orderNumber"`
	CustomerId  *uint     `json:"customerId,omitempty"`
	Customer    *Customer `json:"customer,omitempty"`
	Status      string    `gorm:"not null;default:'pending'" json:"status"`

	// Customer snapshot, frozen at checkout.
	CustomerName  string `gorm:"not null" json:"customerName"`
	CustomerEmail string `gorm:"not null" json:"customerEmail"`
	CustomerPhone string `gorm:"not null" json:"customerPhone"`

	ShippingStreet     string `gorm:"not null" json:"shippingStreet"`
	ShippingCity       string `gorm:"not null" json:"shippingCity"`
	ShippingState      string `json:"shippingState"`
	ShippingPostalCode string `gorm:"not null" json:"shippingPostalCode"`
	ShippingCountry    string `gorm:"not null" json:"shippingCountry"`

	// Billing columns stay NULL when billing matched shipping at checkout.
	BillingStreet     *string `json:"billingStreet,omitempty"`
	BillingCity       *string `json:"billingCity,omitempty"`
	BillingState      *string `json:"billingState,omitempty"`
	BillingPostalCode *string `json:"billingPostalCode,omitempty"`
	BillingCountry    *string `json:"billingCountry,omitempty"`

	Subtotal decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Tax      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"tax"`
	Discount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	Total    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`

	CouponCode string `json:"couponCode,omitempty"`
	Notes      string `gorm:"type:text" json:"notes,omitempty"`

	// Payment fields exist but no gateway is wired to them.
	PaymentMethod  string `json:"paymentMethod,omitempty"`
	PaymentStatus  string `gorm:"default:'unpaid'" json:"paymentStatus"`
	TrackingNumber string `json:"trackingNumber,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderId" json:"items"`
}

type Orders []Order

// OrderItem is an immutable snapshot of the product at order time.
type OrderItem struct {
	DTO
	OrderId     uint            `gorm:"not null;index" json:"orderId"`
	ProductId   uint            `gorm:"not null" json:"productId"`
	ProductName string          `gorm:"not null" json:"productName"`
	Sku         string          `gorm:"not null" json:"sku"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
}

type CheckoutInput struct {
	CustomerName  string `validate:"required" json:"customer_name"`
	CustomerEmail string `validate:"required,email" json:"customer_email"`
	CustomerPhone string `validate:"required" json:"customer_phone"`

	ShippingStreet     string `validate:"required" json:"shipping_street"`
	ShippingCity       string `validate:"required" json:"shipping_city"`
	ShippingState      string `json:"shipping_state"`
	ShippingPostalCode string `validate:"required" json:"shipping_postal_code"`
	ShippingCountry    string `validate:"required" json:"shipping_country"`

	BillingSameAsShipping bool    `json:"billing_same_as_shipping"`
	BillingStreet         *string `json:"billing_street"`
	BillingCity           *string `json:"billing_city"`
	BillingState          *string `json:"billing_state"`
	BillingPostalCode     *string `json:"billing_postal_code"`
	BillingCountry        *string `json:"billing_country"`

	CouponCode string `json:"coupon_code"`
	Notes      string `json:"notes"`
}

type UpdateOrderStatusInput struct {
	Status         string  `validate:"required" json:"status"`
	TrackingNumber *string `json:"trackingNumber"`
	PaymentStatus  *string `validate:"omitempty,oneof=unpaid paid refunded" json:"paymentStatus"`
}

type FilterOrder struct {
	Pagination
	Status    *string `json:"status"`
	SearchKey string  `json:"searchKey"`
}

// OrderEvent is what gets published on the back-office feed after checkout.
type OrderEvent struct {
	OrderNumber string          `json:"orderNumber"`
	Total       decimal.Decimal `json:"total"`
	ItemCount   int             `json:"itemCount"`
	CreatedAt   time.Time       `json:"createdAt"`
}
