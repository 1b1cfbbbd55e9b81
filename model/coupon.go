package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CouponTypePercentage = "percentage"
	CouponTypeFixed      = "fixed"
)

// Coupon limits follow the zero-means-unlimited convention: UsageLimit,
// PerUserLimit and MaxDiscount at zero disable the corresponding cap, nil
// StartsAt/ExpiresAt leave the date window open on that side.
type Coupon struct {
	DTO
	Code           string          `gorm:"uniqueIndex;not null" json:"code"`
	Type           string          `gorm:"not null" json:"type"`
	Value          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"value"`
	MinOrderAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"minOrderAmount"`
	MaxDiscount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"maxDiscount"`
	UsageLimit     int             `gorm:"not null;default:0" json:"usageLimit"`
	UsageCount     int             `gorm:"not null;default:0" json:"usageCount"`
	PerUserLimit   int             `gorm:"not null;default:0" json:"perUserLimit"`
	StartsAt       *time.Time      `json:"startsAt"`
	ExpiresAt      *time.Time      `json:"expiresAt"`
	IsActive       bool            `gorm:"not null;default:true" json:"isActive"`
}

type Coupons []Coupon

// CouponUsage records how many times one customer redeemed one coupon.
type CouponUsage struct {
	DTO
	CouponId   uint `gorm:"not null;uniqueIndex:idx_coupon_customer" json:"couponId"`
	CustomerId uint `gorm:"not null;uniqueIndex:idx_coupon_customer" json:"customerId"`
	UsageCount int  `gorm:"not null;default:1" json:"usageCount"`
}

type CreateCouponInput struct {
	Code           string          `validate:"required" json:"code"`
	Type           string          `validate:"required,oneof=percentage fixed" json:"type"`
	Value          decimal.Decimal `validate:"required" json:"value"`
	MinOrderAmount decimal.Decimal `json:"minOrderAmount"`
	MaxDiscount    decimal.Decimal `json:"maxDiscount"`
	UsageLimit     int             `validate:"gte=0" json:"usageLimit"`
	PerUserLimit   int             `validate:"gte=0" json:"perUserLimit"`
	StartsAt       *time.Time      `json:"startsAt"`
	ExpiresAt      *time.Time      `json:"expiresAt"`
	IsActive       *bool           `json:"isActive"`
}

type EditCouponInput struct {
	Type           *string          `validate:"omitempty,oneof=percentage fixed" json:"type"`
	Value          *decimal.Decimal `json:"value"`
	MinOrderAmount *decimal.Decimal `json:"minOrderAmount"`
	MaxDiscount    *decimal.Decimal `json:"maxDiscount"`
	UsageLimit     *int             `json:"usageLimit"`
	PerUserLimit   *int             `json:"perUserLimit"`
	StartsAt       *time.Time       `json:"startsAt"`
	ExpiresAt      *time.Time       `json:"expiresAt"`
	IsActive       *bool            `json:"isActive"`
}

type ApplyCouponInput struct {
	Code string `validate:"required" json:"code"`
}

// CouponPreview is the storefront answer to "what would this code save me".
type CouponPreview struct {
	Code     string          `json:"code"`
	Valid    bool            `json:"valid"`
	Reason   string          `json:"reason,omitempty"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}
