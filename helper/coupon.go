package helper

import (
	"errors"
	"fmt"
	"hearthroot_shop/constants"
	"hearthroot_shop/model"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrCouponNotFound  = errors.New("coupon not found")
	ErrCouponExhausted = errors.New("coupon usage limit reached")
)

// CouponError carries the first-failing reason code from ValidationError.
type CouponError struct {
	Reason string
}

func (e *CouponError) Error() string {
	return fmt.Sprintf("coupon rejected: %s", e.Reason)
}

var oneHundred = decimal.NewFromInt(100)

// IsCouponValid reports whether the coupon can be redeemed at all right now:
// active, inside its date window, and not globally exhausted.
func IsCouponValid(coupon *model.Coupon, now time.Time) bool {
	if !coupon.IsActive {
		return false
	}
	if coupon.StartsAt != nil && now.Before(*coupon.StartsAt) {
		return false
	}
	if coupon.ExpiresAt != nil && now.After(*coupon.ExpiresAt) {
		return false
	}
	if coupon.UsageLimit > 0 && coupon.UsageCount >= coupon.UsageLimit {
		return false
	}
	return true
}

// CanBeUsedBy adds the per-user cap on top of IsCouponValid. customerUsage is
// the customer's recorded redemption count for this coupon, zero for guests.
func CanBeUsedBy(coupon *model.Coupon, customerUsage int, now time.Time) bool {
	if !IsCouponValid(coupon, now) {
		return false
	}
	if coupon.PerUserLimit > 0 && customerUsage >= coupon.PerUserLimit {
		return false
	}
	return true
}

func MeetsMinimumOrder(coupon *model.Coupon, orderTotal decimal.Decimal) bool {
	if coupon.MinOrderAmount.IsZero() {
		return true
	}
	return orderTotal.GreaterThanOrEqual(coupon.MinOrderAmount)
}

// CalculateDiscount computes the money a coupon takes off orderTotal. It does
// not re-check validity; callers gate on ValidationError first.
func CalculateDiscount(coupon *model.Coupon, orderTotal decimal.Decimal) decimal.Decimal {
	if !MeetsMinimumOrder(coupon, orderTotal) {
		return decimal.Zero
	}

	switch coupon.Type {
	case model.CouponTypePercentage:
		discount := orderTotal.Mul(coupon.Value).Div(oneHundred)
		if coupon.MaxDiscount.GreaterThan(decimal.Zero) && discount.GreaterThan(coupon.MaxDiscount) {
			discount = coupon.MaxDiscount
		}
		return discount.Round(2)
	case model.CouponTypeFixed:
		// A fixed discount never exceeds the order total.
		if coupon.Value.GreaterThan(orderTotal) {
			return orderTotal
		}
		return coupon.Value
	}
	return decimal.Zero
}

// ValidationError walks the eligibility checklist in a fixed order and
// returns the first failing reason code, or "" when the coupon is usable.
func ValidationError(coupon *model.Coupon, customerUsage int, orderTotal decimal.Decimal, now time.Time) string {
	if !coupon.IsActive {
		return constants.COUPON_INACTIVE
	}
	if coupon.StartsAt != nil && now.Before(*coupon.StartsAt) {
		return constants.COUPON_NOT_STARTED
	}
	if coupon.ExpiresAt != nil && now.After(*coupon.ExpiresAt) {
		return constants.COUPON_EXPIRED
	}
	if coupon.UsageLimit > 0 && coupon.UsageCount >= coupon.UsageLimit {
		return constants.COUPON_EXHAUSTED
	}
	if coupon.PerUserLimit > 0 && customerUsage >= coupon.PerUserLimit {
		return constants.COUPON_PER_USER_LIMIT
	}
	if !MeetsMinimumOrder(coupon, orderTotal) {
		return constants.COUPON_BELOW_MINIMUM
	}
	return ""
}

func GetCouponByCode(db *gorm.DB, code string) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := db.Where("code = ?", code).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	return &coupon, nil
}

// CustomerUsageCount reads how often a customer has redeemed a coupon.
// Guests have no usage history.
func CustomerUsageCount(db *gorm.DB, couponId uint, customerId *uint) (int, error) {
	if customerId == nil {
		return 0, nil
	}
	var usage model.CouponUsage
	err := db.Where("coupon_id = ? AND customer_id = ?", couponId, *customerId).First(&usage).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return usage.UsageCount, nil
}

// IncrementCouponUsage bumps the global counter and the per-customer join
// row. The global bump is conditional on the usage limit so two concurrent
// checkouts cannot push usage_count past it; zero rows affected means the
// coupon was exhausted underneath us and the caller must roll back.
func IncrementCouponUsage(tx *gorm.DB, coupon *model.Coupon, customerId *uint) error {
	res := tx.Model(&model.Coupon{}).
		Where("id = ? AND (usage_limit = 0 OR usage_count < usage_limit)", coupon.ID).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCouponExhausted
	}

	if customerId == nil {
		return nil
	}

	var usage model.CouponUsage
	err := tx.Where("coupon_id = ? AND customer_id = ?", coupon.ID, *customerId).First(&usage).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		usage = model.CouponUsage{
			CouponId:   coupon.ID,
			CustomerId: *customerId,
			UsageCount: 1,
		}
		return tx.Create(&usage).Error
	}

	return tx.Model(&usage).UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
}
