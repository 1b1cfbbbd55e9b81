package helper

import (
	"testing"
	"time"

	"hearthroot_shop/constants"
	"hearthroot_shop/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateDiscountPercentage(t *testing.T) {
	coupon := &model.Coupon{
		Type:  model.CouponTypePercentage,
		Value: dec("10"),
	}

	got := CalculateDiscount(coupon, dec("100"))
	assert.True(t, got.Equal(dec("10")), "got %s", got)
}

func TestCalculateDiscountPercentageCappedByMaxDiscount(t *testing.T) {
	coupon := &model.Coupon{
		Type:        model.CouponTypePercentage,
		Value:       dec("10"),
		MaxDiscount: dec("5"),
	}

	got := CalculateDiscount(coupon, dec("100"))
	assert.True(t, got.Equal(dec("5")), "got %s", got)
}

func TestCalculateDiscountPercentageRoundsToCents(t *testing.T) {
	coupon := &model.Coupon{
		Type:  model.CouponTypePercentage,
		Value: dec("15"),
	}

	// 15% of 33.33 is 4.9995, rounds to 5.00
	got := CalculateDiscount(coupon, dec("33.33"))
	assert.True(t, got.Equal(dec("5")), "got %s", got)
}

func TestCalculateDiscountFixedNeverExceedsTotal(t *testing.T) {
	coupon := &model.Coupon{
		Type:  model.CouponTypeFixed,
		Value: dec("20"),
	}

	got := CalculateDiscount(coupon, dec("12.50"))
	assert.True(t, got.Equal(dec("12.50")), "got %s", got)
}

func TestCalculateDiscountBelowMinimumIsZero(t *testing.T) {
	coupon := &model.Coupon{
		Type:           model.CouponTypePercentage,
		Value:          dec("10"),
		MinOrderAmount: dec("50"),
	}

	got := CalculateDiscount(coupon, dec("49.99"))
	assert.True(t, got.IsZero(), "got %s", got)
}

func TestValidationErrorReasonOrder(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name          string
		coupon        model.Coupon
		customerUsage int
		orderTotal    decimal.Decimal
		want          string
	}{
		{
			name:   "inactive wins over everything",
			coupon: model.Coupon{IsActive: false, StartsAt: &future, UsageLimit: 1, UsageCount: 1},
			want:   constants.COUPON_INACTIVE,
		},
		{
			name:   "not started",
			coupon: model.Coupon{IsActive: true, StartsAt: &future},
			want:   constants.COUPON_NOT_STARTED,
		},
		{
			name:   "expired",
			coupon: model.Coupon{IsActive: true, ExpiresAt: &past},
			want:   constants.COUPON_EXPIRED,
		},
		{
			name:   "globally exhausted",
			coupon: model.Coupon{IsActive: true, UsageLimit: 5, UsageCount: 5},
			want:   constants.COUPON_EXHAUSTED,
		},
		{
			name:          "per-user cap before minimum order",
			coupon:        model.Coupon{IsActive: true, PerUserLimit: 1, MinOrderAmount: dec("1000")},
			customerUsage: 1,
			want:          constants.COUPON_PER_USER_LIMIT,
		},
		{
			name:       "minimum order last",
			coupon:     model.Coupon{IsActive: true, MinOrderAmount: dec("50")},
			orderTotal: dec("10"),
			want:       constants.COUPON_BELOW_MINIMUM,
		},
		{
			name:       "usable",
			coupon:     model.Coupon{IsActive: true},
			orderTotal: dec("10"),
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidationError(&tt.coupon, tt.customerUsage, tt.orderTotal, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestZeroLimitsMeanUnlimited(t *testing.T) {
	now := time.Now()
	coupon := &model.Coupon{IsActive: true, UsageLimit: 0, UsageCount: 9999, PerUserLimit: 0}

	assert.True(t, IsCouponValid(coupon, now))
	assert.True(t, CanBeUsedBy(coupon, 500, now))
}

func TestIncrementCouponUsage(t *testing.T) {
	db := newTestDB(t)
	customer := createCustomer(t, db, "buyer@example.com")

	coupon := model.Coupon{Code: "TEN", Type: model.CouponTypePercentage, Value: dec("10"), UsageLimit: 2, IsActive: true}
	require.NoError(t, db.Create(&coupon).Error)

	require.NoError(t, IncrementCouponUsage(db, &coupon, &customer.ID))
	require.NoError(t, IncrementCouponUsage(db, &coupon, &customer.ID))

	var reloaded model.Coupon
	require.NoError(t, db.First(&reloaded, coupon.ID).Error)
	assert.Equal(t, 2, reloaded.UsageCount)

	used, err := CustomerUsageCount(db, coupon.ID, &customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, used)

	// Third redemption hits the usage_limit guard.
	err = IncrementCouponUsage(db, &coupon, &customer.ID)
	assert.ErrorIs(t, err, ErrCouponExhausted)
}

func TestCustomerUsageCountGuest(t *testing.T) {
	db := newTestDB(t)

	used, err := CustomerUsageCount(db, 1, nil)
	require.NoError(t, err)
	assert.Zero(t, used)
}
