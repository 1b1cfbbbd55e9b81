package database

import (
	"hearthroot_shop/constants"
	"hearthroot_shop/model"
	"hearthroot_shop/utils"
	"log"
	"time"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("changeme123"), 10)
	hashPassword := string(bytes)
	if err != nil {
		log.Println("failed to hash seed password:", err)
		return
	}

	accounts := []model.Account{
		{Username: "administrator", Password: hashPassword, Active: true, Role: constants.ROLE_ADMIN},
	}
	for _, account := range accounts {
		if err := db.Where(model.Account{Username: account.Username}).FirstOrCreate(&account).Error; err != nil {
			log.Println("failed to seed account:", account.Username, "error:", err)
		}
	}

	products := []model.Product{
		{
			Name:        "Walnut Serving Board",
			Sku:         "HR-WSB-001",
			Description: "Hand-finished walnut board, food-safe oil.",
			Price:       decimal.NewFromFloat(42.00),
			Stock:       25,
			IsActive:    true,
		},
		{
			Name:         "Stoneware Mug Set",
			Sku:          "HR-SMS-002",
			Description:  "Set of four glazed stoneware mugs.",
			Price:        decimal.NewFromFloat(36.50),
			ComparePrice: utils.Ptr(decimal.NewFromFloat(44.00)),
			Stock:        40,
			IsActive:     true,
		},
		{
			Name:        "Linen Table Runner",
			Sku:         "HR-LTR-003",
			Description: "Washed linen, natural dye.",
			Price:       decimal.NewFromFloat(28.00),
			Stock:       15,
			IsActive:    true,
		},
	}
	for _, product := range products {
		product.Slug = slug.Make(product.Name)
		if err := db.Where(model.Product{Sku: product.Sku}).FirstOrCreate(&product).Error; err != nil {
			log.Println("failed to seed product:", product.Sku, "error:", err)
		}
	}

	expiry := time.Now().AddDate(0, 3, 0)
	coupons := []model.Coupon{
		{
			Code:           "WELCOME10",
			Type:           model.CouponTypePercentage,
			Value:          decimal.NewFromInt(10),
			MinOrderAmount: decimal.NewFromInt(20),
			MaxDiscount:    decimal.NewFromInt(15),
			ExpiresAt:      &expiry,
			IsActive:       true,
		},
		{
			Code:         "FIVER",
			Type:         model.CouponTypeFixed,
			Value:        decimal.NewFromInt(5),
			PerUserLimit: 1,
			IsActive:     true,
		},
	}
	for _, coupon := range coupons {
		if err := db.Where(model.Coupon{Code: coupon.Code}).FirstOrCreate(&coupon).Error; err != nil {
			log.Println("failed to seed coupon:", coupon.Code, "error:", err)
		}
	}
}
