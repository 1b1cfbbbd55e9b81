package model

import "github.com/shopspring/decimal"

type Product struct {
	DTO
	Name         string           `gorm:"not null" json:"name"`
	Slug         string           `gorm:"uniqueIndex;not null" json:"slug"`
	Sku          string           `gorm:"uniqueIndex;not null" json:"sku"`
	Description  string           `gorm:"type:text" json:"description"`
	Price        decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"price"`
	ComparePrice *decimal.Decimal `gorm:"type:decimal(12,2)" json:"comparePrice"`
	Stock        int              `gorm:"not null;default:0" json:"stock"`
	Purchases    int              `gorm:"not null;default:0" json:"purchases"`
	IsActive     bool             `gorm:"not null;default:true" json:"isActive"`
}

type Products []Product

type CreateProductInput struct {
	Name         string           `validate:"required" json:"name"`
	Sku          string           `validate:"required" json:"sku"`
	Description  string           `json:"description"`
	Price        decimal.Decimal  `validate:"required" json:"price"`
	ComparePrice *decimal.Decimal `json:"comparePrice"`
	Stock        int              `validate:"gte=0" json:"stock"`
	IsActive     *bool            `json:"isActive"`
}

type EditProductInput struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	ComparePrice *decimal.Decimal `json:"comparePrice"`
	Stock        *int             `json:"stock"`
	IsActive     *bool            `json:"isActive"`
}

type FilterProduct struct {
	Pagination
	SearchKey string `json:"searchKey"`
	Active    *bool  `json:"active"`
}
