package helper

import (
	"hearthroot_shop/model"

	"gorm.io/gorm"
)

// ValidateStock re-reads every product and reports lines whose quantity
// exceeds what is on hand. An empty list means checkout may proceed. The
// check is advisory, nothing is locked: the conditional decrement inside the
// checkout transaction is the authoritative guard.
func ValidateStock(db *gorm.DB, cart *model.Cart) ([]model.StockViolation, error) {
	violations := []model.StockViolation{}

	for _, item := range cart.Items {
		var product model.Product
		if err := db.First(&product, item.ProductId).Error; err != nil {
			return nil, err
		}
		if item.Quantity > product.Stock {
			violations = append(violations, model.StockViolation{
				ProductId:   product.ID,
				ProductName: product.Name,
				Requested:   item.Quantity,
				Available:   product.Stock,
			})
		}
	}

	return violations, nil
}
