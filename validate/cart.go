package validate

import (
	"fmt"
	"hearthroot_shop/model"

	"github.com/gofiber/fiber/v2"
)

func AddCartItem() fiber.Handler {
	return body[model.AddCartItemInput]("AddCartItem")
}

// UpdateCartItem allows any quantity: zero and below mean "remove the line",
// so no minimum is enforced here.
func UpdateCartItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateCartItemInput

		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		c.Locals("UpdateCartItem", input)
		return c.Next()
	}
}

func ApplyCoupon() fiber.Handler {
	return body[model.ApplyCouponInput]("ApplyCoupon")
}
