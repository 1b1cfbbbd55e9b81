package validate

import (
	"fmt"
	"hearthroot_shop/model"

	"github.com/gofiber/fiber/v2"
)

// Checkout validates the checkout payload before the transaction service
// ever sees it. When billing is not flagged as matching shipping, a complete
// billing block must be present.
func Checkout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CheckoutInput

		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		if err := validate.Struct(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if !isValidEmail(input.CustomerEmail) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "A valid email is required",
				"field": "customer_email",
			})
		}
		if !isValidPhone(input.CustomerPhone) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "A valid phone number is required",
				"field": "customer_phone",
			})
		}

		if !input.BillingSameAsShipping {
			missing := input.BillingStreet == nil || *input.BillingStreet == "" ||
				input.BillingCity == nil || *input.BillingCity == "" ||
				input.BillingPostalCode == nil || *input.BillingPostalCode == "" ||
				input.BillingCountry == nil || *input.BillingCountry == ""
			if missing {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Billing address is required unless billing_same_as_shipping is set",
					"field": "billing_street",
				})
			}
		}

		c.Locals("Checkout", input)
		return c.Next()
	}
}
