package validate

import (
	"errors"
	"fmt"
	"hearthroot_shop/constants"
	"hearthroot_shop/model"
	"hearthroot_shop/utils"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func CreateCoupon() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateCouponInput

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

		if input.StartsAt != nil && input.ExpiresAt != nil && input.ExpiresAt.Before(*input.StartsAt) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "expiresAt must be after startsAt",
				"field": "expiresAt",
			})
		}

		c.Locals("CreateCoupon", input)
		return c.Next()
	}
}

func EditCoupon(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		couponId, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		var input model.EditCouponInput
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

		c.Locals("inputId", couponId)
		c.Locals("EditCoupon", input)
		return c.Next()
	}
}
