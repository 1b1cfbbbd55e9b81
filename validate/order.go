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

var orderStatuses = map[string]bool{
	model.OrderStatusPending:    true,
	model.OrderStatusProcessing: true,
	model.OrderStatusShipped:    true,
	model.OrderStatusDelivered:  true,
	model.OrderStatusCancelled:  true,
}

func UpdateOrderStatus(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		orderId, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		var input model.UpdateOrderStatusInput
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

		if !orderStatuses[input.Status] {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_ORDER_STATUS, errors.New("unknown status: "+input.Status))
		}

		c.Locals("inputId", orderId)
		c.Locals("UpdateOrderStatus", input)
		return c.Next()
	}
}
