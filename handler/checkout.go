package handler

import (
	"errors"
	"fmt"
	"hearthroot_shop/constants"
	"hearthroot_shop/database"
	"hearthroot_shop/helper"
	"hearthroot_shop/model"
	"hearthroot_shop/utils"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Checkout runs the whole checkout transaction and, on success, fires the
// confirmation email and the back-office order event.
func Checkout(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("Checkout").(model.CheckoutInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	cart, err := resolveCart(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	customerId := helper.CustomerIdFromLocals(c)
	order, err := helper.ProcessCheckout(db, cart.ID, input, customerId)
	if err != nil {
		var couponErr *helper.CouponError
		switch {
		case errors.Is(err, helper.ErrEmptyCart):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.CART_IS_EMPTY, err)
		case errors.Is(err, helper.ErrInsufficientStock):
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.INSUFFICIENT_STOCK, err)
		case errors.Is(err, helper.ErrCouponNotFound):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.COUPON_NOT_FOUND, err)
		case errors.Is(err, helper.ErrCouponExhausted):
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.COUPON_NOT_APPLICABLE, err)
		case errors.As(err, &couponErr):
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.COUPON_NOT_APPLICABLE, err, couponErr.Reason)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CHECKOUT_FAILED, err)
	}

	sendOrderConfirmation(order)
	PublishOrderEvent(order)

	return utils.SuccessResponse(c, fiber.StatusCreated, order)
}

func sendOrderConfirmation(order *model.Order) {
	qrBytes, err := utils.GenerateQRCode(order.OrderNumber, 400)
	if err != nil {
		log.Printf("failed to build QR for order %s: %v", order.OrderNumber, err)
		qrBytes = nil
	}

	items := make([]utils.OrderConfirmationItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, utils.OrderConfirmationItem{
			Name:     item.ProductName,
			Quantity: item.Quantity,
			Subtotal: item.Subtotal.StringFixed(2),
		})
	}

	shippingTo := strings.Join([]string{
		order.ShippingStreet,
		order.ShippingCity,
		order.ShippingPostalCode,
		order.ShippingCountry,
	}, ", ")

	utils.SendOrderConfirmationEmail(order.CustomerEmail, utils.OrderConfirmationData{
		OrderNumber:  order.OrderNumber,
		CustomerName: order.CustomerName,
		Items:        items,
		Subtotal:     order.Subtotal.StringFixed(2),
		Discount:     order.Discount.StringFixed(2),
		Total:        order.Total.StringFixed(2),
		ShippingTo:   shippingTo,
		DetailLink:   fmt.Sprintf("%s/orders/%s", strings.TrimRight(utils.FrontendBaseURL(), "/"), order.OrderNumber),
	}, qrBytes)
}
