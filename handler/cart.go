package handler

import (
	"errors"
	"hearthroot_shop/constants"
	"hearthroot_shop/database"
	"hearthroot_shop/helper"
	"hearthroot_shop/middleware"
	"hearthroot_shop/model"
	"hearthroot_shop/utils"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// resolveCart finds the right cart for the request: the customer's cart when
// a token is present (merging any guest cart first), otherwise the cart
// hanging off the session cookie.
func resolveCart(c *fiber.Ctx) (*model.Cart, error) {
	customerId := helper.CustomerIdFromLocals(c)
	sessionToken := middleware.CartSessionToken(c)
	return helper.GetOrCreateCart(database.DB, customerId, sessionToken)
}

func GetCart(c *fiber.Ctx) error {
	cart, err := resolveCart(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, helper.BuildCartSummary(cart))
}

func AddCartItem(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("AddCartItem").(model.AddCartItemInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	var product model.Product
	if err := db.First(&product, input.ProductId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.PRODUCT_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if !product.IsActive {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.PRODUCT_NOT_ACTIVE, nil)
	}

	cart, err := resolveCart(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	item, err := helper.AddCartItem(db, cart, &product, input.Quantity)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, item)
}

func UpdateCartItem(c *fiber.Ctx) error {
	db := database.DB

	itemId, err := strconv.Atoi(c.Params("itemId"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	input, ok := c.Locals("UpdateCartItem").(model.UpdateCartItemInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	cart, err := resolveCart(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	item, err := helper.FindCartItem(db, cart.ID, uint(itemId))
	if err != nil {
		if errors.Is(err, helper.ErrCartItemNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.CART_ITEM_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	updated, deleted, err := helper.UpdateCartItemQuantity(db, item, input.Quantity)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}
	if deleted {
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
			"deleted": true,
			"itemId":  item.ID,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, updated)
}

func RemoveCartItem(c *fiber.Ctx) error {
	db := database.DB

	itemId, err := strconv.Atoi(c.Params("itemId"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	cart, err := resolveCart(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	item, err := helper.FindCartItem(db, cart.ID, uint(itemId))
	if err != nil {
		if errors.Is(err, helper.ErrCartItemNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.CART_ITEM_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := helper.RemoveCartItem(db, item); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

func ClearCart(c *fiber.Ctx) error {
	cart, err := resolveCart(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := helper.ClearCart(database.DB, cart.ID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"cleared": true})
}

// ValidateCartStock is the advisory pre-checkout stock check. The storefront
// shows violations; checkout itself still enforces stock atomically.
func ValidateCartStock(c *fiber.Ctx) error {
	cart, err := resolveCart(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	violations, err := helper.ValidateStock(database.DB, cart)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if len(violations) > 0 {
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
			"valid":      false,
			"message":    constants.STOCK_VALIDATION_FAILED,
			"violations": violations,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"valid":      true,
		"violations": violations,
	})
}

// PreviewCoupon answers "what would this code do to my cart" without
// consuming anything.
func PreviewCoupon(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("ApplyCoupon").(model.ApplyCouponInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	cart, err := resolveCart(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	summary := helper.BuildCartSummary(cart)

	coupon, err := helper.GetCouponByCode(db, input.Code)
	if err != nil {
		if errors.Is(err, helper.ErrCouponNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.COUPON_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	customerId := helper.CustomerIdFromLocals(c)
	used, err := helper.CustomerUsageCount(db, coupon.ID, customerId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	preview := model.CouponPreview{
		Code:  coupon.Code,
		Total: summary.Subtotal,
	}
	if reason := helper.ValidationError(coupon, used, summary.Subtotal, time.Now()); reason != "" {
		preview.Reason = reason
		return utils.SuccessResponse(c, fiber.StatusOK, preview)
	}

	preview.Valid = true
	preview.Discount = helper.CalculateDiscount(coupon, summary.Subtotal)
	preview.Total = summary.Subtotal.Sub(preview.Discount)
	return utils.SuccessResponse(c, fiber.StatusOK, preview)
}
