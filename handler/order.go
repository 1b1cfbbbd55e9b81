package handler

import (
	"errors"
	"hearthroot_shop/constants"
	"hearthroot_shop/database"
	"hearthroot_shop/helper"
	"hearthroot_shop/model"
	"hearthroot_shop/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetMyOrders(c *fiber.Ctx) error {
	customerId := helper.CustomerIdFromLocals(c)
	if customerId == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Please log in", errors.New("no customer in token"))
	}

	var orders model.Orders
	if err := database.DB.
		Preload("Items").
		Where("customer_id = ?", *customerId).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

func GetOrderByNumber(c *fiber.Ctx) error {
	orderNumber := c.Params("orderNumber")

	var order model.Order
	if err := database.DB.
		Preload("Items").
		Where("order_number = ?", orderNumber).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// A customer can only read their own orders; guests identify by number.
	customerId := helper.CustomerIdFromLocals(c)
	if order.CustomerId != nil && (customerId == nil || *customerId != *order.CustomerId) {
		claim := helper.ClaimFromLocals(c)
		isStaff := claim != nil && (claim.Role == constants.ROLE_ADMIN || claim.Role == constants.ROLE_MODERATOR)
		if !isStaff {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, errors.New("order belongs to another customer"))
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func GetOrders(c *fiber.Ctx) error {
	db := database.DB

	var filter model.FilterOrder
	if err := c.QueryParser(&filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	query := db.Model(&model.Order{}).Preload("Items")
	if filter.Status != nil && *filter.Status != "" {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.SearchKey != "" {
		key := "%" + filter.SearchKey + "%"
		query = query.Where("order_number ILIKE ? OR customer_email ILIKE ? OR customer_name ILIKE ?", key, key, key)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var orders model.Orders
	if err := utils.ApplyPagination(query, filter.Limit, filter.Page).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       orders,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	})
}

// UpdateOrderStatus is the only mutation an order sees after checkout:
// status, tracking number, nothing else.
func UpdateOrderStatus(c *fiber.Ctx) error {
	db := database.DB

	orderId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}
	input, ok := c.Locals("UpdateOrderStatus").(model.UpdateOrderStatusInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	var order model.Order
	if err := db.First(&order, orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	updates := map[string]interface{}{"status": input.Status}
	if input.TrackingNumber != nil {
		updates["tracking_number"] = *input.TrackingNumber
	}
	if input.PaymentStatus != nil {
		updates["payment_status"] = *input.PaymentStatus
	}
	if err := db.Model(&order).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}
