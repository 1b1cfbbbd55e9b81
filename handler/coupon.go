package handler

import (
	"errors"
	"hearthroot_shop/constants"
	"hearthroot_shop/database"
	"hearthroot_shop/model"
	"hearthroot_shop/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func GetCoupons(c *fiber.Ctx) error {
	db := database.DB

	var pagination model.Pagination
	if err := c.QueryParser(&pagination); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	query := db.Model(&model.Coupon{})

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var coupons model.Coupons
	if err := utils.ApplyPagination(query, pagination.Limit, pagination.Page).
		Order("created_at desc").
		Find(&coupons).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       coupons,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: totalCount,
	})
}

func CreateCoupon(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("CreateCoupon").(model.CreateCouponInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	coupon := new(model.Coupon)
	copier.Copy(&coupon, &input)
	coupon.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	coupon.UsageCount = 0
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	} else {
		coupon.IsActive = true
	}

	if err := db.Create(&coupon).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.COUPON_CODE_EXISTS, nil, "code")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, coupon)
}

func EditCoupon(c *fiber.Ctx) error {
	db := database.DB

	couponId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}
	input, ok := c.Locals("EditCoupon").(model.EditCouponInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	var coupon model.Coupon
	if err := db.First(&coupon, couponId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.COUPON_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	copier.CopyWithOption(&coupon, &input, copier.Option{IgnoreEmpty: true})
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	}

	if err := db.Save(&coupon).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, coupon)
}

func DeleteCoupon(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("deleteIds").(model.ArrayId)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	if err := db.Delete(&model.Coupon{}, input.IDs).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": len(input.IDs)})
}
