package constants

// Roles
const (
	ROLE_ADMIN     = "ADMIN"
	ROLE_MODERATOR = "MODERATOR"
)

// Generic messages
const (
	ERROR_INTERNAL_ERROR       = "Internal server error"
	ERROR_INPUT                = "Invalid input"
	ERROR_CREATE               = "Failed to create record"
	ERROR_EDIT                 = "Failed to update record"
	ERROR_DELETE               = "Failed to delete record"
	ERROR_PARSE_DATA_TO_LOCALS = "Failed to read validated input"
	NOT_FOUND_RECORDS          = "No records found"
	DATA_INPUT_IS_NOT_NUMBER   = "Parameter must be a number"
)

// Auth messages
const (
	MISSING_LOGIN_INPUT   = "Email and password are required"
	INVALID_EMAIL         = "Email does not exist"
	INVALID_PASSWORD      = "Password is incorrect"
	ACCOUNT_NOT_ACTIVE    = "Account is deactivated"
	EMAIL_EXISTS          = "Email is already registered"
	PHONE_EXISTS          = "Phone number is already registered"
	CAN_NOT_HASH_PASSWORD = "Failed to hash password"
)

// Cart / checkout messages
const (
	PRODUCT_NOT_FOUND       = "Product does not exist"
	PRODUCT_NOT_ACTIVE      = "Product is not available"
	CART_ITEM_NOT_FOUND     = "Cart item not found"
	CART_IS_EMPTY           = "Cart is empty"
	INSUFFICIENT_STOCK      = "Insufficient stock"
	CHECKOUT_FAILED         = "Checkout failed"
	ORDER_NOT_FOUND         = "Order not found"
	INVALID_ORDER_STATUS    = "Invalid order status"
	COUPON_NOT_FOUND        = "Coupon does not exist"
	COUPON_CODE_EXISTS      = "Coupon code already exists"
	COUPON_NOT_APPLICABLE   = "Coupon cannot be applied to this order"
	STOCK_VALIDATION_FAILED = "Some items exceed available stock"
)

// Coupon reason codes, reported in the order the checks run.
const (
	COUPON_INACTIVE       = "coupon_inactive"
	COUPON_NOT_STARTED    = "coupon_not_started"
	COUPON_EXPIRED        = "coupon_expired"
	COUPON_EXHAUSTED      = "coupon_usage_limit_reached"
	COUPON_PER_USER_LIMIT = "coupon_per_user_limit_reached"
	COUPON_BELOW_MINIMUM  = "coupon_minimum_order_not_met"
)
