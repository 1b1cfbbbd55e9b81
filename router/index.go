package router

import (
	"hearthroot_shop/handler"
	"hearthroot_shop/middleware"
	"hearthroot_shop/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/register", validate.RegisterCustomer(), handler.RegisterCustomer)
	auth.Post("/login", middleware.CartSession(), validate.Login(), handler.Login)
	auth.Post("/admin/login", validate.Login(), handler.AdminLogin)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Get("/me", middleware.Protected(), handler.Me)
	auth.Post("/forgot-password", validate.ForgotPassword(), handler.ForgotPassword)
	auth.Post("/reset-password", validate.ResetPassword(), handler.ResetPassword)

	product := v1.Group("/products", logger.New())
	product.Get("/", handler.GetProducts)
	product.Get("/all", middleware.Protected(), middleware.AdminOnly(), handler.GetAllProducts)
	product.Get("/:slug", handler.GetProductBySlug)
	product.Post("/", middleware.Protected(), middleware.AdminOnly(), validate.CreateProduct(), handler.CreateProduct)
	product.Put("/:productId", middleware.Protected(), middleware.AdminOnly(), validate.EditProduct("productId"), handler.EditProduct)
	product.Delete("/", middleware.Protected(), middleware.AdminOnly(), validate.Delete(), handler.DeleteProduct)

	cart := v1.Group("/cart", logger.New(), middleware.OptionalAuth(), middleware.CartSession())
	cart.Get("/", handler.GetCart)
	cart.Post("/items", validate.AddCartItem(), handler.AddCartItem)
	cart.Put("/items/:itemId", validate.UpdateCartItem(), handler.UpdateCartItem)
	cart.Delete("/items/:itemId", handler.RemoveCartItem)
	cart.Delete("/", handler.ClearCart)
	cart.Get("/validate-stock", handler.ValidateCartStock)
	cart.Post("/preview-coupon", validate.ApplyCoupon(), handler.PreviewCoupon)

	checkout := v1.Group("/checkout", logger.New(), middleware.OptionalAuth(), middleware.CartSession())
	checkout.Post("/", validate.Checkout(), handler.Checkout)

	order := v1.Group("/orders", logger.New())
	order.Get("/mine", middleware.Protected(), handler.GetMyOrders)
	order.Get("/", middleware.Protected(), middleware.AdminOnly(), handler.GetOrders)
	order.Get("/:orderNumber", middleware.OptionalAuth(), handler.GetOrderByNumber)
	order.Patch("/:orderId/status", middleware.Protected(), middleware.AdminOnly(), validate.UpdateOrderStatus("orderId"), handler.UpdateOrderStatus)

	coupon := v1.Group("/coupons", logger.New(), middleware.Protected(), middleware.AdminOnly())
	coupon.Get("/", handler.GetCoupons)
	coupon.Post("/", validate.CreateCoupon(), handler.CreateCoupon)
	coupon.Put("/:couponId", validate.EditCoupon("couponId"), handler.EditCoupon)
	coupon.Delete("/", validate.Delete(), handler.DeleteCoupon)

	customer := v1.Group("/customers", logger.New(), middleware.Protected(), middleware.AdminOnly())
	customer.Get("/", handler.GetCustomers)
	customer.Get("/:customerId", validate.GetById("customerId"), handler.GetCustomerById)

	app.Get("/ws/admin/orders", websocket.New(handler.OrderFeedConnection))
}
