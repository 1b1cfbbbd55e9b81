package main

import (
	"hearthroot_shop/database"
	"hearthroot_shop/helper"
	"hearthroot_shop/router"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173",
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()

	helper.StartCouponScheduler()
	defer helper.StopCouponScheduler()
	helper.StartCartCleanupScheduler()
	defer helper.StopCartCleanupScheduler()

	router.SetupRoutes(app)
	log.Fatal(app.Listen(":8002"))
}
