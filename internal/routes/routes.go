package routes

import (
	"github.com/gin-gonic/gin"

	"plantnet_back_end/internal/handlers"
	"plantnet_back_end/internal/handlers/order"
	"plantnet_back_end/internal/handlers/payement"
	"plantnet_back_end/internal/handlers/plant"
	"plantnet_back_end/internal/handlers/user"
	"plantnet_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	// Public
	r.GET("/", handlers.Health)
	r.POST("/jwt", handlers.GenerateToken)
	r.GET("/logout", handlers.Logout)
	r.POST("/users/:email", user.SaveUser)
	r.GET("/users/role/:email", user.GetRole)
	r.GET("/plants", plant.GetPlants)
	r.GET("/plants/search", plant.SearchPlants)
	r.GET("/plants/:id", plant.GetPlant)
	r.POST("/stripe-webhook", payement.StripeWebhook)

	// Authentifié (cookie JWT) + table des capacités par rôle
	auth := r.Group("/")
	auth.Use(middleware.AuthRequired(), middleware.Authorize())
	{
		// Users
		auth.GET("/users", user.GetAllUsers)
		auth.PATCH("/users/:email", user.RequestSeller)
		auth.PATCH("/users/role/:email", user.UpdateRole)

		// Plants
		auth.POST("/plants", plant.CreatePlant)
		auth.GET("/plants/seller", plant.GetSellerPlants)
		auth.DELETE("/plants/:id", plant.DeletePlant)
		auth.PATCH("/plants/quantity/:id", plant.UpdateQuantity)
		auth.POST("/images", plant.UploadImage)

		// Orders
		auth.POST("/order", order.CreateOrder)
		auth.GET("/orders/:id", order.GetOrder)
		auth.GET("/customer-orders/:email", order.GetCustomerOrders)
		auth.GET("/seller-orders/:email", order.GetSellerOrders)
		auth.PATCH("/orders/:id", order.UpdateStatus)
		auth.DELETE("/orders/:id", order.CancelOrder)

		// Payments
		auth.POST("/create-payment-intent", payement.CreatePaymentIntent)

		// Admin
		auth.GET("/admin-stat", order.GetAdminStats)
	}
}
