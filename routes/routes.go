package routes

import (
	"net/http"
	"time"

	"checkout-service/controllers"
	"checkout-service/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.Engine, cc *controllers.CheckoutController, pc *controllers.PaymentController, jwtSecret string) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := middleware.AuthMiddleware(jwtSecret)
	checkoutLimiter := middleware.RateLimitMiddleware(rate.Every(time.Minute/30), 10)

	checkout := r.Group("/checkout")
	checkout.Use(auth)
	checkout.GET("/summary", cc.GetSummary)
	checkout.POST("", checkoutLimiter, cc.PlaceOrder)
	checkout.POST("/session", checkoutLimiter, cc.CreateSession)

	payment := r.Group("/payment")
	payment.Use(auth)
	payment.GET("/return", pc.Return)
	payment.GET("/cancel", pc.Cancel)

	orders := r.Group("/orders")
	orders.Use(auth)
	orders.POST("/:id/cancel", pc.CancelOrder)
}
