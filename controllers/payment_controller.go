package controllers

import (
	"net/http"

	"checkout-service/common/logger"
	"checkout-service/middleware"
	"checkout-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentController struct {
	Reconciler *services.ReconcileService
	Checkout   *services.CheckoutService
}

func NewPaymentController(reconciler *services.ReconcileService, checkout *services.CheckoutService) *PaymentController {
	return &PaymentController{Reconciler: reconciler, Checkout: checkout}
}

// Return is hit once per landing on the gateway's success URL. The gateway
// appends either session_id or payment_intent to the query string.
func (pc *PaymentController) Return(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	result := pc.Reconciler.ReconcileReturn(
		c,
		middleware.GetToken(c),
		userID,
		c.Query("session_id"),
		c.Query("payment_intent"),
	)

	logger.Info(c, "payment return reconciled",
		zap.String("user_id", userID),
		zap.String("status", string(result.Status)),
	)
	c.JSON(result.Code, result)
}

// Cancel is the landing for the gateway's cancel URL. The pending intent is
// left in place; the staleness TTL cleans it up on the next attempt.
func (pc *PaymentController) Cancel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "cancelled",
		"message": "Payment was cancelled. Your cart has not been changed.",
	})
}

// CancelOrder forwards an order cancellation. The order service only allows
// it while the order is still Processing.
func (pc *PaymentController) CancelOrder(c *gin.Context) {
	orderID := c.Param("id")
	if orderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing order id"})
		return
	}

	if err := pc.Checkout.CancelOrder(c, middleware.GetToken(c), orderID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
