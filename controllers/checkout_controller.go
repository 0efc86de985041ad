package controllers

import (
	"net/http"

	apperrors "checkout-service/common/errors"
	"checkout-service/common/logger"
	"checkout-service/middleware"
	"checkout-service/models"
	"checkout-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CheckoutController struct {
	Service *services.CheckoutService
}

func NewCheckoutController(service *services.CheckoutService) *CheckoutController {
	return &CheckoutController{Service: service}
}

type checkoutRequest struct {
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

// GetSummary returns the cart the way checkout will use it: invalid items
// dropped, total recomputed.
func (cc *CheckoutController) GetSummary(c *gin.Context) {
	cart, err := cc.Service.Summary(c, middleware.GetToken(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": cart})
}

// PlaceOrder handles cash-on-delivery checkout. Gateway payments go through
// CreateSession instead.
func (cc *CheckoutController) PlaceOrder(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request payload"})
		return
	}

	if req.PaymentMethod != models.PaymentMethodCOD {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Please select cash on delivery or start a payment session for card payments.",
		})
		return
	}

	result, err := cc.Service.PlaceCODOrder(c, middleware.GetToken(c), userID, req.ShippingAddress)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info(c, "COD order placed",
		zap.String("user_id", userID),
		zap.String("order_id", result.Order.ID),
	)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// CreateSession starts a gateway payment: it creates the hosted-checkout
// session, persists the pending intent, and returns the URL the storefront
// must navigate to.
func (cc *CheckoutController) CreateSession(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request payload"})
		return
	}

	result, err := cc.Service.StartGatewayCheckout(c, middleware.GetToken(c), userID, req.ShippingAddress)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info(c, "gateway session created",
		zap.String("user_id", userID),
		zap.String("session_id", result.SessionID),
	)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

func respondError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	if appErr.Code >= http.StatusInternalServerError {
		logger.Error(c, "checkout request failed", err)
	}
	c.JSON(appErr.Code, gin.H{"success": false, "message": appErr.Message})
}
