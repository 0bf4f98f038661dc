package httpserver

import (
	"net/http"

	checkoutsvc "casecraft/internal/service/checkout"

	"github.com/gin-gonic/gin"
)

type checkoutRequest struct {
	ConfigurationID string `json:"configId" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
}

// checkoutHandler opens a hosted payment session for a finished
// configuration and returns the redirect URL.
func checkoutHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res, err := svc.Create(c.Request.Context(), checkoutsvc.CreateInput{
			ConfigurationID: req.ConfigurationID,
			Email:           req.Email,
		})
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, res)
	}
}

// getOrderHandler lets the thank-you page poll payment status.
func getOrderHandler(orders OrderGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := orders.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
