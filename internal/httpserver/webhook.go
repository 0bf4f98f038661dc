package httpserver

import (
	"io"
	"log"
	"net/http"

	paymentsvc "casecraft/internal/service/payment"

	"github.com/gin-gonic/gin"
)

// webhookHandler receives payment-provider events. The provider only
// needs an acknowledgment: signature failures are the caller's fault
// (400), everything else that goes wrong is reported as 500 so the
// provider retries the delivery.
func webhookHandler(payments PaymentProcessor, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "unreadable payload"})
			return
		}

		res, err := payments.Process(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
		if err != nil {
			logger.Printf("webhook: %v", err)
			switch paymentsvc.KindOf(err) {
			case paymentsvc.KindSignature:
				c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "invalid signature"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Something went wrong."})
			}
			return
		}

		if res.Duplicate {
			logger.Printf("webhook: duplicate delivery of %s acknowledged", res.EventID)
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
