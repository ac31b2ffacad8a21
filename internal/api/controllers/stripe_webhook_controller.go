package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"gathr/internal/services"
	"gathr/pkg/utils"
)

// StripeWebhookController receives deliveries from Stripe. It speaks
// Stripe's dialect, not the APIResponse envelope: a 2xx acknowledges
// the delivery, anything else makes Stripe redeliver.
type StripeWebhookController struct {
	webhookService services.StripeWebhookServiceInterface
}

func NewStripeWebhookController(webhookService services.StripeWebhookServiceInterface) *StripeWebhookController {
	return &StripeWebhookController{
		webhookService: webhookService,
	}
}

// HandleMainAccountWebhook godoc
// @Summary Stripe webhook endpoint for the main account
// @Description Receives product, price, payment and subscription events
// @Tags Webhooks
// @Accept json
// @Produce json
// @Success 200
// @Failure 400
// @Router /stripe/webhook/main-account [post]
func (w *StripeWebhookController) HandleMainAccountWebhook(c *gin.Context) {
	w.handle(c, w.webhookService.HandleMainEvent)
}

// HandleConnectedAccountWebhook godoc
// @Summary Stripe webhook endpoint for connected accounts
// @Description Receives account.updated events for creator payout accounts
// @Tags Webhooks
// @Accept json
// @Produce json
// @Success 200
// @Failure 400
// @Router /stripe/webhook/connected-account [post]
func (w *StripeWebhookController) HandleConnectedAccountWebhook(c *gin.Context) {
	w.handle(c, w.webhookService.HandleConnectEvent)
}

func (w *StripeWebhookController) handle(c *gin.Context, process func(ctx context.Context, payload []byte, signature string) error) {
	// The signature covers the exact bytes on the wire, so the body
	// must be read raw, never re-serialized.
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read request body"})
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing Stripe-Signature header"})
		return
	}

	if err := process(c.Request.Context(), payload, signature); err != nil {
		if errors.Is(err, utils.ErrWebhookSignature) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Webhook Error: %v", err)})
			return
		}
		// Processing failed after the signature verified; Stripe will
		// redeliver and the transaction has already rolled back.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook processing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
