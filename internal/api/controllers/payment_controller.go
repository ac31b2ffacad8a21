package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gathr/internal/models/request_models"
	"gathr/internal/services"
	"gathr/pkg/utils"
)

type PaymentController struct {
	paymentService services.PaymentServiceInterface
}

func NewPaymentController(paymentService services.PaymentServiceInterface) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString("user_id")
	if raw == "" {
		utils.RespondError(c, http.StatusBadRequest, "user_id is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "user_id is invalid")
		return uuid.Nil, false
	}
	return id, true
}

// CreateTicketIntent godoc
// @Summary Create a payment intent for event tickets
// @Description Opens a Stripe payment intent; the ledger record is created when the webhook confirms payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CreateTicketIntentRequest true "Ticket intent payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/ticket-intent [post]
func (p *PaymentController) CreateTicketIntent(c *gin.Context) {
	var req request_models.CreateTicketIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := p.paymentService.CreateTicketPaymentIntent(c.Request.Context(), userID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Payment intent created successfully")
}

// CreateAttendees godoc
// @Summary Register attendees for a ticket purchase
// @Description Attendee rows link to the payment transaction when either side of the flow completes
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CreateAttendeesRequest true "Attendees payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/attendees [post]
func (p *PaymentController) CreateAttendees(c *gin.Context) {
	var req request_models.CreateAttendeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := p.paymentService.CreateEventAttendees(c.Request.Context(), userID, &req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Attendees registered successfully")
}

// CreateSubscriptionIntent godoc
// @Summary Subscribe to a creator plan
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CreateSubscriptionIntentRequest true "Subscription payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/subscription-intent [post]
func (p *PaymentController) CreateSubscriptionIntent(c *gin.Context) {
	var req request_models.CreateSubscriptionIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := p.paymentService.CreateSubscriptionIntent(c.Request.Context(), userID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Subscription created successfully")
}

// CreatePlatformCheckout godoc
// @Summary Open hosted checkout for a platform plan
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CreatePlatformCheckoutRequest true "Checkout payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/platform-checkout [post]
func (p *PaymentController) CreatePlatformCheckout(c *gin.Context) {
	var req request_models.CreatePlatformCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := p.paymentService.CreatePlatformCheckoutSession(c.Request.Context(), userID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Checkout session created successfully")
}

// CancelSubscription godoc
// @Summary Cancel a subscription at period end
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CancelSubscriptionRequest true "Cancel payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/cancel-subscription [post]
func (p *PaymentController) CancelSubscription(c *gin.Context) {
	var req request_models.CancelSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := p.paymentService.CancelSubscription(c.Request.Context(), userID, &req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Subscription will cancel at period end")
}

// RefundTransaction godoc
// @Summary Refund a payment
// @Description The ledger flips to REFUNDED when Stripe confirms via webhook
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.RefundRequest true "Refund payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/refund [post]
func (p *PaymentController) RefundTransaction(c *gin.Context) {
	var req request_models.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := p.paymentService.RefundTransaction(c.Request.Context(), userID, &req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Refund requested successfully")
}

// CreateOnboardingLink godoc
// @Summary Start or resume Stripe Connect onboarding
// @Tags Payments
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/connect/onboarding-link [post]
func (p *PaymentController) CreateOnboardingLink(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := p.paymentService.CreateOnboardingLink(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Onboarding link created successfully")
}

// CreateDashboardLink godoc
// @Summary Get a Stripe Express dashboard link
// @Tags Payments
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/connect/dashboard-link [post]
func (p *PaymentController) CreateDashboardLink(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := p.paymentService.CreateDashboardLink(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Dashboard link created successfully")
}
