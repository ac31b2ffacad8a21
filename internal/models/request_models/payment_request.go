package request_models

type CreateTicketIntentRequest struct {
	EventID  string `json:"event_id" binding:"required,uuid4"`
	Quantity int64  `json:"quantity" binding:"required,min=1"`
}

type AttendeeInput struct {
	GuestName string `json:"guest_name"`
}

// PaymentIntentID may legitimately be empty: the client is allowed to
// register attendees before the intent webhook (or even the intent
// itself) lands. The service links whatever transaction it can find.
type CreateAttendeesRequest struct {
	EventID         string          `json:"event_id" binding:"required,uuid4"`
	PaymentIntentID string          `json:"payment_intent_id"`
	Attendees       []AttendeeInput `json:"attendees" binding:"required,min=1"`
}

type CreateSubscriptionIntentRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

type CreatePlatformCheckoutRequest struct {
	PriceID string `json:"price_id" binding:"required"`
}

type CancelSubscriptionRequest struct {
	SubscriptionID string `json:"subscription_id" binding:"required"`
}

type RefundRequest struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
	AmountMinor     *int64 `json:"amount_minor"`
}
