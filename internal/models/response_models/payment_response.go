package response_models

type TicketIntentResponse struct {
	PaymentIntentID string  `json:"payment_intent_id"`
	ClientSecret    string  `json:"client_secret"`
	Amount          int64   `json:"amount"`
	TransferAmount  int64   `json:"transfer_amount"`
	Currency        string  `json:"currency"`
}

type SubscriptionIntentResponse struct {
	SubscriptionID string `json:"subscription_id"`
	ClientSecret   string `json:"client_secret,omitempty"`
}

type CheckoutSessionResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

type OnboardingLinkResponse struct {
	AccountID string `json:"account_id"`
	URL       string `json:"url"`
}

type DashboardLinkResponse struct {
	URL string `json:"url"`
}
