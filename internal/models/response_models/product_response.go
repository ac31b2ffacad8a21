package response_models

type ProductResponse struct {
	StripeProductID string  `json:"stripe_product_id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	Active          bool    `json:"active"`
	PriceID         string  `json:"price_id,omitempty"`
	AmountMinor     int64   `json:"amount_minor"`
	Currency        string  `json:"currency"`
	Interval        string  `json:"interval"`
}
