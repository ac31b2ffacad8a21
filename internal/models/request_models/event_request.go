package request_models

type CreateEventRequest struct {
	Title            string  `json:"title" binding:"required"`
	Description      *string `json:"description"`
	Location         string  `json:"location"`
	StartsAt         int64   `json:"starts_at" binding:"required"`
	EndsAt           int64   `json:"ends_at"`
	Capacity         int32   `json:"capacity"`
	TicketPriceMinor int64   `json:"ticket_price_minor"`
	Currency         string  `json:"currency"`
}
