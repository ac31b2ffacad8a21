package response_models

type EventResponse struct {
	ID               string  `json:"id"`
	HostID           string  `json:"host_id"`
	Title            string  `json:"title"`
	Description      *string `json:"description,omitempty"`
	Location         string  `json:"location"`
	StartsAt         int64   `json:"starts_at"`
	EndsAt           int64   `json:"ends_at"`
	Capacity         int32   `json:"capacity"`
	TicketPriceMinor int64   `json:"ticket_price_minor"`
	Currency         string  `json:"currency"`
}

type AttendeeResponse struct {
	ID            string  `json:"id"`
	EventID       string  `json:"event_id"`
	UserID        string  `json:"user_id"`
	GuestName     string  `json:"guest_name,omitempty"`
	TransactionID *string `json:"transaction_id,omitempty"`
	CheckedIn     bool    `json:"checked_in"`
}
