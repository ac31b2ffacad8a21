package request_models

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	AmountMinor int64   `json:"amount_minor" binding:"required,min=1"`
	Currency    string  `json:"currency" binding:"required,len=3"`
	Interval    string  `json:"interval" binding:"required,oneof=month year"`
}

type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}
