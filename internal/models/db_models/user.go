package db_models

type ConnectAccountStatus string

const (
	ConnectStatusActive              ConnectAccountStatus = "ACTIVE"
	ConnectStatusPendingVerification ConnectAccountStatus = "PENDING_VERIFICATION"
	ConnectStatusActionRequired      ConnectAccountStatus = "ACTION_REQUIRED"
	ConnectStatusError               ConnectAccountStatus = "ERROR"
)

type User struct {
	BaseModel
	Name         string
	Email        string `gorm:"unique"`
	PasswordHash string
	Role         string `gorm:"default:user"`

	// Stripe linkage. CustomerID is set lazily on first checkout,
	// AccountID/AccountStatus when the user onboards as a creator.
	StripeCustomerID    string               `gorm:"index"`
	StripeAccountID     string               `gorm:"index"`
	StripeAccountStatus ConnectAccountStatus `gorm:"index"`
}
