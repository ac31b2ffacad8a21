package utils

import "errors"

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrForbidden            = errors.New("forbidden")
	ErrEventNotFound        = errors.New("event not found")
	ErrEventFull            = errors.New("event is at capacity")
	ErrProductNotFound      = errors.New("product not found")
	ErrPriceNotFound        = errors.New("price not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrAttendeeNotFound     = errors.New("attendee not found")
	ErrConnectNotOnboarded  = errors.New("stripe account not onboarded")

	// ErrWebhookSignature marks a delivery whose signature did not
	// verify against this endpoint's secret. Controllers answer it with
	// 400 so Stripe retries with a fresh signature instead of giving up.
	ErrWebhookSignature = errors.New("webhook signature verification failed")

	// ErrMissingMetadata marks a Stripe object we own that arrived
	// without its correlation ids. The delivery rolls back and comes
	// again; if it keeps failing the object really is malformed.
	ErrMissingMetadata = errors.New("missing or invalid metadata")

	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")
	ErrDatabaseError   = errors.New("database error")
)
