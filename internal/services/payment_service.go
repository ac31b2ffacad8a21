package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gathr/internal/models/db_models"
	"gathr/internal/models/request_models"
	"gathr/internal/models/response_models"
	"gathr/internal/repositories"
	"gathr/pkg/utils"
)

// PaymentServiceInterface is the synchronous half of the payment flow:
// it creates intents, subscriptions and checkout sessions on request,
// while the webhook service owns every state transition reported back
// by Stripe. The only overlap is attendee linking, where both sides
// resolve the same race from their own end.
type PaymentServiceInterface interface {
	CreateTicketPaymentIntent(ctx context.Context, userID uuid.UUID, req *request_models.CreateTicketIntentRequest) (*response_models.TicketIntentResponse, error)
	CreateEventAttendees(ctx context.Context, userID uuid.UUID, req *request_models.CreateAttendeesRequest) error

	CreateSubscriptionIntent(ctx context.Context, userID uuid.UUID, req *request_models.CreateSubscriptionIntentRequest) (*response_models.SubscriptionIntentResponse, error)
	CreatePlatformCheckoutSession(ctx context.Context, userID uuid.UUID, req *request_models.CreatePlatformCheckoutRequest) (*response_models.CheckoutSessionResponse, error)
	CancelSubscription(ctx context.Context, userID uuid.UUID, req *request_models.CancelSubscriptionRequest) error

	RefundTransaction(ctx context.Context, userID uuid.UUID, req *request_models.RefundRequest) error

	CreateOnboardingLink(ctx context.Context, userID uuid.UUID) (*response_models.OnboardingLinkResponse, error)
	CreateDashboardLink(ctx context.Context, userID uuid.UUID) (*response_models.DashboardLinkResponse, error)
}

type paymentService struct {
	db      *gorm.DB
	gateway StripeGatewayInterface

	transactions repositories.TransactionRepositoryInterface
	subs         repositories.SubscriptionRepositoryInterface
	products     repositories.ProductRepositoryInterface
	attendees    repositories.AttendeeRepositoryInterface
	events       repositories.EventRepositoryInterface
	users        repositories.UserRepositoryInterface
}

func NewPaymentService(
	db *gorm.DB,
	gateway StripeGatewayInterface,
	transactions repositories.TransactionRepositoryInterface,
	subs repositories.SubscriptionRepositoryInterface,
	products repositories.ProductRepositoryInterface,
	attendees repositories.AttendeeRepositoryInterface,
	events repositories.EventRepositoryInterface,
	users repositories.UserRepositoryInterface,
) PaymentServiceInterface {
	return &paymentService{
		db:           db,
		gateway:      gateway,
		transactions: transactions,
		subs:         subs,
		products:     products,
		attendees:    attendees,
		events:       events,
		users:        users,
	}
}

// CreateTicketPaymentIntent opens a payment intent for event tickets.
// The intent metadata carries the correlation ids the webhook needs to
// rebuild the ledger record without trusting any client input.
func (s *paymentService) CreateTicketPaymentIntent(ctx context.Context, userID uuid.UUID, req *request_models.CreateTicketIntentRequest) (*response_models.TicketIntentResponse, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, utils.ErrEventNotFound
	}

	event, err := s.events.FindByID(ctx, s.db, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, utils.ErrEventNotFound
	}

	host, err := s.users.FindByID(ctx, s.db, event.HostID)
	if err != nil {
		return nil, err
	}
	if host == nil {
		return nil, utils.ErrAccountNotFound
	}

	amount := event.TicketPriceMinor * req.Quantity

	// Route the host's share straight to their connected account, but
	// only once payouts are actually enabled; otherwise the platform
	// collects and settles manually.
	var destination string
	var transferAmount int64
	if host.StripeAccountID != "" && host.StripeAccountStatus == db_models.ConnectStatusActive {
		destination = host.StripeAccountID
		transferAmount = amount * int64(creatorRevenuePercent) / 100
	}

	metadata := map[string]string{
		"event_id": event.ID.String(),
		"user_id":  userID.String(),
		"host_id":  event.HostID.String(),
	}
	pi, err := s.gateway.CreatePaymentIntent(ctx, amount, event.Currency, transferAmount, destination, metadata)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	return &response_models.TicketIntentResponse{
		PaymentIntentID: pi.ID,
		ClientSecret:    pi.ClientSecret,
		Amount:          amount,
		TransferAmount:  transferAmount,
		Currency:        event.Currency,
	}, nil
}

// CreateEventAttendees registers attendee rows for a purchase. This is
// the request-path side of the linking race: if the payment webhook has
// already produced a Transaction, the rows are born linked; if not,
// they are inserted with a null transaction_id and the webhook
// backfills them when it lands. Neither side waits for the other.
func (s *paymentService) CreateEventAttendees(ctx context.Context, userID uuid.UUID, req *request_models.CreateAttendeesRequest) error {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return utils.ErrEventNotFound
	}

	event, err := s.events.FindByID(ctx, s.db, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return utils.ErrEventNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var txnID *uuid.UUID
		if req.PaymentIntentID != "" {
			txn, err := s.transactions.FindByPaymentIntentID(ctx, tx, req.PaymentIntentID)
			if err != nil {
				return err
			}
			if txn != nil {
				txnID = &txn.ID
			} else {
				log.Printf("payment: attendees for intent %s registered before its webhook; will be linked on delivery", req.PaymentIntentID)
			}
		}

		rows := make([]*db_models.EventAttendee, 0, len(req.Attendees))
		for _, a := range req.Attendees {
			rows = append(rows, &db_models.EventAttendee{
				EventID:       eventID,
				UserID:        userID,
				TransactionID: txnID,
				GuestName:     a.GuestName,
			})
		}
		return s.attendees.InsertBulk(ctx, tx, rows)
	})
}

// CreateSubscriptionIntent starts a creator-plan subscription. The
// metadata round-trips through Stripe so invoice.payment_succeeded can
// reconstruct who subscribed to whose product; is_platform is written
// explicitly as "false" so the webhook's table routing never guesses.
func (s *paymentService) CreateSubscriptionIntent(ctx context.Context, userID uuid.UUID, req *request_models.CreateSubscriptionIntentRequest) (*response_models.SubscriptionIntentResponse, error) {
	product, err := s.products.FindProductByStripeID(ctx, s.db, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.IsDeleted {
		return nil, utils.ErrProductNotFound
	}
	if product.IsPlatform {
		// Platform plans go through hosted checkout, not raw intents.
		return nil, utils.ErrProductNotFound
	}

	price, err := s.products.FindActivePriceByProduct(ctx, s.db, product.StripeProductID)
	if err != nil {
		return nil, err
	}
	if price == nil {
		return nil, utils.ErrPriceNotFound
	}

	user, err := s.users.FindByID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}

	owner, err := s.users.FindByID(ctx, s.db, product.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, utils.ErrAccountNotFound
	}

	customerID, err := s.ensureCustomer(ctx, user)
	if err != nil {
		return nil, err
	}

	var destination string
	if owner.StripeAccountID != "" && owner.StripeAccountStatus == db_models.ConnectStatusActive {
		destination = owner.StripeAccountID
	}

	metadata := map[string]string{
		"is_platform": "false",
		"user_id":     userID.String(),
		"owner_id":    product.OwnerID.String(),
		"product_id":  product.StripeProductID,
		"price_id":    price.StripePriceID,
	}
	sub, err := s.gateway.CreateSubscription(ctx, customerID, price.StripePriceID, destination, metadata)
	if err != nil {
		return nil, fmt.Errorf("create subscription: %w", err)
	}

	resp := &response_models.SubscriptionIntentResponse{SubscriptionID: sub.ID}
	if sub.LatestInvoice != nil && sub.LatestInvoice.PaymentIntent != nil {
		resp.ClientSecret = sub.LatestInvoice.PaymentIntent.ClientSecret
	}
	return resp, nil
}

// CreatePlatformCheckoutSession opens hosted checkout for a platform
// plan. is_platform="true" in the subscription metadata is what keeps
// the resulting webhooks out of the creator-subscription table.
func (s *paymentService) CreatePlatformCheckoutSession(ctx context.Context, userID uuid.UUID, req *request_models.CreatePlatformCheckoutRequest) (*response_models.CheckoutSessionResponse, error) {
	price, err := s.products.FindPriceByStripeID(ctx, s.db, req.PriceID)
	if err != nil {
		return nil, err
	}
	if price == nil || price.IsDeleted || !price.Active {
		return nil, utils.ErrPriceNotFound
	}

	product, err := s.products.FindProductByStripeID(ctx, s.db, price.StripeProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsPlatform {
		return nil, utils.ErrProductNotFound
	}

	user, err := s.users.FindByID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}

	customerID, err := s.ensureCustomer(ctx, user)
	if err != nil {
		return nil, err
	}

	metadata := map[string]string{
		"is_platform": "true",
		"user_id":     userID.String(),
		"product_id":  product.StripeProductID,
		"price_id":    price.StripePriceID,
	}
	session, err := s.gateway.CreateCheckoutSession(ctx, customerID, price.StripePriceID, metadata)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	return &response_models.CheckoutSessionResponse{
		SessionID:   session.ID,
		CheckoutURL: session.URL,
	}, nil
}

// CancelSubscription schedules a period-end cancellation. The local row
// is flagged optimistically; customer.subscription.updated confirms it
// and customer.subscription.deleted finalizes at period end.
func (s *paymentService) CancelSubscription(ctx context.Context, userID uuid.UUID, req *request_models.CancelSubscriptionRequest) error {
	sub, err := s.subs.FindByStripeID(ctx, s.db, req.SubscriptionID)
	if err != nil {
		return err
	}
	if sub == nil {
		return utils.ErrSubscriptionNotFound
	}
	if sub.UserID != userID {
		return utils.ErrForbidden
	}
	if sub.Status == db_models.SubStatusCanceled {
		return nil
	}

	if _, err := s.gateway.CancelSubscriptionAtPeriodEnd(ctx, sub.StripeSubscriptionID); err != nil {
		return fmt.Errorf("cancel subscription: %w", err)
	}

	sub.CancelAtPeriodEnd = true
	return s.subs.Save(ctx, s.db, sub)
}

// RefundTransaction asks Stripe to refund a payment. Only the host who
// received the money may initiate it. No local state changes here: the
// ledger flips to REFUNDED when charge.refunded is delivered, so a
// crash between the API call and the webhook loses nothing.
func (s *paymentService) RefundTransaction(ctx context.Context, userID uuid.UUID, req *request_models.RefundRequest) error {
	txn, err := s.transactions.FindByPaymentIntentID(ctx, s.db, req.PaymentIntentID)
	if err != nil {
		return err
	}
	if txn == nil {
		return utils.ErrTransactionNotFound
	}
	if txn.HostID == nil || *txn.HostID != userID {
		return utils.ErrForbidden
	}
	if txn.Status == db_models.TxnStatusRefunded {
		return nil
	}

	if _, err := s.gateway.CreateRefund(ctx, req.PaymentIntentID, req.AmountMinor); err != nil {
		return fmt.Errorf("create refund: %w", err)
	}
	return nil
}

// CreateOnboardingLink lazily creates the Connect account on first use
// and returns a fresh onboarding URL (they expire quickly, so one is
// minted per request).
func (s *paymentService) CreateOnboardingLink(ctx context.Context, userID uuid.UUID) (*response_models.OnboardingLinkResponse, error) {
	user, err := s.users.FindByID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}

	if user.StripeAccountID == "" {
		acct, err := s.gateway.CreateConnectAccount(ctx, user.Email, user.ID.String())
		if err != nil {
			return nil, fmt.Errorf("create connect account: %w", err)
		}
		if err := s.users.UpdateStripeAccount(ctx, s.db, user.ID, acct.ID, db_models.ConnectStatusActionRequired); err != nil {
			return nil, err
		}
		user.StripeAccountID = acct.ID
	}

	link, err := s.gateway.CreateOnboardingLink(ctx, user.StripeAccountID)
	if err != nil {
		return nil, fmt.Errorf("create onboarding link: %w", err)
	}
	return &response_models.OnboardingLinkResponse{
		AccountID: user.StripeAccountID,
		URL:       link.URL,
	}, nil
}

func (s *paymentService) CreateDashboardLink(ctx context.Context, userID uuid.UUID) (*response_models.DashboardLinkResponse, error) {
	user, err := s.users.FindByID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}
	if user.StripeAccountID == "" || user.StripeAccountStatus != db_models.ConnectStatusActive {
		return nil, utils.ErrConnectNotOnboarded
	}

	link, err := s.gateway.CreateDashboardLink(ctx, user.StripeAccountID)
	if err != nil {
		return nil, fmt.Errorf("create dashboard link: %w", err)
	}
	return &response_models.DashboardLinkResponse{URL: link.URL}, nil
}

func (s *paymentService) ensureCustomer(ctx context.Context, user *db_models.User) (string, error) {
	if user.StripeCustomerID != "" {
		return user.StripeCustomerID, nil
	}
	customer, err := s.gateway.LookupOrCreateCustomer(ctx, user.Email, user.Name)
	if err != nil {
		return "", fmt.Errorf("ensure customer: %w", err)
	}
	user.StripeCustomerID = customer.ID
	if err := s.users.Save(ctx, s.db, user); err != nil {
		return "", err
	}
	return customer.ID, nil
}
