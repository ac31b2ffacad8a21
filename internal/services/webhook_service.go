package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"gathr/internal/models/db_models"
	"gathr/internal/repositories"
	"gathr/pkg/utils"
)

// StripeWebhookServiceInterface reconciles local ledger records with
// events delivered by Stripe. Two endpoints feed it: the main account
// (products, prices, payments, subscriptions) and the connected-account
// endpoint (Connect payout accounts). Deliveries are at-least-once and
// unordered, so every handler is an idempotent upsert keyed by the
// Stripe object id.
type StripeWebhookServiceInterface interface {
	HandleMainEvent(ctx context.Context, payload []byte, signature string) error
	HandleConnectEvent(ctx context.Context, payload []byte, signature string) error
}

type eventHandler func(ctx context.Context, tx *gorm.DB, event *stripe.Event) error

type stripeWebhookService struct {
	db       *gorm.DB
	cfg      StripeConfig
	gateway  StripeGatewayInterface
	notifier NotificationServiceInterface

	transactions repositories.TransactionRepositoryInterface
	subs         repositories.SubscriptionRepositoryInterface
	platformSubs repositories.PlatformSubscriptionRepositoryInterface
	products     repositories.ProductRepositoryInterface
	attendees    repositories.AttendeeRepositoryInterface
	users        repositories.UserRepositoryInterface

	mainHandlers    map[stripe.EventType]eventHandler
	connectHandlers map[stripe.EventType]eventHandler
}

func NewStripeWebhookService(
	db *gorm.DB,
	cfg StripeConfig,
	gateway StripeGatewayInterface,
	notifier NotificationServiceInterface,
	transactions repositories.TransactionRepositoryInterface,
	subs repositories.SubscriptionRepositoryInterface,
	platformSubs repositories.PlatformSubscriptionRepositoryInterface,
	products repositories.ProductRepositoryInterface,
	attendees repositories.AttendeeRepositoryInterface,
	users repositories.UserRepositoryInterface,
) StripeWebhookServiceInterface {
	s := &stripeWebhookService{
		db:           db,
		cfg:          cfg,
		gateway:      gateway,
		notifier:     notifier,
		transactions: transactions,
		subs:         subs,
		platformSubs: platformSubs,
		products:     products,
		attendees:    attendees,
		users:        users,
	}

	// Closed tables keep the handled set auditable; anything else is
	// acknowledged without action so Stripe stops redelivering it.
	s.mainHandlers = map[stripe.EventType]eventHandler{
		"product.updated":               s.handleProductUpdated,
		"product.deleted":               s.handleProductDeleted,
		"price.updated":                 s.handlePriceUpdated,
		"price.deleted":                 s.handlePriceDeleted,
		"customer.subscription.updated": s.handleSubscriptionUpdated,
		"customer.subscription.deleted": s.handleSubscriptionDeleted,
		"invoice.payment_succeeded":     s.handleInvoicePaymentSucceeded,
		"payment_intent.succeeded":      s.handlePaymentIntentSucceeded,
		"charge.refunded":               s.handleChargeRefunded,
	}
	s.connectHandlers = map[stripe.EventType]eventHandler{
		"account.updated": s.handleAccountUpdated,
	}

	return s
}

func (s *stripeWebhookService) HandleMainEvent(ctx context.Context, payload []byte, signature string) error {
	return s.dispatch(ctx, payload, signature, s.cfg.MainWebhookSecret, s.mainHandlers)
}

func (s *stripeWebhookService) HandleConnectEvent(ctx context.Context, payload []byte, signature string) error {
	return s.dispatch(ctx, payload, signature, s.cfg.ConnectWebhookSecret, s.connectHandlers)
}

// dispatch verifies the signature against this endpoint's secret and
// runs the matching handler inside one database transaction, so a
// delivery either lands completely or not at all. A failed delivery
// surfaces as an error response and Stripe redelivers; there is no
// internal retry.
func (s *stripeWebhookService) dispatch(ctx context.Context, payload []byte, signature string, secret string, handlers map[stripe.EventType]eventHandler) error {
	event, err := webhook.ConstructEventWithOptions(payload, signature, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrWebhookSignature, err)
	}

	handler, ok := handlers[event.Type]
	if !ok {
		log.Printf("webhook: unhandled event type %s (%s), acknowledging", event.Type, event.ID)
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		return handler(ctx, tx, &event)
	})
}

// --- product / price mirrors -------------------------------------------

func (s *stripeWebhookService) handleProductUpdated(ctx context.Context, tx *gorm.DB, event *stripe.Event) error {
	var sp stripe.Product
	if err := json.Unmarshal(event.Data.Raw, &sp); err != nil {
		return fmt.Errorf("parse product: %w", err)
	}

	product, err := s.products.FindProductByStripeID(ctx, tx, sp.ID)
	if err != nil {
		return err
	}
	if product == nil {
		// Never mirrored locally, e.g. created directly in the Stripe
		// dashboard. Not ours to track.
		log.Printf("webhook: product.updated for unknown product %s, skipping", sp.ID)
		return nil
	}

	product.Name = sp.Name
	product.Active = sp.Active
	if sp.Description != "" {
		desc := sp.Description
		product.Description = &desc
	}
	return s.products.SaveProduct(ctx, tx, product)
}

func (s *stripeWebhookService) handleProductDeleted(ctx context.Context, tx *gorm.DB, event *stripe.Event) error {
	var sp stripe.Product
	if err := json.Unmarshal(event.Data.Raw, &sp); err != nil {
		return fmt.Errorf("parse product: %w", err)
	}

	product, err := s.products.FindProductByStripeID(ctx, tx, sp.ID)
	if err != nil {
		return err
	}
	if product == nil {
		log.Printf("webhook: product.deleted for unknown product %s, skipping", sp.ID)
		return nil
	}

	product.Active = false
	product.IsDeleted = true
	return s.products.SaveProduct(ctx, tx, product)
}

func (s *stripeWebhookService) handlePriceUpdated(ctx context.Context, tx *gorm.DB, event *stripe.Event) error {
	var sp stripe.Price
	if err := json.Unmarshal(event.Data.Raw, &sp); err != nil {
		return fmt.Errorf("parse price: %w", err)
	}

	price, err := s.products.FindPriceByStripeID(ctx, tx, sp.ID)
	if err != nil {
		return err
	}
	if price == nil {
		log.Printf("webhook: price.updated for unknown price %s, skipping", sp.ID)
		return nil
	}

	// Amount, currency and interval are immutable after creation; only
	// the active flag may follow the processor.
	price.Active = sp.Active
	return s.products.SavePrice(ctx, tx, price)
}

func (s *stripeWebhookService) handlePriceDeleted(ctx context.Context, tx *gorm.DB, event *stripe.Event) error {
	var sp stripe.Price
	if err := json.Unmarshal(event.Data.Raw, &sp); err != nil {
		return fmt.Errorf("parse price: %w", err)
	}

	price, err := s.products.FindPriceByStripeID(ctx, tx, sp.ID)
	if err != nil {
		return err
	}
	if price == nil {
		log.Printf("webhook: price.deleted for unknown price %s, skipping", sp.ID)
		return nil
	}

	price.Active = false
	price.IsDeleted = true
	return s.products.SavePrice(ctx, tx, price)
}

// --- subscriptions ------------------------------------------------------

func isPlatformMetadata(metadata map[string]string) bool {
	return metadata["is_platform"] == "true"
}

func mapSubscriptionStatus(status stripe.SubscriptionStatus) db_models.SubscriptionStatus {
	switch status {
	case stripe.SubscriptionStatusActive:
		return db_models.SubStatusActive
	case stripe.SubscriptionStatusTrialing:
		return db_models.SubStatusTrialing
	case stripe.SubscriptionStatusPastDue:
		return db_models.SubStatusPastDue
	case stripe.SubscriptionStatusCanceled:
		return db_models.SubStatusCanceled
	case stripe.SubscriptionStatusUnpaid:
		return db_models.SubStatusUnpaid
	default:
		return db_models.SubStatusIncomplete
	}
}

func (s *stripeWebhookService) handleSubscriptionUpdated(ctx context.Context, tx *gorm.DB, event *stripe.Event) error {
	var ss stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &ss); err != nil {
		return fmt.Errorf("parse subscription: %w", err)
	}

	// The platform check has to come before any lookup: the two tables
	// are disjoint and a miss in the wrong one would read as "not ours".
	if isPlatformMetadata(ss.Metadata) {
		sub, err := s.platformSubs.FindByStripeID(ctx, tx, ss.ID)
		if err != nil {
			return err
		}
		if sub == nil {
			// First invoice has not landed yet; the row will be created
			// by invoice.payment_succeeded.
			log.Printf("webhook: subscription.updated for unknown platform subscription %s, skipping", ss.ID)
			return nil
		}
		if sub.Status == db_models.SubStatusCanceled {
			log.Printf("webhook: platform subscription %s already canceled, skipping update", ss.ID)
			return nil
		}
		sub.Status = mapSubscriptionStatus(ss.Status)
		sub.CancelAtPeriodEnd = ss.CancelAtPeriodEnd
		sub.CurrentPeriodStart = ss.CurrentPeriodStart
		sub.CurrentPeriodEnd = ss.CurrentPeriodEnd
		return s.platformSubs.Save(ctx, tx, sub)
	}

	sub, err := s.subs.FindByStripeID(ctx, tx, ss.ID)
	if err != nil {
		return err
	}
	if sub == nil {
		log.Printf("webhook: subscription.updated for unknown subscription %s, skipping", ss.ID)
		return nil
	}
	if sub.Status == db_models.SubStatusCanceled {
		log.Printf("webhook: subscription %s already canceled, skipping update", ss.ID)
		return nil
	}
	sub.Status = mapSubscriptionStatus(ss.Status)
	sub.CancelAtPeriodEnd = ss.CancelAtPeriodEnd
	sub.CurrentPeriodStart = ss.CurrentPeriodStart
	sub.CurrentPeriodEnd = ss.CurrentPeriodEnd
	return s.subs.Save(ctx, tx, sub)
}

func (s *stripeWebhookService) handleSubscriptionDeleted(ctx context.Context, tx *gorm.DB, event *stripe.Event) error {
	var ss stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &ss); err != nil {
		return fmt.Errorf("parse subscription: %w", err)
	}

	now := time.Now().Unix()

	if isPlatformMetadata(ss.Metadata) {
		sub, err := s.platformSubs.FindByStripeID(ctx, tx, ss.ID)
		if err != nil {
			return err
		}
		if sub == nil {
			log.Printf("webhook: subscription.deleted for unknown platform subscription %s, skipping", ss.ID)
			return nil
		}
		if sub.Status == db_models.SubStatusCanceled && sub.CanceledAt != nil {
			return nil
		}
		sub.Status = db_models.SubStatusCanceled
		sub.CanceledAt = &now
		sub.CancelAtPeriodEnd = false
		return s.platformSubs.Save(ctx, tx, sub)
	}

	sub, err := s.subs.FindByStripeID(ctx, tx, ss.ID)
	if err != nil {
		return err
	}
	if sub == nil {
		log.Printf("webhook: subscription.deleted for unknown subscription %s, skipping", ss.ID)
		return nil
	}
	if sub.Status == db_models.SubStatusCanceled && sub.CanceledAt != nil {
		return nil
	}
	sub.Status = db_models.SubStatusCanceled
	sub.CanceledAt = &now
	sub.CancelAtPeriodEnd = false
	return s.subs.Save(ctx, tx, sub)
}

// handleInvoicePaymentSucceeded creates the local subscription row on
// first sight and keeps billing-period fields fresh on later cycles.
// The correlation ids live in the Stripe subscription's metadata: the
// processor is the only party that sees both sides, so the synchronous
// checkout path round-trips them through the subscription object.
func (s *stripeWebhookService) handleInvoicePaymentSucceeded(ctx context.Context, tx *gorm.DB, event *stripe.Event) error {
	var inv stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
		return fmt.Errorf("parse invoice: %w", err)
	}

	if inv.Subscription == nil || inv.Subscription.ID == "" {
		log.Printf("webhook: invoice %s is not subscription-linked, skipping", inv.ID)
		return nil
	}

	// The invoice payload does not carry subscription metadata; fetch
	// the subscription object to read the round-tripped ids.
	ss, err := s.gateway.RetrieveSubscription(ctx, inv.Subscription.ID)
	if err != nil {
		return fmt.Errorf("retrieve subscription %s: %w", inv.Subscription.ID, err)
	}

	if isPlatformMetadata(ss.Metadata) {
		return s.reconcilePlatformInvoice(ctx, tx, &inv, ss)
	}
	return s.reconcileCreatorInvoice(ctx, tx, event, &inv, ss)
}

func (s *stripeWebhookService) reconcilePlatformInvoice(ctx context.Context, tx *gorm.DB, inv *stripe.Invoice, ss *stripe.Subscription) error {
	existing, err := s.platformSubs.FindByStripeID(ctx, tx, ss.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		// Re-arrival or a later billing cycle: dates and status only.
		existing.Status = mapSubscriptionStatus(ss.Status)
		existing.CurrentPeriodStart = ss.CurrentPeriodStart
		existing.CurrentPeriodEnd = ss.CurrentPeriodEnd
		return s.platformSubs.Save(ctx, tx, existing)
	}

	userID, err := requiredMetadataUUID(ss.Metadata, "user_id")
	if err != nil {
		return err
	}

	sub := &db_models.PlatformSubscription{
		UserID:               userID,
		StripeSubscriptionID: ss.ID,
		StripeProductID:      ss.Metadata["product_id"],
		StripePriceID:        ss.Metadata["price_id"],
		Status:               mapSubscriptionStatus(ss.Status),
		CurrentPeriodStart:   ss.CurrentPeriodStart,
		CurrentPeriodEnd:     ss.CurrentPeriodEnd,
	}
	return s.platformSubs.Insert(ctx, tx, sub)
}

func (s *stripeWebhookService) reconcileCreatorInvoice(ctx context.Context, tx *gorm.DB, event *stripe.Event, inv *stripe.Invoice, ss *stripe.Subscription) error {
	existing, err := s.subs.FindByStripeID(ctx, tx, ss.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		existing.Status = mapSubscriptionStatus(ss.Status)
		existing.CurrentPeriodStart = ss.CurrentPeriodStart
		existing.CurrentPeriodEnd = ss.CurrentPeriodEnd
		if err := s.subs.Save(ctx, tx, existing); err != nil {
			return err
		}
	} else {
		userID, err := requiredMetadataUUID(ss.Metadata, "user_id")
		if err != nil {
			return err
		}
		ownerID, err := requiredMetadataUUID(ss.Metadata, "owner_id")
		if err != nil {
			return err
		}
		sub := &db_models.Subscription{
			UserID:               userID,
			OwnerID:              ownerID,
			StripeSubscriptionID: ss.ID,
			StripeProductID:      ss.Metadata["product_id"],
			StripePriceID:        ss.Metadata["price_id"],
			Status:               mapSubscriptionStatus(ss.Status),
			CurrentPeriodStart:   ss.CurrentPeriodStart,
			CurrentPeriodEnd:     ss.CurrentPeriodEnd,
		}
		if err := s.subs.Insert(ctx, tx, sub); err != nil {
			return err
		}
	}

	// Each paid invoice also yields a ledger Transaction recording the
	// 90% creator transfer. Keyed by payment-intent id, so redelivery
	// of the same invoice is a no-op here.
	paymentIntentID := inv.ID
	if inv.PaymentIntent != nil && inv.PaymentIntent.ID != "" {
		paymentIntentID = inv.PaymentIntent.ID
	}
	txnExisting, err := s.transactions.FindByPaymentIntentID(ctx, tx, paymentIntentID)
	if err != nil {
		return err
	}
	if txnExisting != nil {
		return nil
	}

	userID, err := requiredMetadataUUID(ss.Metadata, "user_id")
	if err != nil {
		return err
	}
	ownerID, err := requiredMetadataUUID(ss.Metadata, "owner_id")
	if err != nil {
		return err
	}

	amount := float64(inv.AmountPaid) / 100
	productID := ss.Metadata["product_id"]
	priceID := ss.Metadata["price_id"]
	txn := &db_models.Transaction{
		Type:            db_models.TxnTypeSubscription,
		Status:          db_models.TxnStatusSucceeded,
		PaymentIntentID: paymentIntentID,
		Amount:          amount,
		TransferAmount:  amount * creatorRevenuePercent / 100,
		Currency:        string(inv.Currency),
		UserID:          userID,
		HostID:          &ownerID,
		StripeProductID: &productID,
		StripePriceID:   &priceID,
		Metadata:        datatypes.JSON(event.Data.Raw),
	}
	if err := s.transactions.Insert(ctx, tx, txn); err != nil {
		return err
	}

	s.notifySubscriber(ctx, tx, userID, productID)
	return nil
}

// --- ticket payments ----------------------------------------------------

// handlePaymentIntentSucceeded records a ticket purchase and runs the
// webhook side of the attendee race: attendee rows created by the
// checkout request before this delivery get their transaction link
// backfilled; rows created after it link themselves on insert.
func (s *stripeWebhookService) handlePaymentIntentSucceeded(ctx context.Context, tx *gorm.DB, event *stripe.Event) error {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return fmt.Errorf("parse payment intent: %w", err)
	}

	if pi.Metadata["event_id"] == "" && pi.Metadata["user_id"] == "" {
		// Not a ticket intent of ours (e.g. a subscription invoice
		// intent, handled via invoice.payment_succeeded).
		log.Printf("webhook: payment_intent %s carries no ticket metadata, skipping", pi.ID)
		return nil
	}

	eventID, err := requiredMetadataUUID(pi.Metadata, "event_id")
	if err != nil {
		return err
	}
	userID, err := requiredMetadataUUID(pi.Metadata, "user_id")
	if err != nil {
		return err
	}

	existing, err := s.transactions.FindByPaymentIntentID(ctx, tx, pi.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		// Redelivery: the transaction exists, and any linkable attendee
		// rows were linked when it was created or linked themselves.
		return nil
	}

	var transferAmount float64
	if pi.TransferData != nil {
		transferAmount = float64(pi.TransferData.Amount) / 100
	}
	var hostID *uuid.UUID
	if raw := pi.Metadata["host_id"]; raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("%w: host_id %q", utils.ErrMissingMetadata, raw)
		}
		hostID = &parsed
	}
	var paymentMethod string
	if pi.PaymentMethod != nil {
		paymentMethod = pi.PaymentMethod.ID
	}

	txn := &db_models.Transaction{
		Type:            db_models.TxnTypeEvent,
		Status:          db_models.TxnStatusSucceeded,
		PaymentIntentID: pi.ID,
		Amount:          float64(pi.Amount) / 100,
		TransferAmount:  transferAmount,
		Currency:        string(pi.Currency),
		PaymentMethod:   paymentMethod,
		UserID:          userID,
		HostID:          hostID,
		EventID:         &eventID,
		Metadata:        datatypes.JSON(event.Data.Raw),
	}
	if err := s.transactions.Insert(ctx, tx, txn); err != nil {
		return err
	}

	linked, err := s.attendees.LinkToTransaction(ctx, tx, userID, eventID, txn.ID)
	if err != nil {
		return err
	}
	log.Printf("webhook: payment_intent %s reconciled, linked %d attendee rows", pi.ID, linked)

	s.notifyTicketBuyer(ctx, tx, userID, eventID, txn)
	return nil
}

// --- refunds ------------------------------------------------------------

func (s *stripeWebhookService) handleChargeRefunded(ctx context.Context, tx *gorm.DB, event *stripe.Event) error {
	var ch stripe.Charge
	if err := json.Unmarshal(event.Data.Raw, &ch); err != nil {
		return fmt.Errorf("parse charge: %w", err)
	}

	if ch.PaymentIntent == nil || ch.PaymentIntent.ID == "" {
		log.Printf("webhook: charge %s has no payment intent, skipping", ch.ID)
		return nil
	}

	txn, err := s.transactions.FindByPaymentIntentID(ctx, tx, ch.PaymentIntent.ID)
	if err != nil {
		return err
	}
	if txn == nil {
		log.Printf("webhook: charge.refunded for unknown payment intent %s, skipping", ch.PaymentIntent.ID)
		return nil
	}

	if txn.Status != db_models.TxnStatusRefunded {
		txn.Status = db_models.TxnStatusRefunded
		now := time.Now().Unix()
		txn.RefundedAt = &now
		if err := s.transactions.Save(ctx, tx, txn); err != nil {
			return err
		}
	}

	// >= rather than ==: several partial refunds can add up past the
	// original amount without ever hitting it exactly.
	fullyRefunded := ch.AmountRefunded >= ch.Amount
	if !fullyRefunded {
		return nil
	}

	// Only a full refund of a subscription payment revokes access.
	// Ticket refunds leave attendee rows alone: a refunded attendee may
	// still attend, and check-in state is not payment state.
	if txn.Type != db_models.TxnTypeSubscription || txn.StripeProductID == nil {
		return nil
	}

	sub, err := s.subs.FindLatestActiveByUserAndProduct(ctx, tx, txn.UserID, *txn.StripeProductID)
	if err != nil {
		return err
	}
	if sub == nil {
		log.Printf("webhook: full refund of %s but no active subscription for user %s product %s",
			ch.PaymentIntent.ID, txn.UserID, *txn.StripeProductID)
		return nil
	}

	now := time.Now().Unix()
	sub.Status = db_models.SubStatusCanceled
	sub.CanceledAt = &now
	sub.CancelAtPeriodEnd = false
	if err := s.subs.Save(ctx, tx, sub); err != nil {
		return err
	}

	// Best effort: local consistency wins over mirror-sync, a
	// still-active remote subscription is the lesser failure mode.
	if _, err := s.gateway.CancelSubscriptionNow(ctx, sub.StripeSubscriptionID); err != nil {
		log.Printf("webhook: gateway cancel of subscription %s failed: %v", sub.StripeSubscriptionID, err)
	}

	s.notifyRefund(ctx, tx, txn)
	return nil
}

// --- connect accounts ---------------------------------------------------

func deriveAccountStatus(acct *stripe.Account) db_models.ConnectAccountStatus {
	switch {
	case acct.DetailsSubmitted && acct.ChargesEnabled && acct.PayoutsEnabled:
		return db_models.ConnectStatusActive
	case acct.DetailsSubmitted:
		return db_models.ConnectStatusPendingVerification
	case acct.Requirements != nil && len(acct.Requirements.CurrentlyDue) > 0:
		return db_models.ConnectStatusActionRequired
	case acct.Requirements != nil && len(acct.Requirements.Errors) > 0:
		return db_models.ConnectStatusError
	default:
		return db_models.ConnectStatusActionRequired
	}
}

func (s *stripeWebhookService) handleAccountUpdated(ctx context.Context, tx *gorm.DB, event *stripe.Event) error {
	var acct stripe.Account
	if err := json.Unmarshal(event.Data.Raw, &acct); err != nil {
		return fmt.Errorf("parse account: %w", err)
	}

	// Every connected account is created by us with userId metadata;
	// its absence is a data-integrity fault worth a redelivery alert,
	// not something to paper over.
	userID, err := requiredMetadataUUID(acct.Metadata, "userId")
	if err != nil {
		return err
	}

	status := deriveAccountStatus(&acct)
	return s.users.UpdateStripeAccount(ctx, tx, userID, acct.ID, status)
}

// --- helpers ------------------------------------------------------------

func requiredMetadataUUID(metadata map[string]string, key string) (uuid.UUID, error) {
	raw := metadata[key]
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%w: %s", utils.ErrMissingMetadata, key)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s %q", utils.ErrMissingMetadata, key, raw)
	}
	return id, nil
}

// Notification helpers resolve the recipient inside the delivery
// transaction but send on a separate goroutine: a mail failure must
// never fail (or roll back) the reconciliation.

func (s *stripeWebhookService) notifyTicketBuyer(ctx context.Context, tx *gorm.DB, userID, eventID uuid.UUID, txn *db_models.Transaction) {
	if s.notifier == nil {
		return
	}
	user, err := s.users.FindByID(ctx, tx, userID)
	if err != nil || user == nil {
		return
	}
	var title string
	var ev db_models.Event
	if err := tx.WithContext(ctx).First(&ev, "id = ?", eventID).Error; err == nil {
		title = ev.Title
	}
	email := user.Email
	amount, currency := txn.Amount, txn.Currency
	go s.notifier.NotifyTicketPurchased(email, title, amount, currency)
}

func (s *stripeWebhookService) notifySubscriber(ctx context.Context, tx *gorm.DB, userID uuid.UUID, productID string) {
	if s.notifier == nil {
		return
	}
	user, err := s.users.FindByID(ctx, tx, userID)
	if err != nil || user == nil {
		return
	}
	name := productID
	if product, err := s.products.FindProductByStripeID(ctx, tx, productID); err == nil && product != nil {
		name = product.Name
	}
	email := user.Email
	go s.notifier.NotifySubscriptionActivated(email, name)
}

func (s *stripeWebhookService) notifyRefund(ctx context.Context, tx *gorm.DB, txn *db_models.Transaction) {
	if s.notifier == nil {
		return
	}
	user, err := s.users.FindByID(ctx, tx, txn.UserID)
	if err != nil || user == nil {
		return
	}
	email := user.Email
	amount, currency := txn.Amount, txn.Currency
	go s.notifier.NotifyRefundProcessed(email, amount, currency)
}
