package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

type StripeConfig struct {
	SecretKey            string // sk_test_... / sk_live_...
	MainWebhookSecret    string // whsec_... for the main-account endpoint
	ConnectWebhookSecret string // whsec_... for the connected-account endpoint
	FrontendBaseURL      string // return/refresh and success/cancel URLs
}

// StripeGatewayInterface is the outbound surface of the payment
// processor. Everything else in the codebase talks to Stripe through it.
type StripeGatewayInterface interface {
	CreateProduct(ctx context.Context, name string, description *string, metadata map[string]string) (*stripe.Product, error)
	UpdateProduct(ctx context.Context, productID string, name *string, description *string, active *bool) (*stripe.Product, error)
	ArchiveProduct(ctx context.Context, productID string) (*stripe.Product, error)

	CreatePrice(ctx context.Context, productID string, unitAmount int64, currency string, interval string) (*stripe.Price, error)
	UpdatePriceActive(ctx context.Context, priceID string, active bool) (*stripe.Price, error)

	CreatePaymentIntent(ctx context.Context, amount int64, currency string, transferAmount int64, destination string, metadata map[string]string) (*stripe.PaymentIntent, error)
	RetrievePaymentIntent(ctx context.Context, paymentIntentID string) (*stripe.PaymentIntent, error)
	CancelPaymentIntent(ctx context.Context, paymentIntentID string) (*stripe.PaymentIntent, error)

	CreateRefund(ctx context.Context, paymentIntentID string, amount *int64) (*stripe.Refund, error)

	LookupOrCreateCustomer(ctx context.Context, email string, name string) (*stripe.Customer, error)

	CreateSubscription(ctx context.Context, customerID string, priceID string, destination string, metadata map[string]string) (*stripe.Subscription, error)
	RetrieveSubscription(ctx context.Context, subscriptionID string) (*stripe.Subscription, error)
	CancelSubscriptionAtPeriodEnd(ctx context.Context, subscriptionID string) (*stripe.Subscription, error)
	CancelSubscriptionNow(ctx context.Context, subscriptionID string) (*stripe.Subscription, error)

	CreateCheckoutSession(ctx context.Context, customerID string, priceID string, metadata map[string]string) (*stripe.CheckoutSession, error)

	CreateConnectAccount(ctx context.Context, email string, userID string) (*stripe.Account, error)
	RetrieveConnectAccount(ctx context.Context, accountID string) (*stripe.Account, error)
	CreateOnboardingLink(ctx context.Context, accountID string) (*stripe.AccountLink, error)
	CreateDashboardLink(ctx context.Context, accountID string) (*stripe.LoginLink, error)
}

// Share of a creator-plan invoice routed to the creator's connected
// account; the platform keeps the rest.
const creatorRevenuePercent = 90.0

type stripeGateway struct {
	sc  *client.API
	cfg StripeConfig
}

func NewStripeGateway(cfg StripeConfig) (StripeGatewayInterface, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("missing stripe secret key")
	}
	sc := &client.API{}
	sc.Init(cfg.SecretKey, nil)
	return &stripeGateway{sc: sc, cfg: cfg}, nil
}

func (g *stripeGateway) CreateProduct(ctx context.Context, name string, description *string, metadata map[string]string) (*stripe.Product, error) {
	params := &stripe.ProductParams{
		Params: stripe.Params{Context: ctx},
		Name:   stripe.String(name),
	}
	if description != nil {
		params.Description = stripe.String(*description)
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	return g.sc.Products.New(params)
}

func (g *stripeGateway) UpdateProduct(ctx context.Context, productID string, name *string, description *string, active *bool) (*stripe.Product, error) {
	params := &stripe.ProductParams{Params: stripe.Params{Context: ctx}}
	if name != nil {
		params.Name = stripe.String(*name)
	}
	if description != nil {
		params.Description = stripe.String(*description)
	}
	if active != nil {
		params.Active = stripe.Bool(*active)
	}
	return g.sc.Products.Update(productID, params)
}

func (g *stripeGateway) ArchiveProduct(ctx context.Context, productID string) (*stripe.Product, error) {
	params := &stripe.ProductParams{
		Params: stripe.Params{Context: ctx},
		Active: stripe.Bool(false),
	}
	return g.sc.Products.Update(productID, params)
}

func (g *stripeGateway) CreatePrice(ctx context.Context, productID string, unitAmount int64, currency string, interval string) (*stripe.Price, error) {
	params := &stripe.PriceParams{
		Params:     stripe.Params{Context: ctx},
		Product:    stripe.String(productID),
		UnitAmount: stripe.Int64(unitAmount),
		Currency:   stripe.String(strings.ToLower(currency)),
		Recurring: &stripe.PriceRecurringParams{
			Interval: stripe.String(interval),
		},
	}
	return g.sc.Prices.New(params)
}

func (g *stripeGateway) UpdatePriceActive(ctx context.Context, priceID string, active bool) (*stripe.Price, error) {
	params := &stripe.PriceParams{
		Params: stripe.Params{Context: ctx},
		Active: stripe.Bool(active),
	}
	return g.sc.Prices.Update(priceID, params)
}

func (g *stripeGateway) CreatePaymentIntent(ctx context.Context, amount int64, currency string, transferAmount int64, destination string, metadata map[string]string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(strings.ToLower(currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if destination != "" && transferAmount > 0 {
		params.TransferData = &stripe.PaymentIntentTransferDataParams{
			Destination: stripe.String(destination),
			Amount:      stripe.Int64(transferAmount),
		}
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	return g.sc.PaymentIntents.New(params)
}

func (g *stripeGateway) RetrievePaymentIntent(ctx context.Context, paymentIntentID string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{Params: stripe.Params{Context: ctx}}
	return g.sc.PaymentIntents.Get(paymentIntentID, params)
}

func (g *stripeGateway) CancelPaymentIntent(ctx context.Context, paymentIntentID string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentCancelParams{Params: stripe.Params{Context: ctx}}
	return g.sc.PaymentIntents.Cancel(paymentIntentID, params)
}

func (g *stripeGateway) CreateRefund(ctx context.Context, paymentIntentID string, amount *int64) (*stripe.Refund, error) {
	params := &stripe.RefundParams{
		Params:        stripe.Params{Context: ctx},
		PaymentIntent: stripe.String(paymentIntentID),
	}
	if amount != nil {
		params.Amount = stripe.Int64(*amount)
	}
	return g.sc.Refunds.New(params)
}

// LookupOrCreateCustomer reuses an existing Stripe customer with the
// same email so repeated checkouts do not multiply customer objects.
func (g *stripeGateway) LookupOrCreateCustomer(ctx context.Context, email string, name string) (*stripe.Customer, error) {
	listParams := &stripe.CustomerListParams{Email: stripe.String(email)}
	listParams.Context = ctx
	listParams.Limit = stripe.Int64(1)
	iter := g.sc.Customers.List(listParams)
	for iter.Next() {
		return iter.Customer(), nil
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("customer lookup: %w", err)
	}

	params := &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
		Email:  stripe.String(email),
		Name:   stripe.String(name),
	}
	return g.sc.Customers.New(params)
}

func (g *stripeGateway) CreateSubscription(ctx context.Context, customerID string, priceID string, destination string, metadata map[string]string) (*stripe.Subscription, error) {
	params := &stripe.SubscriptionParams{
		Params:   stripe.Params{Context: ctx},
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(priceID)},
		},
		PaymentBehavior: stripe.String("default_incomplete"),
		PaymentSettings: &stripe.SubscriptionPaymentSettingsParams{
			SaveDefaultPaymentMethod: stripe.String("on_subscription"),
		},
	}
	if destination != "" {
		params.TransferData = &stripe.SubscriptionTransferDataParams{
			Destination:   stripe.String(destination),
			AmountPercent: stripe.Float64(creatorRevenuePercent),
		}
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	params.AddExpand("latest_invoice.payment_intent")
	return g.sc.Subscriptions.New(params)
}

func (g *stripeGateway) RetrieveSubscription(ctx context.Context, subscriptionID string) (*stripe.Subscription, error) {
	params := &stripe.SubscriptionParams{Params: stripe.Params{Context: ctx}}
	return g.sc.Subscriptions.Get(subscriptionID, params)
}

func (g *stripeGateway) CancelSubscriptionAtPeriodEnd(ctx context.Context, subscriptionID string) (*stripe.Subscription, error) {
	params := &stripe.SubscriptionParams{
		Params:            stripe.Params{Context: ctx},
		CancelAtPeriodEnd: stripe.Bool(true),
	}
	return g.sc.Subscriptions.Update(subscriptionID, params)
}

func (g *stripeGateway) CancelSubscriptionNow(ctx context.Context, subscriptionID string) (*stripe.Subscription, error) {
	params := &stripe.SubscriptionCancelParams{Params: stripe.Params{Context: ctx}}
	return g.sc.Subscriptions.Cancel(subscriptionID, params)
}

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, customerID string, priceID string, metadata map[string]string) (*stripe.CheckoutSession, error) {
	base := strings.TrimRight(g.cfg.FrontendBaseURL, "/")
	params := &stripe.CheckoutSessionParams{
		Params:   stripe.Params{Context: ctx},
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer: stripe.String(customerID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL: stripe.String(base + "/billing/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(base + "/billing/cancel"),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: metadata,
		},
	}
	return g.sc.CheckoutSessions.New(params)
}

func (g *stripeGateway) CreateConnectAccount(ctx context.Context, email string, userID string) (*stripe.Account, error) {
	params := &stripe.AccountParams{
		Params: stripe.Params{Context: ctx},
		Type:   stripe.String(string(stripe.AccountTypeExpress)),
		Email:  stripe.String(email),
	}
	// The account.updated webhook reads this back to find the local user.
	params.AddMetadata("userId", userID)
	return g.sc.Accounts.New(params)
}

func (g *stripeGateway) RetrieveConnectAccount(ctx context.Context, accountID string) (*stripe.Account, error) {
	params := &stripe.AccountParams{Params: stripe.Params{Context: ctx}}
	return g.sc.Accounts.GetByID(accountID, params)
}

func (g *stripeGateway) CreateOnboardingLink(ctx context.Context, accountID string) (*stripe.AccountLink, error) {
	base := strings.TrimRight(g.cfg.FrontendBaseURL, "/")
	params := &stripe.AccountLinkParams{
		Params:     stripe.Params{Context: ctx},
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(base + "/connect/refresh"),
		ReturnURL:  stripe.String(base + "/connect/return"),
		Type:       stripe.String("account_onboarding"),
	}
	return g.sc.AccountLinks.New(params)
}

func (g *stripeGateway) CreateDashboardLink(ctx context.Context, accountID string) (*stripe.LoginLink, error) {
	params := &stripe.LoginLinkParams{
		Params:  stripe.Params{Context: ctx},
		Account: stripe.String(accountID),
	}
	return g.sc.LoginLinks.New(params)
}
