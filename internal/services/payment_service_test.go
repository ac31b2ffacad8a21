package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gathr/internal/models/db_models"
	"gathr/internal/models/request_models"
	"gathr/internal/repositories"
	"gathr/pkg/utils"
)

func newPaymentHarness(t *testing.T) (*gorm.DB, *fakeGateway, PaymentServiceInterface) {
	t.Helper()
	db := newTestDB(t)
	gateway := &fakeGateway{}
	svc := NewPaymentService(
		db,
		gateway,
		repositories.NewTransactionRepository(),
		repositories.NewSubscriptionRepository(),
		repositories.NewProductRepository(),
		repositories.NewAttendeeRepository(),
		repositories.NewEventRepository(),
		repositories.NewUserRepository(),
	)
	return db, gateway, svc
}

func TestCreateTicketPaymentIntentComputesTransfer(t *testing.T) {
	db, _, svc := newPaymentHarness(t)

	buyer := seedUser(t, db, "buyer")
	host := seedUser(t, db, "host")
	host.StripeAccountID = "acct_host"
	host.StripeAccountStatus = db_models.ConnectStatusActive
	require.NoError(t, db.Save(host).Error)
	event := seedEvent(t, db, host.ID, 2500)

	resp, err := svc.CreateTicketPaymentIntent(context.Background(), buyer.ID, &request_models.CreateTicketIntentRequest{
		EventID:  event.ID.String(),
		Quantity: 2,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 5000, resp.Amount)
	assert.EqualValues(t, 4500, resp.TransferAmount, "host receives 90%")
	assert.Equal(t, "usd", resp.Currency)
	assert.NotEmpty(t, resp.ClientSecret)
}

func TestCreateTicketPaymentIntentWithoutOnboardedHost(t *testing.T) {
	db, _, svc := newPaymentHarness(t)

	buyer := seedUser(t, db, "buyer")
	host := seedUser(t, db, "host") // never onboarded
	event := seedEvent(t, db, host.ID, 2500)

	resp, err := svc.CreateTicketPaymentIntent(context.Background(), buyer.ID, &request_models.CreateTicketIntentRequest{
		EventID:  event.ID.String(),
		Quantity: 1,
	})
	require.NoError(t, err)
	assert.Zero(t, resp.TransferAmount, "no transfer until payouts are enabled")
}

func TestCreateEventAttendeesLinksExistingTransaction(t *testing.T) {
	db, _, svc := newPaymentHarness(t)

	buyer := seedUser(t, db, "buyer")
	host := seedUser(t, db, "host")
	event := seedEvent(t, db, host.ID, 2500)

	// The webhook has already landed: the transaction exists before the
	// attendee-creation request arrives.
	txn := &db_models.Transaction{
		Type: db_models.TxnTypeEvent, Status: db_models.TxnStatusSucceeded,
		PaymentIntentID: "pi_done", Amount: 25.00, Currency: "usd",
		UserID: buyer.ID, EventID: &event.ID,
	}
	require.NoError(t, db.Create(txn).Error)

	err := svc.CreateEventAttendees(context.Background(), buyer.ID, &request_models.CreateAttendeesRequest{
		EventID:         event.ID.String(),
		PaymentIntentID: "pi_done",
		Attendees:       []request_models.AttendeeInput{{GuestName: "Ada"}},
	})
	require.NoError(t, err)

	var attendee db_models.EventAttendee
	require.NoError(t, db.First(&attendee, "event_id = ?", event.ID).Error)
	require.NotNil(t, attendee.TransactionID, "attendee is born linked")
	assert.Equal(t, txn.ID, *attendee.TransactionID)
}

func TestCreateEventAttendeesBeforeWebhook(t *testing.T) {
	db, _, svc := newPaymentHarness(t)

	buyer := seedUser(t, db, "buyer")
	host := seedUser(t, db, "host")
	event := seedEvent(t, db, host.ID, 2500)

	err := svc.CreateEventAttendees(context.Background(), buyer.ID, &request_models.CreateAttendeesRequest{
		EventID:         event.ID.String(),
		PaymentIntentID: "pi_pending",
		Attendees:       []request_models.AttendeeInput{{GuestName: "Ada"}, {GuestName: "Grace"}},
	})
	require.NoError(t, err, "missing transaction does not block registration")

	var attendees []db_models.EventAttendee
	require.NoError(t, db.Find(&attendees, "event_id = ?", event.ID).Error)
	require.Len(t, attendees, 2)
	for _, a := range attendees {
		assert.Nil(t, a.TransactionID, "link is deferred to the webhook")
	}
}

func TestCreateSubscriptionIntentRoundTripsMetadata(t *testing.T) {
	db, _, svc := newPaymentHarness(t)

	subscriber := seedUser(t, db, "subscriber")
	creator := seedUser(t, db, "creator")
	require.NoError(t, db.Create(&db_models.StripeProduct{
		StripeProductID: "prod_creator", OwnerID: creator.ID, Name: "Gold", Active: true,
	}).Error)
	require.NoError(t, db.Create(&db_models.StripePrice{
		StripePriceID: "price_creator", StripeProductID: "prod_creator",
		UnitAmount: 1000, Currency: "usd", Interval: "month", Active: true,
	}).Error)

	resp, err := svc.CreateSubscriptionIntent(context.Background(), subscriber.ID, &request_models.CreateSubscriptionIntentRequest{
		ProductID: "prod_creator",
	})
	require.NoError(t, err)
	assert.Equal(t, "sub_fake", resp.SubscriptionID)

	// The customer id is persisted so the next checkout reuses it.
	var refreshed db_models.User
	require.NoError(t, db.First(&refreshed, "id = ?", subscriber.ID).Error)
	assert.Equal(t, "cus_fake", refreshed.StripeCustomerID)
}

func TestCreateSubscriptionIntentRejectsPlatformProduct(t *testing.T) {
	db, _, svc := newPaymentHarness(t)

	subscriber := seedUser(t, db, "subscriber")
	require.NoError(t, db.Create(&db_models.StripeProduct{
		StripeProductID: "prod_platform", Name: "Pro", IsPlatform: true, Active: true,
	}).Error)

	_, err := svc.CreateSubscriptionIntent(context.Background(), subscriber.ID, &request_models.CreateSubscriptionIntentRequest{
		ProductID: "prod_platform",
	})
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestCreatePlatformCheckoutRequiresPlatformProduct(t *testing.T) {
	db, _, svc := newPaymentHarness(t)

	subscriber := seedUser(t, db, "subscriber")
	creator := seedUser(t, db, "creator")
	require.NoError(t, db.Create(&db_models.StripeProduct{
		StripeProductID: "prod_creator", OwnerID: creator.ID, Name: "Gold", Active: true,
	}).Error)
	require.NoError(t, db.Create(&db_models.StripePrice{
		StripePriceID: "price_creator", StripeProductID: "prod_creator",
		UnitAmount: 1000, Currency: "usd", Interval: "month", Active: true,
	}).Error)

	_, err := svc.CreatePlatformCheckoutSession(context.Background(), subscriber.ID, &request_models.CreatePlatformCheckoutRequest{
		PriceID: "price_creator",
	})
	assert.ErrorIs(t, err, utils.ErrProductNotFound, "creator prices cannot enter platform checkout")
}

func TestCancelSubscriptionOnlyByOwner(t *testing.T) {
	db, gateway, svc := newPaymentHarness(t)

	subscriber := seedUser(t, db, "subscriber")
	creator := seedUser(t, db, "creator")
	stranger := seedUser(t, db, "stranger")
	require.NoError(t, db.Create(&db_models.Subscription{
		UserID: subscriber.ID, OwnerID: creator.ID,
		StripeSubscriptionID: "sub_1", Status: db_models.SubStatusActive,
	}).Error)

	err := svc.CancelSubscription(context.Background(), stranger.ID, &request_models.CancelSubscriptionRequest{
		SubscriptionID: "sub_1",
	})
	assert.ErrorIs(t, err, utils.ErrForbidden)
	assert.Empty(t, gateway.canceledPeriodEnd)

	require.NoError(t, svc.CancelSubscription(context.Background(), subscriber.ID, &request_models.CancelSubscriptionRequest{
		SubscriptionID: "sub_1",
	}))
	assert.Equal(t, []string{"sub_1"}, gateway.canceledPeriodEnd)

	var sub db_models.Subscription
	require.NoError(t, db.First(&sub, "stripe_subscription_id = ?", "sub_1").Error)
	assert.True(t, sub.CancelAtPeriodEnd)
	assert.Equal(t, db_models.SubStatusActive, sub.Status, "status flips only via webhook")
}

func TestRefundTransactionOnlyByHost(t *testing.T) {
	db, _, svc := newPaymentHarness(t)

	buyer := seedUser(t, db, "buyer")
	host := seedUser(t, db, "host")
	require.NoError(t, db.Create(&db_models.Transaction{
		Type: db_models.TxnTypeEvent, Status: db_models.TxnStatusSucceeded,
		PaymentIntentID: "pi_1", Amount: 50.00, Currency: "usd",
		UserID: buyer.ID, HostID: &host.ID,
	}).Error)

	err := svc.RefundTransaction(context.Background(), buyer.ID, &request_models.RefundRequest{
		PaymentIntentID: "pi_1",
	})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	require.NoError(t, svc.RefundTransaction(context.Background(), host.ID, &request_models.RefundRequest{
		PaymentIntentID: "pi_1",
	}))

	// The ledger stays SUCCEEDED until charge.refunded confirms.
	var txn db_models.Transaction
	require.NoError(t, db.First(&txn, "payment_intent_id = ?", "pi_1").Error)
	assert.Equal(t, db_models.TxnStatusSucceeded, txn.Status)
}

func TestCreateOnboardingLinkCreatesAccountOnce(t *testing.T) {
	db, _, svc := newPaymentHarness(t)

	creator := seedUser(t, db, "creator")

	resp, err := svc.CreateOnboardingLink(context.Background(), creator.ID)
	require.NoError(t, err)
	assert.Equal(t, "acct_fake", resp.AccountID)
	assert.NotEmpty(t, resp.URL)

	var refreshed db_models.User
	require.NoError(t, db.First(&refreshed, "id = ?", creator.ID).Error)
	assert.Equal(t, "acct_fake", refreshed.StripeAccountID)
	assert.Equal(t, db_models.ConnectStatusActionRequired, refreshed.StripeAccountStatus)

	// Second call reuses the account instead of creating another.
	resp2, err := svc.CreateOnboardingLink(context.Background(), creator.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.AccountID, resp2.AccountID)
}

func TestCreateDashboardLinkRequiresActiveAccount(t *testing.T) {
	db, _, svc := newPaymentHarness(t)

	creator := seedUser(t, db, "creator")
	creator.StripeAccountID = "acct_1"
	creator.StripeAccountStatus = db_models.ConnectStatusPendingVerification
	require.NoError(t, db.Save(creator).Error)

	_, err := svc.CreateDashboardLink(context.Background(), creator.ID)
	assert.ErrorIs(t, err, utils.ErrConnectNotOnboarded)

	creator.StripeAccountStatus = db_models.ConnectStatusActive
	require.NoError(t, db.Save(creator).Error)

	resp, err := svc.CreateDashboardLink(context.Background(), creator.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.URL)
}
