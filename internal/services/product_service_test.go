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

func newProductHarness(t *testing.T) (*gorm.DB, *fakeGateway, ProductServiceInterface) {
	t.Helper()
	db := newTestDB(t)
	gateway := &fakeGateway{}
	svc := NewProductService(
		db,
		gateway,
		repositories.NewProductRepository(),
		repositories.NewSubscriptionRepository(),
	)
	return db, gateway, svc
}

func TestCreateProductMirrorsLocally(t *testing.T) {
	db, _, svc := newProductHarness(t)
	creator := seedUser(t, db, "creator")

	resp, err := svc.CreateProduct(context.Background(), creator.ID, &request_models.CreateProductRequest{
		Name:        "Gold",
		AmountMinor: 1500,
		Currency:    "usd",
		Interval:    "month",
	})
	require.NoError(t, err)
	assert.Equal(t, "prod_fake", resp.StripeProductID)
	assert.Equal(t, "price_fake", resp.PriceID)

	var product db_models.StripeProduct
	require.NoError(t, db.First(&product, "stripe_product_id = ?", "prod_fake").Error)
	assert.Equal(t, creator.ID, product.OwnerID)
	assert.True(t, product.Active)

	var price db_models.StripePrice
	require.NoError(t, db.First(&price, "stripe_price_id = ?", "price_fake").Error)
	assert.EqualValues(t, 1500, price.UnitAmount)
	assert.Equal(t, "month", price.Interval)
}

func TestUpdateProductRejectsNonOwner(t *testing.T) {
	db, _, svc := newProductHarness(t)
	creator := seedUser(t, db, "creator")
	stranger := seedUser(t, db, "stranger")

	require.NoError(t, db.Create(&db_models.StripeProduct{
		StripeProductID: "prod_1", OwnerID: creator.ID, Name: "Gold", Active: true,
	}).Error)

	name := "Stolen"
	_, err := svc.UpdateProduct(context.Background(), stranger.ID, "prod_1", &request_models.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, utils.ErrForbidden)
}

func TestArchiveProductCancelsActiveSubscriptions(t *testing.T) {
	db, gateway, svc := newProductHarness(t)

	creator := seedUser(t, db, "creator")
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	require.NoError(t, db.Create(&db_models.StripeProduct{
		StripeProductID: "prod_1", OwnerID: creator.ID, Name: "Gold", Active: true,
	}).Error)
	require.NoError(t, db.Create(&db_models.Subscription{
		UserID: alice.ID, OwnerID: creator.ID,
		StripeSubscriptionID: "sub_alice", StripeProductID: "prod_1",
		Status: db_models.SubStatusActive,
	}).Error)
	require.NoError(t, db.Create(&db_models.Subscription{
		UserID: bob.ID, OwnerID: creator.ID,
		StripeSubscriptionID: "sub_bob", StripeProductID: "prod_1",
		Status: db_models.SubStatusCanceled, // already gone, must be skipped
	}).Error)

	require.NoError(t, svc.ArchiveProduct(context.Background(), creator.ID, "prod_1"))

	assert.Equal(t, []string{"sub_alice"}, gateway.canceledPeriodEnd)

	var product db_models.StripeProduct
	require.NoError(t, db.First(&product, "stripe_product_id = ?", "prod_1").Error)
	assert.True(t, product.IsDeleted)
	assert.False(t, product.Active)

	var alicesSub db_models.Subscription
	require.NoError(t, db.First(&alicesSub, "stripe_subscription_id = ?", "sub_alice").Error)
	assert.True(t, alicesSub.CancelAtPeriodEnd)
	assert.Equal(t, db_models.SubStatusActive, alicesSub.Status, "access survives until period end")
}
