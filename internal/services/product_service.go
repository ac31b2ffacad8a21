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

// ProductServiceInterface manages creator plans: a Stripe product plus
// a recurring price, mirrored locally. Stripe is the source of truth for
// product/price state; the local rows are a cache kept current by the
// product/price webhooks.
type ProductServiceInterface interface {
	CreateProduct(ctx context.Context, ownerID uuid.UUID, req *request_models.CreateProductRequest) (*response_models.ProductResponse, error)
	UpdateProduct(ctx context.Context, ownerID uuid.UUID, stripeProductID string, req *request_models.UpdateProductRequest) (*response_models.ProductResponse, error)
	ArchiveProduct(ctx context.Context, ownerID uuid.UUID, stripeProductID string) error
	ListProducts(ctx context.Context, ownerID uuid.UUID) ([]response_models.ProductResponse, error)
}

type productService struct {
	db      *gorm.DB
	gateway StripeGatewayInterface

	products repositories.ProductRepositoryInterface
	subs     repositories.SubscriptionRepositoryInterface
}

func NewProductService(
	db *gorm.DB,
	gateway StripeGatewayInterface,
	products repositories.ProductRepositoryInterface,
	subs repositories.SubscriptionRepositoryInterface,
) ProductServiceInterface {
	return &productService{db: db, gateway: gateway, products: products, subs: subs}
}

// CreateProduct creates the product and price at Stripe first, then
// mirrors them. If the mirror write fails the webhook for
// product.updated will not find the row and skips it, so the worst
// case is an orphaned Stripe product, visible in the dashboard.
func (s *productService) CreateProduct(ctx context.Context, ownerID uuid.UUID, req *request_models.CreateProductRequest) (*response_models.ProductResponse, error) {
	sp, err := s.gateway.CreateProduct(ctx, req.Name, req.Description, map[string]string{
		"owner_id": ownerID.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	price, err := s.gateway.CreatePrice(ctx, sp.ID, req.AmountMinor, req.Currency, req.Interval)
	if err != nil {
		return nil, fmt.Errorf("create price: %w", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		product := &db_models.StripeProduct{
			StripeProductID: sp.ID,
			OwnerID:         ownerID,
			Name:            req.Name,
			Description:     req.Description,
			Active:          true,
		}
		if err := s.products.InsertProduct(ctx, tx, product); err != nil {
			return err
		}
		return s.products.InsertPrice(ctx, tx, &db_models.StripePrice{
			StripePriceID:   price.ID,
			StripeProductID: sp.ID,
			UnitAmount:      req.AmountMinor,
			Currency:        req.Currency,
			Interval:        req.Interval,
			Active:          true,
		})
	})
	if err != nil {
		return nil, err
	}

	return &response_models.ProductResponse{
		StripeProductID: sp.ID,
		Name:            req.Name,
		Description:     req.Description,
		Active:          true,
		PriceID:         price.ID,
		AmountMinor:     req.AmountMinor,
		Currency:        req.Currency,
		Interval:        req.Interval,
	}, nil
}

func (s *productService) UpdateProduct(ctx context.Context, ownerID uuid.UUID, stripeProductID string, req *request_models.UpdateProductRequest) (*response_models.ProductResponse, error) {
	product, err := s.products.FindProductByStripeID(ctx, s.db, stripeProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.IsDeleted {
		return nil, utils.ErrProductNotFound
	}
	if product.OwnerID != ownerID {
		return nil, utils.ErrForbidden
	}

	if _, err := s.gateway.UpdateProduct(ctx, stripeProductID, req.Name, req.Description, req.Active); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	// Mirror immediately rather than waiting for product.updated; the
	// webhook re-applying the same values later is a harmless no-op.
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Active != nil {
		product.Active = *req.Active
	}
	if err := s.products.SaveProduct(ctx, s.db, product); err != nil {
		return nil, err
	}

	resp := &response_models.ProductResponse{
		StripeProductID: product.StripeProductID,
		Name:            product.Name,
		Description:     product.Description,
		Active:          product.Active,
	}
	if price, err := s.products.FindActivePriceByProduct(ctx, s.db, product.StripeProductID); err == nil && price != nil {
		resp.PriceID = price.StripePriceID
		resp.AmountMinor = price.UnitAmount
		resp.Currency = price.Currency
		resp.Interval = price.Interval
	}
	return resp, nil
}

// ArchiveProduct retires a plan: the Stripe product is deactivated and
// every active subscription to it is scheduled to cancel at period end,
// so existing subscribers keep what they paid for. Per-subscription
// gateway failures are logged and skipped, and the local flags are set
// regardless: a retired plan must stop selling even if the remote side
// needs another pass.
func (s *productService) ArchiveProduct(ctx context.Context, ownerID uuid.UUID, stripeProductID string) error {
	product, err := s.products.FindProductByStripeID(ctx, s.db, stripeProductID)
	if err != nil {
		return err
	}
	if product == nil || product.IsDeleted {
		return utils.ErrProductNotFound
	}
	if product.OwnerID != ownerID {
		return utils.ErrForbidden
	}

	if _, err := s.gateway.ArchiveProduct(ctx, stripeProductID); err != nil {
		log.Printf("product: archiving %s at stripe failed, continuing locally: %v", stripeProductID, err)
	}

	subs, err := s.subs.ListActiveByProduct(ctx, s.db, stripeProductID)
	if err != nil {
		return err
	}
	for _, sub := range subs {
		if _, err := s.gateway.CancelSubscriptionAtPeriodEnd(ctx, sub.StripeSubscriptionID); err != nil {
			log.Printf("product: period-end cancel of %s failed: %v", sub.StripeSubscriptionID, err)
			continue
		}
		sub.CancelAtPeriodEnd = true
		if err := s.subs.Save(ctx, s.db, &sub); err != nil {
			return err
		}
	}

	product.Active = false
	product.IsDeleted = true
	return s.products.SaveProduct(ctx, s.db, product)
}

func (s *productService) ListProducts(ctx context.Context, ownerID uuid.UUID) ([]response_models.ProductResponse, error) {
	products, err := s.products.ListProductsByOwner(ctx, s.db, ownerID)
	if err != nil {
		return nil, err
	}

	out := make([]response_models.ProductResponse, 0, len(products))
	for _, p := range products {
		resp := response_models.ProductResponse{
			StripeProductID: p.StripeProductID,
			Name:            p.Name,
			Description:     p.Description,
			Active:          p.Active,
		}
		if price, err := s.products.FindActivePriceByProduct(ctx, s.db, p.StripeProductID); err == nil && price != nil {
			resp.PriceID = price.StripePriceID
			resp.AmountMinor = price.UnitAmount
			resp.Currency = price.Currency
			resp.Interval = price.Interval
		}
		out = append(out, resp)
	}
	return out, nil
}
