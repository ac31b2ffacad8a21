package product_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"gathr/internal/api/controllers"
	"gathr/internal/repositories"
	"gathr/internal/services"
)

var Module = fx.Provide(
	provideProductService, provideProductController)

func provideProductService(
	db *gorm.DB,
	gateway services.StripeGatewayInterface,
	products repositories.ProductRepositoryInterface,
	subs repositories.SubscriptionRepositoryInterface,
) services.ProductServiceInterface {
	return services.NewProductService(db, gateway, products, subs)
}

func provideProductController(productService services.ProductServiceInterface) *controllers.ProductController {
	return controllers.NewProductController(productService)
}
