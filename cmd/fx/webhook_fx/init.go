package webhook_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"gathr/internal/api/controllers"
	"gathr/internal/repositories"
	"gathr/internal/services"
)

var Module = fx.Provide(
	provideWebhookService, provideWebhookController)

func provideWebhookService(
	db *gorm.DB,
	cfg services.StripeConfig,
	gateway services.StripeGatewayInterface,
	notifier services.NotificationServiceInterface,
	transactions repositories.TransactionRepositoryInterface,
	subs repositories.SubscriptionRepositoryInterface,
	platformSubs repositories.PlatformSubscriptionRepositoryInterface,
	products repositories.ProductRepositoryInterface,
	attendees repositories.AttendeeRepositoryInterface,
	users repositories.UserRepositoryInterface,
) services.StripeWebhookServiceInterface {
	return services.NewStripeWebhookService(db, cfg, gateway, notifier,
		transactions, subs, platformSubs, products, attendees, users)
}

func provideWebhookController(webhookService services.StripeWebhookServiceInterface) *controllers.StripeWebhookController {
	return controllers.NewStripeWebhookController(webhookService)
}
