package payment_service_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"gathr/internal/api/controllers"
	"gathr/internal/repositories"
	"gathr/internal/services"
)

var Module = fx.Provide(
	providePaymentService, providePaymentController,
)

func providePaymentService(
	db *gorm.DB,
	gateway services.StripeGatewayInterface,
	transactions repositories.TransactionRepositoryInterface,
	subs repositories.SubscriptionRepositoryInterface,
	products repositories.ProductRepositoryInterface,
	attendees repositories.AttendeeRepositoryInterface,
	events repositories.EventRepositoryInterface,
	users repositories.UserRepositoryInterface,
) services.PaymentServiceInterface {
	return services.NewPaymentService(db, gateway, transactions, subs, products, attendees, events, users)
}

func providePaymentController(paymentService services.PaymentServiceInterface) *controllers.PaymentController {
	return controllers.NewPaymentController(paymentService)
}
