package stripe_fx

import (
	"log"
	"os"

	"go.uber.org/fx"

	"gathr/internal/services"
)

var Module = fx.Provide(provideStripeConfig, provideStripeGateway)

func provideStripeConfig() services.StripeConfig {
	return services.StripeConfig{
		SecretKey:            os.Getenv("STRIPE_SECRET_KEY"),
		MainWebhookSecret:    os.Getenv("STRIPE_WEBHOOK_SECRET_MAIN"),
		ConnectWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET_CONNECT"),
		FrontendBaseURL:      os.Getenv("FRONTEND_BASE_URL"),
	}
}

func provideStripeGateway(cfg services.StripeConfig) services.StripeGatewayInterface {
	gateway, err := services.NewStripeGateway(cfg)
	if err != nil {
		log.Fatalf("Error initializing Stripe gateway: %v", err)
	}
	return gateway
}
