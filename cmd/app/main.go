package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"gathr/cmd/fx/db_fx"
	"gathr/cmd/fx/event_fx"
	"gathr/cmd/fx/mail_fx"
	"gathr/cmd/fx/memcache_fx"
	"gathr/cmd/fx/payment_service_fx"
	"gathr/cmd/fx/product_fx"
	"gathr/cmd/fx/repositories_fx"
	"gathr/cmd/fx/stripe_fx"
	"gathr/cmd/fx/user_fx"
	"gathr/cmd/fx/webhook_fx"
	"gathr/internal/api/controllers"
	"gathr/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment directly")
	}

	app := fx.New(
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		stripe_fx.Module,
		repositories_fx.Module,
		webhook_fx.Module,
		payment_service_fx.Module,
		product_fx.Module,
		event_fx.Module,
		user_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	webhookController *controllers.StripeWebhookController,
	paymentController *controllers.PaymentController,
	productController *controllers.ProductController,
	eventController *controllers.EventController,
	userController *controllers.UserController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, webhookController, paymentController, productController, eventController, userController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	webhookController *controllers.StripeWebhookController,
	paymentController *controllers.PaymentController,
	productController *controllers.ProductController,
	eventController *controllers.EventController,
	userController *controllers.UserController) {

	// Webhook endpoints take raw bodies from Stripe; no auth middleware,
	// the signature is the authentication.
	stripeGroup := r.Group("/api/stripe")
	stripeGroup.POST("/webhook/main-account", webhookController.HandleMainAccountWebhook)
	stripeGroup.POST("/webhook/connected-account", webhookController.HandleConnectedAccountWebhook)

	usersGroup := r.Group("/api/users")
	usersGroup.POST("/register", userController.Register)
	usersGroup.POST("/login", userController.Login)
	usersGroup.POST("/forgot-password", userController.ForgotPassword)
	usersGroup.POST("/reset-password", userController.ResetPassword)
	usersGroup.GET("/me", middleware.JWTAuthMiddleware(), userController.GetProfile)

	eventsGroup := r.Group("/api/events")
	eventsGroup.GET("", eventController.ListEvents)
	eventsGroup.GET("/:id", eventController.GetEvent)
	eventsGroup.POST("", middleware.JWTAuthMiddleware(), eventController.CreateEvent)
	eventsGroup.POST("/:id/rsvp", middleware.JWTAuthMiddleware(), eventController.RSVP)

	attendeesGroup := r.Group("/api/attendees", middleware.JWTAuthMiddleware())
	attendeesGroup.POST("/:attendeeId/check-in", eventController.CheckInAttendee)

	paymentsGroup := r.Group("/api/payments", middleware.JWTAuthMiddleware())
	paymentsGroup.POST("/ticket-intent", paymentController.CreateTicketIntent)
	paymentsGroup.POST("/attendees", paymentController.CreateAttendees)
	paymentsGroup.POST("/subscription-intent", paymentController.CreateSubscriptionIntent)
	paymentsGroup.POST("/platform-checkout", paymentController.CreatePlatformCheckout)
	paymentsGroup.POST("/cancel-subscription", paymentController.CancelSubscription)
	paymentsGroup.POST("/refund", paymentController.RefundTransaction)
	paymentsGroup.POST("/connect/onboarding-link", paymentController.CreateOnboardingLink)
	paymentsGroup.POST("/connect/dashboard-link", paymentController.CreateDashboardLink)

	productsGroup := r.Group("/api/products", middleware.JWTAuthMiddleware())
	productsGroup.POST("", productController.CreateProduct)
	productsGroup.GET("", productController.ListProducts)
	productsGroup.PATCH("/:id", productController.UpdateProduct)
	productsGroup.DELETE("/:id", productController.ArchiveProduct)
}
