package repositories_fx

import (
	"go.uber.org/fx"

	"gathr/internal/repositories"
)

var Module = fx.Provide(
	repositories.NewUserRepository,
	repositories.NewEventRepository,
	repositories.NewAttendeeRepository,
	repositories.NewTransactionRepository,
	repositories.NewSubscriptionRepository,
	repositories.NewPlatformSubscriptionRepository,
	repositories.NewProductRepository,
)
