package user_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"gathr/internal/api/controllers"
	"gathr/internal/repositories"
	"gathr/internal/services"
	mem "gathr/pkg/memcache"
)

var Module = fx.Provide(
	provideUserService, provideUserController)

func provideUserService(
	db *gorm.DB,
	users repositories.UserRepositoryInterface,
	mail services.IMailService,
	resetTokens mem.ResetTokenStore,
) services.UserServiceInterface {
	return services.NewUserService(db, users, mail, resetTokens)
}

func provideUserController(userService services.UserServiceInterface) *controllers.UserController {
	return controllers.NewUserController(userService)
}
