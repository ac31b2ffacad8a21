package event_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"gathr/internal/api/controllers"
	"gathr/internal/repositories"
	"gathr/internal/services"
)

var Module = fx.Provide(
	provideEventService, provideEventController)

func provideEventService(
	db *gorm.DB,
	events repositories.EventRepositoryInterface,
	attendees repositories.AttendeeRepositoryInterface,
) services.EventServiceInterface {
	return services.NewEventService(db, events, attendees)
}

func provideEventController(eventService services.EventServiceInterface) *controllers.EventController {
	return controllers.NewEventController(eventService)
}
