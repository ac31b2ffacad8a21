package mail_fx

import (
	"log"
	"os"
	"strconv"

	"go.uber.org/fx"

	"gathr/internal/services"
)

var Module = fx.Provide(provideMailService, provideNotificationService)

func provideMailService() services.IMailService {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	cfg := services.SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
		FromName: "Gathr",

		AppName:    "Gathr",
		AppBaseURL: os.Getenv("FRONTEND_BASE_URL"),
	}

	mailService, err := services.NewSMTPMailService(cfg)
	if err != nil {
		log.Printf("Failed to initialize SMTP mail service: %v", err)
	}

	return mailService
}

func provideNotificationService(mail services.IMailService) services.NotificationServiceInterface {
	return services.NewNotificationService(mail, os.Getenv("FRONTEND_BASE_URL"))
}
