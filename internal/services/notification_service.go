package services

import (
	"fmt"
	"log"
	"strings"
)

// NotificationServiceInterface is the fire-and-forget fan-out invoked
// after a ledger record reaches a success state. Delivery failures are
// logged and swallowed: they must never roll back a reconciliation
// transaction.
type NotificationServiceInterface interface {
	NotifyTicketPurchased(email string, eventTitle string, amount float64, currency string)
	NotifySubscriptionActivated(email string, productName string)
	NotifyRefundProcessed(email string, amount float64, currency string)
}

type notificationService struct {
	mail       IMailService
	appBaseURL string
}

func NewNotificationService(mail IMailService, appBaseURL string) NotificationServiceInterface {
	return &notificationService{mail: mail, appBaseURL: strings.TrimRight(appBaseURL, "/")}
}

func (n *notificationService) NotifyTicketPurchased(email string, eventTitle string, amount float64, currency string) {
	body := fmt.Sprintf("Your ticket for %s is confirmed. We charged %.2f %s.", eventTitle, amount, strings.ToUpper(currency))
	if err := n.mail.SendMailToNotifyUser(email, "Ticket confirmed", body, "View my tickets", n.appBaseURL+"/tickets"); err != nil {
		log.Printf("notification: ticket purchase mail to %s failed: %v", email, err)
	}
}

func (n *notificationService) NotifySubscriptionActivated(email string, productName string) {
	body := fmt.Sprintf("Your subscription to %s is now active.", productName)
	if err := n.mail.SendMailToNotifyUser(email, "Subscription active", body, "Manage subscription", n.appBaseURL+"/billing"); err != nil {
		log.Printf("notification: subscription mail to %s failed: %v", email, err)
	}
}

func (n *notificationService) NotifyRefundProcessed(email string, amount float64, currency string) {
	body := fmt.Sprintf("We processed a refund of %.2f %s to your original payment method.", amount, strings.ToUpper(currency))
	if err := n.mail.SendMailToNotifyUser(email, "Refund processed", body, "", ""); err != nil {
		log.Printf("notification: refund mail to %s failed: %v", email, err)
	}
}
