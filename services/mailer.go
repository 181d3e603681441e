package services

import (
	"context"
	"fmt"
	"os"

	"porchlite-server/utils"

	mailjet "github.com/mailjet/mailjet-apiv3-go"
)

// Mailer sends companion invitation email. Split behind an interface so the
// dispatcher can be exercised without the external service.
type Mailer interface {
	SendInvitation(email, name, propertyName string) error
}

// MailjetMailer is the production mailer. Configured with MJ_APIKEY_PUBLIC,
// MJ_APIKEY_PRIVATE and MAIL_FROM_ADDRESS.
type MailjetMailer struct {
	client *mailjet.Client
	from   string
}

func NewMailjetMailer() *MailjetMailer {
	return &MailjetMailer{
		client: mailjet.NewMailjetClient(os.Getenv("MJ_APIKEY_PUBLIC"), os.Getenv("MJ_APIKEY_PRIVATE")),
		from:   os.Getenv("MAIL_FROM_ADDRESS"),
	}
}

func (m *MailjetMailer) SendInvitation(email, name, propertyName string) error {
	messages := mailjet.MessagesV31{
		Info: []mailjet.InfoMessagesV31{
			{
				From: &mailjet.RecipientV31{
					Email: m.from,
					Name:  "PorchLite",
				},
				To: &mailjet.RecipientsV31{
					{Email: email, Name: name},
				},
				Subject:  fmt.Sprintf("You're invited to %s on PorchLite", propertyName),
				TextPart: fmt.Sprintf("Hi %s,\n\nYou've been added as a guest for an upcoming stay at %s. Create your PorchLite account with this email address to see arrival details, the house manual and local recommendations.\n", name, propertyName),
			},
		},
	}

	return utils.DefaultRetryPolicy.Do(context.Background(), "invitation email", func(ctx context.Context) error {
		_, err := m.client.SendMailV31(&messages)
		return err
	})
}
