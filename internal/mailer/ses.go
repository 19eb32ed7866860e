package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type SESMailer struct {
	client *ses.Client
	sender string
}

func NewSESMailer(ctx context.Context, region, sender string) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &SESMailer{client: ses.NewFromConfig(cfg), sender: sender}, nil
}

func (m *SESMailer) SendAccountCreated(ctx context.Context, name, email, password, roleLabel string) error {
	subject := fmt.Sprintf("Your %s Account is Ready!", roleLabel)
	htmlBody, textBody := AccountCreatedBody(name, email, password, roleLabel)

	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(m.sender),
		Destination: &types.Destination{
			ToAddresses: []string{email},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(htmlBody)},
				Text: &types.Content{Data: aws.String(textBody)},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send account email to %s: %w", email, err)
	}
	return nil
}

// AccountCreatedBody renders the account-details email. Exported for tests.
func AccountCreatedBody(name, email, password, roleLabel string) (html, text string) {
	html = fmt.Sprintf(`<div style="font-family: Arial, sans-serif; color: #333;">
<p>Dear %s,</p>
<p>Your account has been successfully created. Please use the following details to log into the system:</p>
<div style="background-color: #f9f9f9; padding: 15px; border-radius: 8px; border: 1px solid #ddd;">
<p><strong>Email:</strong> %s</p>
<p><strong>Password:</strong> %s</p>
</div>
<p>Welcome aboard!</p>
<p>Best regards,<br>The Risers Consultancy Team</p>
</div>`, name, email, password)

	text = fmt.Sprintf("Dear %s, Your account is ready. Email: %s, Password: %s", name, email, password)
	return html, text
}
