package otp

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/rojgari/candidate-intake/internal/config"
)

const mailSubject = "Your OTP Code"

// Mailer delivers a one-time code to a candidate's email.
type Mailer interface {
	SendCode(ctx context.Context, to, code string) error
}

// sesAPI is the subset of the SES client used here. Tests substitute a
// fake.
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESMailer sends the code as a plain-text email via AWS SES.
type SESMailer struct {
	client sesAPI
	sender string
}

// NewSESMailer builds an SESMailer using the default AWS credential
// chain and the configured region.
func NewSESMailer(ctx context.Context, cfg *config.MailConfig) (*SESMailer, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &SESMailer{client: ses.NewFromConfig(awsCfg), sender: cfg.Sender}, nil
}

// NewSESMailerFromClient wraps an existing client. Intended for tests.
func NewSESMailerFromClient(client sesAPI, sender string) *SESMailer {
	return &SESMailer{client: client, sender: sender}
}

// SendCode emails the code in plain text with a fixed subject.
func (m *SESMailer) SendCode(ctx context.Context, to, code string) error {
	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &sestypes.Destination{
			ToAddresses: []string{to},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(mailSubject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(fmt.Sprintf("Your OTP is: %s", code))},
			},
		},
		Source: aws.String(m.sender),
	})
	if err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}
	return nil
}
