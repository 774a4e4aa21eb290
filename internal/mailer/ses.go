// Package mailer sends back-office email through AWS SES v2, rendering
// bodies from Liquid templates. The service layers depend only on the
// Send outcome.
package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	appconfig "github.com/localpages/backoffice/internal/config"
)

// sesAPI is the slice of the SES v2 client used here, extracted for tests.
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESMailer implements the invitation.Mailer port over AWS SES v2.
type SESMailer struct {
	client    sesAPI
	renderer  *TemplateRenderer
	fromEmail string
	fromName  string
}

// NewSESMailer creates a mailer from config. Static credentials are used
// when provided; otherwise the default chain (IAM role) applies.
func NewSESMailer(ctx context.Context, cfg appconfig.MailerConfig) (*SESMailer, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &SESMailer{
		client:    sesv2.NewFromConfig(awsCfg),
		renderer:  NewTemplateRenderer(),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}, nil
}

// Send renders the template and submits the email. The caller bounds ctx;
// a deadline hit surfaces as a delivery error.
func (m *SESMailer) Send(ctx context.Context, recipient, subject, templateID string, vars map[string]interface{}) error {
	body, err := m.renderer.Render(templateID, vars)
	if err != nil {
		return err
	}

	from := m.fromEmail
	if m.fromName != "" {
		from = fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail)
	}

	_, err = m.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{recipient},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send to %s: %w", recipient, err)
	}
	return nil
}
