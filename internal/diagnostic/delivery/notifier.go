package delivery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"monpro-diagnostic/internal/common/config"
	"monpro-diagnostic/internal/common/logger"
	"monpro-diagnostic/internal/models"
)

var ErrNotificationSendFailed = errors.New("NOTIFICATION_SEND_FAILED")

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// NotifierSink alerts the operator about a new lead. Email goes out
// for every card; SMS only for cards at or above the priority
// threshold.
type NotifierSink struct {
	config    config.NotificationConfig
	sesClient SESService
	snsClient SNSService
	logger    logger.Logger
}

func NewNotifierSink(cfg config.NotificationConfig, sesClient SESService, snsClient SNSService, log logger.Logger) *NotifierSink {
	return &NotifierSink{
		config:    cfg,
		sesClient: sesClient,
		snsClient: snsClient,
		logger:    log,
	}
}

func (s *NotifierSink) Name() string { return "notifier" }

func (s *NotifierSink) Deliver(ctx context.Context, card *models.Battlecard) error {
	if s.config.Email.Enabled && s.sesClient != nil {
		if err := s.sendEmail(ctx, card); err != nil {
			return fmt.Errorf("%w: email: %v", ErrNotificationSendFailed, err)
		}
	}

	if s.config.SMS.Enabled && s.snsClient != nil && card.PriorityScore >= s.config.SMS.PriorityThreshold {
		if err := s.sendSMS(ctx, card); err != nil {
			return fmt.Errorf("%w: sms: %v", ErrNotificationSendFailed, err)
		}
	}

	return nil
}

func (s *NotifierSink) sendEmail(ctx context.Context, card *models.Battlecard) error {
	subject := fmt.Sprintf("New %s lead from %s (Priority: %d)", card.Path, card.Region, card.PriorityScore)
	body := emailBody(card)

	_, err := s.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &sestypes.Destination{
			ToAddresses: []string{s.config.Email.AdminEmail},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(s.config.Email.FromEmail),
	})
	return err
}

func (s *NotifierSink) sendSMS(ctx context.Context, card *models.Battlecard) error {
	message := fmt.Sprintf("High-priority lead %s: %s %s (%s), score %d",
		card.LeadID, card.FirstName, card.LastName, card.BrandName, card.PriorityScore)

	_, err := s.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(s.config.SMS.AdminPhone),
		Message:     aws.String(message),
	})
	return err
}

func emailBody(card *models.Battlecard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Lead %s\n\n", card.LeadID)
	fmt.Fprintf(&b, "Name:   %s %s\n", card.FirstName, card.LastName)
	fmt.Fprintf(&b, "Brand:  %s\n", card.BrandName)
	fmt.Fprintf(&b, "Email:  %s\n", card.Email)
	fmt.Fprintf(&b, "Region: %s, Path: %s\n", card.Region, card.Path)
	fmt.Fprintf(&b, "Priority score: %d\n", card.PriorityScore)
	fmt.Fprintf(&b, "Estimated monthly impact: %d %s\n\n",
		card.EstimatedROI.MonthlyImpact, card.EstimatedROI.Currency)

	b.WriteString("Revenue leaks:\n")
	for _, leak := range card.RevenueLeaks {
		fmt.Fprintf(&b, "- %s\n", leak)
	}
	b.WriteString("\nRecommended automations:\n")
	for _, rec := range card.RecommendedAutomations {
		fmt.Fprintf(&b, "- %s\n", rec)
	}
	return b.String()
}
