package service

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"
)

// EmailService sends transactional mail via Amazon SES. When no sender
// address is configured the service runs disabled and every send is a no-op.
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
	debug      bool
	logger     *zap.Logger
}

// NewEmailService creates a new email service
func NewEmailService(awsRegion, fromEmail, fromName, appBaseURL string, debug bool, logger *zap.Logger) (*EmailService, error) {
	if fromEmail == "" {
		logger.Info("email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{
			enabled: false,
			debug:   debug,
			logger:  logger,
		}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	logger.Info("email service enabled",
		zap.String("from", fromEmail), zap.String("region", awsRegion))

	return &EmailService{
		client:     sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
		debug:      debug,
		logger:     logger,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendWelcomeEmail sends a welcome email to new users
func (s *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, toName string) error {
	if !s.enabled {
		s.logger.Debug("skipping email send (service disabled)",
			zap.String("kind", "welcome"), zap.String("to", toEmail))
		return nil
	}

	subject := "Welcome to SpeechCoach!"
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #4a90e2; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.button { display: inline-block; padding: 12px 30px; background-color: #4a90e2; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>Welcome to SpeechCoach!</h1>
		</div>
		<div class="content">
			<p>Hi %s,</p>
			<p>Thank you for creating your SpeechCoach account! We're excited to help you build clearer, more confident speech through daily guided practice.</p>
			<p>Here's what you can do next:</p>
			<ul>
				<li>Record a short speech exercise and get instant feedback</li>
				<li>Follow your personalized weekly practice plan</li>
				<li>Earn points and keep your daily streak alive</li>
				<li>Try the mini-games to sharpen your articulation</li>
			</ul>
			<p style="text-align: center;">
				<a href="%s/login" class="button">Start Practicing</a>
			</p>
		</div>
		<div class="footer">
			<p>This is an automated email from SpeechCoach. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, toName, s.appBaseURL)

	textBody := fmt.Sprintf(`Hi %s,

Thank you for creating your SpeechCoach account! We're excited to help you build clearer, more confident speech through daily guided practice.

Here's what you can do next:
- Record a short speech exercise and get instant feedback
- Follow your personalized weekly practice plan
- Earn points and keep your daily streak alive
- Try the mini-games to sharpen your articulation

Start practicing: %s/login

---
This is an automated email from SpeechCoach. Please do not reply.
`, toName, s.appBaseURL)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendWeeklySummaryEmail sends a recap of last week's practice. Called by the
// scheduler after the Monday plan reset.
func (s *EmailService) SendWeeklySummaryEmail(ctx context.Context, toEmail, toName string, minutesPracticed, exercisesCompleted, pointsEarned int) error {
	if !s.enabled {
		s.logger.Debug("skipping email send (service disabled)",
			zap.String("kind", "weekly_summary"), zap.String("to", toEmail))
		return nil
	}

	subject := "Your SpeechCoach Week in Review"
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #4a90e2; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.stat { font-size: 24px; font-weight: bold; color: #4a90e2; }
		.button { display: inline-block; padding: 12px 30px; background-color: #4a90e2; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>Your Week in Review</h1>
		</div>
		<div class="content">
			<p>Hi %s,</p>
			<p>Here's how your practice went last week:</p>
			<ul>
				<li><span class="stat">%d</span> minutes of practice</li>
				<li><span class="stat">%d</span> exercises completed</li>
				<li><span class="stat">%d</span> points earned</li>
			</ul>
			<p>A fresh weekly plan is waiting for you.</p>
			<p style="text-align: center;">
				<a href="%s/login" class="button">Keep Going</a>
			</p>
		</div>
		<div class="footer">
			<p>This is an automated email from SpeechCoach. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, toName, minutesPracticed, exercisesCompleted, pointsEarned, s.appBaseURL)

	textBody := fmt.Sprintf(`Hi %s,

Here's how your practice went last week:
- %d minutes of practice
- %d exercises completed
- %d points earned

A fresh weekly plan is waiting for you: %s/login

---
This is an automated email from SpeechCoach. Please do not reply.
`, toName, minutesPracticed, exercisesCompleted, pointsEarned, s.appBaseURL)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	if s.debug {
		s.logger.Debug("sending email",
			zap.String("from", fromAddress),
			zap.String("to", toEmail),
			zap.String("subject", subject),
			zap.Int("html_bytes", len(htmlBody)),
			zap.Int("text_bytes", len(textBody)))
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	fields := []zap.Field{zap.String("to", toEmail), zap.String("subject", subject)}
	if result.MessageId != nil {
		fields = append(fields, zap.String("message_id", *result.MessageId))
	}
	s.logger.Info("email sent", fields...)
	return nil
}
