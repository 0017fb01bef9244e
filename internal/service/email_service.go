package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/Kishori-12/fitstreak-ai/internal/habits"
)

// EmailService sends notification emails via Amazon SES
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
}

// NewEmailService creates a new email service. With no from address
// configured the service runs disabled and every send is a logged no-op.
func NewEmailService(awsRegion, fromEmail, fromName, appBaseURL string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &EmailService{
		client:     sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendAchievementEmail notifies a user about newly unlocked achievements
func (s *EmailService) SendAchievementEmail(ctx context.Context, toEmail, toName string, achievementIDs []string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): achievements to %s", toEmail)
		return nil
	}
	if len(achievementIDs) == 0 {
		return nil
	}

	var items strings.Builder
	var plain strings.Builder
	for _, id := range achievementIDs {
		a, ok := habits.CatalogByID(id)
		if !ok {
			continue
		}
		fmt.Fprintf(&items, "<li>%s %s: %s</li>\n", a.Icon, a.Name, a.Description)
		fmt.Fprintf(&plain, "- %s: %s\n", a.Name, a.Description)
	}

	subject := "You unlocked a new achievement!"
	if len(achievementIDs) > 1 {
		subject = fmt.Sprintf("You unlocked %d new achievements!", len(achievementIDs))
	}

	htmlBody := fmt.Sprintf(`<html><body>
<p>Hi %s,</p>
<p>Great work keeping up with your habits. You just earned:</p>
<ul>
%s</ul>
<p><a href="%s/progress">See your full progress</a></p>
<p>Keep the streak alive!</p>
</body></html>`, toName, items.String(), s.appBaseURL)

	textBody := fmt.Sprintf(`Hi %s,

Great work keeping up with your habits. You just earned:

%s
See your full progress: %s/progress

Keep the streak alive!
`, toName, plain.String(), s.appBaseURL)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// WeeklyReport carries the numbers shown in the weekly summary email.
type WeeklyReport struct {
	Streak         int
	BestStreak     int
	TotalCompleted int
	SuccessRate    int
}

// SendWeeklyReportEmail sends the Monday morning summary to a user
func (s *EmailService) SendWeeklyReportEmail(ctx context.Context, toEmail, toName string, report WeeklyReport) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): weekly report to %s", toEmail)
		return nil
	}

	subject := "Your weekly habit report"
	htmlBody := fmt.Sprintf(`<html><body>
<p>Hi %s,</p>
<p>Here is how your week went:</p>
<ul>
<li>Current streak: %d days</li>
<li>Best streak: %d days</li>
<li>Habits completed all time: %d</li>
<li>Success rate (last 30 days): %d%%</li>
</ul>
<p><a href="%s/progress">Open FitStreak</a> to keep it going.</p>
</body></html>`, toName, report.Streak, report.BestStreak, report.TotalCompleted, report.SuccessRate, s.appBaseURL)

	textBody := fmt.Sprintf(`Hi %s,

Here is how your week went:
- Current streak: %d days
- Best streak: %d days
- Habits completed all time: %d
- Success rate (last 30 days): %d%%

Open FitStreak to keep it going: %s/progress
`, toName, report.Streak, report.BestStreak, report.TotalCompleted, report.SuccessRate, s.appBaseURL)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
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

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
