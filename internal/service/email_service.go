package service

import (
	"context"
	"fmt"
	"html"
	"log"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"webbaby/internal/growth"
)

// sesAPI is the part of the SES client the email service calls
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client     sesAPI
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
	debug      bool
}

// NewEmailService creates a new email service
func NewEmailService(awsRegion, fromEmail, fromName, appBaseURL string, debug bool) (*EmailService, error) {
	// If fromEmail is empty, create a disabled service
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		if debug {
			log.Println("[DEBUG] Email service will skip sending all emails")
		}
		return &EmailService{
			enabled: false,
			debug:   debug,
		}, nil
	}

	if debug {
		log.Printf("[DEBUG] Initializing email service with AWS SES")
		log.Printf("[DEBUG] AWS Region: %s", awsRegion)
		log.Printf("[DEBUG] From Email: %s", fromEmail)
		log.Printf("[DEBUG] From Name: %s", fromName)
		log.Printf("[DEBUG] App Base URL: %s", appBaseURL)
	}

	// Load AWS configuration
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		if debug {
			log.Printf("[DEBUG] Failed to load AWS config: %v", err)
		}
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	if debug {
		log.Println("[DEBUG] SES client created successfully")
	}

	return newEmailServiceWithClient(sesv2.NewFromConfig(cfg), fromEmail, fromName, appBaseURL, debug), nil
}

func newEmailServiceWithClient(client sesAPI, fromEmail, fromName, appBaseURL string, debug bool) *EmailService {
	return &EmailService{
		client:     client,
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
		debug:      debug,
	}
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendDigest sends the daily summary email
func (s *EmailService) SendDigest(ctx context.Context, toEmail string, digest *Digest) error {
	if s.debug {
		log.Printf("[DEBUG] SendDigest called: to=%s, day=%s", toEmail, digest.Day)
	}

	if !s.enabled {
		log.Printf("Skipping email send (service disabled): digest to %s", toEmail)
		return nil
	}

	subject := fmt.Sprintf("%s: daily summary for %s", digest.displayName(), digest.Day)
	return s.sendEmail(ctx, toEmail, subject, s.digestHTML(digest), s.digestText(digest))
}

func (s *EmailService) digestText(d *Digest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Daily summary for %s (%s)\n\n", d.displayName(), d.Day)
	for _, line := range d.lines() {
		fmt.Fprintf(&b, "%s: %s\n", line[0], line[1])
	}
	if s.appBaseURL != "" {
		fmt.Fprintf(&b, "\nOpen Web-Baby: %s\n", s.appBaseURL)
	}
	return b.String()
}

func (s *EmailService) digestHTML(d *Digest) string {
	var rows strings.Builder
	for _, line := range d.lines() {
		fmt.Fprintf(&rows, "\t\t\t<tr><td>%s</td><td><strong>%s</strong></td></tr>\n",
			html.EscapeString(line[0]), html.EscapeString(line[1]))
	}
	link := ""
	if s.appBaseURL != "" {
		link = fmt.Sprintf(`<p><a class="button" href="%s">Open Web-Baby</a></p>`, html.EscapeString(s.appBaseURL))
	}

	return fmt.Sprintf(`
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
		td { padding: 4px 12px 4px 0; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>%s</h1>
			<p>%s</p>
		</div>
		<div class="content">
			<table>
%s			</table>
			%s
		</div>
	</div>
</body>
</html>
`, html.EscapeString(d.displayName()), html.EscapeString(d.Day), rows.String(), link)
}

// sendEmail is a helper function to send emails via SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	if s.debug {
		log.Printf("[DEBUG] sendEmail called: to=%s, subject=%s", toEmail, subject)
	}

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

	if s.debug {
		log.Printf("[DEBUG] Calling SES SendEmail API...")
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		if s.debug {
			log.Printf("[DEBUG] SES SendEmail failed: %v", err)
		}
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	if s.debug && result.MessageId != nil {
		log.Printf("[DEBUG] Message ID: %s", *result.MessageId)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}

// lines renders the digest as label/value pairs in a fixed order
func (d *Digest) lines() [][2]string {
	var out [][2]string
	s := d.Summary

	total := 0
	fed := make([]growth.FeedingType, 0, len(s.TotalsByType))
	for ft, ml := range s.TotalsByType {
		total += ml
		if ml > 0 {
			fed = append(fed, ft)
		}
	}
	sort.Slice(fed, func(i, j int) bool { return fed[i] < fed[j] })

	out = append(out, [2]string{"Feeds", fmt.Sprintf("%d", s.FeedCount)})
	out = append(out, [2]string{"Total", fmt.Sprintf("%d ml", total)})
	for _, ft := range fed {
		out = append(out, [2]string{ft.String(), fmt.Sprintf("%d ml", s.TotalsByType[ft])})
	}
	if s.SleepHours != nil {
		out = append(out, [2]string{"Longest night sleep", fmt.Sprintf("%.1f h", *s.SleepHours)})
	}
	if rec := d.Recommendation; rec != nil {
		if rec.Adjusted != nil {
			out = append(out, [2]string{"Recommended today", fmt.Sprintf("%d ml in %d meals of %d ml",
				rec.Adjusted.TotalMl, rec.Adjusted.MealsPerDay, rec.Adjusted.PerMealMl)})
		} else if rec.Generic != nil {
			out = append(out, [2]string{"Recommended today", fmt.Sprintf("%d ml in %d meals of %d ml",
				rec.Generic.TotalMl, rec.Generic.MealsPerDay, rec.Generic.PerMealMl)})
		}
	}
	return out
}
