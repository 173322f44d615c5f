package lead

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/google/uuid"

	"scholarship-workers/internal/models"
)

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"

	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type NotifierConfig struct {
	EmailEnabled    bool
	SMSEnabled      bool
	AdmissionsEmail string
	FromEmail       string
	SMSSenderID     string
}

const (
	emailSubject = "New scholarship consultation request: {{name}}"
	emailBody    = "Name: {{name}}\nPhone: {{phone}}\nProvince: {{province}}\nCampus: {{campus}}\nMajor: {{major}}\nScore: {{score}}\nReceived: {{createdAt}}\n"
	smsBody      = "Hi {{name}}, we received your scholarship consultation request. An admissions advisor will call you soon."
)

// Notifier tells admissions about a new lead by email and confirms to the
// visitor by SMS.
type Notifier struct {
	cfg NotifierConfig
	ses SESService
	sns SNSService
	now func() time.Time
}

func NewNotifier(cfg NotifierConfig, sesClient SESService, snsClient SNSService) *Notifier {
	return &Notifier{cfg: cfg, ses: sesClient, sns: snsClient, now: time.Now}
}

// Notify sends on every channel and reports each attempt. A failing channel
// never stops the others.
func (n *Notifier) Notify(ctx context.Context, l models.Lead) []models.Notification {
	data := map[string]string{
		"name":      l.Name,
		"phone":     l.Phone,
		"province":  l.Province,
		"campus":    l.Campus,
		"major":     l.Major,
		"score":     l.Score,
		"createdAt": l.CreatedAt,
	}

	return []models.Notification{
		n.sendEmail(ctx, l, renderTemplate(emailSubject, data), renderTemplate(emailBody, data)),
		n.sendSMS(ctx, l, renderTemplate(smsBody, data)),
	}
}

func (n *Notifier) sendEmail(ctx context.Context, l models.Lead, subject, body string) models.Notification {
	note := n.notification(l, ChannelEmail, n.cfg.AdmissionsEmail)
	if !n.cfg.EmailEnabled || n.ses == nil || n.cfg.AdmissionsEmail == "" {
		note.Status = StatusDisabled
		return note
	}

	out, err := n.ses.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{n.cfg.AdmissionsEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(n.cfg.FromEmail),
	})
	if err != nil {
		note.Status = StatusFailed
		note.Error = err.Error()
		return note
	}

	note.Status = StatusSent
	note.MessageID = aws.ToString(out.MessageId)
	note.SentAt = n.now().UTC().Format(time.RFC3339)
	return note
}

func (n *Notifier) sendSMS(ctx context.Context, l models.Lead, message string) models.Notification {
	phone := E164(l.Phone)
	note := n.notification(l, ChannelSMS, phone)
	if !n.cfg.SMSEnabled || n.sns == nil {
		note.Status = StatusDisabled
		return note
	}

	input := &sns.PublishInput{
		PhoneNumber: aws.String(phone),
		Message:     aws.String(message),
	}
	if n.cfg.SMSSenderID != "" {
		input.MessageAttributes = map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {DataType: aws.String("String"), StringValue: aws.String(n.cfg.SMSSenderID)},
		}
	}

	out, err := n.sns.Publish(ctx, input)
	if err != nil {
		note.Status = StatusFailed
		note.Error = err.Error()
		return note
	}

	note.Status = StatusSent
	note.MessageID = aws.ToString(out.MessageId)
	note.SentAt = n.now().UTC().Format(time.RFC3339)
	return note
}

func (n *Notifier) notification(l models.Lead, channel, recipient string) models.Notification {
	return models.Notification{
		ID:        uuid.New().String(),
		LeadID:    l.ID,
		Channel:   channel,
		Recipient: recipient,
	}
}

// E164 converts a domestic number with a leading 0 to +84 form. Other
// numbers are returned with a + prefix.
func E164(phone string) string {
	switch {
	case strings.HasPrefix(phone, "+"):
		return phone
	case strings.HasPrefix(phone, "0"):
		return "+84" + phone[1:]
	default:
		return "+" + phone
	}
}

// renderTemplate replaces {{key}} placeholders and removes unknown ones.
func renderTemplate(tmpl string, data map[string]string) string {
	result := tmpl
	for k, v := range data {
		result = strings.ReplaceAll(result, "{{"+k+"}}", v)
	}
	for {
		start := strings.Index(result, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}}")
		if end == -1 {
			break
		}
		result = result[:start] + result[start+end+2:]
	}
	return result
}
