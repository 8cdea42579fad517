package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/leadpulse/internal/analytics"
	"github.com/xavierca1/leadpulse/internal/entity"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	From     string
	To       []string
	Location *time.Location
	dialer   Dialer
}

func NewEmailSender(host string, port int, user, password, from string, to []string) *EmailSender {
	return NewEmailSenderWithDialer(gomail.NewDialer(host, port, user, password), from, to)
}

func NewEmailSenderWithDialer(d Dialer, from string, to []string) *EmailSender {
	return &EmailSender{
		From:     from,
		To:       to,
		Location: time.UTC,
		dialer:   d,
	}
}

func (s *EmailSender) SendNewLeadAlert(lead entity.Lead) error {
	data := NewLeadEmailData{
		Lead:     lead,
		Received: lead.CreatedAt.In(s.Location).Format("Jan 2, 2006 15:04"),
	}
	subject := fmt.Sprintf("New lead from %s: %s", lead.Source, lead.Name)
	return s.send("new_lead.html", subject, data)
}

func (s *EmailSender) SendStatusChangeAlert(lead entity.Lead, previous entity.LeadStatus) error {
	data := StatusChangeEmailData{
		Lead:      lead,
		Previous:  previous,
		Converted: lead.IsConverted(),
		Value:     analytics.FormatMoney(lead.Value),
	}
	subject := fmt.Sprintf("Lead %s is now %s", lead.Name, lead.Status)
	return s.send("status_change.html", subject, data)
}

func (s *EmailSender) SendDailySummary(day string, summary analytics.Summary) error {
	data := DailySummaryEmailData{
		Day:          day,
		Summary:      summary,
		TotalValue:   analytics.FormatMoney(summary.TotalValue),
		AverageValue: analytics.FormatMoney(summary.AverageValue),
	}
	return s.send("daily_summary.html", "Daily lead summary for "+day, data)
}

func (s *EmailSender) send(tmpl, subject string, data any) error {
	if len(s.To) == 0 {
		return fmt.Errorf("no alert recipients configured")
	}

	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, tmpl, data); err != nil {
		return fmt.Errorf("render %s: %w", tmpl, err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send smtp mail: %w", err)
	}
	return nil
}
