package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/bloomview/bloomview-api/internal/infra/queue"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	NotifyTo string // ops inbox that receives new-lead notifications
}

func NewEmailSender(host string, port int, user, password, from, notifyTo string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		NotifyTo: notifyTo,
	}
}

// Template is embedded so the worker has no runtime file dependency.
var leadNotificationTmpl = template.Must(template.New("lead_notification").Parse(`
<h2>New inquiry on Bloomview</h2>
<p><strong>{{.Name}}</strong> ({{.Email}}) asked about <strong>{{.Service}}</strong>.</p>
<blockquote>{{.Message}}</blockquote>
<p>Captured at {{.CapturedAt.Format "2006-01-02 15:04 MST"}} (lead {{.LeadID}}).</p>
<p>Open the admin portal to follow up.</p>
`))

func (s *EmailSender) SendLeadNotification(payload queue.LeadCapturedPayload) error {
	var body bytes.Buffer
	if err := leadNotificationTmpl.Execute(&body, payload); err != nil {
		return fmt.Errorf("rendering notification template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.NotifyTo)
	m.SetHeader("Subject", fmt.Sprintf("New lead: %s (%s)", payload.Name, payload.Service))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("sending notification email: %w", err)
	}

	return nil
}
