package services

import (
	"bytes"
	"context"
	"html/template"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/harentsoaR/nail-salon-api/internal/models"
)

type Sender interface {
	Send(ctx context.Context, e Email) (string, error)
}

// NotificationService sends booking confirmations and forwards contact
// messages. Sends run in the background so they never block a response.
type NotificationService struct {
	sender Sender
	from   string
	inbox  string
	logger *zap.Logger
	wg     sync.WaitGroup
}

// NewNotificationService accepts a nil sender, in which case every
// notification is logged and skipped.
func NewNotificationService(sender Sender, from, inbox string, logger *zap.Logger) *NotificationService {
	return &NotificationService{sender: sender, from: from, inbox: inbox, logger: logger}
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(
	`<p>Your appointment is booked.</p>
<p><strong>{{.Service}}</strong> on {{.When}}.</p>
{{if .Deposit}}<p>A deposit is required to hold this slot.</p>{{end}}
{{if .Notes}}<p>Notes: {{.Notes}}</p>{{end}}`))

var contactTmpl = template.Must(template.New("contact").Parse(
	`<p>New message from <strong>{{.Name}}</strong> ({{.Email}}{{if .Phone}}, {{.Phone}}{{end}})</p>
<p>{{.Message}}</p>`))

func (s *NotificationService) SendAppointmentConfirmation(to string, apt *models.Appointment, svc *models.Service) {
	if to == "" {
		s.logger.Info("Confirmation not sent: customer has no email", zap.String("appointment_id", apt.ID))
		return
	}
	var buf bytes.Buffer
	err := confirmationTmpl.Execute(&buf, map[string]any{
		"Service": svc.Name,
		"When":    apt.ScheduledAt.Format("Mon Jan 2 at 15:04"),
		"Deposit": apt.Deposit,
		"Notes":   apt.Notes,
	})
	if err != nil {
		s.logger.Error("Failed to render confirmation", zap.Error(err))
		return
	}
	s.dispatch("appointment_confirmation", Email{
		From:    s.from,
		To:      []string{to},
		Subject: "Appointment confirmed: " + svc.Name,
		HTML:    buf.String(),
	})
}

func (s *NotificationService) ForwardContactMessage(msg *models.ContactMessage) {
	if s.inbox == "" {
		s.logger.Info("Contact message not forwarded: no inbox configured", zap.String("message_id", msg.ID))
		return
	}
	var buf bytes.Buffer
	if err := contactTmpl.Execute(&buf, msg); err != nil {
		s.logger.Error("Failed to render contact message", zap.Error(err))
		return
	}
	s.dispatch("contact_message", Email{
		From:    s.from,
		To:      []string{s.inbox},
		Subject: "Website contact from " + msg.Name,
		HTML:    buf.String(),
		ReplyTo: msg.Email,
	})
}

func (s *NotificationService) dispatch(kind string, e Email) {
	if s.sender == nil {
		s.logger.Info("Email not sent: provider not configured", zap.String("kind", kind))
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		id, err := s.sender.Send(ctx, e)
		if err != nil {
			s.logger.Warn("Failed to send email", zap.String("kind", kind), zap.Strings("to", e.To), zap.Error(err))
			return
		}
		s.logger.Info("Email sent", zap.String("kind", kind), zap.String("id", id))
	}()
}

// Wait blocks until in-flight sends finish.
func (s *NotificationService) Wait() {
	s.wg.Wait()
}
