package report

import (
	"time"

	"github.com/phuslu/log"
	gomail "gopkg.in/mail.v2"

	"github.com/stacktracker/intelgen/internal/config"
)

// EmailSender delivers messages via SMTP.
type EmailSender struct {
	cfg config.EmailConfig
}

// NewEmailSender creates a sender with the given SMTP configuration.
func NewEmailSender(cfg config.EmailConfig) *EmailSender {
	return &EmailSender{cfg: cfg}
}

// Send delivers an email with HTML body and plain text fallback.
func (s *EmailSender) Send(msg *RenderedMessage) error {
	if !s.cfg.Enabled {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.FromEmail)
	m.SetHeader("To", s.cfg.ToEmail)
	m.SetHeader("Subject", msg.Subject)

	if msg.HTML != "" && msg.Text != "" {
		m.SetBody("text/plain", msg.Text)
		m.AddAlternative("text/html", msg.HTML)
	} else if msg.HTML != "" {
		m.SetBody("text/html", msg.HTML)
	} else {
		m.SetBody("text/plain", msg.Text)
	}

	dialer := gomail.NewDialer(s.cfg.SMTPServer, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPass)
	dialer.Timeout = 10 * time.Second

	if err := dialer.DialAndSend(m); err != nil {
		log.Error().Err(err).Str("to", s.cfg.ToEmail).Str("subject", msg.Subject).Msg("failed to send summary email")
		return err
	}

	log.Info().Str("subject", msg.Subject).Msg("summary email sent")
	return nil
}

// Email renders and sends the summary email when SMTP is configured. Delivery
// problems are logged only; email is a courtesy, not part of the run's
// success criteria.
func Email(s Summary, cfg config.EmailConfig) {
	if !cfg.Enabled {
		return
	}

	msg, err := NewHTMLEmailRenderer().Render(s)
	if err != nil {
		log.Error().Err(err).Msg("failed to render summary email")
		return
	}

	_ = NewEmailSender(cfg).Send(msg)
}
