// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/pdiddy/arxiv-agent/pkg/types"
)

// Sender delivers reports over SMTP.
type Sender struct {
	Cfg types.EmailConfig
}

// Validate checks that the SMTP configuration is complete enough to attempt
// a send. Missing credentials abort the run before any network work.
func (s *Sender) Validate() error {
	if s.Cfg.Sender == "" {
		return fmt.Errorf("sender email not configured (set SENDER_EMAIL)")
	}
	if s.Cfg.Password == "" {
		return fmt.Errorf("sender password not configured (set SENDER_PASSWORD)")
	}
	if s.Cfg.Recipient == "" {
		return fmt.Errorf("recipient email not configured (set RECIPIENT_EMAIL)")
	}
	return nil
}

// Send delivers an HTML message to the configured recipient. A non-nil
// chartPNG is embedded inline under ChartCID. Ports 465 and 995 dial with
// implicit TLS; everything else negotiates STARTTLS.
func (s *Sender) Send(subject, htmlBody string, chartPNG []byte) error {
	if err := s.Validate(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.Cfg.Sender)
	m.SetHeader("To", s.Cfg.Recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if len(chartPNG) > 0 {
		m.Embed(ChartCID, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(chartPNG)
			return err
		}))
	}

	d := gomail.NewDialer(s.Cfg.Server, s.Cfg.Port, s.Cfg.Sender, s.Cfg.Password)
	if s.Cfg.Port == 465 || s.Cfg.Port == 995 {
		d.SSL = true
	}

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("sending report to %s via %s:%d: %w",
			s.Cfg.Recipient, s.Cfg.Server, s.Cfg.Port, err)
	}
	return nil
}

// SendTest delivers a minimal message so the user can verify SMTP settings
// without running the full pipeline.
func (s *Sender) SendTest() error {
	body := fmt.Sprintf(`<html><body>
<h2>arxiv-agent email test</h2>
<p>If you are reading this, the SMTP configuration works.</p>
<p><small>Sent at %s</small></p>
</body></html>`, time.Now().Format(time.RFC1123))

	return s.Send("arxiv-agent email test", body, nil)
}
