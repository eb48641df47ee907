package mail

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/mhakbari/orderstack/internal/config"
)

// smtpSender delivers through a plain SMTP relay with AUTH PLAIN.
type smtpSender struct {
	addr     string
	host     string
	username string
	password string
	from     string
	fromName string
}

func newSMTPSender(cfg config.MailConfig) (*smtpSender, error) {
	if cfg.Host == "" || cfg.From == "" {
		return nil, errors.New("smtp mail provider requires MAIL_HOST and MAIL_FROM")
	}
	return &smtpSender{
		addr:     cfg.Host + ":" + cfg.Port,
		host:     cfg.Host,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		fromName: cfg.FromName,
	}, nil
}

func (s *smtpSender) Name() string { return "smtp" }

func (s *smtpSender) Send(_ context.Context, msg Message) error {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", s.fromName, s.from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	if msg.HTML != "" {
		b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
		b.WriteString(msg.HTML)
	} else {
		b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		b.WriteString(msg.Text)
	}

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}
	return smtp.SendMail(s.addr, auth, s.from, []string{msg.To}, []byte(b.String()))
}

// Ping opens a connection and says hello without sending anything.
func (s *smtpSender) Ping(_ context.Context) error {
	c, err := smtp.Dial(s.addr)
	if err != nil {
		return err
	}
	defer c.Close()
	if err := c.Hello("orderstack"); err != nil {
		return err
	}
	return c.Quit()
}
