package mailer

import (
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"clubconnect/internal/model"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Mailer struct {
	cfg  Config
	log  *zerolog.Logger
	send sendFunc
}

func New(cfg Config, log *zerolog.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log, send: smtp.SendMail}
}

// SendEventAnnouncement tells recipients that club has a new event.
func (m *Mailer) SendEventAnnouncement(club model.Club, event model.Event, recipients []string) error {
	if len(recipients) == 0 {
		return nil
	}

	subject := headerValue(fmt.Sprintf("New event from %s: %s", club.Name, event.Name))
	var body strings.Builder
	fmt.Fprintf(&body, "Hello!\n\n%s has scheduled a new event: %s.\n", club.Name, event.Name)
	if event.Description != "" {
		fmt.Fprintf(&body, "\n%s\n", event.Description)
	}
	if event.Tags.Len() > 0 {
		fmt.Fprintf(&body, "\nTags: %s\n", strings.Join(event.Tags.Values(), ", "))
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		headerValue(m.cfg.From), headerValue(strings.Join(recipients, ", ")), subject, body.String(),
	)

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := m.send(addr, auth, m.cfg.From, recipients, []byte(msg)); err != nil {
		m.log.Warn().Err(err).Int("event_id", event.EventID).Msg("failed to send event announcement")
		return fmt.Errorf("send email: %w", err)
	}

	m.log.Info().Int("event_id", event.EventID).Int("recipients", len(recipients)).Msg("event announcement sent")
	return nil
}

// headerValue folds CR and LF into spaces so a value cannot start a new header.
func headerValue(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return ' '
		}
		return r
	}, s)
}
