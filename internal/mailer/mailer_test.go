package mailer

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubconnect/internal/model"
)

func TestSendEventAnnouncement(t *testing.T) {
	log := zerolog.Nop()
	m := New(Config{Host: "smtp.example.org", Port: 2525, From: "clubs@example.org"}, &log)

	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
	)
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		assert.Nil(t, a, "no auth without username")
		return nil
	}

	club := model.Club{ClubID: 1, Name: "Chess"}
	event := model.Event{EventID: 100, Name: "Blitz night", Description: "Bring a clock", Tags: model.NewSet("Games")}
	require.NoError(t, m.SendEventAnnouncement(club, event, []string{"a@example.org"}))

	assert.Equal(t, "smtp.example.org:2525", gotAddr)
	assert.Equal(t, []string{"a@example.org"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: New event from Chess: Blitz night")
	assert.Contains(t, gotMsg, "Bring a clock")
	assert.Contains(t, gotMsg, "Tags: Games")
}

func TestSendEventAnnouncementNoRecipients(t *testing.T) {
	log := zerolog.Nop()
	m := New(Config{}, &log)
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called")
		return nil
	}
	assert.NoError(t, m.SendEventAnnouncement(model.Club{}, model.Event{}, nil))
}

func TestSendEventAnnouncementFailure(t *testing.T) {
	log := zerolog.Nop()
	m := New(Config{Host: "h", Port: 25}, &log)
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}
	err := m.SendEventAnnouncement(model.Club{Name: "c"}, model.Event{Name: "e"}, []string{"x@example.org"})
	assert.ErrorContains(t, err, "connection refused")
}

func TestSendEventAnnouncementKeepsHeadersSingleLine(t *testing.T) {
	log := zerolog.Nop()
	m := New(Config{Host: "h", Port: 25, From: "clubs@example.org"}, &log)

	var gotMsg string
	m.send = func(_ string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
		gotMsg = string(msg)
		return nil
	}

	club := model.Club{Name: "Chess\nReply-To: x@example.org"}
	event := model.Event{Name: "Blitz\r\nBcc: victim@example.org\r\nX-Injected: yes"}
	require.NoError(t, m.SendEventAnnouncement(club, event, []string{"a@example.org"}))

	headers, _, found := strings.Cut(gotMsg, "\r\n\r\n")
	require.True(t, found)
	lines := strings.Split(headers, "\r\n")
	assert.Len(t, lines, 3, "From, To and Subject only")
	for _, l := range lines {
		assert.NotContains(t, l, "\n")
		assert.NotContains(t, l, "\r")
	}
	assert.NotContains(t, headers, "\r\nBcc:")
	assert.NotContains(t, headers, "\r\nX-Injected:")
	assert.Contains(t, lines[2], "Subject: New event from Chess Reply-To: x@example.org: Blitz  Bcc: victim@example.org  X-Injected: yes")
}
