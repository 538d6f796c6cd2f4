// Copyright 2026 The TaskEase Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package notify delivers reminder notifications. The scheduler only sees
// the Notifier interface; delivery failures are its caller's problem to
// isolate, never to retry here.
package notify

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/wneessen/go-mail"
)

//go:embed templates/reminder.html
var reminderHTML string

var reminderTemplate = template.Must(template.New("reminder").Parse(reminderHTML))

// Notifier hands one notification to a delivery channel.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, message string) error
}

// Mailer is the SMTP Notifier. It renders the reminder HTML template around
// the task text and sends via STARTTLS.
type Mailer struct {
	client     *mail.Client
	senderName string
	senderAddr string
}

// MailerConfig holds SMTP settings.
type MailerConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	SenderName string
	SenderAddr string
}

// NewMailer creates the SMTP notifier.
func NewMailer(cfg MailerConfig) (*Mailer, error) {
	if cfg.SenderAddr == "" {
		return nil, fmt.Errorf("sender address is required")
	}

	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	return &Mailer{
		client:     client,
		senderName: cfg.SenderName,
		senderAddr: cfg.SenderAddr,
	}, nil
}

// Send renders and delivers one reminder email.
func (m *Mailer) Send(ctx context.Context, recipient, subject, message string) error {
	var body bytes.Buffer
	if err := reminderTemplate.Execute(&body, struct{ Message string }{Message: message}); err != nil {
		return fmt.Errorf("failed to render reminder template: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(m.senderName, m.senderAddr); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body.String())

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
