package email

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"pei_compras/internal/usecase/interfaces"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Config holds the SMTP relay settings. Port 587 with STARTTLS is the
// expected setup.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// Configured is false when no relay credentials are set.
func (c Config) Configured() bool {
	return c.Host != "" && c.Username != "" && c.Password != ""
}

type dialer interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
	DialWithContext(ctx context.Context) error
	Close() error
}

// SMTPSender implements IEmailSender. Failures are logged and reported as
// false, never returned.
type SMTPSender struct {
	pingMu sync.Mutex
	client  dialer
	from   string
	name   string
	log    *zap.Logger
}

var _ interfaces.IEmailSender = (*SMTPSender)(nil)

func NewSMTPSender(cfg Config, logger *zap.Logger) (*SMTPSender, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("smtp: host, user and password are required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp: %w", err)
	}
	return newSender(client, cfg, logger), nil
}

func newSender(d dialer, cfg Config, logger *zap.Logger) *SMTPSender {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPSender{client: d, from: from, name: cfg.FromName, log: logger.Named("smtp")}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) bool {
	log := s.log.With(zap.String("to", to), zap.String("subject", subject))

	msg, err := s.message(to, subject, body)
	if err != nil {
		log.Warn("email rejected before send", zap.Error(err))
		return false
	}
	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Error("email send failed", zap.Error(err))
		return false
	}
	log.Info("email sent")
	return true
}

// Ping opens an authenticated session with the relay and closes it without
// sending anything.
func (s *SMTPSender) Ping(ctx context.Context) error {
	s.pingMu.Lock()
	defer s.pingMu.Unlock()

	if err := s.client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}
	return nil
}

func (s *SMTPSender) message(to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	var err error
	if s.name != "" {
		err = msg.FromFormat(s.name, s.from)
	} else {
		err = msg.From(s.from)
	}
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	if err := msg.To(strings.TrimSpace(to)); err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}

// DisabledSender stands in when no relay is configured. Every send fails, so
// RFQs stay as drafts.
type DisabledSender struct {
	log *zap.Logger
}

var _ interfaces.IEmailSender = (*DisabledSender)(nil)

func NewDisabledSender(logger *zap.Logger) *DisabledSender {
	return &DisabledSender{log: logger.Named("smtp")}
}

func (d *DisabledSender) Send(_ context.Context, to, subject, _ string) bool {
	d.log.Warn("email not sent, smtp not configured", zap.String("to", to), zap.String("subject", subject))
	return false
}
