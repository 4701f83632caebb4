// Package mail dispatches outbound email through a configurable backend.
package mail

import (
	"fmt"
	"strings"
	"sync"

	"blog/app/config"

	"go.uber.org/zap"
)

const (
	BackendConsole = "console"
	BackendSMTP    = "smtp"
	BackendMemory  = "memory"
)

// Message is a plain text email.
type Message struct {
	Subject string
	Body    string
	From    string
	To      []string
}

// Mailer delivers a message synchronously.
type Mailer interface {
	Send(msg Message) error
}

// New returns the mailer selected by cfg.Backend.
func New(cfg config.MailConfig, log *zap.Logger) (Mailer, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendConsole:
		return NewConsoleMailer(log), nil
	case BackendSMTP:
		return NewSMTPMailer(cfg)
	case BackendMemory:
		return &Outbox{}, nil
	default:
		return nil, fmt.Errorf("unknown mail backend %q", cfg.Backend)
	}
}

// ConsoleMailer writes messages to the log instead of sending them.
type ConsoleMailer struct {
	log *zap.Logger
}

// NewConsoleMailer creates a ConsoleMailer logging through log.
func NewConsoleMailer(log *zap.Logger) *ConsoleMailer {
	if log == nil {
		log = zap.NewNop()
	}
	return &ConsoleMailer{log: log.Named("mail")}
}

// Send logs msg at info level.
func (m *ConsoleMailer) Send(msg Message) error {
	m.log.Info("email",
		zap.String("from", msg.From),
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}

// Outbox keeps sent messages in memory.
type Outbox struct {
	mu       sync.Mutex
	messages []Message
	// Err, when set, is returned by Send and nothing is recorded.
	Err error
}

// Send records msg, or returns Err when set.
func (o *Outbox) Send(msg Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return o.Err
	}
	o.messages = append(o.messages, msg)
	return nil
}

// Messages returns a copy of everything sent so far.
func (o *Outbox) Messages() []Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Message(nil), o.messages...)
}
