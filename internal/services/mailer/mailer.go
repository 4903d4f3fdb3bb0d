// Package mailer отправляет письма из очереди через SMTP.
package mailer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator"

	smtplib "github.com/albaranes-app/delivery-notes/internal/lib/smtp"
	"github.com/albaranes-app/delivery-notes/internal/models"
)

// SenderService доставляет сообщения очереди mail по SMTP.
type SenderService struct {
	transport smtplib.TransportInterface
	validate  *validator.Validate
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport smtplib.TransportInterface, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		validate:  validator.New(),
		log:       log,
	}
}

// SendQueuedEmail разбирает сообщение очереди и отправляет письмо.
// Ошибка возврата ведёт к requeue на стороне потребителя.
func (s *SenderService) SendQueuedEmail(body []byte) error {
	var message models.EmailMessage
	if err := json.Unmarshal(body, &message); err != nil {
		return fmt.Errorf("error unmarshalling message: %w", err)
	}
	if err := s.validate.Struct(message); err != nil {
		return fmt.Errorf("invalid mail message: %w", err)
	}
	return s.Send(message)
}

// Send отправляет одно письмо. Конверт идёт от учётной записи SMTP,
// заголовок From сохраняет отправителя из сообщения.
func (s *SenderService) Send(message models.EmailMessage) error {
	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", message.From),
		fmt.Sprintf("To: %s", message.To),
		fmt.Sprintf("Subject: %s", message.Subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		message.Text,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer func() {
		_ = client.Close()
	}()

	if err = client.Mail(s.transport.GetSMTPUser()); err != nil {
		return fmt.Errorf("failed to set mail sender: %w", err)
	}
	if err = client.Rcpt(message.To); err != nil {
		return fmt.Errorf("failed to set recipient %s: %w", message.To, err)
	}

	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get write closer: %w", err)
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = wc.Close(); err != nil {
		return fmt.Errorf("failed to close write closer: %w", err)
	}

	if err = client.Quit(); err != nil {
		return fmt.Errorf("failed to quit SMTP client: %w", err)
	}

	s.log.Info("email sent successfully", "to", message.To)
	return nil
}
