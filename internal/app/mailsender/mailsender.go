// Package mailsender собирает приложение-потребитель очереди исходящей почты.
package mailsender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/albaranes-app/delivery-notes/internal/config"
	"github.com/albaranes-app/delivery-notes/internal/lib/rabbitmq"
	"github.com/albaranes-app/delivery-notes/internal/lib/smtp"
	"github.com/albaranes-app/delivery-notes/internal/services/mailer"
)

// App - потребитель очереди mail с SMTP-отправкой.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *mailer.SenderService
	logger        *slog.Logger
}

// New подключается к RabbitMQ и готовит SMTP-транспорт.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitConnection, cfg.ConnectRetries, cfg.ConnectDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, []rabbitmq.QueueConfig{rabbitmq.MailQueue})
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	senderService := mailer.NewSenderService(transport, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run запускает потребителя и ждёт отмены контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.MailQueue.QueueName, a.senderService.SendQueuedEmail)
	if err != nil {
		a.logger.Error("failed to start mail queue consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("mail sender shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}
	return nil
}
