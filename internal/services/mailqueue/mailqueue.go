// Package mailqueue публикует исходящие письма в очередь RabbitMQ.
// Отправка почты - явная отложенная задача: API только ставит сообщение
// в очередь, доставкой занимается mail-sender.
package mailqueue

import (
	"github.com/streadway/amqp"

	"github.com/albaranes-app/delivery-notes/internal/lib/rabbitmq"
	"github.com/albaranes-app/delivery-notes/internal/models"
)

// Publisher кладёт письма в очередь mail.
type Publisher struct {
	ch *amqp.Channel
}

// New создаёт Publisher поверх открытого канала.
func New(ch *amqp.Channel) *Publisher {
	return &Publisher{ch: ch}
}

// Publish сериализует письмо и публикует его с ключом mail.send.
func (p *Publisher) Publish(msg models.EmailMessage) error {
	return rabbitmq.PublishMessage(p.ch, rabbitmq.Exchange, rabbitmq.MailQueue.RoutingKey, msg)
}
