package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AutomationClient define o contrato da entrega do webhook (n8n ou
// qualquer endpoint de automação configurado pelo tenant).
type AutomationClient interface {
	DeliverLeadCreated(ctx context.Context, payload LeadCreatedPayload) error
}

type Worker struct {
	Channel    *amqp.Channel
	Automation AutomationClient
}

func NewWorker(ch *amqp.Channel, automation AutomationClient) *Worker {
	return &Worker{
		Channel:    ch,
		Automation: automation,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual é mais seguro)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadCreatedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem malformada. Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] Entregando webhook lead.created para lead %s", payload.LeadID)

			// Fire-and-forget: falha de entrega vai para a DLQ, sem retry.
			if err := w.Automation.DeliverLeadCreated(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] Falha na entrega do webhook: %s", err)
				d.Nack(false, false)
			} else {
				log.Printf("✅ [WORKER] Webhook entregue para lead %s", payload.LeadID)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}
