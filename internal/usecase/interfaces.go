package usecase

import (
	"context"
	"time"

	"github.com/rafaelcosta1/atende-crm/internal/infra/integration/zapi"
	"github.com/rafaelcosta1/atende-crm/internal/infra/queue"
)

type CachePort interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, expiration time.Duration) error
	DeletePattern(ctx context.Context, pattern string) error
}

type QueueProducerInterface interface {
	PublishLeadCreated(ctx context.Context, payload queue.LeadCreatedPayload) error
}

type WhatsAppGateway interface {
	SendMessage(ctx context.Context, input zapi.SendMessageInput) error
}

type EmailService interface {
	SendAppointmentConfirmation(to, name, procedure string, startsAt time.Time) error
}
