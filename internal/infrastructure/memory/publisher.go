package memory

import (
	"context"
	"log"

	"github.com/webstack-labs/account-service/internal/application/account"
)

// NoopPublisher stands in for the broker in dev setups without RabbitMQ.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (p *NoopPublisher) PublishAccountCreated(ctx context.Context, evt account.AccountCreatedEvent) error {
	log.Printf("[noop-pub] account created: account_id=%s email=%s", evt.AccountID, evt.Email)
	return nil
}
