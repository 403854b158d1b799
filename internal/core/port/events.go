package port

import "context"

// EventConsumer is an interface to define an event consumer (nats, kafka, ...)
type EventConsumer interface {
	Subscribe(ctx context.Context, handler MessageService) error
	Close() error
}

// MessageService is an interface to define message handling. Subject is the
// broker subject the message arrived on; handlers dispatch on it.
type MessageService interface {
	HandleMessage(ctx context.Context, subject string, data []byte) error
}
