package infrastructure

import "context"

// MessagePublisher абстрагирует отправку доменных событий в Kafka
// Позволяет подменять producer моком в тестах
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
