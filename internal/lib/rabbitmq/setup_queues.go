package rabbitmq

// Exchange имя direct-обменника, в который публикуются события об изменении прав.
const Exchange = "entitlements"

// Ключи маршрутизации событий.
const (
	RoutingGranted = "granted"
	RoutingExpired = "expired"
)

// QueueConfig описывает очередь и ключ, которым она привязана к Exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetEntitlementQueues возвращает очереди для событий выдачи и отзыва подписки.
func GetEntitlementQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "entitlements.granted", RoutingKey: RoutingGranted},
		{QueueName: "entitlements.expired", RoutingKey: RoutingExpired},
	}
}
