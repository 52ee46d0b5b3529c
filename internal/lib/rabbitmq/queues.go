package rabbitmq

// QueueConfig очередь и ключ маршрутизации, с которым она привязана к exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

const (
	// SubscriptionsExchange exchange для созданных подписок.
	SubscriptionsExchange = "subscriptions"
	// SubscriptionCreatedKey ключ маршрутизации созданной подписки.
	SubscriptionCreatedKey = "subscription.created"
	// SheetQueue очередь, из которой sheet-forwarder отправляет подписки в таблицу.
	SheetQueue = "subscriptions.sheet"
)

// GetSubscriptionQueues очереди, которые нужны для пересылки подписок.
func GetSubscriptionQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: SheetQueue, RoutingKey: SubscriptionCreatedKey},
	}
}
