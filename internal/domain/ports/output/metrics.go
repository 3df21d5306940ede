package ports

import "time"

type MetricsProvider interface {
	IncrementHTTPRequests(method, route, status string)
	RecordHTTPRequestDuration(method, route, status string, duration time.Duration)

	IncrementGRPCRequests(method, status string)
	RecordGRPCRequestDuration(method, status string, duration time.Duration)

	IncrementStoreOperations(operation string, success bool)
	RecordStoreOperationDuration(operation string, duration time.Duration)

	IncrementPostOperations(operation string, success bool)

	IncrementWebhookDeliveries(event string, success bool)
	RecordWebhookDeliveryDuration(event string, duration time.Duration)

	IncrementBroadcastEvents(event string, delivered int, dropped int)
	SetActiveConnections(count int)

	SetServiceHealth(healthy bool)
}
