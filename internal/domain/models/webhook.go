package model

type WebhookPayload struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type NewPostWebhookData struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

type TestWebhookData struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type DeliveryResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
