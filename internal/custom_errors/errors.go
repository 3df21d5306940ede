package custom_errors

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid request")

	ErrPostValidation = errors.New("title and content are required")

	ErrWebhookURLRequired   = errors.New("webhook url is required")
	ErrWebhookURLInvalid    = errors.New("webhook url must be an absolute http or https url")
	ErrWebhookNotConfigured = errors.New("no webhook url configured")
	ErrWebhookDelivery      = errors.New("webhook delivery failed")

	ErrPersistence      = errors.New("failed to persist data")
	ErrStoreUnavailable = errors.New("store unavailable")
)
