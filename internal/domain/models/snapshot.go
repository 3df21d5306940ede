package model

// Snapshot is everything the store persists: the post sequence and the webhook target.
type Snapshot struct {
	Posts      []*Post
	WebhookURL string
}

type WebhookConfig struct {
	URL string `json:"url"`
}
