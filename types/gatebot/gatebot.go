package gatebot

// WebhookRequest is one inbound chat message from the bot transport. The
// transport (routing, chat platform auth) is handled upstream; only the
// conversation payload reaches this service.
type WebhookRequest struct {
	ChatID string `json:"chat_id" validate:"required"`
	Text   string `json:"text" validate:"required"`
}

// WebhookResponse is the reply rendered back into the chat
type WebhookResponse struct {
	ChatID string `json:"chat_id"`
	Reply  string `json:"reply"`
}
