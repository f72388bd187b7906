package types

// CorrectRequest is one inbound student message.
// Field names mirror the WhatsApp bridge payload.
type CorrectRequest struct {
	UserMessage string `json:"user_message"`
	Level       string `json:"level,omitempty"`
	UserID      string `json:"user_id,omitempty"`
}

// CorrectResponse carries the single text reply for a message.
type CorrectResponse struct {
	Reply string `json:"reply"`
}

// ResetRequest clears one user's session.
type ResetRequest struct {
	UserID string `json:"user_id"`
}

// ResetResponse acknowledges a reset. Status is always "ok": resetting an
// unknown user is not an error.
type ResetResponse struct {
	Status string `json:"status"`
}

// WebhookRequest is the relay payload from the messaging bridge.
type WebhookRequest struct {
	From string `json:"from"`
	Body string `json:"body"`
}

// WebhookResponse tells the bridge where to deliver the reply.
type WebhookResponse struct {
	To    string `json:"to"`
	Reply string `json:"reply"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
