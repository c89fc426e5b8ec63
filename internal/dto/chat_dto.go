package dto

// ChatRequest is the body of POST /api/v1/chat.
type ChatRequest struct {
	Message   string `json:"message" validate:"required"`
	SessionId string `json:"session_id,omitempty"`
}

// ChatResponse carries the generated reply plus the internal signals that
// produced it, so the frontend can surface or log them.
type ChatResponse struct {
	Response         string `json:"response"`
	DetectedIntent   string `json:"detected_intent"`
	RetrievedContext string `json:"retrieved_context"`
	SessionId        string `json:"session_id"`
}
