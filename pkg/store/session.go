package store

import "luma-chat-be/pkg/llm"

// Session is the in-memory conversation state for one caller-chosen id.
// Turns only ever grow by appending a user/assistant pair after a
// successful generation; a failed generation must leave them untouched.
type Session struct {
	ID    string        `json:"id"`
	Turns []llm.Message `json:"turns"`
}
