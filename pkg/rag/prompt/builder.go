package prompt

import (
	"fmt"
	"strings"

	"luma-chat-be/pkg/llm"
)

const systemPrompt = "You are 'Luma', an AI emotional support chatbot. Your role is to " +
	"help working professionals and students navigate stress and negative emotions. " +
	"You are empathetic, patient, and non-judgmental. " +
	"NEVER give medical advice. " +
	"Use the 'Retrieved Context' to help guide your response. " +
	"The 'User Intent' is for your information. Do not mention it explicitly. " +
	"Keep your responses concise, supportive, and end with a question " +
	"to encourage the user to keep talking."

// Builder assembles the full chat-completion message list for one turn:
// the fixed system instruction, prior history in order, and a final user
// turn carrying the raw message plus intent and context annotations.
type Builder struct {
	query   string
	intent  string
	context string
	history []llm.Message
}

func NewBuilder(query, intent, context string, history []llm.Message) *Builder {
	return &Builder{
		query:   query,
		intent:  intent,
		context: context,
		history: history,
	}
}

func (b *Builder) Build() []llm.Message {
	messages := make([]llm.Message, 0, len(b.history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: systemPrompt})
	messages = append(messages, b.history...)
	messages = append(messages, llm.Message{Role: "user", Content: b.buildUserTurn()})
	return messages
}

func (b *Builder) buildUserTurn() string {
	var turn strings.Builder
	turn.WriteString(fmt.Sprintf("User Message: %q\n\n", b.query))
	turn.WriteString("--- (Internal analysis) ---\n")
	turn.WriteString(fmt.Sprintf("User Intent: %s\n", b.intent))
	turn.WriteString(fmt.Sprintf("Retrieved Context: %s\n", b.context))
	turn.WriteString("--- (End analysis) ---\n\n")
	turn.WriteString("Your response:")
	return turn.String()
}
