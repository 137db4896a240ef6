// Package chat drives the AI tutor conversation. Sessions are held in
// memory only and are never persisted.
package chat

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/snonux/lingopal/internal"
	"codeberg.org/snonux/lingopal/internal/ai"
	"codeberg.org/snonux/lingopal/internal/store"
)

// Tutor answers learner messages with the configured persona
type Tutor struct {
	backend ai.Backend
	persona string
}

// NewTutor creates a new tutor
func NewTutor(backend ai.Backend, persona string) *Tutor {
	return &Tutor{backend: backend, persona: persona}
}

// Reply sends the conversation so far plus the new message and returns
// the assistant's reply. levelContext is free-text about the learner
// (estimated level, recent vocabulary) woven into the system instruction.
func (t *Tutor) Reply(ctx context.Context, history []ai.Message, message, levelContext string) (string, error) {
	system := t.persona
	if levelContext != "" {
		system = fmt.Sprintf("%s\n\nAbout the learner: %s", system, levelContext)
	}

	raw, err := t.backend.Generate(ctx, ai.Request{
		System:  system,
		History: history,
		Parts:   []ai.Part{ai.TextPart(message)},
	})
	if err != nil {
		return "", &ai.DomainError{Op: "chat with tutor", Err: err}
	}
	return strings.TrimSpace(raw), nil
}

// Session is an append-only in-memory chat transcript
type Session struct {
	messages []store.ChatMessage
}

// NewSession creates an empty chat session
func NewSession() *Session {
	return &Session{}
}

// Append records one message and returns it with an assigned ID
func (s *Session) Append(role ai.Role, text string) store.ChatMessage {
	msg := store.ChatMessage{
		ID:   internal.NewID(text),
		Role: string(role),
		Text: text,
	}
	s.messages = append(s.messages, msg)
	return msg
}

// History returns the transcript as backend messages, oldest first
func (s *Session) History() []ai.Message {
	history := make([]ai.Message, 0, len(s.messages))
	for _, m := range s.messages {
		history = append(history, ai.Message{Role: ai.Role(m.Role), Content: m.Text})
	}
	return history
}

// Messages returns a snapshot copy of the transcript
func (s *Session) Messages() []store.ChatMessage {
	return append([]store.ChatMessage(nil), s.messages...)
}
