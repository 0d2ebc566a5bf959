// ABOUTME: Conversation message types with plain and multipart content
// ABOUTME: Provides explicit flattening of structured content to text
package models

import "strings"

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ContentPart is one element of a multipart message body. Only parts
// with Type "text" carry text; other part types are ignored when
// flattening.
type ContentPart struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Message is a single conversation turn. Content holds plain text;
// Parts holds structured multipart content. A message uses one or the
// other, never both.
type Message struct {
	Role    string        `json:"role"`
	Content string        `json:"content,omitempty"`
	Parts   []ContentPart `json:"parts,omitempty"`
}

// NewUserMessage creates a plain-text user message
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Content: text}
}

// NewAssistantMessage creates a plain-text assistant message
func NewAssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Content: text}
}

// Text flattens the message body to plain text. Plain content is
// returned as-is; multipart content concatenates all text-bearing
// parts separated by newlines.
func (m Message) Text() string {
	if m.Content != "" || len(m.Parts) == 0 {
		return m.Content
	}

	var texts []string
	for _, p := range m.Parts {
		if p.Type == "text" && p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n")
}
