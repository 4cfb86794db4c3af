package internal

import (
	"fmt"
	"strings"
	"time"
)

// Role tags a message as user or assistant
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Session is one conversation thread and its ordered message log
type Session struct {
	ID       string    `json:"id" yaml:"id"`
	Messages []Message `json:"messages" yaml:"messages"`
}

// Message is a single entry in a session log. Image is only set on user
// messages and Offline only on assistant messages.
type Message struct {
	ID        string    `json:"id" yaml:"id"`
	Role      Role      `json:"role" yaml:"role"`
	Text      string    `json:"text" yaml:"text"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Language  string    `json:"language,omitempty" yaml:"language,omitempty"`
	Image     *ImageRef `json:"image,omitempty" yaml:"image,omitempty"`
	Offline   bool      `json:"offline,omitempty" yaml:"offline,omitempty"`
}

// ImageRef points at image bytes handed to the request builder without
// carrying them
type ImageRef struct {
	Digest    string `json:"digest" yaml:"digest"` // sha256, hex
	Size      int    `json:"size" yaml:"size"`
	MediaType string `json:"media_type,omitempty" yaml:"media_type,omitempty"`
}

// NewUserMessage creates a user message
func NewUserMessage(id, text string, ts time.Time, language string, image *ImageRef) Message {
	return Message{
		ID:        id,
		Role:      RoleUser,
		Text:      text,
		Timestamp: ts,
		Language:  language,
		Image:     image,
	}
}

// NewAssistantMessage creates an assistant message
func NewAssistantMessage(id, text string, ts time.Time, language string, offline bool) Message {
	return Message{
		ID:        id,
		Role:      RoleAssistant,
		Text:      text,
		Timestamp: ts,
		Language:  language,
		Offline:   offline,
	}
}

// Validate checks the role-specific shape of the message
func (m Message) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidMessage)
	}
	switch m.Role {
	case RoleUser:
		if m.Offline {
			return fmt.Errorf("%w: user message %s marked offline", ErrInvalidMessage, m.ID)
		}
	case RoleAssistant:
		if m.Image != nil {
			return fmt.Errorf("%w: assistant message %s carries an image", ErrInvalidMessage, m.ID)
		}
	default:
		return fmt.Errorf("%w: unknown role %q", ErrInvalidMessage, m.Role)
	}
	return nil
}

// Len returns the number of messages in the session
func (s *Session) Len() int {
	return len(s.Messages)
}

// Last returns the most recent message, if any
func (s *Session) Last() (Message, bool) {
	if len(s.Messages) == 0 {
		return Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}
