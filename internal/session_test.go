package internal

import (
	"errors"
	"testing"
)

func TestMessage_Validate(t *testing.T) {
	tests := []struct {
		name    string
		msg     Message
		wantErr bool
	}{
		{"user", userMsg("u1", "hi"), false},
		{"user with image", NewUserMessage("u2", "look", testTime, "en", &ImageRef{Digest: "ab", Size: 3}), false},
		{"assistant offline", NewAssistantMessage("a1", "saved tip", testTime, "hi", true), false},
		{"blank id", userMsg("  ", "hi"), true},
		{"no role", Message{ID: "x"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidMessage) {
				t.Errorf("Validate() error = %v, want ErrInvalidMessage", err)
			}
		})
	}
}

func TestSession_Last(t *testing.T) {
	s := &Session{ID: "s1"}
	if _, ok := s.Last(); ok {
		t.Error("Last() ok = true on empty session")
	}

	s.Messages = []Message{userMsg("a", "one"), userMsg("b", "two")}
	last, ok := s.Last()
	if !ok || last.ID != "b" {
		t.Errorf("Last() = %q, %v; want b, true", last.ID, ok)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}
