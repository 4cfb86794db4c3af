package internal

import (
	"strconv"
	"sync"
	"time"
)

// testTime is a fixed instant used by test fixtures
var testTime = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

// CreateTestSession creates a test session with one exchange
func CreateTestSession(id string) *Session {
	return &Session{
		ID: id,
		Messages: []Message{
			NewUserMessage("m1", "Which crop suits black soil in Kharif?", testTime, "en", nil),
			NewAssistantMessage("m2", "Cotton and soybean do well in black soil during Kharif.", testTime.Add(time.Second), "en", false),
		},
	}
}

// CreateTestSessionWithMessages creates a test session with custom messages
func CreateTestSessionWithMessages(id string, messages []Message) *Session {
	return &Session{
		ID:       id,
		Messages: messages,
	}
}

// CreateTestImageSession creates a session holding an image message and an
// offline reply
func CreateTestImageSession(id string) *Session {
	return &Session{
		ID: id,
		Messages: []Message{
			NewUserMessage("img1", ImageDisplayText, testTime, "hi", NewImageRef([]byte("\x89PNG\r\n\x1a\nfake"))),
			NewAssistantMessage("img2", MultiModalOfflineReply, testTime.Add(time.Second), "hi", true),
		},
	}
}

// SequentialIDs returns an id generator yielding prefix-1, prefix-2, ...
func SequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return prefix + "-" + strconv.Itoa(n)
	}
}

// SteppingClock returns a clock that starts at start and advances one
// second on every call
func SteppingClock(start time.Time) Clock {
	var mu sync.Mutex
	t := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := t
		t = t.Add(time.Second)
		return now
	}
}
