package internal

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

const sessionKeyPrefix = "session:"

// SessionKey returns the KV key holding a session's log
func SessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

// SessionStore owns one append-only message log per session id.
// Appends to the same session are serialized; appends to different
// sessions never contend.
type SessionStore struct {
	kv  KVStore
	now Clock

	mu      sync.Mutex
	records map[string]*record[Message]
}

// NewSessionStore creates a session store over kv
func NewSessionStore(kv KVStore, now Clock) *SessionStore {
	return &SessionStore{
		kv:      kv,
		now:     now,
		records: make(map[string]*record[Message]),
	}
}

func (s *SessionStore) record(sessionID string) *record[Message] {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[sessionID]
	if !ok {
		r = newRecord[Message](s.kv, SessionKey(sessionID), SchemaSession, s.now)
		s.records[sessionID] = r
	}
	return r
}

// Append adds msg to the end of the session log and persists the full log.
// It fails only for an invalid message or an id already present in the
// session; a failed write is logged and the append still takes effect.
func (s *SessionStore) Append(ctx context.Context, sessionID string, msg Message) (*Session, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	messages, err := s.record(sessionID).mutate(ctx, func(log []Message) ([]Message, error) {
		for _, existing := range log {
			if existing.ID == msg.ID {
				return nil, fmt.Errorf("%w: %s in session %s", ErrDuplicateMessageID, msg.ID, sessionID)
			}
		}
		return append(log, msg), nil
	})
	if err != nil {
		return nil, err
	}

	return &Session{ID: sessionID, Messages: messages}, nil
}

// Load returns the session log. A missing, unreadable or corrupt value
// yields an empty session.
func (s *SessionStore) Load(ctx context.Context, sessionID string) *Session {
	messages := s.record(sessionID).snapshot(ctx)
	if messages == nil {
		messages = []Message{}
	}
	return &Session{ID: sessionID, Messages: messages}
}

// List returns the ids of all persisted sessions. Stores that cannot
// enumerate keys yield only the sessions touched by this process.
func (s *SessionStore) List(ctx context.Context) ([]string, error) {
	lister, ok := s.kv.(KeyLister)
	if !ok {
		s.mu.Lock()
		defer s.mu.Unlock()
		ids := make([]string, 0, len(s.records))
		for id := range s.records {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		return ids, nil
	}

	keys, err := lister.Keys(ctx, sessionKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, strings.TrimPrefix(key, sessionKeyPrefix))
	}
	return ids, nil
}
