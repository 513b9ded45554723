package storage

import (
	"encoding/json"
	"fmt"

	"llmchat/chat"
)

// sessionKey is the single key the session projection lives under.
const sessionKey = "session"

// SessionStore persists the chat session projection as JSON in the
// key-value store. It implements chat.Store: write-through on every
// mutation, last write wins.
type SessionStore struct {
	kv *KV
}

// NewSessionStore creates a session store over the given KV.
func NewSessionStore(kv *KV) *SessionStore {
	return &SessionStore{kv: kv}
}

// Save serializes and stores the session.
func (s *SessionStore) Save(session *chat.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.kv.Put(sessionKey, string(data)); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Load returns the persisted session, or (nil, nil) when none was saved.
func (s *SessionStore) Load() (*chat.Session, error) {
	data, ok, err := s.kv.Get(sessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var session chat.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}
