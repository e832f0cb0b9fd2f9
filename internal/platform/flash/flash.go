package flash

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Store queues one-shot notifications per user until they are popped.
type Store interface {
	Add(ctx context.Context, userID uuid.UUID, msg Message) error
	Pop(ctx context.Context, userID uuid.UUID) ([]Message, error)
}

func Success(text string) Message { return Message{Level: LevelSuccess, Text: text} }

type MemoryStore struct {
	mu   sync.Mutex
	msgs map[uuid.UUID][]Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{msgs: make(map[uuid.UUID][]Message)}
}

func (s *MemoryStore) Add(_ context.Context, userID uuid.UUID, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs[userID] = append(s.msgs[userID], msg)
	return nil
}

func (s *MemoryStore) Pop(_ context.Context, userID uuid.UUID) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.msgs[userID]
	delete(s.msgs, userID)
	if out == nil {
		out = []Message{}
	}
	return out, nil
}
