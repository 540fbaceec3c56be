package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	transcriptKeyPrefix   = "chat:transcript:"
	maxTranscriptMessages = 250
	defaultTranscriptTTL  = 24 * time.Hour
)

// TranscriptMessage is one stored chat turn.
type TranscriptMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}

// TranscriptStore persists per-session chat history.
type TranscriptStore interface {
	Append(ctx context.Context, sessionID string, msg TranscriptMessage) error
	List(ctx context.Context, sessionID string, limit int64) ([]TranscriptMessage, error)
}

// RedisTranscriptStore keeps transcripts in capped Redis lists.
type RedisTranscriptStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisTranscriptStore(redisClient *redis.Client, ttl time.Duration) *RedisTranscriptStore {
	if redisClient == nil {
		panic("chat: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = defaultTranscriptTTL
	}
	return &RedisTranscriptStore{redis: redisClient, ttl: ttl}
}

func transcriptKey(sessionID string) string {
	return transcriptKeyPrefix + sessionID
}

func (s *RedisTranscriptStore) Append(ctx context.Context, sessionID string, msg TranscriptMessage) error {
	if sessionID == "" {
		return errors.New("chat: transcript sessionID required")
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("chat: marshal transcript message: %w", err)
	}

	key := transcriptKey(sessionID)
	pipe := s.redis.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, s.ttl)
	pipe.LTrim(ctx, key, -maxTranscriptMessages, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("chat: append transcript message: %w", err)
	}
	return nil
}

func (s *RedisTranscriptStore) List(ctx context.Context, sessionID string, limit int64) ([]TranscriptMessage, error) {
	if sessionID == "" {
		return nil, errors.New("chat: transcript sessionID required")
	}

	start := int64(0)
	if limit > 0 {
		start = -limit
	}
	raw, err := s.redis.LRange(ctx, transcriptKey(sessionID), start, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []TranscriptMessage{}, nil
		}
		return nil, fmt.Errorf("chat: list transcript: %w", err)
	}

	out := make([]TranscriptMessage, 0, len(raw))
	for _, item := range raw {
		var msg TranscriptMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			continue
		}
		out = append(out, msg)
	}
	return out, nil
}

// MemoryTranscriptStore is an in-memory TranscriptStore for tests and
// environments without Redis.
type MemoryTranscriptStore struct {
	mu       sync.RWMutex
	messages map[string][]TranscriptMessage
}

func NewMemoryTranscriptStore() *MemoryTranscriptStore {
	return &MemoryTranscriptStore{messages: make(map[string][]TranscriptMessage)}
}

func (s *MemoryTranscriptStore) Append(ctx context.Context, sessionID string, msg TranscriptMessage) error {
	if sessionID == "" {
		return errors.New("chat: transcript sessionID required")
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	list := append(s.messages[sessionID], msg)
	if len(list) > maxTranscriptMessages {
		list = list[len(list)-maxTranscriptMessages:]
	}
	s.messages[sessionID] = list
	return nil
}

func (s *MemoryTranscriptStore) List(ctx context.Context, sessionID string, limit int64) ([]TranscriptMessage, error) {
	if sessionID == "" {
		return nil, errors.New("chat: transcript sessionID required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.messages[sessionID]
	if limit > 0 && int64(len(list)) > limit {
		list = list[int64(len(list))-limit:]
	}
	out := make([]TranscriptMessage, len(list))
	copy(out, list)
	return out, nil
}
