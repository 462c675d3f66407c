package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/weather-wizard/internal/domain/dialogue"
)

// ValkeyStore persists conversation state as JSON in Valkey.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "session"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, id string) (dialogue.ConversationState, bool, error) {
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.key(id)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return dialogue.ConversationState{}, false, nil
		}
		return dialogue.ConversationState{}, false, err
	}
	var state dialogue.ConversationState
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return dialogue.ConversationState{}, false, fmt.Errorf("decode session %s: %w", id, err)
	}
	return state, true, nil
}

func (s *ValkeyStore) Put(ctx context.Context, id string, state dialogue.ConversationState, ttl time.Duration) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.key(id)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) Delete(ctx context.Context, id string) error {
	return s.client.Do(ctx, s.client.B().Del().Key(s.key(id)).Build()).Error()
}

func (s *ValkeyStore) key(id string) string {
	return fmt.Sprintf("%s:%s", s.prefix, id)
}

var _ dialogue.SessionStore = (*ValkeyStore)(nil)
