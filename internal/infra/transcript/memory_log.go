package transcript

import (
	"context"
	"sync"

	"github.com/yanqian/weather-wizard/internal/domain/dialogue"
)

// MemoryLog keeps recent turns per session in process memory.
type MemoryLog struct {
	mu       sync.RWMutex
	turns    map[string][]dialogue.Turn
	capacity int
}

// NewMemoryLog builds a log retaining at most capacity turns per session.
// A non-positive capacity keeps everything.
func NewMemoryLog(capacity int) *MemoryLog {
	return &MemoryLog{
		turns:    make(map[string][]dialogue.Turn),
		capacity: capacity,
	}
}

// Append implements dialogue.TranscriptLog.
func (l *MemoryLog) Append(_ context.Context, turn dialogue.Turn) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	turns := append(l.turns[turn.SessionID], turn)
	if l.capacity > 0 && len(turns) > l.capacity {
		turns = append([]dialogue.Turn(nil), turns[len(turns)-l.capacity:]...)
	}
	l.turns[turn.SessionID] = turns
	return nil
}

// ListBySession returns up to limit of the newest turns in chronological order.
func (l *MemoryLog) ListBySession(_ context.Context, sessionID string, limit int) ([]dialogue.Turn, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	turns := l.turns[sessionID]
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	out := make([]dialogue.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

var _ dialogue.TranscriptLog = (*MemoryLog)(nil)
