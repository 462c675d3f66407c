package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/weather-wizard/internal/domain/dialogue"
)

const defaultListLimit = 200

// PostgresLog persists dialogue turns in Postgres.
type PostgresLog struct {
	pool *pgxpool.Pool
}

// NewPostgresLog constructs the adapter.
func NewPostgresLog(pool *pgxpool.Pool) *PostgresLog {
	return &PostgresLog{pool: pool}
}

// Append inserts a dialogue turn.
func (l *PostgresLog) Append(ctx context.Context, turn dialogue.Turn) error {
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}
	slots, err := json.Marshal(turn.Slots)
	if err != nil {
		return fmt.Errorf("encode slots: %w", err)
	}
	_, err = l.pool.Exec(ctx, `
		INSERT INTO dialogue_turns (id, session_id, utterance, response, outcome, slots, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, turn.ID, turn.SessionID, turn.Utterance, turn.Response, string(turn.Outcome), slots, turn.CreatedAt)
	return err
}

// ListBySession returns the newest turns for a session in chronological order.
func (l *PostgresLog) ListBySession(ctx context.Context, sessionID string, limit int) ([]dialogue.Turn, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := l.pool.Query(ctx, `
		SELECT id, session_id, utterance, response, outcome, slots, created_at
		FROM dialogue_turns
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	turns := make([]dialogue.Turn, 0)
	for rows.Next() {
		var (
			turn    dialogue.Turn
			outcome string
			slots   []byte
		)
		if err := rows.Scan(&turn.ID, &turn.SessionID, &turn.Utterance, &turn.Response, &outcome, &slots, &turn.CreatedAt); err != nil {
			return nil, err
		}
		turn.Outcome = dialogue.Outcome(outcome)
		if len(slots) > 0 {
			if err := json.Unmarshal(slots, &turn.Slots); err != nil {
				return nil, fmt.Errorf("decode slots: %w", err)
			}
		}
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

var _ dialogue.TranscriptLog = (*PostgresLog)(nil)
