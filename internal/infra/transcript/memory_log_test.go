package transcript

import (
	"context"
	"io/fs"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/weather-wizard/internal/domain/dialogue"
)

func TestMemoryLogListsNewestInOrder(t *testing.T) {
	log := NewMemoryLog(0)
	ctx := context.Background()
	for _, msg := range []string{"one", "two", "three"} {
		require.NoError(t, log.Append(ctx, dialogue.Turn{ID: uuid.New(), SessionID: "s1", Utterance: msg}))
	}
	require.NoError(t, log.Append(ctx, dialogue.Turn{ID: uuid.New(), SessionID: "s2", Utterance: "other"}))

	turns, err := log.ListBySession(ctx, "s1", 2)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	require.Equal(t, "two", turns[0].Utterance)
	require.Equal(t, "three", turns[1].Utterance)
}

func TestMemoryLogCapacity(t *testing.T) {
	log := NewMemoryLog(2)
	ctx := context.Background()
	for _, msg := range []string{"one", "two", "three"} {
		require.NoError(t, log.Append(ctx, dialogue.Turn{SessionID: "s1", Utterance: msg}))
	}

	turns, err := log.ListBySession(ctx, "s1", 0)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	require.Equal(t, "two", turns[0].Utterance)
}

func TestMemoryLogUnknownSession(t *testing.T) {
	turns, err := NewMemoryLog(0).ListBySession(context.Background(), "missing", 10)
	require.NoError(t, err)
	require.NotNil(t, turns)
	require.Empty(t, turns)
}

func TestMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(Migrations(), "*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(Migrations(), "*.down.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)
	require.Len(t, downs, len(ups))
}
