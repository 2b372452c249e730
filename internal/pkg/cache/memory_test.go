package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemory_PutGet(t *testing.T) {
	m := NewMemory(time.Hour)
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, "key", []byte("value")))

	val, found, err := m.Get(ctx, "key")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte("value"), val)
}

func TestMemory_Miss(t *testing.T) {
	m := NewMemory(time.Hour)

	_, found, err := m.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemory_LazyExpiry(t *testing.T) {
	m := NewMemory(time.Hour)
	ctx := context.Background()

	now := time.Now()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Put(ctx, "key", []byte("value")))

	// Still fresh just under the TTL.
	now = now.Add(59 * time.Minute)
	_, found, err := m.Get(ctx, "key")
	require.NoError(t, err)
	require.True(t, found)

	// Stale past the TTL: dropped on read.
	now = now.Add(2 * time.Minute)
	_, found, err = m.Get(ctx, "key")
	require.NoError(t, err)
	require.False(t, found)
	require.Equal(t, 0, m.Len())
}

func TestMemory_LastWriterWins(t *testing.T) {
	m := NewMemory(time.Hour)
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, "key", []byte("first")))
	require.NoError(t, m.Put(ctx, "key", []byte("second")))

	val, found, err := m.Get(ctx, "key")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte("second"), val)
}
