package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "distributors/pkg/platform/audit"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	for i := range int64(5) {
		require.NoError(t, s.Append(ctx, audit.Event{Action: "a", Entity: "district", EntityID: i % 2}))
	}

	byEntity, err := s.ListByEntity(ctx, "district", 1)
	require.NoError(t, err)
	assert.Len(t, byEntity, 2)

	recent, err := s.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, int64(0), recent[2].EntityID)

	all, err := s.ListRecent(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	s.Clear()
	recent, err = s.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestInMemoryStoreCapacity(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore(WithCapacity(3))
	for i := range int64(10) {
		require.NoError(t, s.Append(ctx, audit.Event{Action: "a", Entity: "district", EntityID: i}))
	}

	recent, err := s.ListRecent(ctx, 100)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, []int64{7, 8, 9}, []int64{recent[0].EntityID, recent[1].EntityID, recent[2].EntityID})

	evicted, err := s.ListByEntity(ctx, "district", 2)
	require.NoError(t, err)
	assert.Empty(t, evicted)

	kept, err := s.ListByEntity(ctx, "district", 8)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
	assert.LessOrEqual(t, len(s.events), 2*3)
}
