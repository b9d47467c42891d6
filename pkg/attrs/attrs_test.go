package attrs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	args := []any{"entity", "district", "entity_id", int64(7), "count", 3, "dangling"}

	assert.Equal(t, "district", ExtractString(args, "entity"))
	assert.Empty(t, ExtractString(args, "entity_id"))
	assert.Equal(t, int64(7), ExtractInt64(args, "entity_id"))
	assert.Equal(t, int64(3), ExtractInt64(args, "count"))
	assert.Zero(t, ExtractInt64(args, "entity"))
	assert.Zero(t, ExtractInt64(args, "dangling"))
}
