package resource_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/edgard/nlpres/internal/resource"
)

func TestParams(t *testing.T) {
	t.Parallel()

	p := resource.Params{
		"path":      "/data/wn.db",
		"period":    3600,
		"timeout":   "90s",
		"lowercase": "false",
		"count":     "42",
		"files":     []any{"a.txt", "b.txt"},
		"nothing":   nil,
		"broken":    map[string]int{"x": 1},
	}

	assert.True(t, p.Has("path"))
	assert.False(t, p.Has("nothing"))
	assert.False(t, p.Has("missing"))

	assert.Equal(t, "/data/wn.db", p.String("path", ""))
	assert.Equal(t, "fallback", p.String("missing", "fallback"))
	assert.Equal(t, "fallback", p.String("broken", "fallback"))

	assert.Equal(t, int64(42), p.Int64("count", 0))
	assert.Equal(t, int64(7), p.Int64("path", 7))

	assert.False(t, p.Bool("lowercase", true))
	assert.True(t, p.Bool("missing", true))

	assert.Equal(t, 3600*time.Second, p.Duration("period", 0))
	assert.Equal(t, 90*time.Second, p.Duration("timeout", 0))
	assert.Equal(t, time.Minute, p.Duration("missing", time.Minute))

	assert.Equal(t, []string{"a.txt", "b.txt"}, p.StringSlice("files"))
	assert.Nil(t, p.StringSlice("missing"))

	clone := p.Clone()
	clone["path"] = "other"
	assert.Equal(t, "/data/wn.db", p.String("path", ""))
}
