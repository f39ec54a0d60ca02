package envutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("EU_STR", "  hello ")
	t.Setenv("EU_INT", "42")
	t.Setenv("EU_BAD_INT", "x")
	t.Setenv("EU_BOOL", "Off")
	t.Setenv("EU_DUR", "1500ms")
	t.Setenv("EU_SECS", "3")
	t.Setenv("EU_FLOAT", "0.25")

	assert.Equal(t, "hello", String("EU_STR", "d"))
	assert.Equal(t, "d", String("EU_MISSING", "d"))
	assert.Equal(t, 42, Int("EU_INT", 1))
	assert.Equal(t, 1, Int("EU_BAD_INT", 1))
	assert.False(t, Bool("EU_BOOL", true))
	assert.True(t, Bool("EU_MISSING", true))
	assert.Equal(t, 1500*time.Millisecond, Duration("EU_DUR", time.Second))
	assert.Equal(t, 3*time.Second, Duration("EU_SECS", time.Second))
	assert.Equal(t, time.Second, Duration("EU_MISSING", time.Second))
	assert.Equal(t, 0.25, Float("EU_FLOAT", 1))
	assert.Equal(t, 1.0, Float("EU_STR", 1))
}
