package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWriterFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWriter(&buf, "warn")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "enemy", "typo-gremlin")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "keystrike")
	assert.Contains(t, out, "typo-gremlin")
}

func TestNewWriterRejectsUnknownLevel(t *testing.T) {
	_, err := NewWriter(&bytes.Buffer{}, "loud")
	require.Error(t, err)
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing")
}
