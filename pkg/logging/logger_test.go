package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLevelAndOutput(t *testing.T) {
	var buf bytes.Buffer
	Setup(Config{Level: "debug", Output: &buf})
	defer Setup(DefaultConfig())

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	logger := FromContext(context.Background())
	logger.Info().Msg("hello")
	require.NotZero(t, buf.Len())

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["message"])
}

func TestSetupInvalidLevelFallsBackToInfo(t *testing.T) {
	Setup(Config{Level: "nonsense"})
	defer Setup(DefaultConfig())

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestFromContextWithBook(t *testing.T) {
	var buf bytes.Buffer
	Setup(Config{Level: "debug", Output: &buf})
	defer Setup(DefaultConfig())

	ctx := WithBook(context.Background(), "BTC-MB")
	ctx = context.WithValue(ctx, RequestIDKey, "req-42")

	logger := FromContext(ctx)
	logger.Info().Msg("tagged")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "BTC-MB", line["book"])
	assert.Equal(t, "req-42", line["request_id"])
}
