package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestHandler_PrintsRequestID(t *testing.T) {
	var buf bytes.Buffer
	opts := *DefaultOptions
	opts.NoColor = true
	log := slog.New(NewHandler(&buf, &opts))

	ctx := ContextWithRequestID(context.Background(), "0f8fad5b-d9cb-469f-a165-70867728950e")
	log.InfoContext(ctx, "Calling model", "model", "gemini", Err(errors.New("boom")))

	out := buf.String()
	assert.Contains(t, out, "Calling model")
	assert.Contains(t, out, "0f8fad5b")
	assert.NotContains(t, out, "70867728950e")
	assert.Contains(t, out, "boom")
}

func TestRequestIDFromContext(t *testing.T) {
	_, ok := RequestIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = RequestIDFromContext(ContextWithRequestID(context.Background(), ""))
	assert.False(t, ok)

	id, ok := RequestIDFromContext(ContextWithRequestID(context.Background(), "abc"))
	assert.True(t, ok)
	assert.Equal(t, "abc", id)
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oracai.log")

	log, closer, err := New(Config{Level: "warn", File: path})
	require.NoError(t, err)

	ctx := ContextWithRequestID(context.Background(), "req-1")
	log.InfoContext(ctx, "Skipped")
	log.WarnContext(ctx, "Unexpected animation status", "status", 404)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 1)
	record := gjson.ParseBytes(lines[0])
	assert.Equal(t, "Unexpected animation status", record.Get("msg").String())
	assert.Equal(t, "req-1", record.Get("request_id").String())
	assert.EqualValues(t, 404, record.Get("status").Int())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}
