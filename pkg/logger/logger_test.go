package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planetadeleste/avkit/pkg/logger"
)

type ctxKey string

func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults to JSON at info level", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf))

		log.Debug("hidden")
		assert.Zero(t, buf.Len())

		log.Info("shown", slog.String("key", "value"))
		record := decodeRecord(t, &buf)
		assert.Equal(t, "shown", record["msg"])
		assert.Equal(t, "value", record["key"])
	})

	t.Run("development profile emits text at debug level", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithDevelopment("avkit"), logger.WithOutput(&buf))

		log.Debug("visible")
		out := buf.String()
		assert.Contains(t, out, "visible")
		assert.Contains(t, out, "service=avkit")
	})

	t.Run("static attributes land on every record", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithAttr(slog.String("component", "gate")),
		)

		log.Info("first")
		record := decodeRecord(t, &buf)
		assert.Equal(t, "gate", record["component"])
	})

	t.Run("context values are injected at log time", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		key := ctxKey("request_id")
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithContextValue("request_id", key),
		)

		ctx := context.WithValue(context.Background(), key, "req-1")
		log.InfoContext(ctx, "traced")

		record := decodeRecord(t, &buf)
		assert.Equal(t, "req-1", record["request_id"])
	})

	t.Run("missing context value is skipped", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithContextValue("request_id", ctxKey("request_id")),
		)

		log.InfoContext(context.Background(), "untagged")
		record := decodeRecord(t, &buf)
		assert.NotContains(t, record, "request_id")
	})

	t.Run("unknown format panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			logger.New(logger.WithFormat("xml"))
		})
	})
}
