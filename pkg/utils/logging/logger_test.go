package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/horizon/pkg/utils/logging"
)

func TestLevelFiltering(t *testing.T) {
	messages := []string{"debug message", "info message", "warn message", "error message"}

	testCases := []struct {
		level  string
		lowest int // index of the lowest message that must appear
	}{
		{"debug", 0},
		{"DEBUG", 0},
		{"info", 1},
		{"warn", 2},
		{"warning", 2},
		{"error", 3},
		{"bogus", 1},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := logging.New(tc.level, buf)

			logger.Debug(messages[0])
			logger.Info(messages[1])
			logger.Warn(messages[2])
			logger.Error(messages[3])

			for i, msg := range messages {
				if i >= tc.lowest {
					gt.S(t, buf.String()).Contains(msg)
				} else {
					gt.S(t, buf.String()).NotContains(msg)
				}
			}
		})
	}
}

func TestNewJSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New("debug", buf, logging.WithFormat(logging.FormatJSON))

	logger.Debug("turn processed", "turn", 3)

	var record map[string]any
	gt.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	gt.Equal(t, record["msg"], any("turn processed"))
	gt.Equal(t, record["level"], any("DEBUG"))
	gt.Equal(t, record["turn"], any(float64(3)))
}

func TestParseFormat(t *testing.T) {
	gt.Equal(t, logging.ParseFormat("JSON"), logging.FormatJSON)
	gt.Equal(t, logging.ParseFormat("console"), logging.FormatConsole)
	gt.Equal(t, logging.ParseFormat("unknown"), logging.FormatConsole)
}

func TestNilWriterFallsBackToStderr(t *testing.T) {
	gt.V(t, logging.New("info", nil)).NotNil()
}

func TestContextLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New("info", buf).With("session", "abc")

	ctx := logging.With(context.Background(), logger)
	gt.Equal(t, logging.From(ctx), logger)

	logging.From(ctx).Info("hello")
	gt.S(t, buf.String()).Contains("hello")
	gt.S(t, buf.String()).Contains("abc")
}

func TestFromFallsBackToDefault(t *testing.T) {
	original := logging.Default()
	defer logging.SetDefault(original)

	buf := &bytes.Buffer{}
	custom := logging.New("warn", buf)
	logging.SetDefault(custom)

	gt.Equal(t, logging.From(context.Background()), custom)
	logging.From(context.Background()).Warn("from default")
	gt.S(t, buf.String()).Contains("from default")
}
