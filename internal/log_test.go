package internal

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelError, ParseLogLevel("error"))
	assert.Equal(t, LogLevelWarn, ParseLogLevel("Warning"))
	assert.Equal(t, LogLevelTrace, ParseLogLevel(" TRACE "))
	assert.Equal(t, LogLevelInfo, ParseLogLevel(""))
	assert.Equal(t, LogLevelInfo, ParseLogLevel("loud"))
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := &Logger{level: LogLevelInfo, out: log.New(&buf, "", 0)}

	logger.With("ui").Info("listening on %s", ":8050")
	logger.Debug("hidden")

	assert.Equal(t, "[INFO] [ui] listening on :8050\n", buf.String())
	assert.Equal(t, LogLevelInfo, logger.GetLevel())
}
