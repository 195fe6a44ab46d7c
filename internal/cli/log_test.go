package cli

import (
	"bytes"
	"context"
	"regexp"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, LogInfo).Info("generated diagrams", "files", 2)

	assert.Regexp(t, regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} INFO generated diagrams files=2\n$`), buf.String())
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		debug bool
	}{
		{"default hides debug", LogInfo, false},
		{"verbose shows debug", LogDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			logger.Debug("declared diagram", "mode", "app")
			assert.Equal(t, tt.debug, buf.Len() > 0)

			logger.Warn("cache write failed")
			assert.Contains(t, buf.String(), "cache write failed")
		})
	}
}

func TestProgressRegenerated(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, LogInfo))

	p.done("Regenerated", "files", 2, "cached", 1)

	assert.Regexp(t, regexp.MustCompile(`INFO Regenerated elapsed=\d+(\.\d+)?(ns|µs|ms|s) files=2 cached=1\n$`), buf.String())
}

func TestProgressHiddenBelowInfo(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.WarnLevel))

	p.done("Regenerated", "files", 2)
	assert.Zero(t, buf.Len())
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, LogInfo)

	assert.Same(t, logger, loggerFromContext(withLogger(context.Background(), logger)))
	assert.Same(t, log.Default(), loggerFromContext(context.Background()))
}
