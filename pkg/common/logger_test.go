package common

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	_ "liyu1981.xyz/predictive-maintenance/pkg/testing"
)

func TestLoggingCapture(t *testing.T) {
	var buf bytes.Buffer
	SetTestCaptureLogger(&buf, zapcore.InfoLevel)

	logger := GetLogger()
	logger.Info("Test log message", zap.String("key", "value"))

	logOutput := buf.String()
	if !strings.Contains(logOutput, "Test log message") {
		t.Errorf("expected log output to contain message, got: %s", logOutput)
	}
}

func TestCategoryLogger(t *testing.T) {
	var buf bytes.Buffer
	SetTestCaptureLogger(&buf, zapcore.InfoLevel)

	GetCategoryLogger(LoggerCategoryHistory).Warn("sweep")

	out := buf.String()
	assert.Contains(t, out, `"logger":"pdm_core"`)
	assert.Contains(t, out, `"category":"history"`)
}

func TestLogOptionsDefaults(t *testing.T) {
	opts := LogOptions{Dir: "/tmp/x"}.withDefaults()
	assert.Equal(t, "/tmp/x", opts.Dir)
	assert.Equal(t, 10, opts.MaxSizeMB)
	assert.Equal(t, 5, opts.MaxBackups)
	assert.Equal(t, 28, opts.MaxAgeDays)
}
