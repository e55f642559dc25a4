package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func useStateHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return dir
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stateDir := useStateHome(t)

			SetupLoggerWithOptions(Options{Verbosity: tt.verbosity, Out: &bytes.Buffer{}})

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())

			logPath := filepath.Join(stateDir, "hookhub", "hookhub.log")
			_, err := os.Stat(logPath)
			assert.NoError(t, err, "log file should exist at %s", logPath)
		})
	}
}

func TestSetupLoggerWithoutFile(t *testing.T) {
	stateDir := useStateHome(t)
	var buf bytes.Buffer

	SetupLoggerWithOptions(Options{Verbosity: 1, Out: &buf, NoFile: true, NoColor: true})
	log.Info().Msg("hello from test")

	assert.Contains(t, buf.String(), "hello from test")
	_, err := os.Stat(filepath.Join(stateDir, "hookhub", "hookhub.log"))
	assert.True(t, os.IsNotExist(err))
}

func TestLogFilePath(t *testing.T) {
	stateDir := useStateHome(t)

	got := LogFilePath()

	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, filepath.Join(stateDir, "hookhub", "hookhub.log"), got)
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	log.Logger = zerolog.New(&buf)

	logger := GetLogger("dispatcher")
	logger.Info().Msg("test message")

	assert.Contains(t, buf.String(), `"component":"dispatcher"`)
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	log.Logger = zerolog.New(&buf)

	logger := WithFields(map[string]interface{}{
		"phase": "ready",
		"count": 2,
	})
	logger.Info().Msg("test message with fields")

	output := buf.String()
	assert.Contains(t, output, `"phase":"ready"`)
	assert.Contains(t, output, `"count":2`)
}

func TestLogTransition(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	logger := zerolog.New(&buf)

	LogTransition(logger, "Registering", "Dispatched")

	output := buf.String()
	assert.Contains(t, output, `"from":"Registering"`)
	assert.Contains(t, output, `"to":"Dispatched"`)
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	logger := zerolog.New(&buf)

	done := LogOperationStart(logger, "collect-registrations")
	done()

	output := buf.String()
	assert.Contains(t, output, "Operation started")
	assert.Contains(t, output, "Operation completed")
	assert.Contains(t, output, "duration")
}

func TestMustNoError(t *testing.T) {
	assert.NotPanics(t, func() {
		Must(nil, "this should not exit")
	})
}
