package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomvannes/riskpulse/pkg/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *config.Config
		wantLevel zerolog.Level
	}{
		{
			name: "debug level",
			cfg: &config.Config{
				Env:       "development",
				LogLevel:  "debug",
				LogFormat: "json",
			},
			wantLevel: zerolog.DebugLevel,
		},
		{
			name: "info level",
			cfg: &config.Config{
				Env:       "production",
				LogLevel:  "info",
				LogFormat: "json",
			},
			wantLevel: zerolog.InfoLevel,
		},
		{
			name: "warn level",
			cfg: &config.Config{
				Env:       "staging",
				LogLevel:  "warn",
				LogFormat: "console",
			},
			wantLevel: zerolog.WarnLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.cfg)
			if logger == nil {
				t.Fatal("Expected logger to be created")
			}

			if zerolog.GlobalLevel() != tt.wantLevel {
				t.Errorf("Expected global level %v, got %v", tt.wantLevel, zerolog.GlobalLevel())
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"invalid", zerolog.InfoLevel}, // Default
		{"", zerolog.InfoLevel},        // Default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseLogLevel(tt.input)
			if got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoggerMethods(t *testing.T) {
	var buf bytes.Buffer

	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	zlog := zerolog.New(&buf).With().Timestamp().Logger()
	logger := &Logger{zlog: zlog}

	tests := []struct {
		name      string
		logFunc   func()
		wantMsg   string
		wantLevel string
	}{
		{
			name: "debug",
			logFunc: func() {
				logger.Debug("debug message")
			},
			wantMsg:   "debug message",
			wantLevel: "debug",
		},
		{
			name: "info",
			logFunc: func() {
				logger.Info("info message")
			},
			wantMsg:   "info message",
			wantLevel: "info",
		},
		{
			name: "warn",
			logFunc: func() {
				logger.Warn("warn message")
			},
			wantMsg:   "warn message",
			wantLevel: "warn",
		},
		{
			name: "error",
			logFunc: func() {
				logger.Error("error message")
			},
			wantMsg:   "error message",
			wantLevel: "error",
		},
		{
			name: "infof",
			logFunc: func() {
				logger.Infof("score: %d", 42)
			},
			wantMsg:   "score: 42",
			wantLevel: "info",
		},
		{
			name: "warnf",
			logFunc: func() {
				logger.Warnf("retry attempt: %d", 3)
			},
			wantMsg:   "retry attempt: 3",
			wantLevel: "warn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.logFunc()

			var logEntry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
				t.Fatalf("Failed to parse log output: %v", err)
			}

			if logEntry["level"] != tt.wantLevel {
				t.Errorf("Expected level %q, got %q", tt.wantLevel, logEntry["level"])
			}

			if logEntry["message"] != tt.wantMsg {
				t.Errorf("Expected message %q, got %q", tt.wantMsg, logEntry["message"])
			}
		})
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer

	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	zlog := zerolog.New(&buf).With().Timestamp().Logger()
	logger := &Logger{zlog: zlog}

	fields := map[string]interface{}{
		"signal": "VIX (Volatility Index)",
		"tier":   "Red",
		"score":  75,
	}

	enrichedLogger := logger.WithFields(fields)
	enrichedLogger.Info("evaluation complete")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse log output: %v", err)
	}

	if logEntry["signal"] != "VIX (Volatility Index)" {
		t.Errorf("Expected signal field, got %v", logEntry["signal"])
	}

	if logEntry["tier"] != "Red" {
		t.Errorf("Expected tier to be Red, got %v", logEntry["tier"])
	}

	if logEntry["score"] != float64(75) {
		t.Errorf("Expected score to be 75, got %v", logEntry["score"])
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	zlog := zerolog.New(&buf).With().Timestamp().Logger()
	logger := &Logger{zlog: zlog}

	testErr := errors.New("upstream fetch failed")
	enrichedLogger := logger.WithError(testErr)
	enrichedLogger.Error("collection failed")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse log output: %v", err)
	}

	if logEntry["error"] != "upstream fetch failed" {
		t.Errorf("Expected error field, got %v", logEntry["error"])
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	if logger == nil {
		t.Fatal("Expected nop logger to be created")
	}

	// Must be safe to call every method.
	logger.Debug("discarded")
	logger.Info("discarded")
	logger.Warn("discarded")
	logger.Error("discarded")
	logger.WithField("k", "v").Info("discarded")
	logger.WithError(errors.New("x")).Error("discarded")
}
