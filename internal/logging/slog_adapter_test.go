// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewSlogHandler(t *testing.T) {
	t.Parallel()

	handler := NewSlogHandler()
	if handler == nil {
		t.Fatal("NewSlogHandler() = nil, want non-nil")
	}
}

// pinGlobalLevel sets zerolog's package-wide level for the duration of a test.
// Tests that call it must not run in parallel.
func pinGlobalLevel(t *testing.T, level zerolog.Level) {
	t.Helper()

	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(level)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })
}

func TestSlogHandler_Enabled(t *testing.T) {
	pinGlobalLevel(t, zerolog.TraceLevel)

	tests := []struct {
		name         string
		zerologLevel zerolog.Level
		slogLevel    slog.Level
		want         bool
	}{
		{"debug logger enables debug level", zerolog.DebugLevel, slog.LevelDebug, true},
		{"info logger disables debug level", zerolog.InfoLevel, slog.LevelDebug, false},
		{"info logger enables info level", zerolog.InfoLevel, slog.LevelInfo, true},
		{"info logger enables warn level", zerolog.InfoLevel, slog.LevelWarn, true},
		{"warn logger disables info level", zerolog.WarnLevel, slog.LevelInfo, false},
		{"error logger disables warn level", zerolog.ErrorLevel, slog.LevelWarn, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &SlogHandler{logger: zerolog.New(nil).Level(tt.zerologLevel)}
			if got := handler.Enabled(context.Background(), tt.slogLevel); got != tt.want {
				t.Errorf("Enabled(%v) = %v, want %v", tt.slogLevel, got, tt.want)
			}
		})
	}
}

func TestSlogHandler_EnabledRespectsGlobalLevel(t *testing.T) {
	pinGlobalLevel(t, zerolog.InfoLevel)

	handler := &SlogHandler{logger: zerolog.New(nil)}
	if handler.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Enabled(debug) = true with global level info, want false")
	}
	if !handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Enabled(info) = false with global level info, want true")
	}
}

func TestSlogHandler_Handle(t *testing.T) {
	pinGlobalLevel(t, zerolog.TraceLevel)

	tests := []struct {
		name      string
		slogLevel slog.Level
		wantLevel string
	}{
		{"debug record", slog.LevelDebug, `"level":"debug"`},
		{"info record", slog.LevelInfo, `"level":"info"`},
		{"warn record", slog.LevelWarn, `"level":"warn"`},
		{"error record", slog.LevelError, `"level":"error"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			handler := &SlogHandler{logger: zerolog.New(&buf)}
			slogger := slog.New(handler)

			slogger.Log(context.Background(), tt.slogLevel, "handled message", "service", "api")

			output := buf.String()
			if !strings.Contains(output, tt.wantLevel) {
				t.Errorf("expected %s in output: %s", tt.wantLevel, output)
			}
			if !strings.Contains(output, "handled message") {
				t.Errorf("expected message in output: %s", output)
			}
			if !strings.Contains(output, `"service":"api"`) {
				t.Errorf("expected attribute in output: %s", output)
			}
		})
	}
}

func TestSlogHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := &SlogHandler{logger: zerolog.New(&buf)}

	slogger := slog.New(handler.WithAttrs([]slog.Attr{slog.String("component", "supervisor")}))
	slogger.Info("supervised")

	output := buf.String()
	if !strings.Contains(output, `"component":"supervisor"`) {
		t.Errorf("expected pre-configured attribute in output: %s", output)
	}
}

func TestSlogHandler_WithGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := &SlogHandler{logger: zerolog.New(&buf)}

	slogger := slog.New(handler.WithGroup("suture"))
	slogger.Info("restarting", "service", "http")

	output := buf.String()
	if !strings.Contains(output, `"suture.service":"http"`) {
		t.Errorf("expected group-prefixed attribute in output: %s", output)
	}
}

func TestSlogHandler_WithGroup_Nested(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := &SlogHandler{logger: zerolog.New(&buf)}

	slogger := slog.New(handler.WithGroup("suture").WithGroup("service"))
	slogger.Info("restarting", "name", "http")

	output := buf.String()
	if !strings.Contains(output, `"suture.service.name":"http"`) {
		t.Errorf("expected outermost-first group prefix in output: %s", output)
	}
}

func TestSlogHandler_GroupAttr(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := &SlogHandler{logger: zerolog.New(&buf)}

	slogger := slog.New(handler.WithGroup("suture"))
	slogger.Info("restarting", slog.Group("backoff", slog.Int("attempt", 3)))

	output := buf.String()
	if !strings.Contains(output, `"suture.backoff.attempt":3`) {
		t.Errorf("expected group attribute key in output: %s", output)
	}
}

func TestSlogHandler_WithGroup_Empty(t *testing.T) {
	t.Parallel()

	handler := &SlogHandler{logger: zerolog.New(nil)}
	if got := handler.WithGroup(""); got != handler {
		t.Error("WithGroup(\"\") should return the same handler")
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		slogLevel slog.Level
		want      zerolog.Level
	}{
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelDebug - 4, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		if got := slogToZerologLevel(tt.slogLevel); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.slogLevel, got, tt.want)
		}
	}
}

func TestNewSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	setLogger(zerolog.New(&buf))

	slogger := NewSlogLogger()
	slogger.Info("bridged message")

	if !strings.Contains(buf.String(), "bridged message") {
		t.Errorf("expected bridged message in output: %s", buf.String())
	}
}
