package logger

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        Info,
		"debug":   Debug,
		"WARNING": Warn,
		"error":   Error,
		"nope":    Info,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestLogger_WithAddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core)).With(map[string]any{"component": "booking"})

	l.Warn("remote write failed", map[string]any{
		"err":            errors.New("boom"),
		"appointment_id": "app-1",
		"":               "ignored",
	})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["component"] != "booking" {
		t.Fatalf("expected component field, got %#v", ctx)
	}
	if ctx["appointment_id"] != "app-1" {
		t.Fatalf("expected appointment_id field, got %#v", ctx)
	}
	if ctx["err"] != "boom" {
		t.Fatalf("expected err field, got %#v", ctx["err"])
	}
	if _, ok := ctx[""]; ok {
		t.Fatalf("empty key must be dropped")
	}
}
