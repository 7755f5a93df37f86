package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  file  ", Value: "  resume.pdf  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}

	if fields[0].Key != "file" || fields[0].String != "resume.pdf" {
		t.Fatalf("unexpected file field: %+v", fields[0])
	}

	if empty := StringFields(); len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	enriched := WithFields(logger, zap.String("foo", "bar"))
	enriched.Info("test log")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	if ctx := entries[0].ContextMap(); ctx["foo"] != "bar" {
		t.Fatalf("expected field to be bar, got %q", ctx["foo"])
	}

	enriched = WithFields(nil, zap.String("baz", "qux"))
	if enriched == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}

	// Logging through the fallback must not panic.
	enriched.Info("another log")
}

func TestSessionFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := WithFields(zap.New(core), SessionFields("  abc-123 ", 4)...)
	logger.Info("staged")

	ctx := observed.All()[0].ContextMap()
	if ctx[FieldSession] != "abc-123" {
		t.Fatalf("unexpected session field: %v", ctx[FieldSession])
	}
	if ctx[FieldAttempt] != uint64(4) {
		t.Fatalf("unexpected attempt field: %v", ctx[FieldAttempt])
	}

	if fields := SessionFields("abc", 0); len(fields) != 1 {
		t.Fatalf("expected attempt to be omitted when zero, got %d fields", len(fields))
	}

	if fields := SessionFields("", 0); len(fields) != 0 {
		t.Fatalf("expected no fields, got %d", len(fields))
	}
}
