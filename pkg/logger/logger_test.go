package logger

import (
	"errors"
	"log/slog"
	"testing"
)

func TestNormalize_KeyedArgsPassThrough(t *testing.T) {
	args := []any{"user_id", "u1", "count", 3}
	out := normalize(args)

	if len(out) != len(args) {
		t.Fatalf("expected args unchanged, got %d entries", len(out))
	}
	if out[0] != "user_id" || out[2] != "count" {
		t.Errorf("keyed args should pass through untouched, got %v", out)
	}
}

func TestNormalize_BareErrorGetsErrorKey(t *testing.T) {
	out := normalize([]any{errors.New("boom")})

	if len(out) != 1 {
		t.Fatalf("expected 1 attr, got %d", len(out))
	}
	attr, ok := out[0].(slog.Attr)
	if !ok {
		t.Fatalf("expected slog.Attr, got %T", out[0])
	}
	if attr.Key != "error" {
		t.Errorf("expected key %q, got %q", "error", attr.Key)
	}
}

func TestNormalize_LooseArgsGetPositionalKeys(t *testing.T) {
	args := make([]any, 12)
	for i := range args {
		args[i] = i
	}

	out := normalize(args)
	if len(out) != 12 {
		t.Fatalf("expected 12 attrs, got %d", len(out))
	}

	attr, ok := out[11].(slog.Attr)
	if !ok {
		t.Fatalf("expected slog.Attr, got %T", out[11])
	}
	if attr.Key != "arg11" {
		t.Errorf("expected two-digit index key %q, got %q", "arg11", attr.Key)
	}
}
