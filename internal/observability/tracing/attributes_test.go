package tracing

import (
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestSafeAttributesDropsSensitiveKeys(t *testing.T) {
	attrs := SafeAttributes(
		attribute.String("report.name", "cash_flow"),
		attribute.String("client.email", "a@b.c"),
		attribute.String("Authorization", "Bearer x"),
	)
	if len(attrs) != 1 {
		t.Fatalf("expected 1 attribute, got %d", len(attrs))
	}
	if attrs[0].Key != "report.name" {
		t.Fatalf("unexpected attribute kept: %s", attrs[0].Key)
	}
}

func TestSafeErrorHidesMessage(t *testing.T) {
	err := SafeError(errors.New("client phone 555-0100"))
	if err == nil || err.Error() != "*errors.errorString" {
		t.Fatalf("expected type-only error, got %v", err)
	}
	if SafeError(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}

func TestClampRatio(t *testing.T) {
	if got := clampRatio(0); got != 0.1 {
		t.Fatalf("expected default ratio, got %v", got)
	}
	if got := clampRatio(3); got != 1 {
		t.Fatalf("expected ratio capped at 1, got %v", got)
	}
	if got := clampRatio(0.5); got != 0.5 {
		t.Fatalf("expected ratio kept, got %v", got)
	}
}
