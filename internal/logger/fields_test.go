package logger

import "testing"

func TestStringFieldsSkipsEmpty(t *testing.T) {
	fields := StringFields(
		StringField{Key: "goal", Value: "Backend Developer"},
		StringField{Key: "", Value: "ignored"},
		StringField{Key: "model", Value: "   "},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}
	if fields[0].Key != "goal" {
		t.Fatalf("unexpected field key: %s", fields[0].Key)
	}
}

func TestAdviceFields(t *testing.T) {
	fields := AdviceFields("gemini", "")

	if len(fields) != 1 {
		t.Fatalf("expected provider only, got %d fields", len(fields))
	}
	if fields[0].Key != FieldProvider {
		t.Fatalf("unexpected key: %s", fields[0].Key)
	}
}

func TestWithFieldsNilLogger(t *testing.T) {
	logger := WithFields(nil)
	if logger == nil {
		t.Fatalf("expected a usable logger")
	}
}

func TestTruncateForLog(t *testing.T) {
	if got := TruncateForLog("  hello world  ", 5); got != "hello..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := TruncateForLog("short", 10); got != "short" {
		t.Fatalf("expected untouched string, got %q", got)
	}
	if got := TruncateForLog("anything", 0); got != "" {
		t.Fatalf("expected empty string for zero limit, got %q", got)
	}
}
