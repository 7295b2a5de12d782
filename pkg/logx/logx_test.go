package logx

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestWithFieldsWritesStructuredOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, true)
	SetLevel(LevelInfo)
	defer SetOutput(&bytes.Buffer{}, false)

	WithFields(Fields{"application_id": 12}).Infof("cancelled by %s", "owner")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	if line["message"] != "cancelled by owner" {
		t.Fatalf("message = %v", line["message"])
	}
	if line["application_id"] != float64(12) {
		t.Fatalf("application_id = %v", line["application_id"])
	}
}

func TestSetLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, true)
	SetLevel(LevelWarn)
	defer SetOutput(&bytes.Buffer{}, false)

	Infof("hidden %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}
	Warn("shown")
	if buf.Len() == 0 {
		t.Fatalf("expected warn to be written")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %d, want %d", in, got, want)
		}
	}
}
