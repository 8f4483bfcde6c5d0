package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWriter(&buf, "info")
	if err != nil {
		t.Fatal(err)
	}
	log.Debug().Msg("hidden")
	log.Info().Int("depth", 3).Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "depth=3") {
		t.Fatalf("info line missing: %q", out)
	}
}

func TestUnknownLevel(t *testing.T) {
	if _, err := NewWriter(&bytes.Buffer{}, "loud"); err == nil {
		t.Fatalf("expected an error")
	}
}
