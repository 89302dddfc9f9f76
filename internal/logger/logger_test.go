package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "web", "debug", "json")
	l.Debug("request", "path", "/api/lembretes", "status", 200)

	out := buf.String()
	for _, want := range []string{`"msg":"request"`, `"path":"/api/lembretes"`, `"prefix":"web"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output: %s", want, out)
		}
	}
}

func TestNewWithWriterFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "", "nonsense", "text")
	l.Debug("hidden")
	l.Info("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output for info level: %q", out)
	}
}
