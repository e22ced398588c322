package audit

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetWriter(&buf)

	logger.Log(CategorizeEvent{
		ClientID:   "flutter-app",
		ClientIP:   "10.0.0.1",
		Category:   "Impulse",
		Confidence: 0.91,
		Amount:     200,
		Merchant:   "Swiggy",
		Success:    true,
	})

	line := buf.String()

	// PRI = facility(1)*8 + severity(6) = 14
	if !strings.HasPrefix(line, "<14>1 ") {
		t.Errorf("expected RFC5424 header with PRI 14, got: %s", line)
	}
	if !strings.Contains(line, "smscat") {
		t.Errorf("expected app name in log line, got: %s", line)
	}
	if !strings.Contains(line, "categorize") {
		t.Errorf("expected msgid in log line, got: %s", line)
	}
	if !strings.Contains(line, `category="Impulse"`) {
		t.Errorf("expected structured data in log line, got: %s", line)
	}
	if !strings.Contains(line, "flutter-app categorized an SMS as Impulse") {
		t.Errorf("expected message text in log line, got: %s", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Errorf("expected trailing newline")
	}
}

func TestEventSeverities(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  Severity
	}{
		{"categorize success", CategorizeEvent{Success: true}, SeverityInfo},
		{"categorize failure", CategorizeEvent{Success: false}, SeverityWarning},
		{"train success", TrainEvent{Success: true}, SeverityNotice},
		{"authn failure", AuthenticateEvent{Success: false}, SeverityWarning},
		{"reload success", ReloadEvent{Success: true}, SeverityNotice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.Severity(); got != tt.want {
				t.Errorf("Severity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEscapeSDValue(t *testing.T) {
	got := escapeSDValue(`va"lue\with]chars`)
	want := `"va\"lue\\with\]chars"`
	if got != want {
		t.Errorf("escapeSDValue() = %s, want %s", got, want)
	}
}

func TestFailureMessages(t *testing.T) {
	e := CategorizeEvent{Success: false, ErrorMessage: "model not loaded"}
	msg := e.Message()
	if !strings.Contains(msg, "model not loaded") {
		t.Errorf("expected error message in %q", msg)
	}
	if !strings.Contains(msg, "anonymous") {
		t.Errorf("expected anonymous client in %q", msg)
	}
}
