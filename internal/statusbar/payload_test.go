package statusbar

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/username/status-calendar/internal/calendar"
	"go.uber.org/zap"
)

func TestBuild(t *testing.T) {
	renderer := calendar.NewRenderer(true, zap.NewNop())

	tests := []struct {
		name      string
		now       time.Time
		class     string
		wantClass string
		wantText  string
		wantWeek  string
	}{
		{
			name:      "Two digit day",
			now:       time.Date(2026, 10, 19, 9, 30, 0, 0, time.Local),
			wantClass: "date",
			wantText:  "Monday, October 19, 2026",
			wantWeek:  "Week #43",
		},
		{
			name:      "Single digit day is not padded",
			now:       time.Date(2025, 1, 5, 23, 59, 0, 0, time.Local),
			class:     "calendar",
			wantClass: "calendar",
			wantText:  "Sunday, January 5, 2025",
			wantWeek:  "Week #01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Build(tt.now, tt.class, renderer)

			if p.Class != tt.wantClass {
				t.Errorf("Class = %q, want %q", p.Class, tt.wantClass)
			}
			if p.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", p.Text, tt.wantText)
			}

			lines := strings.Split(p.Tooltip, "\n")
			if len(lines) < 4 {
				t.Fatalf("Tooltip has %d lines, want at least 4", len(lines))
			}
			if lines[1] != tt.wantWeek {
				t.Errorf("Tooltip week line = %q, want %q", lines[1], tt.wantWeek)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	renderer := calendar.NewRenderer(true, zap.NewNop())
	now := time.Date(2026, 10, 19, 9, 30, 0, 0, time.Local)

	var first, second bytes.Buffer
	if err := Write(&first, Build(now, "", renderer)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := Write(&second, Build(now, "", renderer)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Errorf("output is not deterministic:\n%s\n%s", first.String(), second.String())
	}

	out := first.String()
	if strings.Count(out, "\n") != 1 || !strings.HasSuffix(out, "\n") {
		t.Errorf("Write() should emit exactly one line, got %q", out)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(first.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 3 {
		t.Errorf("decoded %d keys, want 3: %v", len(decoded), decoded)
	}
	for _, key := range []string{"class", "text", "tooltip"} {
		if _, ok := decoded[key].(string); !ok {
			t.Errorf("key %q missing or not a string in %v", key, decoded)
		}
	}
	if decoded["class"] != "date" {
		t.Errorf("class = %v, want %q", decoded["class"], "date")
	}
}
