package statusbar

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/username/status-calendar/internal/calendar"
	"github.com/username/status-calendar/pkg/dateutil"
)

// DefaultClass is the CSS class bars use to style the module
const DefaultClass = "date"

// TextLayout formats the bar text, e.g. "Monday, October 19, 2026"
const TextLayout = "Monday, January 2, 2006"

// Payload is the JSON object a status bar custom module reads
type Payload struct {
	Class   string `json:"class"`
	Text    string `json:"text"`
	Tooltip string `json:"tooltip"`
}

// Build renders the payload for now. now is read once by the caller and
// every field is derived from it.
func Build(now time.Time, class string, renderer *calendar.Renderer) Payload {
	if class == "" {
		class = DefaultClass
	}

	return Payload{
		Class:   class,
		Text:    now.Format(TextLayout),
		Tooltip: renderer.Tooltip(dateutil.FromTime(now)),
	}
}

// Write encodes p as a single JSON line
func Write(w io.Writer, p Payload) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}

	return nil
}
