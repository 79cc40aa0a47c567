// Package artifact describes what the pipeline produces and the port through
// which produced files are handed to optional downstream publishers.
package artifact

import (
	"context"
	"time"
)

// Theme selects the diagram variant.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Suffix is appended to the diagram basename before the extension.
func (t Theme) Suffix() string {
	if t == ThemeDark {
		return "_dark"
	}
	return ""
}

// String implements fmt.Stringer.
func (t Theme) String() string { return string(t) }

// DiagramExtension is the rendered diagram file extension.
const DiagramExtension = ".svg"

// DiagramFilename returns "<basename><suffix>.svg".
func DiagramFilename(basename string, theme Theme) string {
	return basename + theme.Suffix() + DiagramExtension
}

// Diagram is one rendered (operating point, theme) file on disk.
type Diagram struct {
	Condition string    `json:"condition"`
	Point     string    `json:"point"`
	Theme     Theme     `json:"theme"`
	Path      string    `json:"path"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// Filename returns the diagram's base file name.
func (d Diagram) Filename() string {
	return DiagramFilename(d.Condition+"_"+d.Point, d.Theme)
}

// Index is the consolidated index after an aggregation pass.
type Index struct {
	Path       string    `json:"path"`
	Conditions int       `json:"conditions"`
	Points     int       `json:"points"`
	Data       []byte    `json:"-"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Publisher receives artifacts after they are safely on disk. Failures are
// reported back but never undo local output.
type Publisher interface {
	Name() string
	PublishDiagram(ctx context.Context, runID string, d Diagram) error
	PublishIndex(ctx context.Context, runID string, idx Index) error
	Close() error
}

// EventType names the pipeline events emitted to the message bus.
type EventType string

const (
	EventDiagramRendered EventType = "diagram.rendered"
	EventIndexUpdated    EventType = "index.updated"
)

// Event is the message payload describing a produced artifact.
type Event struct {
	Type       EventType `json:"type"`
	RunID      string    `json:"run_id"`
	Condition  string    `json:"condition,omitempty"`
	Point      string    `json:"point,omitempty"`
	Theme      Theme     `json:"theme,omitempty"`
	Path       string    `json:"path"`
	Conditions int       `json:"conditions,omitempty"`
	Points     int       `json:"points,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewDiagramEvent builds the event for a rendered diagram.
func NewDiagramEvent(runID string, d Diagram) Event {
	return Event{
		Type:      EventDiagramRendered,
		RunID:     runID,
		Condition: d.Condition,
		Point:     d.Point,
		Theme:     d.Theme,
		Path:      d.Path,
		Timestamp: d.CreatedAt,
	}
}

// NewIndexEvent builds the event for an updated index.
func NewIndexEvent(runID string, idx Index) Event {
	return Event{
		Type:       EventIndexUpdated,
		RunID:      runID,
		Path:       idx.Path,
		Conditions: idx.Conditions,
		Points:     idx.Points,
		Timestamp:  idx.UpdatedAt,
	}
}

//Personal.AI order the ending
