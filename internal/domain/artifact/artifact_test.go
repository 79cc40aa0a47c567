package artifact

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDiagramFilename(t *testing.T) {
	assert.Equal(t, "A_R10.svg", DiagramFilename("A_R10", ThemeLight))
	assert.Equal(t, "A_R10_dark.svg", DiagramFilename("A_R10", ThemeDark))
}

func TestDiagram_Filename(t *testing.T) {
	d := Diagram{Condition: "Tamb25", Point: "R10_R20", Theme: ThemeDark}
	assert.Equal(t, "Tamb25_R10_R20_dark.svg", d.Filename())
}

func TestNewEvents(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	d := Diagram{Condition: "A", Point: "R1", Theme: ThemeLight, Path: "/out/A_R1.svg", CreatedAt: now}

	ev := NewDiagramEvent("run-1", d)
	assert.Equal(t, EventDiagramRendered, ev.Type)
	assert.Equal(t, "run-1", ev.RunID)
	assert.Equal(t, "A", ev.Condition)
	assert.Equal(t, now, ev.Timestamp)

	ev = NewIndexEvent("run-1", Index{Path: "/r/results.json", Conditions: 2, Points: 5, UpdatedAt: now})
	assert.Equal(t, EventIndexUpdated, ev.Type)
	assert.Equal(t, 5, ev.Points)
}

//Personal.AI order the ending
