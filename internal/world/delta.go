package world

import "fmt"

// DeltaKind names the one state change a mutator performed.
type DeltaKind int

const (
	Moved DeltaKind = iota
	Turned
	MarkerPlaced
	MarkerPicked
	Painted
)

func (k DeltaKind) String() string {
	switch k {
	case Moved:
		return "moved"
	case Turned:
		return "turned"
	case MarkerPlaced:
		return "marker placed"
	case MarkerPicked:
		return "marker picked"
	case Painted:
		return "painted"
	}
	return fmt.Sprintf("DeltaKind(%d)", int(k))
}

// Delta records exactly what one mutator changed, for incremental
// display. Only the fields relevant to Kind are meaningful.
type Delta struct {
	Kind DeltaKind

	// Robot pose before and after. Identical except for the field
	// the mutator touched.
	FromPos Position
	ToPos   Position
	FromDir Direction
	ToDir   Direction

	// Cell affected by a marker or paint change.
	Cell Position

	// Marker count at Cell before and after.
	MarkersBefore int
	MarkersAfter  int

	// Color at Cell before and after.
	ColorBefore RGB
	ColorAfter  RGB
}

func (d Delta) String() string {
	switch d.Kind {
	case Moved:
		return fmt.Sprintf("moved %s -> %s", d.FromPos, d.ToPos)
	case Turned:
		return fmt.Sprintf("turned %s -> %s", d.FromDir, d.ToDir)
	case MarkerPlaced, MarkerPicked:
		return fmt.Sprintf("%s at %s, count %d -> %d",
			d.Kind, d.Cell, d.MarkersBefore, d.MarkersAfter)
	case Painted:
		return fmt.Sprintf("painted %s %s -> %s", d.Cell, d.ColorBefore, d.ColorAfter)
	}
	return d.Kind.String()
}
