// Package program holds the immutable instruction tree the interpreter
// executes. Trees are produced externally (a compiler, a test, a YAML
// document) and validated once at load time; the interpreter only reads
// them.
package program

import (
	"fmt"

	"karel/internal/world"
)

// NodeID identifies one node of a loaded program, assigned in document
// order starting at 1. Breakpoints and frame-stack reports use it.
type NodeID int

// Node is one instruction-tree node.
type Node interface {
	ID() NodeID
	// Describe is a one-line rendering for debugger listings.
	Describe() string
}

type base struct {
	id NodeID
}

func (b base) ID() NodeID { return b.id }

// Sequence runs its children in order.
type Sequence struct {
	base
	Children []Node
}

func (s *Sequence) Describe() string {
	return fmt.Sprintf("sequence of %d", len(s.Children))
}

// Action is a primitive robot operation. Color is set only for paint.
type Action struct {
	base
	Name  string
	Color world.RGB
}

func (a *Action) Describe() string {
	if a.Name == ActionPaint {
		return fmt.Sprintf("paint %s", a.Color)
	}
	return a.Name
}

// Condition is a sensor query, pure against the world. Color is set
// only for colorIs.
type Condition struct {
	Name  string
	Color world.RGB
}

func (c Condition) String() string {
	if c.Name == CondColorIs {
		return fmt.Sprintf("colorIs %s", c.Color)
	}
	return c.Name
}

// If evaluates Cond once and runs one branch. Else may be nil.
type If struct {
	base
	Cond Condition
	Then *Sequence
	Else *Sequence
}

func (n *If) Describe() string { return fmt.Sprintf("if %s", n.Cond) }

// Repeat runs Body a fixed number of times.
type Repeat struct {
	base
	Count int
	Body  *Sequence
}

func (n *Repeat) Describe() string { return fmt.Sprintf("repeat %d", n.Count) }

// While re-checks Cond before each iteration of Body. A perpetually
// true condition is valid; the program just never completes.
type While struct {
	base
	Cond Condition
	Body *Sequence
}

func (n *While) Describe() string { return fmt.Sprintf("while %s", n.Cond) }

// Call runs the named procedure's body.
type Call struct {
	base
	Proc string
}

func (n *Call) Describe() string { return fmt.Sprintf("call %s", n.Proc) }

// Program is a loaded, validated instruction tree: the main sequence
// plus parameterless procedure bodies.
type Program struct {
	Main  *Sequence
	Procs map[string]*Sequence

	nodes map[NodeID]Node
}

// Node looks up a node by id; nil if unknown.
func (p *Program) Node(id NodeID) Node {
	return p.nodes[id]
}

// Primitive action names.
const (
	ActionMove        = "move"
	ActionTurnLeft    = "turnLeft"
	ActionTurnRight   = "turnRight"
	ActionTurnAround  = "turnAround"
	ActionPlaceMarker = "placeMarker"
	ActionPickMarker  = "pickMarker"
	ActionPaint       = "paint"
)

// Sensor condition names.
const (
	CondFrontIsClear   = "frontIsClear"
	CondFrontIsBlocked = "frontIsBlocked"
	CondLeftIsClear    = "leftIsClear"
	CondLeftIsBlocked  = "leftIsBlocked"
	CondRightIsClear   = "rightIsClear"
	CondRightIsBlocked = "rightIsBlocked"
	CondMarkersPresent = "markersPresent"
	CondNoMarkers      = "noMarkersPresent"
	CondFacingNorth    = "facingNorth"
	CondFacingSouth    = "facingSouth"
	CondFacingEast     = "facingEast"
	CondFacingWest     = "facingWest"
	CondNotFacingNorth = "notFacingNorth"
	CondNotFacingSouth = "notFacingSouth"
	CondNotFacingEast  = "notFacingEast"
	CondNotFacingWest  = "notFacingWest"
	CondFacingBoundary = "facingBoundary"
	CondColorIs        = "colorIs"
)

var actionNames = map[string]bool{
	ActionMove:        true,
	ActionTurnLeft:    true,
	ActionTurnRight:   true,
	ActionTurnAround:  true,
	ActionPlaceMarker: true,
	ActionPickMarker:  true,
	ActionPaint:       true,
}

var condNames = map[string]bool{
	CondFrontIsClear:   true,
	CondFrontIsBlocked: true,
	CondLeftIsClear:    true,
	CondLeftIsBlocked:  true,
	CondRightIsClear:   true,
	CondRightIsBlocked: true,
	CondMarkersPresent: true,
	CondNoMarkers:      true,
	CondFacingNorth:    true,
	CondFacingSouth:    true,
	CondFacingEast:     true,
	CondFacingWest:     true,
	CondNotFacingNorth: true,
	CondNotFacingSouth: true,
	CondNotFacingEast:  true,
	CondNotFacingWest:  true,
	CondFacingBoundary: true,
	CondColorIs:        true,
}

// Eval answers the condition against w.
func (c Condition) Eval(w *world.World) bool {
	switch c.Name {
	case CondFrontIsClear:
		return w.FrontIsClear()
	case CondFrontIsBlocked:
		return w.FrontIsBlocked()
	case CondLeftIsClear:
		return w.LeftIsClear()
	case CondLeftIsBlocked:
		return w.LeftIsBlocked()
	case CondRightIsClear:
		return w.RightIsClear()
	case CondRightIsBlocked:
		return w.RightIsBlocked()
	case CondMarkersPresent:
		return w.MarkersPresent()
	case CondNoMarkers:
		return w.NoMarkersPresent()
	case CondFacingNorth:
		return w.Facing(world.North)
	case CondFacingSouth:
		return w.Facing(world.South)
	case CondFacingEast:
		return w.Facing(world.East)
	case CondFacingWest:
		return w.Facing(world.West)
	case CondNotFacingNorth:
		return !w.Facing(world.North)
	case CondNotFacingSouth:
		return !w.Facing(world.South)
	case CondNotFacingEast:
		return !w.Facing(world.East)
	case CondNotFacingWest:
		return !w.Facing(world.West)
	case CondFacingBoundary:
		return w.FacingBoundary()
	case CondColorIs:
		return w.ColorIs(c.Color)
	}
	return false
}
