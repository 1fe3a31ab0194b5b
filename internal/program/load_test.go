package program

import (
	"errors"
	"testing"

	"karel/internal/world"
)

const fullDoc = `
main:
  - move
  - if:
      condition: frontIsClear
      then: [move]
      else: [turnLeft]
  - repeat:
      count: 3
      body: [placeMarker]
  - while:
      condition: notFacingNorth
      body: [turnLeft]
  - call: around
procedures:
  around:
    - turnLeft
    - turnLeft
`

func TestLoadFullDocument(t *testing.T) {
	p, err := Load([]byte(fullDoc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(p.Main.Children); got != 5 {
		t.Fatalf("main has %d children", got)
	}
	if _, ok := p.Main.Children[0].(*Action); !ok {
		t.Errorf("child 0 is %T", p.Main.Children[0])
	}
	ifn, ok := p.Main.Children[1].(*If)
	if !ok {
		t.Fatalf("child 1 is %T", p.Main.Children[1])
	}
	if ifn.Cond.Name != CondFrontIsClear || ifn.Else == nil {
		t.Errorf("if node: %+v", ifn)
	}
	rep, ok := p.Main.Children[2].(*Repeat)
	if !ok || rep.Count != 3 {
		t.Errorf("repeat node: %T %+v", p.Main.Children[2], p.Main.Children[2])
	}
	if _, ok := p.Main.Children[3].(*While); !ok {
		t.Errorf("child 3 is %T", p.Main.Children[3])
	}
	call, ok := p.Main.Children[4].(*Call)
	if !ok || call.Proc != "around" {
		t.Errorf("call node: %T", p.Main.Children[4])
	}
	if _, ok := p.Procs["around"]; !ok {
		t.Error("procedure around missing")
	}
}

func TestLoadAssignsDocumentOrderIDs(t *testing.T) {
	p, err := Load([]byte(fullDoc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Main sequence is node 1, its first child node 2.
	if p.Main.ID() != 1 {
		t.Errorf("main id %d", p.Main.ID())
	}
	if got := p.Main.Children[0].ID(); got != 2 {
		t.Errorf("first action id %d", got)
	}
	seen := map[NodeID]bool{}
	for _, e := range p.Listing() {
		if e.ID <= 0 {
			t.Fatalf("bad id %d in listing", e.ID)
		}
		seen[e.ID] = true
		if p.Node(e.ID) == nil {
			t.Fatalf("listing id %d not indexed", e.ID)
		}
	}
	// Loading the same document twice yields the same ids.
	p2, err := Load([]byte(fullDoc))
	if err != nil {
		t.Fatalf("Load again: %v", err)
	}
	l1, l2 := p.Listing(), p2.Listing()
	if len(l1) != len(l2) {
		t.Fatalf("listing lengths differ: %d vs %d", len(l1), len(l2))
	}
	for i := range l1 {
		if l1[i] != l2[i] {
			t.Errorf("listing entry %d differs: %+v vs %+v", i, l1[i], l2[i])
		}
	}
}

func TestLoadPaintAndColorIs(t *testing.T) {
	doc := `
main:
  - paint: red
  - if:
      condition: colorIs
      color: red
      then: [pickMarker]
`
	p, err := Load([]byte(doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	a := p.Main.Children[0].(*Action)
	if a.Name != ActionPaint || a.Color != (world.RGB{R: 255}) {
		t.Errorf("paint action: %+v", a)
	}
	ifn := p.Main.Children[1].(*If)
	if ifn.Cond.Name != CondColorIs || ifn.Cond.Color != (world.RGB{R: 255}) {
		t.Errorf("colorIs cond: %+v", ifn.Cond)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown action", "main:\n  - fly\n", ErrUnknownInstruction},
		{"unknown condition", `
main:
  - while:
      condition: hungry
      body: [move]
`, ErrUnknownInstruction},
		{"undefined procedure", "main:\n  - call: nowhere\n", ErrUndefinedProcedure},
		{"undefined procedure in procedure", `
main:
  - call: a
procedures:
  a:
    - call: b
`, ErrUndefinedProcedure},
		{"negative repeat", `
main:
  - repeat:
      count: -1
      body: [move]
`, ErrInvalidProgram},
		{"paint without color", "main:\n  - paint\n", ErrInvalidProgram},
		{"bad paint color", "main:\n  - paint: mud\n", ErrInvalidProgram},
		{"color on plain condition", `
main:
  - if:
      condition: frontIsClear
      color: red
      then: [move]
`, ErrInvalidProgram},
		{"missing main", "procedures: {}\n", ErrInvalidProgram},
		{"not yaml", "main: [unclosed", ErrInvalidProgram},
	}
	for _, tt := range tests {
		if _, err := Load([]byte(tt.doc)); !errors.Is(err, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestConditionEval(t *testing.T) {
	w, err := world.New(world.Definition{
		Width: 2, Height: 1,
		Robot: world.Robot{Pos: world.Position{X: 0, Y: 0}, Dir: world.East, Bag: world.InfiniteBag},
	})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		cond Condition
		want bool
	}{
		{Condition{Name: CondFrontIsClear}, true},
		{Condition{Name: CondFrontIsBlocked}, false},
		{Condition{Name: CondLeftIsBlocked}, true},
		{Condition{Name: CondFacingEast}, true},
		{Condition{Name: CondNotFacingEast}, false},
		{Condition{Name: CondNoMarkers}, true},
		{Condition{Name: CondFacingBoundary}, false},
		{Condition{Name: CondColorIs, Color: world.White}, true},
	}
	for _, tt := range tests {
		if got := tt.cond.Eval(w); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.cond, got, tt.want)
		}
	}
}
