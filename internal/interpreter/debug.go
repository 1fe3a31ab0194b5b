package interpreter

import (
	"fmt"
	"sort"

	"karel/internal/program"
	"karel/internal/world"
)

// FrameInfo is one activation record as seen by a debugger,
// outermost-first in Snapshot.Frames. Cursor is the next-child index
// for sequences; Remaining is iterations left for repeat frames.
type FrameInfo struct {
	Node      program.NodeID
	Cursor    int
	Remaining int
}

// Snapshot is a consistent point-in-time view of a run. It is only
// meaningful between Step calls, which is the only time the caller
// holds control (the engine never runs in the background).
type Snapshot struct {
	World  world.Snapshot
	Frames []FrameInfo
	State  RunState
}

// FrameStack reports the current activation records, outermost-first.
func (in *Interpreter) FrameStack() []FrameInfo {
	frames := make([]FrameInfo, len(in.stack))
	for i, f := range in.stack {
		frames[i] = FrameInfo{Node: f.node.ID(), Cursor: f.cursor, Remaining: f.remain}
	}
	return frames
}

// Snapshot captures the world, the frame stack and the run state.
func (in *Interpreter) Snapshot() Snapshot {
	return Snapshot{
		World:  in.world.Snapshot(),
		Frames: in.FrameStack(),
		State:  in.state,
	}
}

// ActiveNode returns the instruction the next Step will concern: the
// pending child of the innermost unexhausted frame, or the loop node
// about to re-check its continuation. Zero when the run is over.
func (in *Interpreter) ActiveNode() program.NodeID {
	for i := len(in.stack) - 1; i >= 0; i-- {
		f := in.stack[i]
		switch n := f.node.(type) {
		case *program.Sequence:
			if f.cursor < len(n.Children) {
				return n.Children[f.cursor].ID()
			}
		case *program.Repeat, *program.While:
			return f.node.ID()
		}
	}
	return 0
}

// SetBreakpoint arms a breakpoint on the given node. Stepping pauses
// when that node is about to execute.
func (in *Interpreter) SetBreakpoint(id program.NodeID) error {
	if in.prog.Node(id) == nil {
		return fmt.Errorf("no node %d in program", id)
	}
	in.breakpoints[id] = true
	return nil
}

// ClearBreakpoint disarms a breakpoint; clearing an unset one is fine.
func (in *Interpreter) ClearBreakpoint(id program.NodeID) {
	delete(in.breakpoints, id)
}

// Breakpoints lists armed breakpoints in id order.
func (in *Interpreter) Breakpoints() []program.NodeID {
	out := make([]program.NodeID, 0, len(in.breakpoints))
	for id := range in.breakpoints {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
