// Package interpreter executes a loaded program against a world one
// primitive action at a time. Control flow lives in an explicit frame
// stack rather than the Go call stack, so a run can be suspended after
// any single action and resumed later, regardless of nesting depth.
package interpreter

import (
	"errors"
	"fmt"

	"karel/internal/program"
	"karel/internal/world"
)

// RunState is the interpreter lifecycle state.
type RunState int

const (
	NotStarted RunState = iota
	Running
	Paused
	Completed
	Faulted
)

func (s RunState) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	case Faulted:
		return "faulted"
	}
	return fmt.Sprintf("RunState(%d)", int(s))
}

// ErrInvalidState rejects API misuse, e.g. stepping a terminal
// interpreter. It never changes interpreter state.
var ErrInvalidState = errors.New("invalid interpreter state")

// ResultKind classifies what one Step call did.
type ResultKind int

const (
	// StepAdvanced: one primitive action ran (Delta set), or one
	// condition/loop-control point was evaluated (Delta nil).
	StepAdvanced ResultKind = iota
	// StepCompleted: the root sequence is exhausted. Terminal.
	StepCompleted
	// StepFaulted: a world fault or undefined procedure. Terminal.
	StepFaulted
	// StepPaused: a breakpoint on Node was hit before executing it.
	StepPaused
)

func (k ResultKind) String() string {
	switch k {
	case StepAdvanced:
		return "advanced"
	case StepCompleted:
		return "completed"
	case StepFaulted:
		return "faulted"
	case StepPaused:
		return "paused"
	}
	return fmt.Sprintf("ResultKind(%d)", int(k))
}

// StepResult reports the outcome of one Step call.
type StepResult struct {
	Kind ResultKind
	// Delta is the world change of a primitive action; nil for
	// control-only steps and non-advancing results.
	Delta *world.Delta
	// Node is the instruction the step concerned.
	Node program.NodeID
	// Fault is set for StepFaulted.
	Fault error
}

// frame is one activation record: a block node plus how far execution
// has progressed inside it.
type frame struct {
	node   program.Node
	cursor int // next child, for sequences
	remain int // iterations left, for repeat
}

// Interpreter walks one program over one world. Not safe for concurrent
// use; it is driven cooperatively by whoever calls Step.
type Interpreter struct {
	prog  *program.Program
	world *world.World
	state RunState
	stack []*frame
	fault error

	breakpoints map[program.NodeID]bool
	// skip suppresses the breakpoint on the node we just paused at,
	// so the next step proceeds past it instead of re-pausing.
	skip program.NodeID
}

// New returns a NotStarted interpreter over prog and w. The program
// must already be validated by its loader.
func New(prog *program.Program, w *world.World) *Interpreter {
	return &Interpreter{
		prog:        prog,
		world:       w,
		state:       NotStarted,
		stack:       []*frame{{node: prog.Main}},
		breakpoints: make(map[program.NodeID]bool),
	}
}

func (in *Interpreter) State() RunState { return in.state }

// Fault returns the error that moved the interpreter to Faulted.
func (in *Interpreter) Fault() error { return in.fault }

// World exposes the world for read queries between steps.
func (in *Interpreter) World() *world.World { return in.world }

// Program exposes the loaded program (read-only by construction).
func (in *Interpreter) Program() *program.Program { return in.prog }

func (in *Interpreter) push(f *frame) { in.stack = append(in.stack, f) }

func (in *Interpreter) pop() { in.stack = in.stack[:len(in.stack)-1] }

// Step advances execution by exactly one primitive action, or by one
// condition/loop-control point when no primitive is pending. It is the
// suspension contract: an unbounded loop costs one condition check per
// call and can never block the caller.
func (in *Interpreter) Step() (StepResult, error) {
	switch in.state {
	case Completed, Faulted:
		return StepResult{}, fmt.Errorf("%w: step on %s interpreter", ErrInvalidState, in.state)
	case NotStarted:
		in.state = Running
	}
	for {
		if len(in.stack) == 0 {
			in.state = Completed
			return StepResult{Kind: StepCompleted}, nil
		}
		f := in.stack[len(in.stack)-1]
		switch n := f.node.(type) {
		case *program.Sequence:
			if f.cursor >= len(n.Children) {
				in.pop()
				continue
			}
			child := n.Children[f.cursor]
			if in.breakpoints[child.ID()] && in.skip != child.ID() {
				in.skip = child.ID()
				in.state = Paused
				return StepResult{Kind: StepPaused, Node: child.ID()}, nil
			}
			if in.skip == child.ID() {
				in.skip = 0
			}
			f.cursor++
			return in.dispatch(child), nil

		case *program.Repeat:
			// Loop-control point: one remaining-count check per step.
			if f.remain > 0 {
				f.remain--
				in.push(&frame{node: n.Body})
				return StepResult{Kind: StepAdvanced, Node: n.ID()}, nil
			}
			in.pop()
			continue

		case *program.While:
			// Continuation test re-checked before each iteration. A
			// perpetually true condition keeps this at one evaluation
			// per step with bounded stack depth.
			if n.Cond.Eval(in.world) {
				in.push(&frame{node: n.Body})
				return StepResult{Kind: StepAdvanced, Node: n.ID()}, nil
			}
			in.pop()
			continue

		default:
			return in.faultResult(f.node.ID(),
				fmt.Errorf("%w: frame node %T", program.ErrInvalidProgram, f.node)), nil
		}
	}
}

// dispatch runs one freshly reached node: a primitive action executes,
// anything else consumes the step as its control point.
func (in *Interpreter) dispatch(n program.Node) StepResult {
	switch n := n.(type) {
	case *program.Action:
		return in.primitive(n)
	case *program.If:
		// Condition evaluated once, never re-checked.
		if n.Cond.Eval(in.world) {
			in.push(&frame{node: n.Then})
		} else if n.Else != nil {
			in.push(&frame{node: n.Else})
		}
		return StepResult{Kind: StepAdvanced, Node: n.ID()}
	case *program.Repeat:
		in.push(&frame{node: n, remain: n.Count})
		return StepResult{Kind: StepAdvanced, Node: n.ID()}
	case *program.While:
		in.push(&frame{node: n})
		return StepResult{Kind: StepAdvanced, Node: n.ID()}
	case *program.Call:
		body, ok := in.prog.Procs[n.Proc]
		if !ok {
			// The loader already rejects this; re-checked so a bad
			// program can only ever fault, not corrupt the run.
			return in.faultResult(n.ID(),
				fmt.Errorf("%w: %q", program.ErrUndefinedProcedure, n.Proc))
		}
		in.push(&frame{node: body})
		return StepResult{Kind: StepAdvanced, Node: n.ID()}
	}
	return in.faultResult(n.ID(),
		fmt.Errorf("%w: node %T", program.ErrInvalidProgram, n))
}

func (in *Interpreter) primitive(a *program.Action) StepResult {
	var (
		delta world.Delta
		err   error
	)
	switch a.Name {
	case program.ActionMove:
		delta, err = in.world.Move()
	case program.ActionTurnLeft:
		delta = in.world.TurnLeft()
	case program.ActionTurnRight:
		delta = in.world.TurnRight()
	case program.ActionTurnAround:
		delta = in.world.TurnAround()
	case program.ActionPlaceMarker:
		delta, err = in.world.PlaceMarker()
	case program.ActionPickMarker:
		delta, err = in.world.PickMarker()
	case program.ActionPaint:
		delta = in.world.Paint(a.Color)
	default:
		err = fmt.Errorf("%w: action %q", program.ErrUnknownInstruction, a.Name)
	}
	if err != nil {
		return in.faultResult(a.ID(), err)
	}
	return StepResult{Kind: StepAdvanced, Delta: &delta, Node: a.ID()}
}

// faultResult moves the interpreter to its terminal Faulted state.
// Faults are reported, never swallowed or retried.
func (in *Interpreter) faultResult(id program.NodeID, err error) StepResult {
	in.state = Faulted
	in.fault = err
	return StepResult{Kind: StepFaulted, Node: id, Fault: err}
}

// Pause requests a stop at the current step boundary. Valid before the
// run starts and while running; a no-op when already paused.
func (in *Interpreter) Pause() error {
	switch in.state {
	case Completed, Faulted:
		return fmt.Errorf("%w: pause on %s interpreter", ErrInvalidState, in.state)
	}
	in.state = Paused
	return nil
}

// Resume moves a paused interpreter back to Running.
func (in *Interpreter) Resume() error {
	switch in.state {
	case Completed, Faulted:
		return fmt.Errorf("%w: resume on %s interpreter", ErrInvalidState, in.state)
	case Paused:
		in.state = Running
	}
	return nil
}

// RunUntil calls Step until pred matches, the run completes or faults,
// a breakpoint pauses it, or maxSteps steps have run (maxSteps <= 0
// means no budget). The budget is the caller's guard against
// non-terminating programs.
func (in *Interpreter) RunUntil(pred func(StepResult) bool, maxSteps int) (StepResult, error) {
	if in.state == Paused {
		return StepResult{}, fmt.Errorf("%w: run on paused interpreter, resume first", ErrInvalidState)
	}
	steps := 0
	for {
		res, err := in.Step()
		if err != nil {
			return res, err
		}
		if res.Kind != StepAdvanced {
			return res, nil
		}
		if pred != nil && pred(res) {
			return res, nil
		}
		steps++
		if maxSteps > 0 && steps >= maxSteps {
			return res, nil
		}
	}
}

// Run is RunUntil with no predicate.
func (in *Interpreter) Run(maxSteps int) (StepResult, error) {
	return in.RunUntil(nil, maxSteps)
}
