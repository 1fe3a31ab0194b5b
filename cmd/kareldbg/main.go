// kareldbg is an interactive stepping debugger over the engine's debug
// contract: breakpoints, single steps, bounded runs and snapshots.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"karel/internal/display"
	"karel/internal/interpreter"
	"karel/internal/program"
	"karel/internal/world"
	"karel/internal/worldfile"
)

const historyFile = ".kareldbg_history"

type session struct {
	wdata []byte
	pdata []byte
	prog  *program.Program
	in    *interpreter.Interpreter
}

func newSession(wdata, pdata []byte) (*session, error) {
	def, err := worldfile.Parse(wdata)
	if err != nil {
		return nil, err
	}
	w, err := world.New(def)
	if err != nil {
		return nil, err
	}
	prog, err := program.Load(pdata)
	if err != nil {
		return nil, err
	}
	return &session{
		wdata: wdata,
		pdata: pdata,
		prog:  prog,
		in:    interpreter.New(prog, w),
	}, nil
}

// reset rebuilds world and interpreter, keeping armed breakpoints.
func (s *session) reset() error {
	bps := s.in.Breakpoints()
	next, err := newSession(s.wdata, s.pdata)
	if err != nil {
		return err
	}
	s.prog = next.prog
	s.in = next.in
	for _, id := range bps {
		if err := s.in.SetBreakpoint(id); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	log.SetFlags(0)
	var (
		worldPath = flag.String("world", "", "world definition file")
		progPath  = flag.String("program", "", "program file (YAML)")
	)
	flag.Parse()
	if *worldPath == "" || *progPath == "" {
		log.Fatalf("usage: %s -world <file> -program <file>", os.Args[0])
	}
	wdata, err := os.ReadFile(*worldPath)
	if err != nil {
		log.Fatal(err)
	}
	pdata, err := os.ReadFile(*progPath)
	if err != nil {
		log.Fatal(err)
	}
	s, err := newSession(wdata, pdata)
	if err != nil {
		log.Fatal(err)
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Println("kareldbg - type help for commands")
	for {
		line, err := ln.Prompt("(kareldbg) ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return
		}
		if err != nil {
			log.Fatal(err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		if quit := s.execute(line); quit {
			return
		}
	}
}

// execute runs one command line; true means quit.
func (s *session) execute(line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "quit", "q", "exit":
		return true
	case "help", "h":
		printHelp()
	case "list", "l":
		s.list()
	case "step", "s":
		n := 1
		if len(args) > 0 {
			n = atoiOr(args[0], 1)
		}
		for i := 0; i < n; i++ {
			if !s.step() {
				break
			}
		}
	case "run", "r":
		// Default budget keeps an accidental infinite loop from
		// hanging the prompt; run 0 lifts it on purpose.
		max := 100000
		if len(args) > 0 {
			max = atoiOr(args[0], max)
		}
		s.run(max)
	case "break", "b":
		if len(args) != 1 {
			fmt.Println("usage: break <node id>")
			break
		}
		id := program.NodeID(atoiOr(args[0], 0))
		if err := s.in.SetBreakpoint(id); err != nil {
			fmt.Println(err)
		}
	case "clear":
		if len(args) != 1 {
			fmt.Println("usage: clear <node id>")
			break
		}
		s.in.ClearBreakpoint(program.NodeID(atoiOr(args[0], 0)))
	case "breaks":
		for _, id := range s.in.Breakpoints() {
			fmt.Printf("  %d\n", id)
		}
	case "resume", "c":
		if err := s.in.Resume(); err != nil {
			fmt.Println(err)
		}
	case "state", "st":
		s.state()
	case "world", "w":
		fmt.Print(display.Render(s.in.Snapshot().World))
		fmt.Println(s.in.World().Robot())
	case "reset":
		if err := s.reset(); err != nil {
			fmt.Println(err)
		}
	default:
		fmt.Printf("unknown command %q, type help\n", cmd)
	}
	return false
}

// step runs one engine step and narrates it; false stops a multi-step.
func (s *session) step() bool {
	res, err := s.in.Step()
	if err != nil {
		fmt.Println(err)
		return false
	}
	return s.report(res)
}

func (s *session) run(max int) {
	if s.in.State() == interpreter.Paused {
		if err := s.in.Resume(); err != nil {
			fmt.Println(err)
			return
		}
	}
	res, err := s.in.Run(max)
	if err != nil {
		fmt.Println(err)
		return
	}
	if res.Kind == interpreter.StepAdvanced {
		fmt.Printf("stopped after %d steps\n", max)
	}
	s.report(res)
}

// report narrates a step result; false means the run cannot continue.
func (s *session) report(res interpreter.StepResult) bool {
	switch res.Kind {
	case interpreter.StepAdvanced:
		if res.Delta != nil {
			fmt.Printf("  %d: %s\n", res.Node, res.Delta)
		} else if n := s.prog.Node(res.Node); n != nil {
			fmt.Printf("  %d: %s\n", res.Node, n.Describe())
		}
		return true
	case interpreter.StepCompleted:
		fmt.Println("completed")
	case interpreter.StepFaulted:
		fmt.Printf("fault: %v\n", res.Fault)
	case interpreter.StepPaused:
		fmt.Printf("breakpoint at node %d", res.Node)
		if n := s.prog.Node(res.Node); n != nil {
			fmt.Printf(": %s", n.Describe())
		}
		fmt.Println()
	}
	return false
}

func (s *session) list() {
	bps := make(map[program.NodeID]bool)
	for _, id := range s.in.Breakpoints() {
		bps[id] = true
	}
	active := s.in.ActiveNode()
	for _, e := range s.prog.Listing() {
		mark := "  "
		if bps[e.ID] {
			mark = "* "
		}
		cur := " "
		if e.ID == active {
			cur = ">"
		}
		fmt.Printf("%s%s%4d  %s%s\n", mark, cur, e.ID, strings.Repeat("  ", e.Depth), e.Text)
	}
}

func (s *session) state() {
	snap := s.in.Snapshot()
	fmt.Printf("state: %s\n", snap.State)
	if err := s.in.Fault(); err != nil {
		fmt.Printf("fault: %v\n", err)
	}
	fmt.Println("frame stack (outermost first):")
	for _, f := range snap.Frames {
		n := s.prog.Node(f.Node)
		desc := "?"
		if n != nil {
			desc = n.Describe()
		}
		switch n.(type) {
		case *program.Repeat:
			fmt.Printf("  %4d  %s, %d iterations left\n", f.Node, desc, f.Remaining)
		default:
			fmt.Printf("  %4d  %s, cursor %d\n", f.Node, desc, f.Cursor)
		}
	}
	if active := s.in.ActiveNode(); active != 0 {
		if n := s.prog.Node(active); n != nil {
			fmt.Printf("next: %d %s\n", active, n.Describe())
		}
	}
}

func printHelp() {
	fmt.Print(`  list              program listing with node ids
  step [n]          run n steps (default 1)
  run [max]         run until done, fault, breakpoint or max steps
  break <id>        arm a breakpoint on a node
  clear <id>        disarm a breakpoint
  breaks            list armed breakpoints
  resume            leave paused state
  state             run state and frame stack
  world             render the grid
  reset             restart the run, keeping breakpoints
  quit
`)
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
