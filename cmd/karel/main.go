package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"karel/internal/display"
	"karel/internal/interpreter"
	"karel/internal/program"
	"karel/internal/world"
	"karel/internal/worldfile"
)

func main() {
	log.SetFlags(0)
	var (
		worldPath = flag.String("world", "", "world definition file")
		progPath  = flag.String("program", "", "program file (YAML)")
		maxSteps  = flag.Int("max-steps", 100000, "step budget, 0 for unbounded")
		render    = flag.Bool("render", false, "redraw the world after each action")
		delay     = flag.Duration("delay", 100*time.Millisecond, "redraw delay with -render")
	)
	flag.Parse()
	if *worldPath == "" || *progPath == "" {
		log.Fatalf("usage: %s -world <file> -program <file>", os.Args[0])
	}

	wdata, err := os.ReadFile(*worldPath)
	if err != nil {
		log.Fatal(err)
	}
	def, err := worldfile.Parse(wdata)
	if err != nil {
		log.Fatal(err)
	}
	w, err := world.New(def)
	if err != nil {
		log.Fatal(err)
	}

	pdata, err := os.ReadFile(*progPath)
	if err != nil {
		log.Fatal(err)
	}
	prog, err := program.Load(pdata)
	if err != nil {
		log.Fatal(err)
	}

	in := interpreter.New(prog, w)
	r := &display.Renderer{Out: os.Stdout, Clear: true, Delay: *delay}
	if *render {
		r.Show(in.Snapshot().World)
	}

	steps := 0
	for {
		res, err := in.Step()
		if err != nil {
			log.Fatal(err)
		}
		switch res.Kind {
		case interpreter.StepAdvanced:
			if res.Delta != nil {
				if *render {
					r.Show(in.Snapshot().World)
				} else {
					fmt.Println(res.Delta)
				}
			}
		case interpreter.StepCompleted:
			fmt.Printf("completed: %s\n", in.World().Robot())
			return
		case interpreter.StepFaulted:
			fmt.Fprintf(os.Stderr, "fault: %v\n", res.Fault)
			os.Exit(1)
		}
		steps++
		if *maxSteps > 0 && steps >= *maxSteps {
			fmt.Fprintf(os.Stderr, "stopped after %d steps (%s)\n", steps, in.State())
			os.Exit(1)
		}
	}
}
