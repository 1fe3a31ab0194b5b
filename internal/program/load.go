package program

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"karel/internal/world"
)

// Program-shape errors, caught at load time so a bad name can never
// surface mid-run.
var (
	ErrUnknownInstruction = errors.New("unknown instruction")
	ErrUndefinedProcedure = errors.New("undefined procedure")
	ErrInvalidProgram     = errors.New("invalid program")
)

// Wire form of one statement. A bare string is a primitive action.
type stmtDoc struct {
	Action string
	Paint  string
	If     *ifDoc
	Repeat *repeatDoc
	While  *whileDoc
	Call   string
}

type ifDoc struct {
	Condition string     `yaml:"condition"`
	Color     string     `yaml:"color"`
	Then      []*stmtDoc `yaml:"then"`
	Else      []*stmtDoc `yaml:"else"`
}

type repeatDoc struct {
	Count int        `yaml:"count"`
	Body  []*stmtDoc `yaml:"body"`
}

type whileDoc struct {
	Condition string     `yaml:"condition"`
	Color     string     `yaml:"color"`
	Body      []*stmtDoc `yaml:"body"`
}

type programDoc struct {
	Main []*stmtDoc `yaml:"main"`
	// Kept as a raw node so procedures get ids in document order.
	Procedures yaml.Node `yaml:"procedures"`
}

func (s *stmtDoc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&s.Action)
	}
	var body struct {
		Paint  string     `yaml:"paint"`
		If     *ifDoc     `yaml:"if"`
		Repeat *repeatDoc `yaml:"repeat"`
		While  *whileDoc  `yaml:"while"`
		Call   string     `yaml:"call"`
	}
	if err := node.Decode(&body); err != nil {
		return err
	}
	s.Paint = body.Paint
	s.If = body.If
	s.Repeat = body.Repeat
	s.While = body.While
	s.Call = body.Call
	return nil
}

// builder assigns node ids in document order and indexes every node.
type builder struct {
	next  NodeID
	nodes map[NodeID]Node
}

func (b *builder) id() NodeID {
	b.next++
	return b.next
}

func (b *builder) register(n Node) {
	b.nodes[n.ID()] = n
}

// Load decodes and validates a YAML (or JSON) program document.
// Failures never produce a Program.
func Load(data []byte) (*Program, error) {
	var doc programDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProgram, err)
	}
	if doc.Main == nil {
		return nil, fmt.Errorf("%w: missing main", ErrInvalidProgram)
	}
	b := &builder{nodes: make(map[NodeID]Node)}
	p := &Program{Procs: make(map[string]*Sequence), nodes: b.nodes}
	root, err := b.sequence(doc.Main)
	if err != nil {
		return nil, err
	}
	p.Main = root
	if doc.Procedures.Kind != 0 {
		if doc.Procedures.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: procedures must be a mapping", ErrInvalidProgram)
		}
		for i := 0; i+1 < len(doc.Procedures.Content); i += 2 {
			var name string
			if err := doc.Procedures.Content[i].Decode(&name); err != nil || name == "" {
				return nil, fmt.Errorf("%w: bad procedure name", ErrInvalidProgram)
			}
			if _, dup := p.Procs[name]; dup {
				return nil, fmt.Errorf("%w: duplicate procedure %q", ErrInvalidProgram, name)
			}
			var stmts []*stmtDoc
			if err := doc.Procedures.Content[i+1].Decode(&stmts); err != nil {
				return nil, fmt.Errorf("%w: procedure %s: %v", ErrInvalidProgram, name, err)
			}
			body, err := b.sequence(stmts)
			if err != nil {
				return nil, fmt.Errorf("procedure %s: %w", name, err)
			}
			p.Procs[name] = body
		}
	}
	if err := p.checkCalls(p.Main); err != nil {
		return nil, err
	}
	for _, body := range p.Procs {
		if err := p.checkCalls(body); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (b *builder) sequence(stmts []*stmtDoc) (*Sequence, error) {
	seq := &Sequence{base: base{id: b.id()}}
	b.register(seq)
	for _, s := range stmts {
		n, err := b.stmt(s)
		if err != nil {
			return nil, err
		}
		seq.Children = append(seq.Children, n)
	}
	return seq, nil
}

func (b *builder) stmt(s *stmtDoc) (Node, error) {
	switch {
	case s.Action != "":
		if s.Action == ActionPaint {
			return nil, fmt.Errorf("%w: paint needs a color, use {paint: <color>}",
				ErrInvalidProgram)
		}
		if !actionNames[s.Action] {
			return nil, fmt.Errorf("%w: action %q", ErrUnknownInstruction, s.Action)
		}
		n := &Action{base: base{id: b.id()}, Name: s.Action}
		b.register(n)
		return n, nil
	case s.Paint != "":
		c, err := world.ParseColor(s.Paint)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidProgram, err)
		}
		n := &Action{base: base{id: b.id()}, Name: ActionPaint, Color: c}
		b.register(n)
		return n, nil
	case s.If != nil:
		cond, err := condition(s.If.Condition, s.If.Color)
		if err != nil {
			return nil, err
		}
		n := &If{base: base{id: b.id()}, Cond: cond}
		b.register(n)
		if n.Then, err = b.sequence(s.If.Then); err != nil {
			return nil, err
		}
		if s.If.Else != nil {
			if n.Else, err = b.sequence(s.If.Else); err != nil {
				return nil, err
			}
		}
		return n, nil
	case s.Repeat != nil:
		if s.Repeat.Count < 0 {
			return nil, fmt.Errorf("%w: repeat count %d", ErrInvalidProgram, s.Repeat.Count)
		}
		n := &Repeat{base: base{id: b.id()}, Count: s.Repeat.Count}
		b.register(n)
		var err error
		if n.Body, err = b.sequence(s.Repeat.Body); err != nil {
			return nil, err
		}
		return n, nil
	case s.While != nil:
		cond, err := condition(s.While.Condition, s.While.Color)
		if err != nil {
			return nil, err
		}
		n := &While{base: base{id: b.id()}, Cond: cond}
		b.register(n)
		if n.Body, err = b.sequence(s.While.Body); err != nil {
			return nil, err
		}
		return n, nil
	case s.Call != "":
		n := &Call{base: base{id: b.id()}, Proc: s.Call}
		b.register(n)
		return n, nil
	}
	return nil, fmt.Errorf("%w: empty statement", ErrInvalidProgram)
}

func condition(name, color string) (Condition, error) {
	if !condNames[name] {
		return Condition{}, fmt.Errorf("%w: condition %q", ErrUnknownInstruction, name)
	}
	c := Condition{Name: name}
	if name == CondColorIs {
		rgb, err := world.ParseColor(color)
		if err != nil {
			return Condition{}, fmt.Errorf("%w: %v", ErrInvalidProgram, err)
		}
		c.Color = rgb
	} else if color != "" {
		return Condition{}, fmt.Errorf("%w: %s takes no color", ErrInvalidProgram, name)
	}
	return c, nil
}

// checkCalls verifies every Call resolves to a procedure.
func (p *Program) checkCalls(n Node) error {
	switch n := n.(type) {
	case *Sequence:
		for _, c := range n.Children {
			if err := p.checkCalls(c); err != nil {
				return err
			}
		}
	case *If:
		if err := p.checkCalls(n.Then); err != nil {
			return err
		}
		if n.Else != nil {
			return p.checkCalls(n.Else)
		}
	case *Repeat:
		return p.checkCalls(n.Body)
	case *While:
		return p.checkCalls(n.Body)
	case *Call:
		if _, ok := p.Procs[n.Proc]; !ok {
			return fmt.Errorf("%w: %q", ErrUndefinedProcedure, n.Proc)
		}
	}
	return nil
}
