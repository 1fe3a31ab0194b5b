package program

import (
	"fmt"
	"sort"
)

// ListEntry is one line of a program listing.
type ListEntry struct {
	ID    NodeID
	Depth int
	Text  string
}

// Listing flattens the program for debugger display: main first, then
// each procedure, children indented under their parents.
func (p *Program) Listing() []ListEntry {
	var out []ListEntry
	out = append(out, ListEntry{ID: p.Main.ID(), Depth: 0, Text: "main"})
	out = p.listSeq(out, p.Main, 1)
	names := make([]string, 0, len(p.Procs))
	for name := range p.Procs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		body := p.Procs[name]
		out = append(out, ListEntry{ID: body.ID(), Depth: 0, Text: fmt.Sprintf("procedure %s", name)})
		out = p.listSeq(out, body, 1)
	}
	return out
}

func (p *Program) listSeq(out []ListEntry, seq *Sequence, depth int) []ListEntry {
	for _, c := range seq.Children {
		out = append(out, ListEntry{ID: c.ID(), Depth: depth, Text: c.Describe()})
		switch n := c.(type) {
		case *If:
			out = p.listSeq(out, n.Then, depth+1)
			if n.Else != nil {
				out = append(out, ListEntry{ID: n.Else.ID(), Depth: depth, Text: "else"})
				out = p.listSeq(out, n.Else, depth+1)
			}
		case *Repeat:
			out = p.listSeq(out, n.Body, depth+1)
		case *While:
			out = p.listSeq(out, n.Body, depth+1)
		}
	}
	return out
}
