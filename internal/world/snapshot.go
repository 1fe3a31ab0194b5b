package world

// Snapshot is a point-in-time deep copy of the world, safe to hold
// across later mutations.
type Snapshot struct {
	Width   int
	Height  int
	HWalls  [][]bool
	VWalls  [][]bool
	Markers [][]int
	Colors  [][]RGB
	Robot   Robot
}

// Snapshot copies the full world state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Width:   w.width,
		Height:  w.height,
		HWalls:  make([][]bool, len(w.hwalls)),
		VWalls:  make([][]bool, len(w.vwalls)),
		Markers: make([][]int, len(w.markers)),
		Colors:  make([][]RGB, len(w.colors)),
		Robot:   w.robot,
	}
	for y, row := range w.hwalls {
		s.HWalls[y] = append([]bool(nil), row...)
	}
	for y, row := range w.vwalls {
		s.VWalls[y] = append([]bool(nil), row...)
	}
	for y, row := range w.markers {
		s.Markers[y] = append([]int(nil), row...)
	}
	for y, row := range w.colors {
		s.Colors[y] = append([]RGB(nil), row...)
	}
	return s
}

// Blocked mirrors World.Blocked for a snapshot.
func (s Snapshot) Blocked(p Position, dir Direction) bool {
	switch dir {
	case North:
		if p.Y >= s.Height-1 {
			return true
		}
		return s.HWalls[p.Y][p.X]
	case South:
		if p.Y <= 0 {
			return true
		}
		return s.HWalls[p.Y-1][p.X]
	case East:
		if p.X >= s.Width-1 {
			return true
		}
		return s.VWalls[p.Y][p.X]
	case West:
		if p.X <= 0 {
			return true
		}
		return s.VWalls[p.Y][p.X-1]
	}
	return true
}
