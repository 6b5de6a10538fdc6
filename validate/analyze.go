package validate

import (
	"fmt"
	"io"

	"github.com/kamstrup/intmap"

	"github.com/wricardo/mcp-training/boxworld/game/engine"
	"github.com/wricardo/mcp-training/boxworld/game/levels"
)

// Analysis summarises a layout
type Analysis struct {
	Floor              int // passable cells inside the walls
	Reachable          int // cells the player can walk to, boxes ignored
	Boxes              int
	Targets            int
	Placed             int
	DeadBoxes          []engine.Location
	UnreachableTargets []engine.Location
}

// Analyze inspects a board. A dead box is a loose box wedged between two
// orthogonal walls; no push can ever move it again.
func Analyze(b engine.Board) Analysis {
	a := Analysis{
		Boxes:   engine.CountBoxes(&b),
		Targets: engine.CountTargets(&b),
		Placed:  b.Count(engine.BoxOnTarget),
	}

	reachable := intmap.New[int, bool](engine.Width * engine.Height)
	if start, ok := b.FindPlayer(); ok {
		for _, l := range engine.Reachable(&b, start, engine.Walkable) {
			reachable.Put(l.Y*engine.Width+l.X, true)
		}
	}
	a.Reachable = reachable.Len()

	for y := 0; y < engine.Height; y++ {
		for x := 0; x < engine.Width; x++ {
			l := engine.Location{X: x, Y: y}
			p := b.At(l)
			if engine.Walkable(p) {
				a.Floor++
			}
			if p == engine.Box && cornered(&b, l) {
				a.DeadBoxes = append(a.DeadBoxes, l)
			}
			if _, ok := reachable.Get(y*engine.Width + x); p.HasTarget() && !ok {
				a.UnreachableTargets = append(a.UnreachableTargets, l)
			}
		}
	}

	return a
}

func cornered(b *engine.Board, l engine.Location) bool {
	wall := func(d engine.Direction) bool {
		n := l.Add(d)
		return !engine.InBounds(n) || b.At(n) == engine.Wall
	}
	return (wall(engine.Up) || wall(engine.Down)) && (wall(engine.Left) || wall(engine.Right))
}

// Catalog prints an analysis of every level in m
func Catalog(w io.Writer, m *levels.Manager) {
	for i := 0; i < m.LevelCount(); i++ {
		level, err := m.Get(i)
		if err != nil {
			continue
		}
		a := Analyze(level.Board)

		fmt.Fprintf(w, "\n=== %d. %s (%s) ===\n", i+1, level.Name, level.ID)
		fmt.Fprintln(w, level.Board)
		fmt.Fprintf(w, "Boxes: %d, placed: %d, targets: %d\n", a.Boxes, a.Placed, a.Targets)
		fmt.Fprintf(w, "Floor cells: %d, reachable: %d\n", a.Floor, a.Reachable)

		if len(a.DeadBoxes) > 0 {
			fmt.Fprintf(w, "⚠️  %d boxes stuck in corners\n", len(a.DeadBoxes))
		}
		if len(a.UnreachableTargets) > 0 {
			fmt.Fprintf(w, "⚠️  %d targets outside the player's area\n", len(a.UnreachableTargets))
		}
		if len(a.DeadBoxes) == 0 && len(a.UnreachableTargets) == 0 {
			fmt.Fprintln(w, "✅ No dead boxes or unreachable targets")
		}
	}
}
