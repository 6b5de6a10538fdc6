package engine

import "github.com/kamstrup/intmap"

// CountBoxes counts boxes whether or not they rest on a target
func CountBoxes(b *Board) int {
	return b.Count(Box) + b.Count(BoxOnTarget)
}

// CountTargets counts target cells regardless of what stands on them
func CountTargets(b *Board) int {
	return b.Count(PassageWithTarget) + b.Count(BoxOnTarget) + b.Count(PlayerOnTarget)
}

// cellIndex maps a location to its row-major offset
func cellIndex(l Location) int {
	return l.Y*Width + l.X
}

// Reachable flood-fills from start over cells accepted by passable,
// moving in the four directions. The returned slice is in visit order
// and starts with start itself. Cells off the grid are never visited.
func Reachable(b *Board, start Location, passable func(Piece) bool) []Location {
	visited := intmap.New[int, bool](Width * Height)
	visited.Put(cellIndex(start), true)

	region := []Location{start}
	for i := 0; i < len(region); i++ {
		current := region[i]
		for _, dir := range Directions {
			next := current.Add(dir)
			if !InBounds(next) {
				continue
			}
			if _, seen := visited.Get(cellIndex(next)); seen {
				continue
			}
			if !passable(b.At(next)) {
				continue
			}
			visited.Put(cellIndex(next), true)
			region = append(region, next)
		}
	}
	return region
}

// Walkable accepts every piece except walls and the void outside the level
func Walkable(p Piece) bool {
	return p != Wall && p != Empty
}
