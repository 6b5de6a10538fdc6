package engine

// AttemptMove moves the player one step in dir, pushing a box if one
// is in the way and the cell behind it is free. Illegal moves are ignored.
func (e *GameEngine) AttemptMove(dir Direction) Outcome {
	next := e.player.Add(dir)

	switch e.board.At(next).Base() {
	case Passage:
		e.swapOccupants(e.player, next)
		e.player = next
		return Walked

	case Box:
		afterBox := next.Add(dir)
		if e.board.At(afterBox).Base() != Passage {
			return Ignored
		}

		e.previous = e.board
		e.swapOccupants(next, afterBox)
		e.swapOccupants(e.player, next)
		e.player = next

		e.recomputeSolved()
		e.canUndo = !e.solved
		return Pushed
	}

	return Ignored
}

// Undo restores the board saved before the last push
func (e *GameEngine) Undo() bool {
	if !e.canUndo {
		return false
	}
	e.board = e.previous
	e.findPlayer()
	e.canUndo = false
	return true
}

// CanMove reports whether AttemptMove(dir) would change anything
func (e *GameEngine) CanMove(dir Direction) bool {
	next := e.player.Add(dir)
	switch e.board.At(next).Base() {
	case Passage:
		return true
	case Box:
		return e.board.At(next.Add(dir)).Base() == Passage
	}
	return false
}

// PossibleMoves returns the directions in which the player can move
func (e *GameEngine) PossibleMoves() []Direction {
	var possible []Direction
	for _, dir := range Directions {
		if e.CanMove(dir) {
			possible = append(possible, dir)
		}
	}
	return possible
}

// swapOccupants exchanges what stands on a and b.
// Targets belong to the ground, so each cell keeps its own flag.
func (e *GameEngine) swapOccupants(a, b Location) {
	pa, pb := e.board.At(a), e.board.At(b)
	e.board.Set(a, Combine(pb.Base(), pa.HasTarget()))
	e.board.Set(b, Combine(pa.Base(), pb.HasTarget()))
}

// recomputeSolved marks the level solved once no loose box is left
func (e *GameEngine) recomputeSolved() {
	e.solved = e.board.Count(Box) == 0
}
