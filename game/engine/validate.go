package engine

import "fmt"

// ValidateBoard checks a level layout for playability: exactly one
// player, at least one box, as many boxes as targets, and walls that
// keep the player inside the grid.
func ValidateBoard(b Board) error {
	players := b.Count(Player) + b.Count(PlayerOnTarget)
	switch {
	case players == 0:
		return ErrNoPlayer
	case players > 1:
		return fmt.Errorf("%w: found %d", ErrMultiplePlayers, players)
	}

	boxes, targets := CountBoxes(&b), CountTargets(&b)
	if boxes == 0 {
		return ErrNoBoxes
	}
	if boxes != targets {
		return fmt.Errorf("%w: %d boxes, %d targets", ErrBoxTargetCount, boxes, targets)
	}

	start, _ := b.FindPlayer()
	for _, l := range Reachable(&b, start, func(p Piece) bool { return p != Wall }) {
		if b.At(l) == Empty {
			return fmt.Errorf("%w: player can reach the void at (%d,%d)", ErrNotEnclosed, l.X, l.Y)
		}
		if l.X == 0 || l.Y == 0 || l.X == Width-1 || l.Y == Height-1 {
			return fmt.Errorf("%w: player can reach the edge at (%d,%d)", ErrNotEnclosed, l.X, l.Y)
		}
	}
	return nil
}
