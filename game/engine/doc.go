// Package engine provides the puzzle core of Boxworld, a Sokoban-style game.
//
// The engine package implements:
//   - The piece vocabulary and the target overlay (a target belongs to the
//     ground, not to what stands on it)
//   - Fixed-size boards and their text layout notation
//   - Move resolution, box pushing and single-slot undo
//   - Solved detection and linear level navigation
//   - Level-data validation
//
// Core Types:
//
// The Engine interface defines the contract used by the frame loop,
// implemented by GameEngine. Board is a Height×Width array of Piece values;
// a LevelProvider hands the engine a fresh Board for each level index.
//
// Usage:
//
//	eng, err := engine.NewEngine(levels.Default())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eng.Update(engine.MoveRight)
//	if eng.Solved() {
//		eng.Update(engine.NextLevel)
//	}
//
// Layout Notation:
//
//	-  empty (outside the level)     #  wall
//	   passage                       .  passage with target
//	$  box                           *  box on target
//	@  player                        +  player on target
//
// Game Rules:
//
// The player walks onto passages and pushes a box when the cell behind it is
// a passage. Anything else is ignored. Only the last push can be undone, and
// a push that solves the level cannot be undone at all. The level is solved
// once no box stands off a target.
package engine
