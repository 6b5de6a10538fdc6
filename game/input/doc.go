// Package input maps controller buttons and keyboard keys to game actions.
//
// Buttons follow a four-face, four-direction pad:
//
//	A      next level
//	B      previous level
//	X      undo the last box move
//	Y      restart the level
//	D-pad  move
//
// When several buttons go down in one frame only the highest-priority one
// acts, in the order A, B, X, Y, Up, Down, Left, Right.
package input
