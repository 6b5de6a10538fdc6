// Package terminal is a text frontend for Boxworld.
//
// Each key read from the input is one frame: it goes through an
// input.Debouncer, the resulting action is applied to the engine, and the
// board is redrawn with the status lines below it.
package terminal
