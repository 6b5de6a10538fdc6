package input

import (
	"strings"

	"github.com/wricardo/mcp-training/boxworld/game/engine"
)

// Button is a bit set of controller buttons. The lowest bit has the
// highest priority when several buttons go down in the same frame.
type Button uint8

const (
	ButtonA Button = 1 << iota // next level
	ButtonB                    // previous level
	ButtonX                    // undo
	ButtonY                    // restart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight

	NoButton Button = 0
)

var buttonActions = map[Button]engine.Action{
	ButtonA:     engine.NextLevel,
	ButtonB:     engine.PreviousLevel,
	ButtonX:     engine.Undo,
	ButtonY:     engine.Restart,
	ButtonUp:    engine.MoveUp,
	ButtonDown:  engine.MoveDown,
	ButtonLeft:  engine.MoveLeft,
	ButtonRight: engine.MoveRight,
}

var buttonNames = map[Button]string{
	ButtonA:     "A",
	ButtonB:     "B",
	ButtonX:     "X",
	ButtonY:     "Y",
	ButtonUp:    "Up",
	ButtonDown:  "Down",
	ButtonLeft:  "Left",
	ButtonRight: "Right",
}

// Action returns the game action bound to a single button
func (b Button) Action() engine.Action {
	return buttonActions[b]
}

// Highest returns the highest-priority button in the set
func (b Button) Highest() Button {
	return b & -b
}

func (b Button) String() string {
	if b == NoButton {
		return "none"
	}
	var names []string
	for bit := ButtonA; bit != 0; bit <<= 1 {
		if b&bit != 0 {
			names = append(names, buttonNames[bit])
		}
	}
	return strings.Join(names, "+")
}

// Debouncer turns raw key-down and key-up events into one action per frame.
// A button counts once when it goes down; repeats while held are dropped.
// It is not safe for concurrent use.
type Debouncer struct {
	held    Button
	pending Button
}

// Press records a key-down event
func (d *Debouncer) Press(b Button) {
	d.pending |= b &^ d.held
	d.held |= b
}

// Release records a key-up event
func (d *Debouncer) Release(b Button) {
	d.held &^= b
}

// Held reports the buttons currently down
func (d *Debouncer) Held() Button {
	return d.held
}

// Tick ends a frame and returns the action of the highest-priority button
// pressed since the previous tick. Lower-priority presses in the same frame
// are discarded.
func (d *Debouncer) Tick() engine.Action {
	b := d.pending.Highest()
	d.pending = NoButton
	return b.Action()
}

// Poll is for sources that report the whole button state once per frame.
// It presses what is down, releases what is up, and ticks.
func (d *Debouncer) Poll(state Button) engine.Action {
	d.Release(d.held &^ state)
	d.Press(state)
	return d.Tick()
}

var keyButtons = map[rune]Button{
	'w': ButtonUp, 'k': ButtonUp,
	's': ButtonDown, 'j': ButtonDown,
	'a': ButtonLeft, 'h': ButtonLeft,
	'd': ButtonRight, 'l': ButtonRight,
	'z': ButtonX, 'u': ButtonX,
	'r': ButtonY,
	'n': ButtonA,
	'p': ButtonB,
}

// KeyButton maps a keyboard rune to a button, ignoring case
func KeyButton(r rune) (Button, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	b, ok := keyButtons[r]
	return b, ok
}
