package engine

import (
	"fmt"
	"strings"
)

// Action is one discrete player intent, at most one per frame
type Action int

const (
	ActionNone Action = iota
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
	Undo
	Restart
	NextLevel
	PreviousLevel
)

var actionNames = map[Action]string{
	ActionNone:    "none",
	MoveUp:        "up",
	MoveDown:      "down",
	MoveLeft:      "left",
	MoveRight:     "right",
	Undo:          "undo",
	Restart:       "restart",
	NextLevel:     "next",
	PreviousLevel: "previous",
}

var actionAliases = map[string]Action{
	"":         ActionNone,
	"none":     ActionNone,
	"up":       MoveUp,
	"u":        MoveUp,
	"down":     MoveDown,
	"d":        MoveDown,
	"left":     MoveLeft,
	"l":        MoveLeft,
	"right":    MoveRight,
	"r":        MoveRight,
	"undo":     Undo,
	"z":        Undo,
	"restart":  Restart,
	"reset":    Restart,
	"next":     NextLevel,
	"n":        NextLevel,
	"previous": PreviousLevel,
	"prev":     PreviousLevel,
	"p":        PreviousLevel,
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseAction maps a name such as "left" or "undo" to its action
func ParseAction(s string) (Action, error) {
	if a, ok := actionAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return a, nil
	}
	return ActionNone, fmt.Errorf("%w %q", ErrUnknownAction, s)
}

// Direction returns the move direction for a move action
func (a Action) Direction() (Direction, bool) {
	switch a {
	case MoveUp:
		return Up, true
	case MoveDown:
		return Down, true
	case MoveLeft:
		return Left, true
	case MoveRight:
		return Right, true
	}
	return Direction{}, false
}

// Outcome describes what a single Update did to the engine
type Outcome int

const (
	Ignored Outcome = iota
	Walked
	Pushed
	Undone
	Restarted
	LevelChanged
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case Walked:
		return "walk"
	case Pushed:
		return "push"
	case Undone:
		return "undo"
	case Restarted:
		return "restart"
	case LevelChanged:
		return "level"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}
