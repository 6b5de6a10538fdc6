package engine

import "errors"

var (
	ErrBadLayout       = errors.New("invalid layout")
	ErrNoPlayer        = errors.New("level has no player")
	ErrMultiplePlayers = errors.New("level has more than one player")
	ErrNoBoxes         = errors.New("level has no boxes")
	ErrBoxTargetCount  = errors.New("box count does not match target count")
	ErrNotEnclosed     = errors.New("level is not enclosed by walls")
	ErrNoLevels        = errors.New("level provider has no levels")
	ErrLevelOutOfRange = errors.New("level index out of range")
	ErrUnknownAction   = errors.New("unknown action")
)
