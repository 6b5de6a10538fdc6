package engine

import "fmt"

// LevelProvider hands out the initial board of each level.
// Level must return an independent copy for every index in [0, LevelCount()).
type LevelProvider interface {
	Level(index int) Board
	LevelCount() int
}

// ValidatedProvider is a LevelProvider whose boards have all passed
// ValidateBoard already. NewEngine trusts it when Validated reports true.
type ValidatedProvider interface {
	LevelProvider
	Validated() bool
}

// Engine provides the main interface for puzzle operations
type Engine interface {
	// Lifecycle
	Init()
	LoadLevel(index int) error
	Restart()
	AdvanceLevel() bool
	RetreatLevel() bool

	// Play
	Update(action Action) Outcome
	AttemptMove(dir Direction) Outcome
	Undo() bool
	CanMove(dir Direction) bool
	PossibleMoves() []Direction

	// Read-only state
	Board() Board
	Player() Location
	Level() int
	DisplayLevel() int
	LevelCount() int
	Solved() bool
	CanUndo() bool
	HasNextLevel() bool
	HasPreviousLevel() bool
	State() *GameState
}

// GameEngine implements the Engine interface.
// It is not safe for concurrent use.
type GameEngine struct {
	levels LevelProvider

	level    int
	board    Board
	previous Board
	player   Location
	solved   bool
	canUndo  bool
}

// NewEngine validates every level the provider serves and loads the first
// one. Providers that are already validated are not checked again.
func NewEngine(levels LevelProvider) (*GameEngine, error) {
	if levels == nil || levels.LevelCount() == 0 {
		return nil, ErrNoLevels
	}

	if v, ok := levels.(ValidatedProvider); !ok || !v.Validated() {
		for i := 0; i < levels.LevelCount(); i++ {
			if err := ValidateBoard(levels.Level(i)); err != nil {
				return nil, fmt.Errorf("level %d: %w", i+1, err)
			}
		}
	}

	e := &GameEngine{levels: levels}
	e.Init()
	return e, nil
}

// Init (re)loads the current level
func (e *GameEngine) Init() {
	e.board = e.levels.Level(e.level)
	e.previous = e.board
	e.solved = false
	e.canUndo = false
	e.findPlayer()
}

// LoadLevel jumps to the level at index
func (e *GameEngine) LoadLevel(index int) error {
	if index < 0 || index >= e.levels.LevelCount() {
		return fmt.Errorf("%w: %d (have %d levels)", ErrLevelOutOfRange, index+1, e.levels.LevelCount())
	}
	e.level = index
	e.Init()
	return nil
}

// Restart discards all progress on the current level
func (e *GameEngine) Restart() {
	e.Init()
}

// AdvanceLevel moves to the next level unless already at the last one
func (e *GameEngine) AdvanceLevel() bool {
	if !e.HasNextLevel() {
		return false
	}
	e.level++
	e.Init()
	return true
}

// RetreatLevel moves to the previous level unless already at the first one
func (e *GameEngine) RetreatLevel() bool {
	if !e.HasPreviousLevel() {
		return false
	}
	e.level--
	e.Init()
	return true
}

// Update applies one action intent
func (e *GameEngine) Update(action Action) Outcome {
	switch action {
	case NextLevel:
		if e.AdvanceLevel() {
			return LevelChanged
		}
	case PreviousLevel:
		if e.RetreatLevel() {
			return LevelChanged
		}
	case Undo:
		if e.Undo() {
			return Undone
		}
	case Restart:
		e.Restart()
		return Restarted
	default:
		if dir, ok := action.Direction(); ok {
			return e.AttemptMove(dir)
		}
	}
	return Ignored
}

// Board returns a copy of the current board
func (e *GameEngine) Board() Board {
	return e.board
}

// Player returns the player location
func (e *GameEngine) Player() Location {
	return e.player
}

// Level returns the 0-based level index
func (e *GameEngine) Level() int {
	return e.level
}

// DisplayLevel returns the 1-based level number
func (e *GameEngine) DisplayLevel() int {
	return e.level + 1
}

func (e *GameEngine) LevelCount() int {
	return e.levels.LevelCount()
}

func (e *GameEngine) Solved() bool {
	return e.solved
}

func (e *GameEngine) CanUndo() bool {
	return e.canUndo
}

func (e *GameEngine) HasNextLevel() bool {
	return e.level < e.levels.LevelCount()-1
}

func (e *GameEngine) HasPreviousLevel() bool {
	return e.level > 0
}

// State returns a snapshot of everything a renderer needs
func (e *GameEngine) State() *GameState {
	return &GameState{
		Board:       e.board,
		Player:      e.player,
		Level:       e.DisplayLevel(),
		LevelCount:  e.LevelCount(),
		Solved:      e.solved,
		CanUndo:     e.canUndo,
		HasNext:     e.HasNextLevel(),
		HasPrevious: e.HasPreviousLevel(),
		Boxes:       CountBoxes(&e.board),
		BoxesPlaced: e.board.Count(BoxOnTarget),
	}
}

// findPlayer caches the player location. Boards are validated when
// the engine is built, so a missing player is a broken provider.
func (e *GameEngine) findPlayer() {
	player, ok := e.board.FindPlayer()
	if !ok {
		panic(fmt.Sprintf("engine: level %d has no player", e.level+1))
	}
	e.player = player
}
