package service

import (
	"time"

	"github.com/wricardo/mcp-training/boxworld/game/engine"
)

// MaxBulkActions caps how many actions a single ActMany call applies
const MaxBulkActions = 500

// Event types
const (
	EventWalk    = "walk"
	EventPush    = "push"
	EventUndo    = "undo"
	EventRestart = "restart"
	EventLevel   = "level"
	EventSolved  = "solved"
	EventIgnored = "ignored"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string            `json:"id"`
	LevelID        string            `json:"level_id"`
	LevelName      string            `json:"level_name"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	GameState      *engine.GameState `json:"game_state"`
}

// ActionResult contains the result of a single action
type ActionResult struct {
	Action        string            `json:"action"`
	Outcome       string            `json:"outcome"`
	Changed       bool              `json:"changed"`
	GameState     *engine.GameState `json:"game_state"`
	Message       string            `json:"message"`
	Events        []GameEvent       `json:"events,omitempty"`
	PossibleMoves []string          `json:"possible_moves"`
}

// BulkActionResult contains the result of a sequence of actions
type BulkActionResult struct {
	RequestedActions int               `json:"requested_actions"`
	ActionsExecuted  int               `json:"actions_executed"`
	Truncated        bool              `json:"truncated,omitempty"`
	Limit            int               `json:"limit,omitempty"`
	StoppedReason    string            `json:"stopped_reason,omitempty"` // solved|canceled
	StoppedOnAction  int               `json:"stopped_on_action,omitempty"`
	Steps            []StepInfo        `json:"steps"`
	Events           []GameEvent       `json:"events"`
	GameState        *engine.GameState `json:"game_state"`
	Message          string            `json:"message"`
	PossibleMoves    []string          `json:"possible_moves"`
}

// StepInfo is a compact record of one applied action
type StepInfo struct {
	Idx     int             `json:"idx"` // 1-based
	Action  string          `json:"action"`
	Outcome string          `json:"outcome"`
	From    engine.Location `json:"from"`
	To      engine.Location `json:"to"`
	Solved  bool            `json:"solved,omitempty"`
}

// GameEvent represents something that happened during play
type GameEvent struct {
	Type      string          `json:"type"`
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Location `json:"position"`
}
