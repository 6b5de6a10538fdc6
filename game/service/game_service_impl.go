package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/boxworld/game/engine"
	"github.com/wricardo/mcp-training/boxworld/game/levels"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	catalog  LevelCatalog
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, catalog LevelCatalog) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		catalog:  catalog,
	}
}

// CreateSession starts a session on the level named by levelRef, a level ID
// or 1-based number. An empty levelRef starts on the first level.
func (s *gameServiceImpl) CreateSession(ctx context.Context, levelRef string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := 0
	if levelRef != "" {
		var err error
		index, err = s.catalog.Lookup(levelRef)
		if err != nil {
			return nil, fmt.Errorf("%w. Available levels: %s", err, strings.Join(s.levelIDs(), ", "))
		}
	}

	sess, err := s.sessions.Create("", s.catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err := sess.Engine.LoadLevel(index); err != nil {
		if delErr := s.sessions.Delete(sess.ID); delErr != nil {
			log.Printf("Warning: failed to remove session %s after load error: %v", sess.ID, delErr)
		}
		return nil, err
	}

	return s.sessionInfo(sess), nil
}

// GetSession retrieves session information. It records an access, so it
// takes the write lock like every other caller of touch.
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Act applies a single action such as "left" or "undo"
func (s *gameServiceImpl) Act(ctx context.Context, sessionID, action string) (*ActionResult, error) {
	parsed, err := engine.ParseAction(action)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	step, events := apply(sess.Engine, parsed, 1)
	return &ActionResult{
		Action:        step.Action,
		Outcome:       step.Outcome,
		Changed:       step.Outcome != engine.Ignored.String(),
		GameState:     sess.Engine.State(),
		Message:       events[len(events)-1].Message,
		Events:        events,
		PossibleMoves: possibleMoves(sess.Engine),
	}, nil
}

// ActMany applies actions in order and stops right after the action that
// solves the current level. Every action is parsed before any is applied.
func (s *gameServiceImpl) ActMany(ctx context.Context, sessionID string, actions []string) (*BulkActionResult, error) {
	parsed := make([]engine.Action, 0, len(actions))
	for i, action := range actions {
		a, err := engine.ParseAction(action)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i+1, err)
		}
		parsed = append(parsed, a)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	result := &BulkActionResult{
		RequestedActions: len(actions),
		Steps:            make([]StepInfo, 0, len(parsed)),
		Events:           make([]GameEvent, 0, len(parsed)),
	}

	if len(parsed) > MaxBulkActions {
		result.Truncated = true
		result.Limit = MaxBulkActions
		parsed = parsed[:MaxBulkActions]
	}

	for i, action := range parsed {
		if err := ctx.Err(); err != nil {
			result.StoppedReason = "canceled"
			result.StoppedOnAction = i + 1
			break
		}

		step, events := apply(sess.Engine, action, i+1)
		result.ActionsExecuted++
		result.Steps = append(result.Steps, step)
		result.Events = append(result.Events, events...)

		if step.Solved && i < len(parsed)-1 {
			result.StoppedReason = "solved"
			result.StoppedOnAction = i + 1
			break
		}
	}

	result.GameState = sess.Engine.State()
	result.PossibleMoves = possibleMoves(sess.Engine)
	result.Message = summarize(result)

	return result, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.State(), nil
}

// ListLevels describes the level catalog
func (s *gameServiceImpl) ListLevels(ctx context.Context) ([]levels.Info, error) {
	return s.catalog.List(), nil
}

// touch fetches a session and records the access.
// Caller holds s.mu for writing.
func (s *gameServiceImpl) touch(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %q: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sess.ID)
	return sess, nil
}

func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	info := &SessionInfo{
		ID:             sess.ID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.State(),
	}
	if list := s.catalog.List(); sess.Engine.Level() < len(list) {
		info.LevelID = list[sess.Engine.Level()].ID
		info.LevelName = list[sess.Engine.Level()].Name
	}
	return info
}

func (s *gameServiceImpl) levelIDs() []string {
	list := s.catalog.List()
	ids := make([]string, 0, len(list))
	for _, info := range list {
		ids = append(ids, info.ID)
	}
	return ids
}

// apply runs one action on the engine and describes what happened
func apply(e *engine.GameEngine, action engine.Action, idx int) (StepInfo, []GameEvent) {
	from := e.Player()
	wasSolved := e.Solved()

	outcome := e.Update(action)

	now := time.Now()
	to := e.Player()
	event := GameEvent{
		Type:      outcome.String(),
		Timestamp: now,
		Position:  to,
	}

	switch outcome {
	case engine.Walked:
		event.Message = fmt.Sprintf("Walked %s to (%d,%d)", action, to.X, to.Y)
	case engine.Pushed:
		state := e.State()
		event.Message = fmt.Sprintf("Pushed box %s, %d of %d on target", action, state.BoxesPlaced, state.Boxes)
	case engine.Undone:
		event.Message = "Undid last box move"
	case engine.Restarted:
		event.Message = fmt.Sprintf("Restarted level %d", e.DisplayLevel())
	case engine.LevelChanged:
		event.Message = fmt.Sprintf("Now on level %d of %d", e.DisplayLevel(), e.LevelCount())
	default:
		event.Message = ignoredMessage(action)
	}

	events := []GameEvent{event}
	solved := !wasSolved && e.Solved()
	if solved {
		events = append(events, GameEvent{
			Type:      EventSolved,
			Message:   fmt.Sprintf("Level %d solved!", e.DisplayLevel()),
			Timestamp: now,
			Position:  to,
		})
	}

	return StepInfo{
		Idx:     idx,
		Action:  action.String(),
		Outcome: outcome.String(),
		From:    from,
		To:      to,
		Solved:  solved,
	}, events
}

func ignoredMessage(action engine.Action) string {
	switch action {
	case engine.MoveUp, engine.MoveDown, engine.MoveLeft, engine.MoveRight:
		return fmt.Sprintf("Cannot move %s", action)
	case engine.Undo:
		return "Nothing to undo"
	case engine.NextLevel:
		return "Already on the last level"
	case engine.PreviousLevel:
		return "Already on the first level"
	}
	return "Nothing happened"
}

func possibleMoves(e *engine.GameEngine) []string {
	moves := []string{}
	for _, dir := range e.PossibleMoves() {
		moves = append(moves, dir.String())
	}
	return moves
}

func summarize(r *BulkActionResult) string {
	changed := 0
	for _, step := range r.Steps {
		if step.Outcome != engine.Ignored.String() {
			changed++
		}
	}

	msg := fmt.Sprintf("Applied %d of %d actions, %d changed the board", r.ActionsExecuted, r.RequestedActions, changed)
	switch r.StoppedReason {
	case "solved":
		msg += fmt.Sprintf("; stopped after action %d because the level was solved", r.StoppedOnAction)
	case "canceled":
		msg += "; canceled"
	}
	if r.Truncated {
		msg += fmt.Sprintf("; truncated to %d", r.Limit)
	}
	return msg
}
