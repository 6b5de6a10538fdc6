package service

import (
	"context"
	"time"

	"github.com/wricardo/mcp-training/boxworld/game/engine"
	"github.com/wricardo/mcp-training/boxworld/game/levels"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, levelRef string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Act(ctx context.Context, sessionID, action string) (*ActionResult, error)
	ActMany(ctx context.Context, sessionID string, actions []string) (*BulkActionResult, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Levels
	ListLevels(ctx context.Context) ([]levels.Info, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, levels engine.LevelProvider) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// LevelCatalog is the ordered set of levels sessions play through
type LevelCatalog interface {
	engine.LevelProvider
	Lookup(ref string) (int, error)
	List() []levels.Info
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
