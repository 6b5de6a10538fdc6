package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/mcp-training/boxworld/game/engine"
	"github.com/wricardo/mcp-training/boxworld/game/service"
)

const instructions = `Boxworld - MCP Interface

GAME OBJECTIVE:
Push every box ($) onto a target (.) to solve the level. You are the player (@).

AVAILABLE TOOLS:
- create_session: Start a game, optionally on a given level
- list_sessions: List all active sessions
- get_session: Get session details
- delete_session: End a session
- game_state: Get the board and status of a session
- act: Apply one or more actions (up/down/left/right/undo/restart/next/previous)
- list_levels: List the level catalog
- game_instructions: Get the full rules`

const rules = `📦 Boxworld - Complete Instructions

GAME OBJECTIVE:
Push every box onto a target. A level is solved when no box is left off a target.

BOARD LEGEND:
• '#' wall          • ' ' floor
• '.' target        • '$' box
• '*' box on target • '@' player
• '+' player on target
• '-' outside the level

RULES:
• You move one cell up, down, left or right onto floor or a target
• Walking into a box pushes it one cell, if the cell behind it is floor or a target
• Boxes cannot be pulled, and you cannot push two boxes at once
• Walls never move

ACTIONS:
• up, down, left, right: move or push
• undo: take back the last box push (only one, and not after solving)
• restart: put the level back to its start
• next / previous: switch level (progress on the current level is lost)

TIPS:
• A box pushed into a corner that is not a target can never move again
• Use act with several actions to play a whole plan in one call; it stops once the level is solved`

// Server exposes the game service as MCP tools
type Server struct {
	service   service.GameService
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server backed by svc
func NewServer(svc service.GameService, version string) *Server {
	s := &Server{service: svc}
	s.mcpServer = server.NewMCPServer(
		"Boxworld",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(instructions),
	)
	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// RunStdio serves MCP over stdin and stdout until the client disconnects
func (s *Server) RunStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session, optionally starting on a given level",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"level": map[string]interface{}{
					"type":        "string",
					"description": "Level ID or 1-based level number (optional, defaults to the first level)",
				},
			},
		},
	}, s.handleCreateSession)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListSessions)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handleGetSession)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_session",
		Description: "End a game session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handleDeleteSession)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board and status",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "act",
		Description: "Apply actions in order. Stops after the action that solves the level.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"actions": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": []string{"up", "down", "left", "right", "undo", "restart", "next", "previous"},
					},
					"description": "Actions to apply",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the plan behind these actions",
				},
			},
			Required: []string{"session_id", "actions"},
		},
	}, s.handleAct)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_levels",
		Description: "List the available levels",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListLevels)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleGameInstructions)
}

// Tool handlers

// arguments returns the call arguments; a missing object reads as empty
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	return args
}

func (s *Server) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	level, _ := args["level"].(string)

	info, err := s.service.CreateSession(ctx, level)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\n\n%s", info.ID, formatSessionInfo(info))
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := s.service.ListSessions(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", len(sessions))
	for _, info := range sessions {
		solved := ""
		if info.GameState.Solved {
			solved = " solved"
		}
		fmt.Fprintf(&b, "- %s (Level %d/%d: %s%s, Created: %s)\n",
			info.ID, info.GameState.Level, info.GameState.LevelCount, info.LevelName, solved,
			info.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	info, err := s.service.GetSession(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(info)), nil
}

func (s *Server) handleDeleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	if err := s.service.DeleteSession(ctx, sessionID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Deleted session: %s", sessionID)), nil
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	state, err := s.service.GetGameState(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(state)), nil
}

func (s *Server) handleAct(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	var actions []string
	switch raw := args["actions"].(type) {
	case []interface{}:
		for _, a := range raw {
			if action, ok := a.(string); ok {
				actions = append(actions, action)
			}
		}
	case []string:
		actions = raw
	case string:
		actions = strings.Fields(raw)
	}
	if len(actions) == 0 {
		return mcp.NewToolResultError("actions must list at least one action"), nil
	}

	result, err := s.service.ActMany(ctx, sessionID, actions)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBulkActionResult(sessionID, result)), nil
}

func (s *Server) handleListLevels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	infos, err := s.service.ListLevels(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Levels:\n\n")
	for _, info := range infos {
		fmt.Fprintf(&b, "%d. %s (id: %s, boxes: %d)\n", info.Number, info.Name, info.ID, info.Boxes)
		if info.Description != "" {
			fmt.Fprintf(&b, "   %s\n", info.Description)
		}
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(rules), nil
}

// Formatting helpers

func formatSessionInfo(info *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nLevel: %s (%s)\nCreated: %s\n\n%s",
		info.ID, info.LevelName, info.LevelID,
		info.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(info.GameState))
}

func formatGameState(state *engine.GameState) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Level %d/%d | Boxes on target: %d/%d | Player: (%d,%d)\n\n",
		state.Level, state.LevelCount, state.BoxesPlaced, state.Boxes, state.Player.X, state.Player.Y)

	for _, row := range state.Board.Rows() {
		b.WriteString(strings.TrimRight(row, "-"))
		b.WriteString("\n")
	}

	var status []string
	if state.Solved {
		status = append(status, "🎉 SOLVED")
	}
	if state.CanUndo {
		status = append(status, "undo available")
	}
	if state.HasNext {
		status = append(status, "next level available")
	}
	if state.HasPrevious {
		status = append(status, "previous level available")
	}
	if len(status) > 0 {
		fmt.Fprintf(&b, "\n%s", strings.Join(status, " | "))
	}

	return b.String()
}

func formatBulkActionResult(sessionID string, result *service.BulkActionResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Session: %s\n", sessionID)
	fmt.Fprintf(&b, "%s\n", result.Message)

	if len(result.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, event := range result.Events {
			fmt.Fprintf(&b, "- %s: %s\n", event.Type, event.Message)
		}
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))

	if len(result.PossibleMoves) > 0 {
		fmt.Fprintf(&b, "\n\nPossible moves: %s", strings.Join(result.PossibleMoves, ", "))
	} else {
		b.WriteString("\n\nPossible moves: none (try undo or restart)")
	}

	return b.String()
}
