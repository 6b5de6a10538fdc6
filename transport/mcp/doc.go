// Package mcp exposes Boxworld to AI agents over the Model Context Protocol.
//
// Tools:
//   - create_session: start a game, optionally on a chosen level
//   - list_sessions, get_session, delete_session: manage sessions
//   - game_state: board and status of a session
//   - act: apply a list of actions, stopping once the level is solved
//   - list_levels: the level catalog
//   - game_instructions: the rules
//
// The server calls the game service in-process and speaks MCP over stdio:
//
//	srv := mcp.NewServer(gameService, version)
//	if err := srv.RunStdio(); err != nil {
//		log.Fatal(err)
//	}
//
// Tool failures such as an unknown session or action come back as MCP tool
// errors, never as protocol errors.
package mcp
