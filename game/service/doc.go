// Package service provides the business logic layer for Boxworld.
//
// The service package implements:
//   - Multi-session game management
//   - Action parsing and application, singly or in batches
//   - Event reporting for every applied action
//   - Level catalog listing
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// LevelCatalog supplies the ordered levels every session plays through.
//
// Architecture:
//
// The service layer sits between the transports (terminal, MCP) and the
// engine. Each session owns an engine; the service serialises every engine
// call behind one mutex, so an engine never sees two actions at once.
//
// Usage:
//
//	gameService := service.NewGameService(session.NewManager(), levels.Default())
//
//	info, err := gameService.CreateSession(ctx, "01_first_steps")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.ActMany(ctx, info.ID, []string{"left", "left", "up"})
//
// Events:
//
// Every applied action yields one event named after its outcome: walk, push,
// undo, restart, level or ignored. The action that places the last box also
// yields a solved event. ActMany stops after that action.
package service
