package service_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/boxworld/game/engine"
	"github.com/wricardo/mcp-training/boxworld/game/levels"
	"github.com/wricardo/mcp-training/boxworld/game/service"
	"github.com/wricardo/mcp-training/boxworld/game/session"
)

func levelFile(name string, rows ...string) *fstest.MapFile {
	layout := make([]string, engine.Height)
	for y := range layout {
		row := ""
		if y < len(rows) {
			row = rows[y]
		}
		layout[y] = `"` + row + strings.Repeat("-", engine.Width-len(row)) + `"`
	}
	data := `{"name": "` + name + `", "layout": [` + strings.Join(layout, ",") + `]}`
	return &fstest.MapFile{Data: []byte(data)}
}

func newTestService(t *testing.T) service.GameService {
	t.Helper()
	catalog, err := levels.NewManager(fstest.MapFS{
		"a_tiny.json": levelFile("Tiny",
			"#####",
			"#@$.#",
			"#####",
		),
		"b_room.json": levelFile("Room",
			"######",
			"#    #",
			"#@ $.#",
			"#    #",
			"######",
		),
	})
	require.NoError(t, err)
	return service.NewGameService(session.NewManager(), catalog)
}

func eventTypes(events []service.GameEvent) []string {
	types := make([]string, 0, len(events))
	for _, e := range events {
		types = append(types, e.Type)
	}
	return types
}

func TestGameService_CreateSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	t.Run("first level by default", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "")
		require.NoError(t, err)
		assert.Len(t, info.ID, 4)
		assert.Equal(t, "a_tiny", info.LevelID)
		assert.Equal(t, "Tiny", info.LevelName)
		assert.Equal(t, 1, info.GameState.Level)
		assert.Equal(t, 2, info.GameState.LevelCount)
	})

	t.Run("by level ID", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "B_ROOM")
		require.NoError(t, err)
		assert.Equal(t, "b_room", info.LevelID)
		assert.Equal(t, 2, info.GameState.Level)
		assert.True(t, info.GameState.HasPrevious)
	})

	t.Run("by level number", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "2")
		require.NoError(t, err)
		assert.Equal(t, "b_room", info.LevelID)
	})

	t.Run("unknown level", func(t *testing.T) {
		_, err := svc.CreateSession(ctx, "nope")
		require.Error(t, err)
		assert.True(t, errors.Is(err, levels.ErrLevelNotFound))
		assert.Contains(t, err.Error(), "a_tiny, b_room")
	})

	sessions, err := svc.ListSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 3, "failed creation adds no session")
}

func TestGameService_Act(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	info, err := svc.CreateSession(ctx, "b_room")
	require.NoError(t, err)

	tests := []struct {
		action  string
		outcome string
		changed bool
		message string
		events  []string
	}{
		{"undo", "ignored", false, "Nothing to undo", []string{"ignored"}},
		{"left", "ignored", false, "Cannot move left", []string{"ignored"}},
		{"R", "walk", true, "Walked right to (2,2)", []string{"walk"}},
		{"right", "push", true, "Level 2 solved!", []string{"push", "solved"}},
		{"next", "ignored", false, "Already on the last level", []string{"ignored"}},
		{"previous", "level", true, "Now on level 1 of 2", []string{"level"}},
	}

	for _, test := range tests {
		result, err := svc.Act(ctx, info.ID, test.action)
		require.NoError(t, err, test.action)

		assert.Equal(t, test.outcome, result.Outcome, test.action)
		assert.Equal(t, test.changed, result.Changed, test.action)
		assert.Equal(t, test.message, result.Message, test.action)
		assert.Equal(t, test.events, eventTypes(result.Events), test.action)
		assert.NotNil(t, result.GameState)
	}
}

func TestGameService_ActPushEvent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	info, err := svc.CreateSession(ctx, "b_room")
	require.NoError(t, err)

	_, err = svc.Act(ctx, info.ID, "down")
	require.NoError(t, err)
	_, err = svc.Act(ctx, info.ID, "right")
	require.NoError(t, err)
	_, err = svc.Act(ctx, info.ID, "right")
	require.NoError(t, err)

	result, err := svc.Act(ctx, info.ID, "up")
	require.NoError(t, err)
	assert.Equal(t, "push", result.Outcome)
	assert.Equal(t, "Pushed box up, 0 of 1 on target", result.Message)
	assert.True(t, result.GameState.CanUndo)
	assert.Equal(t, engine.Location{X: 3, Y: 2}, result.Events[0].Position)

	result, err = svc.Act(ctx, info.ID, "undo")
	require.NoError(t, err)
	assert.Equal(t, "undo", result.Outcome)
	assert.False(t, result.GameState.CanUndo)
	assert.Equal(t, engine.Location{X: 3, Y: 3}, result.GameState.Player)
}

func TestGameService_ActErrors(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	info, err := svc.CreateSession(ctx, "")
	require.NoError(t, err)

	_, err = svc.Act(ctx, info.ID, "jump")
	assert.True(t, errors.Is(err, engine.ErrUnknownAction))

	_, err = svc.Act(ctx, "zzzz", "left")
	assert.True(t, errors.Is(err, session.ErrSessionNotFound))
}

func TestGameService_ActMany(t *testing.T) {
	ctx := context.Background()

	t.Run("stops once solved", func(t *testing.T) {
		svc := newTestService(t)
		info, err := svc.CreateSession(ctx, "b_room")
		require.NoError(t, err)

		result, err := svc.ActMany(ctx, info.ID, []string{"left", "right", "right", "left", "left"})
		require.NoError(t, err)

		assert.Equal(t, 5, result.RequestedActions)
		assert.Equal(t, 3, result.ActionsExecuted)
		assert.Equal(t, "solved", result.StoppedReason)
		assert.Equal(t, 3, result.StoppedOnAction)
		assert.True(t, result.GameState.Solved)
		assert.Equal(t, []string{"ignored", "walk", "push", "solved"}, eventTypes(result.Events))
		require.Len(t, result.Steps, 3)
		assert.Equal(t, service.StepInfo{
			Idx:     3,
			Action:  "right",
			Outcome: "push",
			From:    engine.Location{X: 2, Y: 2},
			To:      engine.Location{X: 3, Y: 2},
			Solved:  true,
		}, result.Steps[2])
		assert.Contains(t, result.Message, "stopped after action 3")
	})

	t.Run("solving on the last action is not a stop", func(t *testing.T) {
		svc := newTestService(t)
		info, err := svc.CreateSession(ctx, "")
		require.NoError(t, err)

		result, err := svc.ActMany(ctx, info.ID, []string{"right"})
		require.NoError(t, err)
		assert.Equal(t, 1, result.ActionsExecuted)
		assert.Empty(t, result.StoppedReason)
		assert.True(t, result.GameState.Solved)
	})

	t.Run("invalid action applies nothing", func(t *testing.T) {
		svc := newTestService(t)
		info, err := svc.CreateSession(ctx, "b_room")
		require.NoError(t, err)

		_, err = svc.ActMany(ctx, info.ID, []string{"right", "fly", "right"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, engine.ErrUnknownAction))
		assert.Contains(t, err.Error(), "action 2")

		state, err := svc.GetGameState(ctx, info.ID)
		require.NoError(t, err)
		assert.Equal(t, engine.Location{X: 1, Y: 2}, state.Player)
	})

	t.Run("truncated", func(t *testing.T) {
		svc := newTestService(t)
		info, err := svc.CreateSession(ctx, "b_room")
		require.NoError(t, err)

		actions := make([]string, service.MaxBulkActions+10)
		for i := range actions {
			actions[i] = "undo"
		}
		result, err := svc.ActMany(ctx, info.ID, actions)
		require.NoError(t, err)
		assert.True(t, result.Truncated)
		assert.Equal(t, service.MaxBulkActions, result.Limit)
		assert.Equal(t, service.MaxBulkActions, result.ActionsExecuted)
	})

	t.Run("canceled", func(t *testing.T) {
		svc := newTestService(t)
		info, err := svc.CreateSession(ctx, "b_room")
		require.NoError(t, err)

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		result, err := svc.ActMany(canceled, info.ID, []string{"right", "right"})
		require.NoError(t, err)
		assert.Equal(t, 0, result.ActionsExecuted)
		assert.Equal(t, "canceled", result.StoppedReason)
		assert.Equal(t, engine.Location{X: 1, Y: 2}, result.GameState.Player)
	})
}

func TestGameService_DefaultCatalogSolution(t *testing.T) {
	ctx := context.Background()
	svc := service.NewGameService(session.NewManager(), levels.Default())

	info, err := svc.CreateSession(ctx, "01_first_steps")
	require.NoError(t, err)

	solution := strings.Split("llururddldrr", "")
	result, err := svc.ActMany(ctx, info.ID, append(solution, "next"))
	require.NoError(t, err)

	assert.Equal(t, len(solution), result.ActionsExecuted)
	assert.Equal(t, "solved", result.StoppedReason)
	assert.True(t, result.GameState.Solved)
	assert.Contains(t, eventTypes(result.Events), service.EventSolved)

	next, err := svc.Act(ctx, info.ID, "next")
	require.NoError(t, err)
	assert.Equal(t, service.EventLevel, next.Outcome)
	assert.Equal(t, 2, next.GameState.Level)
	assert.False(t, next.GameState.Solved)

	got, err := svc.GetSession(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, "02_corridor", got.LevelID)
}

func TestGameService_SessionsAndLevels(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	first, err := svc.CreateSession(ctx, "")
	require.NoError(t, err)
	second, err := svc.CreateSession(ctx, "")
	require.NoError(t, err)

	sessions, err := svc.ListSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	got, err := svc.GetSession(ctx, strings.ToUpper(first.ID))
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	require.NoError(t, svc.DeleteSession(ctx, second.ID))
	_, err = svc.GetSession(ctx, second.ID)
	assert.True(t, errors.Is(err, session.ErrSessionNotFound))
	assert.True(t, errors.Is(svc.DeleteSession(ctx, second.ID), session.ErrSessionNotFound))

	infos, err := svc.ListLevels(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, levels.Info{Number: 2, ID: "b_room", Name: "Room", Boxes: 1}, infos[1])
}

func TestGameService_ConcurrentActs(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	info, err := svc.CreateSession(ctx, "b_room")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			action := []string{"down", "up", "left", "right"}[i%4]
			svc.Act(ctx, info.ID, action)
			svc.GetGameState(ctx, info.ID)
		}(i)
	}
	wg.Wait()

	state, err := svc.GetGameState(ctx, info.ID)
	require.NoError(t, err)
	b := state.Board
	assert.Equal(t, 1, engine.CountBoxes(&b))
	assert.Equal(t, 1, engine.CountTargets(&b))
	assert.Equal(t, engine.Player, b.At(state.Player).Base())
}

func TestGameService_ConcurrentReads(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	info, err := svc.CreateSession(ctx, "")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := svc.GetSession(ctx, info.ID)
			assert.NoError(t, err)
			assert.False(t, got.LastAccessedAt.Before(info.CreatedAt))

			_, err = svc.GetGameState(ctx, info.ID)
			assert.NoError(t, err)

			sessions, err := svc.ListSessions(ctx)
			assert.NoError(t, err)
			assert.Len(t, sessions, 1)
		}()
	}
	wg.Wait()
}

// shiftedCatalog resolves every reference one past the last level
type shiftedCatalog struct {
	*levels.Manager
}

func (c shiftedCatalog) Lookup(string) (int, error) {
	return c.LevelCount(), nil
}

func TestGameService_CreateSessionLoadFailure(t *testing.T) {
	ctx := context.Background()
	sessions := session.NewManager()
	svc := service.NewGameService(sessions, shiftedCatalog{levels.Default()})

	_, err := svc.CreateSession(ctx, "anything")
	assert.True(t, errors.Is(err, engine.ErrLevelOutOfRange), "got %v", err)
	assert.Equal(t, 0, sessions.Count(), "failed session is removed")
}
