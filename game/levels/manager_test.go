package levels

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/boxworld/game/engine"
)

const tinyLevel = `{
  "name": "Tiny",
  "description": "Smallest possible push.",
  "layout": [
    "#####-----",
    "#@$.#-----",
    "#####-----",
    "----------",
    "----------",
    "----------",
    "----------",
    "----------",
    "----------",
    "----------"
  ]
}`

func levelJSON(name string, row string) string {
	return strings.Replace(strings.Replace(tinyLevel, "Tiny", name, 1), "#@$.#-----", row, 1)
}

func TestDefaultCatalog(t *testing.T) {
	catalog := Default()

	require.Equal(t, 6, catalog.LevelCount())
	for i := 0; i < catalog.LevelCount(); i++ {
		assert.NoError(t, engine.ValidateBoard(catalog.Level(i)), "level %d", i+1)
	}

	infos := catalog.List()
	require.Len(t, infos, 6)
	assert.Equal(t, 1, infos[0].Number)
	assert.Equal(t, "01_first_steps", infos[0].ID)
	assert.Equal(t, "First Steps", infos[0].Name)
	assert.Equal(t, 1, infos[0].Boxes)
	assert.Equal(t, "06_loading_dock", infos[5].ID)

	assert.Same(t, catalog, Default())
}

func TestDefaultCatalogIsSolvable(t *testing.T) {
	solutions := map[int]string{
		0: "llururddldrr",
		1: "ddrrruurrrlllddlluurrrr",
	}
	moves := map[rune]engine.Action{
		'u': engine.MoveUp,
		'd': engine.MoveDown,
		'l': engine.MoveLeft,
		'r': engine.MoveRight,
	}

	for index, solution := range solutions {
		eng, err := engine.NewEngine(Default())
		require.NoError(t, err)
		require.NoError(t, eng.LoadLevel(index))

		for _, m := range solution {
			require.NotEqual(t, engine.Ignored, eng.Update(moves[m]), "level %d move %c", index+1, m)
		}
		assert.True(t, eng.Solved(), "level %d", index+1)
	}
}

func TestNewManager_OrdersByFileName(t *testing.T) {
	fsys := fstest.MapFS{
		"b_second.json": {Data: []byte(levelJSON("Second", "#.$@#-----"))},
		"a_first.json":  {Data: []byte(levelJSON("First", "#@$.#-----"))},
		"notes.txt":     {Data: []byte("ignored")},
	}

	m, err := NewManager(fsys)
	require.NoError(t, err)
	require.Equal(t, 2, m.LevelCount())

	first, err := m.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "a_first", first.ID)
	assert.Equal(t, "First", first.Name)

	second, err := m.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Second", second.Name)
	assert.Equal(t, engine.Location{X: 3, Y: 1}, mustFindPlayer(t, second.Board))
}

func mustFindPlayer(t *testing.T, b engine.Board) engine.Location {
	t.Helper()
	loc, ok := b.FindPlayer()
	require.True(t, ok)
	return loc
}

func TestNewManager_Errors(t *testing.T) {
	tests := []struct {
		name    string
		fsys    fstest.MapFS
		wantErr error
		want    string
	}{
		{"empty", fstest.MapFS{}, ErrEmptyCatalog, ""},
		{"bad json", fstest.MapFS{
			"broken.json": {Data: []byte(`{"name": `)},
		}, ErrInvalidLevel, "broken"},
		{"missing name", fstest.MapFS{
			"nameless.json": {Data: []byte(strings.Replace(tinyLevel, `"Tiny"`, `""`, 1))},
		}, ErrInvalidLevel, "name is required"},
		{"bad layout", fstest.MapFS{
			"short.json": {Data: []byte(levelJSON("Short", "#@$.#"))},
		}, ErrInvalidLevel, "row 2 must have 10 characters"},
		{"no player", fstest.MapFS{
			"lonely.json": {Data: []byte(levelJSON("Lonely", "# $.#-----"))},
		}, ErrInvalidLevel, "no player"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewManager(test.fsys)
			require.Error(t, err)
			assert.True(t, errors.Is(err, test.wantErr), "got %v", err)
			assert.Contains(t, err.Error(), test.want)
		})
	}
}

func TestLevelReturnsIndependentCopies(t *testing.T) {
	m, err := NewManager(fstest.MapFS{"tiny.json": {Data: []byte(tinyLevel)}})
	require.NoError(t, err)

	b := m.Level(0)
	b.Set(engine.Location{X: 2, Y: 1}, engine.Wall)

	fresh := m.Level(0)
	assert.Equal(t, engine.Box, fresh.At(engine.Location{X: 2, Y: 1}))
	assert.Equal(t, engine.Box, m.Level(0).At(engine.Location{X: 2, Y: 1}))
}

func TestManagerIsValidatedProvider(t *testing.T) {
	var provider engine.LevelProvider = Default()
	validated, ok := provider.(engine.ValidatedProvider)
	require.True(t, ok)
	assert.True(t, validated.Validated())
}

func TestLookup(t *testing.T) {
	m := Default()

	tests := []struct {
		ref  string
		want int
	}{
		{"01_first_steps", 0},
		{"03_PILLAR", 2},
		{"1", 0},
		{" 6 ", 5},
	}
	for _, test := range tests {
		t.Run(test.ref, func(t *testing.T) {
			got, err := m.Lookup(test.ref)
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}

	for _, ref := range []string{"0", "7", "nope"} {
		_, err := m.Lookup(ref)
		assert.True(t, errors.Is(err, ErrLevelNotFound), "ref %q", ref)
	}

	_, err := m.Get(6)
	assert.True(t, errors.Is(err, ErrLevelNotFound))
}

func TestNewManagerFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiny.json"), []byte(tinyLevel), 0644))

	m, err := NewManagerFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, m.LevelCount())

	_, err = NewManagerFromDir(filepath.Join(dir, "missing"))
	assert.Error(t, err)

	_, err = NewManagerFromDir(filepath.Join(dir, "tiny.json"))
	assert.Error(t, err)
}
