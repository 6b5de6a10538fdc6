package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// testLevels is an in-memory LevelProvider
type testLevels []Board

func (l testLevels) Level(index int) Board { return l[index] }
func (l testLevels) LevelCount() int       { return len(l) }

// mustBoard parses a compact layout, padding rows and columns with empty cells
func mustBoard(t *testing.T, rows ...string) Board {
	t.Helper()
	padded := make([]string, Height)
	for y := range padded {
		row := ""
		if y < len(rows) {
			row = rows[y]
		}
		require.LessOrEqual(t, len([]rune(row)), Width, "row %d too wide", y)
		padded[y] = row + strings.Repeat("-", Width-len([]rune(row)))
	}
	b, err := ParseBoard(padded)
	require.NoError(t, err)
	return b
}

// newTestEngine builds an engine over the given layouts, one level each
func newTestEngine(t *testing.T, layouts ...[]string) *GameEngine {
	t.Helper()
	levels := make(testLevels, 0, len(layouts))
	for _, rows := range layouts {
		levels = append(levels, mustBoard(t, rows...))
	}
	e, err := NewEngine(levels)
	require.NoError(t, err)
	return e
}

// row returns the first n cells of row y in layout notation
func row(b Board, y, n int) string {
	return b.Rows()[y][:n]
}
