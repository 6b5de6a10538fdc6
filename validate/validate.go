// Package validate checks Boxworld level files before they reach a catalog.
// It checks:
//   - JSON structure and the required name
//   - Layout dimensions and allowed characters
//   - Exactly one player, and as many boxes as targets
//   - Walls that keep the player inside the grid
//   - Boxes stuck in a corner off a target, and targets the player cannot reach
package validate

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/mcp-training/boxworld/game/engine"
	"github.com/wricardo/mcp-training/boxworld/game/levels"
)

// Result captures the outcome of validating a single file.
// Errors lists every defect found; Notes holds informational lines.
type Result struct {
	File   string
	Valid  bool
	Errors []string
	Notes  []string
}

func (r *Result) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// File loads and validates a single level file
func File(filePath string) Result {
	result := Result{
		File:  filepath.Base(filePath),
		Valid: true,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	Bytes(&result, data)
	return result
}

// Bytes validates the contents of a level file into result
func Bytes(result *Result, data []byte) {
	var file levels.File
	if err := json.Unmarshal(data, &file); err != nil {
		result.fail("Invalid JSON: %v", err)
		return
	}

	if file.Name == "" {
		result.fail("Missing name")
	}

	if !checkLayout(result, file.Layout) {
		return
	}

	board, err := engine.ParseBoard(file.Layout)
	if err != nil {
		result.fail("%v", err)
		return
	}

	if err := engine.ValidateBoard(board); err != nil {
		result.fail("%v", err)
		return
	}

	analysis := Analyze(board)
	for _, box := range analysis.DeadBoxes {
		result.fail("Box at (%d,%d) is stuck in a corner off target", box.X, box.Y)
	}
	for _, target := range analysis.UnreachableTargets {
		result.fail("Target at (%d,%d) is outside the player's area", target.X, target.Y)
	}

	if result.Valid {
		result.Notes = append(result.Notes,
			fmt.Sprintf("✓ Name: %s", file.Name),
			fmt.Sprintf("✓ Boxes: %d (%d already placed)", analysis.Boxes, analysis.Placed),
			fmt.Sprintf("✓ Floor: %d cells, %d reachable", analysis.Floor, analysis.Reachable),
		)
	}
}

// checkLayout reports every dimension and character problem at once
func checkLayout(result *Result, layout []string) bool {
	if len(layout) == 0 {
		result.fail("Layout is empty")
		return false
	}

	ok := true
	if len(layout) != engine.Height {
		result.fail("Layout must have %d rows, got %d", engine.Height, len(layout))
		ok = false
	}

	for i, row := range layout {
		runes := []rune(row)
		if len(runes) != engine.Width {
			result.fail("Row %d must have %d characters, got %d", i+1, engine.Width, len(runes))
			ok = false
		}
		for j, r := range runes {
			if _, valid := engine.PieceFromRune(r); !valid {
				result.fail("Invalid character '%c' at position [%d,%d]", r, i+1, j+1)
				ok = false
			}
		}
	}

	return ok
}

// Dir validates every *.json file in dir, in name order
func Dir(dir string) ([]Result, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("level directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("level directory: %s is not a directory", dir)
	}
	return FS(os.DirFS(dir))
}

// FS validates every *.json file at the root of fsys, in name order
func FS(fsys fs.FS) ([]Result, error) {
	names, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to find level files: %w", err)
	}
	sort.Strings(names)

	results := make([]Result, 0, len(names))
	for _, name := range names {
		result := Result{File: path.Base(name), Valid: true}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			result.fail("Failed to read file: %v", err)
		} else {
			Bytes(&result, data)
		}
		results = append(results, result)
	}
	return results, nil
}

// Report prints a concise summary and reports whether every result is valid
func Report(w io.Writer, results []Result) bool {
	allValid := true
	for _, result := range results {
		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, note := range result.Notes {
				fmt.Fprintln(w, "  "+note)
			}
			continue
		}

		allValid = false
		fmt.Fprintln(w, "❌ INVALID")
		for _, msg := range result.Errors {
			fmt.Fprintln(w, "  ❌ "+msg)
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	switch {
	case len(results) == 0:
		fmt.Fprintln(w, "No level files found")
		allValid = false
	case allValid:
		fmt.Fprintln(w, "✅ All levels are valid!")
	default:
		fmt.Fprintln(w, "❌ Some levels have errors")
	}
	return allValid
}
