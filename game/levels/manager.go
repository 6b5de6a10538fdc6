package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/wricardo/mcp-training/boxworld/game/engine"
)

var (
	ErrLevelNotFound = errors.New("level not found")
	ErrInvalidLevel  = errors.New("invalid level")
	ErrEmptyCatalog  = errors.New("no levels found")
)

//go:embed data/*.json
var builtin embed.FS

// File is the on-disk JSON form of a level
type File struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Layout      []string `json:"layout"`
}

// Level is a parsed and validated catalog entry
type Level struct {
	ID          string
	Name        string
	Description string
	Board       engine.Board
}

// Info describes a level for listings
type Info struct {
	Number      int    `json:"number"` // 1-based
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Boxes       int    `json:"boxes"`
}

// Manager is an ordered level catalog. It implements engine.LevelProvider.
// The catalog is read once and never changes, so a Manager may be shared
// between goroutines.
type Manager struct {
	levels []*Level
	byID   map[string]int
}

var loadDefault = sync.OnceValues(func() (*Manager, error) {
	return NewManager(Builtin())
})

// Builtin returns the level files compiled into the binary
func Builtin() fs.FS {
	data, err := fs.Sub(builtin, "data")
	if err != nil {
		panic(fmt.Sprintf("levels: built-in files: %v", err))
	}
	return data
}

// Default returns the built-in catalog compiled into the binary
func Default() *Manager {
	m, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("levels: built-in catalog: %v", err))
	}
	return m
}

// NewManagerFromDir loads every level file in dir
func NewManagerFromDir(dir string) (*Manager, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("level directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("level directory: %s is not a directory", dir)
	}
	return NewManager(os.DirFS(dir))
}

// NewManager loads every *.json file at the root of fsys.
// Files are ordered by name; that order defines the level numbers.
func NewManager(fsys fs.FS) (*Manager, error) {
	names, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list level files: %w", err)
	}
	if len(names) == 0 {
		return nil, ErrEmptyCatalog
	}
	sort.Strings(names)

	m := &Manager{
		levels: make([]*Level, 0, len(names)),
		byID:   make(map[string]int, len(names)),
	}

	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read level file %s: %w", name, err)
		}

		level, err := Parse(strings.TrimSuffix(path.Base(name), ".json"), data)
		if err != nil {
			return nil, err
		}

		m.byID[strings.ToLower(level.ID)] = len(m.levels)
		m.levels = append(m.levels, level)
	}

	return m, nil
}

// Parse decodes and validates a single level file
func Parse(id string, data []byte) (*Level, error) {
	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidLevel, id, err)
	}

	if file.Name == "" {
		return nil, fmt.Errorf("%w: %s: name is required", ErrInvalidLevel, id)
	}

	board, err := engine.ParseBoard(file.Layout)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidLevel, id, err)
	}

	if err := engine.ValidateBoard(board); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidLevel, id, err)
	}

	return &Level{
		ID:          id,
		Name:        file.Name,
		Description: file.Description,
		Board:       board,
	}, nil
}

// Level returns a fresh copy of the initial board for index
func (m *Manager) Level(index int) engine.Board {
	return m.levels[index].Board
}

// Validated reports that every board passed engine.ValidateBoard when the
// catalog was loaded
func (m *Manager) Validated() bool {
	return true
}

// LevelCount returns the number of levels in the catalog
func (m *Manager) LevelCount() int {
	return len(m.levels)
}

// Get returns the catalog entry at index
func (m *Manager) Get(index int) (*Level, error) {
	if index < 0 || index >= len(m.levels) {
		return nil, fmt.Errorf("%w: number %d", ErrLevelNotFound, index+1)
	}
	return m.levels[index], nil
}

// Lookup resolves a level ID or a 1-based level number to an index
func (m *Manager) Lookup(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if index, ok := m.byID[strings.ToLower(ref)]; ok {
		return index, nil
	}

	if number, err := strconv.Atoi(ref); err == nil {
		if number >= 1 && number <= len(m.levels) {
			return number - 1, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrLevelNotFound, ref)
}

// List describes every level in catalog order
func (m *Manager) List() []Info {
	infos := make([]Info, 0, len(m.levels))
	for i, level := range m.levels {
		infos = append(infos, Info{
			Number:      i + 1,
			ID:          level.ID,
			Name:        level.Name,
			Description: level.Description,
			Boxes:       engine.CountBoxes(&level.Board),
		})
	}
	return infos
}
