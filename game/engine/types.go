package engine

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Board dimensions shared by every level
const (
	Width  = 10
	Height = 10
)

// Piece is the tile occupying a board cell
type Piece uint8

const (
	Empty Piece = iota
	Passage
	Box
	Player
	Wall
	PassageWithTarget
	BoxOnTarget
	PlayerOnTarget
)

// Base returns the piece with its target flag stripped
func (p Piece) Base() Piece {
	switch p {
	case PassageWithTarget:
		return Passage
	case BoxOnTarget:
		return Box
	case PlayerOnTarget:
		return Player
	default:
		return p
	}
}

// HasTarget reports whether the cell under the piece is a target
func (p Piece) HasTarget() bool {
	return p == PassageWithTarget || p == BoxOnTarget || p == PlayerOnTarget
}

// Combine rebuilds a piece from a base kind and a target flag.
// Only Passage, Box and Player have target variants; any other
// base kind is returned as is.
func Combine(base Piece, target bool) Piece {
	base = base.Base()
	if !target {
		return base
	}
	switch base {
	case Passage:
		return PassageWithTarget
	case Box:
		return BoxOnTarget
	case Player:
		return PlayerOnTarget
	default:
		return base
	}
}

var pieceRunes = [...]rune{
	Empty:             '-',
	Passage:           ' ',
	Box:               '$',
	Player:            '@',
	Wall:              '#',
	PassageWithTarget: '.',
	BoxOnTarget:       '*',
	PlayerOnTarget:    '+',
}

// Rune returns the layout character for the piece
func (p Piece) Rune() rune {
	if int(p) < len(pieceRunes) {
		return pieceRunes[p]
	}
	return '?'
}

// PieceFromRune maps a layout character to its piece
func PieceFromRune(r rune) (Piece, bool) {
	for p, pr := range pieceRunes {
		if pr == r {
			return Piece(p), true
		}
	}
	return Empty, false
}

func (p Piece) String() string {
	switch p {
	case Empty:
		return "empty"
	case Passage:
		return "passage"
	case Box:
		return "box"
	case Player:
		return "player"
	case Wall:
		return "wall"
	case PassageWithTarget:
		return "passage_with_target"
	case BoxOnTarget:
		return "box_on_target"
	case PlayerOnTarget:
		return "player_on_target"
	}
	return fmt.Sprintf("piece(%d)", uint8(p))
}

// Location is an x,y coordinate into the board
type Location struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the location one step away in direction d
func (l Location) Add(d Direction) Location {
	return Location{X: l.X + d.DX, Y: l.Y + d.DY}
}

// Direction is a unit step on the grid
type Direction struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

var (
	Up    = Direction{DX: 0, DY: -1}
	Down  = Direction{DX: 0, DY: 1}
	Left  = Direction{DX: -1, DY: 0}
	Right = Direction{DX: 1, DY: 0}
)

// Directions lists the four legal move directions
var Directions = []Direction{Up, Down, Left, Right}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("(%d,%d)", d.DX, d.DY)
}

// Board is a fixed-size grid of pieces indexed [y][x]. Readers take the
// board by value; only Set and UnmarshalJSON need a pointer.
// Assigning a Board copies it.
type Board [Height][Width]Piece

// At returns the piece at l
func (b Board) At(l Location) Piece {
	return b[l.Y][l.X]
}

// Set stores p at l
func (b *Board) Set(l Location, p Piece) {
	b[l.Y][l.X] = p
}

// InBounds reports whether l lies on the grid
func InBounds(l Location) bool {
	return l.X >= 0 && l.X < Width && l.Y >= 0 && l.Y < Height
}

// Count returns how many cells hold exactly p
func (b Board) Count(p Piece) int {
	count := 0
	for _, row := range b {
		for _, cell := range row {
			if cell == p {
				count++
			}
		}
	}
	return count
}

// FindPlayer returns the first cell holding the player in row-major order
func (b Board) FindPlayer() (Location, bool) {
	for y, row := range b {
		for x, cell := range row {
			if cell.Base() == Player {
				return Location{X: x, Y: y}, true
			}
		}
	}
	return Location{}, false
}

// Rows renders the board in layout notation, one string per row
func (b Board) Rows() []string {
	rows := make([]string, Height)
	var sb strings.Builder
	for y, row := range b {
		sb.Reset()
		for _, cell := range row {
			sb.WriteRune(cell.Rune())
		}
		rows[y] = sb.String()
	}
	return rows
}

func (b Board) String() string {
	return strings.Join(b.Rows(), "\n")
}

// MarshalJSON encodes the board as layout rows
func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Rows())
}

// UnmarshalJSON decodes layout rows
func (b *Board) UnmarshalJSON(data []byte) error {
	var rows []string
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	parsed, err := ParseBoard(rows)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBoard builds a board from layout rows.
// The layout must be exactly Height rows of Width characters.
func ParseBoard(rows []string) (Board, error) {
	var b Board
	if len(rows) != Height {
		return b, fmt.Errorf("%w: layout must have %d rows, got %d", ErrBadLayout, Height, len(rows))
	}
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != Width {
			return b, fmt.Errorf("%w: row %d must have %d characters, got %d", ErrBadLayout, y+1, Width, len(runes))
		}
		for x, r := range runes {
			p, ok := PieceFromRune(r)
			if !ok {
				return b, fmt.Errorf("%w: invalid character '%c' at row %d, col %d", ErrBadLayout, r, y+1, x+1)
			}
			b[y][x] = p
		}
	}
	return b, nil
}

// GameState is a read-only snapshot for renderers and transports
type GameState struct {
	Board       Board    `json:"board"`
	Player      Location `json:"player"`
	Level       int      `json:"level"` // 1-based
	LevelCount  int      `json:"level_count"`
	Solved      bool     `json:"solved"`
	CanUndo     bool     `json:"can_undo"`
	HasNext     bool     `json:"has_next_level"`
	HasPrevious bool     `json:"has_previous_level"`
	Boxes       int      `json:"boxes"`
	BoxesPlaced int      `json:"boxes_placed"`
}
