package puzzle

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrLevelFormat is matched by every *LevelError with errors.Is.
var ErrLevelFormat = errors.New("puzzle: malformed level")

// LevelError describes malformed stage content. Row and Col are -1 when the
// problem is not tied to a cell; Level is -1 for stage-wide problems.
type LevelError struct {
	Stage string
	Level int
	Row   int
	Col   int
	Msg   string
}

func (e *LevelError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "puzzle: stage %s", e.Stage)
	if e.Level >= 0 {
		fmt.Fprintf(&b, " level %d", e.Level+1)
	}
	if e.Row >= 0 {
		fmt.Fprintf(&b, " row %d", e.Row+1)
	}
	if e.Col >= 0 {
		fmt.Fprintf(&b, " col %d", e.Col+1)
	}
	b.WriteString(": ")
	b.WriteString(e.Msg)
	return b.String()
}

// Is reports whether target is ErrLevelFormat.
func (e *LevelError) Is(target error) bool { return target == ErrLevelFormat }

// Level is one board layout and its move allowance. Rows are kept as
// written; symbols are checked when the level is decoded.
type Level struct {
	Rows  []string
	Moves int
}

// Stage is a named list of levels loaded from one file.
type Stage struct {
	ID     string // file base name without extension; keys the save data
	Name   string
	Prefix string
	Levels []Level
}

// Label returns the display label of level i, e.g. "1-3".
func (s *Stage) Label(i int) string {
	return fmt.Sprintf("%s%d", s.Prefix, i+1)
}

// StageID returns the save key of a stage file name.
func StageID(name string) string {
	base := path.Base(name)
	return strings.TrimSuffix(base, path.Ext(base))
}

// LoadStage reads and parses the stage file name from fsys. A missing file
// wraps fs.ErrNotExist.
func LoadStage(fsys fs.FS, name string) (*Stage, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("puzzle: load stage %s: %w", name, err)
	}
	return ParseStage(StageID(name), data)
}

// ParseStage parses a stage document:
//
//	{"name": "Garden", "prefix": "1-", "levels": [["  RR  ", "RGGR G", 2], ...]}
//
// Each level lists its rows top to bottom followed by the move count.
// Structure is validated here; cell symbols are validated by Decode.
func ParseStage(id string, data []byte) (*Stage, error) {
	stageErr := func(level, row int, format string, args ...any) error {
		return &LevelError{Stage: id, Level: level, Row: row, Col: -1, Msg: fmt.Sprintf(format, args...)}
	}
	if !gjson.ValidBytes(data) {
		return nil, stageErr(-1, -1, "invalid JSON")
	}
	doc := gjson.ParseBytes(data)
	levels := doc.Get("levels")
	if !levels.IsArray() {
		return nil, stageErr(-1, -1, "missing levels array")
	}

	st := &Stage{
		ID:     id,
		Name:   doc.Get("name").String(),
		Prefix: doc.Get("prefix").String(),
	}
	if st.Name == "" {
		st.Name = id
	}
	for li, lv := range levels.Array() {
		items := lv.Array()
		if !lv.IsArray() || len(items) == 0 {
			return nil, stageErr(li, -1, "level must be a list of rows and a move count")
		}
		last := items[len(items)-1]
		if last.Type != gjson.Number {
			return nil, stageErr(li, -1, "missing move count")
		}
		rows := items[:len(items)-1]
		if len(rows) > Rows {
			return nil, stageErr(li, -1, "%d rows exceed the board height of %d", len(rows), Rows)
		}
		level := Level{Moves: int(last.Int()), Rows: make([]string, len(rows))}
		for ri, r := range rows {
			if r.Type != gjson.String {
				return nil, stageErr(li, ri, "row must be a string")
			}
			if n := len(r.Str); n != Cols {
				return nil, stageErr(li, ri, "row is %d cells wide, want %d", n, Cols)
			}
			level.Rows[ri] = r.Str
		}
		st.Levels = append(st.Levels, level)
	}
	if len(st.Levels) == 0 {
		return nil, stageErr(-1, -1, "stage has no levels")
	}
	return st, nil
}

// Grid is a decoded board layout: the color of every cell, or -1 for empty.
type Grid [Rows * Cols]int

// Decode validates every symbol of level index li of st and returns the
// bottom-aligned grid.
func (st *Stage) Decode(li int) (Grid, error) {
	var g Grid
	for i := range g {
		g[i] = -1
	}
	if li < 0 || li >= len(st.Levels) {
		return g, &LevelError{Stage: st.ID, Level: li, Row: -1, Col: -1, Msg: "no such level"}
	}
	lv := st.Levels[li]
	top := Rows - len(lv.Rows)
	for ri, row := range lv.Rows {
		for ci := 0; ci < len(row); ci++ {
			sym := row[ci]
			if sym == ' ' {
				continue
			}
			c := strings.IndexByte(symbols, sym)
			if c < 0 {
				return g, &LevelError{Stage: st.ID, Level: li, Row: ri, Col: ci,
					Msg: fmt.Sprintf("unknown symbol %q", sym)}
			}
			g[(top+ri)*Cols+ci] = c
		}
	}
	return g, nil
}

// Load decodes level li of st onto the board, calling spawn for every
// block. On error the board is left untouched.
func (b *Board) Load(st *Stage, li int, spawn func(col, row int, c Color) *Block) error {
	g, err := st.Decode(li)
	if err != nil {
		return err
	}
	b.Clear()
	for i, c := range g {
		if c < 0 {
			continue
		}
		col, row := i%Cols, i/Cols
		var blk *Block
		if spawn != nil {
			blk = spawn(col, row, Color(c))
		} else {
			blk = &Block{Color: Color(c)}
		}
		b.cells[i] = blk
	}
	b.Moves = st.Levels[li].Moves
	return nil
}
