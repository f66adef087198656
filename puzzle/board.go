package puzzle

import (
	"fmt"

	"github.com/phanxgames/bramble"
)

// Board dimensions in cells.
const (
	Cols = 6
	Rows = 12
)

// Color is a block color id in [0, ColorCount).
type Color uint8

const (
	ColorGreen Color = iota
	ColorPurple
	ColorRed
	ColorYellow
	ColorCyan
	ColorBlue

	ColorCount
)

// symbols maps level file characters to colors, in Color order.
const symbols = "GPRYCB"

// Symbol returns the level file character for c.
func (c Color) Symbol() byte {
	if c >= ColorCount {
		return '?'
	}
	return symbols[c]
}

func (c Color) String() string {
	switch c {
	case ColorGreen:
		return "green"
	case ColorPurple:
		return "purple"
	case ColorRed:
		return "red"
	case ColorYellow:
		return "yellow"
	case ColorCyan:
		return "cyan"
	case ColorBlue:
		return "blue"
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// BlockAnim is the cosmetic animation state of a block. It never affects
// board logic.
type BlockAnim uint8

const (
	AnimIdle BlockAnim = iota
	AnimFlash
	AnimPop
	AnimFalling
	AnimSquish
)

// Block is one colored cell of the board. Node is the block's sprite, or nil
// for blocks that are not drawn.
type Block struct {
	Color Color
	Anim  BlockAnim
	Node  *bramble.Node

	animAge int // frames spent in Anim
}

// SetAnim switches the cosmetic state and shows the matching sprite row.
func (b *Block) SetAnim(a BlockAnim) {
	b.Anim = a
	b.animAge = 0
	if b.Node != nil && !b.Node.IsDestroyed() {
		b.Node.SetFrameX(int(a))
	}
}

// Cell is a board position together with the block found there.
type Cell struct {
	Col, Row int
	Block    *Block
}

// Board is the row-major grid of cells, row 0 at the top, plus the move
// counter. The zero value is an empty board with no moves.
type Board struct {
	cells [Rows * Cols]*Block
	Moves int
}

func inBounds(col, row int) bool {
	return col >= 0 && col < Cols && row >= 0 && row < Rows
}

// At returns the block at (col, row), or nil for an empty or out-of-range
// cell.
func (b *Board) At(col, row int) *Block {
	if !inBounds(col, row) {
		return nil
	}
	return b.cells[row*Cols+col]
}

// Set places blk at (col, row). Passing nil empties the cell.
func (b *Board) Set(col, row int, blk *Block) {
	if !inBounds(col, row) {
		panic(fmt.Sprintf("puzzle: cell (%d, %d) out of range", col, row))
	}
	b.cells[row*Cols+col] = blk
}

// Count returns the number of occupied cells.
func (b *Board) Count() int {
	n := 0
	for _, blk := range b.cells {
		if blk != nil {
			n++
		}
	}
	return n
}

// Empty reports whether no cell holds a block.
func (b *Board) Empty() bool {
	return b.Count() == 0
}

// Blocks returns every occupied cell in row-major order.
func (b *Board) Blocks() []Cell {
	var out []Cell
	for i, blk := range b.cells {
		if blk != nil {
			out = append(out, Cell{Col: i % Cols, Row: i / Cols, Block: blk})
		}
	}
	return out
}

// Clear empties every cell. Moves are left unchanged.
func (b *Board) Clear() {
	b.cells = [Rows * Cols]*Block{}
}

// CheckFalling reports the blocks that must drop one row: for each column,
// scanning bottom to top, every occupied cell above the first gap. Cells are
// ordered column-major, lowest first within a column. A settled board
// yields nil.
func (b *Board) CheckFalling() []Cell {
	var out []Cell
	for col := 0; col < Cols; col++ {
		gap := false
		for row := Rows - 1; row >= 0; row-- {
			blk := b.At(col, row)
			if blk == nil {
				gap = true
				continue
			}
			if gap {
				out = append(out, Cell{Col: col, Row: row, Block: blk})
			}
		}
	}
	return out
}

// Fall moves every cell reported by CheckFalling down by exactly one row.
// Cells must be in CheckFalling order so lower blocks vacate first.
func (b *Board) Fall(cells []Cell) {
	for _, c := range cells {
		if b.At(c.Col, c.Row+1) != nil {
			panic(fmt.Sprintf("puzzle: block at (%d, %d) cannot fall onto an occupied cell", c.Col, c.Row))
		}
		b.Set(c.Col, c.Row+1, c.Block)
		b.Set(c.Col, c.Row, nil)
	}
}

// CheckMatching returns every occupied cell lying on a horizontal or
// vertical run of at least three equal colors, in row-major order. A cell on
// both a horizontal and a vertical run appears once.
func (b *Board) CheckMatching() []Cell {
	var out []Cell
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			blk := b.At(col, row)
			if blk == nil {
				continue
			}
			if b.runLength(col, row, 1, 0) >= 3 {
				out = append(out, Cell{Col: col, Row: row, Block: blk})
				continue
			}
			if b.runLength(col, row, 0, 1) >= 3 {
				out = append(out, Cell{Col: col, Row: row, Block: blk})
			}
		}
	}
	return out
}

// runLength measures the contiguous run of the color at (col, row) along
// the axis (dc, dr), walking both ways from the cell.
func (b *Board) runLength(col, row, dc, dr int) int {
	color := b.At(col, row).Color
	n := 1
	for c, r := col-dc, row-dr; ; c, r = c-dc, r-dr {
		blk := b.At(c, r)
		if blk == nil || blk.Color != color {
			break
		}
		n++
	}
	for c, r := col+dc, row+dr; ; c, r = c+dc, r+dr {
		blk := b.At(c, r)
		if blk == nil || blk.Color != color {
			break
		}
		n++
	}
	return n
}

// Swap exchanges the block at (col, row) with its right neighbour and uses
// up one move, even when one or both cells are empty. It returns the blocks
// now at (col, row) and (col+1, row).
func (b *Board) Swap(col, row int) (left, right *Block) {
	if !inBounds(col, row) || col+1 >= Cols {
		panic(fmt.Sprintf("puzzle: cannot swap at (%d, %d)", col, row))
	}
	i := row*Cols + col
	b.cells[i], b.cells[i+1] = b.cells[i+1], b.cells[i]
	b.Moves--
	return b.cells[i], b.cells[i+1]
}

// String renders the board with level file symbols, one line per row.
func (b *Board) String() string {
	buf := make([]byte, 0, Rows*(Cols+1))
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if blk := b.At(col, row); blk != nil {
				buf = append(buf, blk.Color.Symbol())
			} else {
				buf = append(buf, ' ')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
