package puzzle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boardOf loads rows, bottom-aligned, onto a fresh board without sprites.
func boardOf(t *testing.T, moves int, rows ...string) *Board {
	t.Helper()
	st := &Stage{ID: "test", Levels: []Level{{Rows: rows, Moves: moves}}}
	var b Board
	require.NoError(t, b.Load(st, 0, nil))
	return &b
}

func positions(cells []Cell) [][2]int {
	out := make([][2]int, len(cells))
	for i, c := range cells {
		out[i] = [2]int{c.Col, c.Row}
	}
	return out
}

func TestBoardLoadBottomAligned(t *testing.T) {
	b := boardOf(t, 3, "R     ", "GY    ")

	assert.Equal(t, 3, b.Moves)
	assert.Equal(t, 3, b.Count())
	require.NotNil(t, b.At(0, Rows-2))
	assert.Equal(t, ColorRed, b.At(0, Rows-2).Color)
	assert.Equal(t, ColorGreen, b.At(0, Rows-1).Color)
	assert.Equal(t, ColorYellow, b.At(1, Rows-1).Color)
	assert.Nil(t, b.At(0, 0))
}

func TestBoardAtOutOfRange(t *testing.T) {
	b := boardOf(t, 1, "RRRRRR")
	assert.Nil(t, b.At(-1, Rows-1))
	assert.Nil(t, b.At(Cols, Rows-1))
	assert.Nil(t, b.At(0, Rows))
	assert.Panics(t, func() { b.Set(Cols, 0, nil) })
}

func TestBoardString(t *testing.T) {
	b := boardOf(t, 0, "CB  PG")
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	require.Len(t, lines, Rows)
	assert.Equal(t, "CB  PG", lines[Rows-1])
	assert.Equal(t, "      ", lines[0])
}

func TestCheckMatchingHorizontal(t *testing.T) {
	tests := []struct {
		row  string
		want int
	}{
		{"RRRYYY", 6},
		{"RRYYYY", 4},
		{"RRGRRG", 0},
		{"RR RRR", 3},
		{"GGGGGG", 6},
	}
	for _, tt := range tests {
		t.Run(tt.row, func(t *testing.T) {
			b := boardOf(t, 1, tt.row)
			assert.Len(t, b.CheckMatching(), tt.want)
		})
	}
}

func TestCheckMatchingVertical(t *testing.T) {
	b := boardOf(t, 1,
		"Y     ",
		"Y     ",
		"YR    ",
	)
	got := b.CheckMatching()
	assert.Equal(t, [][2]int{{0, Rows - 3}, {0, Rows - 2}, {0, Rows - 1}}, positions(got))
}

func TestCheckMatchingCrossCountedOnce(t *testing.T) {
	b := boardOf(t, 1,
		"R     ",
		"R     ",
		"RRR   ",
	)
	got := b.CheckMatching()
	assert.Equal(t, [][2]int{
		{0, Rows - 3},
		{0, Rows - 2},
		{0, Rows - 1}, {1, Rows - 1}, {2, Rows - 1},
	}, positions(got))
}

func TestCheckFallingSingleBlock(t *testing.T) {
	b := boardOf(t, 1,
		"R     ",
		"      ",
		"G     ",
	)
	red := b.At(0, Rows-3)

	falling := b.CheckFalling()
	require.Equal(t, [][2]int{{0, Rows - 3}}, positions(falling))
	assert.Same(t, red, falling[0].Block)

	// querying does not move anything
	assert.Equal(t, positions(falling), positions(b.CheckFalling()))
	assert.Same(t, red, b.At(0, Rows-3))

	b.Fall(falling)
	assert.Nil(t, b.At(0, Rows-3))
	assert.Same(t, red, b.At(0, Rows-2))
	assert.Empty(t, b.CheckFalling())
}

func TestCheckFallingStackOrder(t *testing.T) {
	b := boardOf(t, 1,
		"R     ",
		"G     ",
		"      ",
		"Y  B  ",
	)
	falling := b.CheckFalling()
	// lowest first so Fall can move them in order
	assert.Equal(t, [][2]int{{0, Rows - 3}, {0, Rows - 4}}, positions(falling))

	b.Fall(falling)
	assert.Equal(t, ColorGreen, b.At(0, Rows-2).Color)
	assert.Equal(t, ColorRed, b.At(0, Rows-3).Color)
	assert.Empty(t, b.CheckFalling())
}

func TestCheckFallingMultiRowGap(t *testing.T) {
	b := boardOf(t, 1,
		"P     ",
		"      ",
		"      ",
		"      ",
	)
	steps := 0
	for len(b.CheckFalling()) > 0 {
		b.Fall(b.CheckFalling())
		steps++
	}
	assert.Equal(t, 3, steps)
	assert.Equal(t, ColorPurple, b.At(0, Rows-1).Color)
}

func TestFallOntoOccupiedPanics(t *testing.T) {
	b := boardOf(t, 1, "R     ", "G     ")
	assert.Panics(t, func() {
		b.Fall([]Cell{{Col: 0, Row: Rows - 2, Block: b.At(0, Rows-2)}})
	})
}

func TestSwap(t *testing.T) {
	b := boardOf(t, 2, "RG    ")
	red, green := b.At(0, Rows-1), b.At(1, Rows-1)

	left, right := b.Swap(0, Rows-1)
	assert.Same(t, green, left)
	assert.Same(t, red, right)
	assert.Equal(t, 1, b.Moves)
}

func TestSwapEmptyCellsStillCostAMove(t *testing.T) {
	b := boardOf(t, 2, "R     ")

	b.Swap(0, Rows-1)
	assert.Nil(t, b.At(0, Rows-1))
	assert.Equal(t, ColorRed, b.At(1, Rows-1).Color)
	assert.Equal(t, 1, b.Moves)

	b.Swap(3, 0)
	assert.Equal(t, 0, b.Moves)

	b.Swap(3, 0)
	assert.Equal(t, -1, b.Moves)
}

func TestSwapOutOfRangePanics(t *testing.T) {
	b := boardOf(t, 1, "RRRRRR")
	assert.Panics(t, func() { b.Swap(Cols-1, Rows-1) })
	assert.Panics(t, func() { b.Swap(0, Rows) })
	assert.Equal(t, 1, b.Moves)
}

func TestBoardClear(t *testing.T) {
	b := boardOf(t, 4, "RGB   ")
	b.Clear()
	assert.True(t, b.Empty())
	assert.Equal(t, 4, b.Moves)
}

func TestColorSymbol(t *testing.T) {
	for c := Color(0); c < ColorCount; c++ {
		assert.Equal(t, symbols[c], c.Symbol())
	}
	assert.Equal(t, byte('?'), ColorCount.Symbol())
	assert.Equal(t, "cyan", ColorCyan.String())
}

func TestBlockSetAnimShowsFrame(t *testing.T) {
	blk := &Block{Color: ColorRed}
	blk.SetAnim(AnimPop)
	assert.Equal(t, AnimPop, blk.Anim)
}
