package bramble

import (
	"image"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// textState is the fixed character grid behind a KindText node.
type textState struct {
	font       *Font
	cols, rows int
	cells      []rune
	content    string
	color      Color

	letterSpacing int
	lineSpacing   int
}

// NewText creates a text node with a cols by rows character grid over font.
// The grid starts blank, white, with one pixel of letter and line spacing.
// Grid sizes below 1 are raised to 1.
func (s *Scene) NewText(name string, font *Font, cols, rows int) *Node {
	if font == nil {
		panic("bramble: NewText requires a font")
	}
	n := s.newNode(name, KindText)
	cols, rows = max(cols, 1), max(rows, 1)
	ts := &textState{
		font:          font,
		cols:          cols,
		rows:          rows,
		cells:         make([]rune, cols*rows),
		color:         ColorWhite,
		letterSpacing: 1,
		lineSpacing:   1,
	}
	ts.layout("")
	n.text = ts
	n.group.addPrimitive(ts)
	return n
}

// Text returns the last string passed to SetText.
func (n *Node) Text() string {
	n.mustKind(KindText, "Text")
	return n.text.content
}

// SetText re-renders every cell of the grid. A newline ends the current row
// and blanks the rest of it. Characters past the last column or row are
// clipped; characters outside ' '..'~' render as blanks.
func (n *Node) SetText(s string) {
	n.mustKind(KindText, "SetText")
	n.text.layout(s)
}

// Cell returns the character shown in a grid cell, or ' ' outside the grid.
func (n *Node) Cell(col, row int) rune {
	n.mustKind(KindText, "Cell")
	ts := n.text
	if col < 0 || row < 0 || col >= ts.cols || row >= ts.rows {
		return ' '
	}
	return ts.cells[row*ts.cols+col]
}

// GridSize returns the number of columns and rows.
func (n *Node) GridSize() (cols, rows int) {
	n.mustKind(KindText, "GridSize")
	return n.text.cols, n.text.rows
}

// Font returns the text node's font.
func (n *Node) Font() *Font {
	n.mustKind(KindText, "Font")
	return n.text.font
}

// LetterSpacing returns the gap in pixels between columns.
func (n *Node) LetterSpacing() int {
	n.mustKind(KindText, "LetterSpacing")
	return n.text.letterSpacing
}

// SetLetterSpacing sets the gap in pixels between columns.
func (n *Node) SetLetterSpacing(px int) {
	n.mustKind(KindText, "SetLetterSpacing")
	n.text.letterSpacing = px
}

// LineSpacing returns the gap in pixels between rows.
func (n *Node) LineSpacing() int {
	n.mustKind(KindText, "LineSpacing")
	return n.text.lineSpacing
}

// SetLineSpacing sets the gap in pixels between rows.
func (n *Node) SetLineSpacing(px int) {
	n.mustKind(KindText, "SetLineSpacing")
	n.text.lineSpacing = px
}

func (ts *textState) layout(s string) {
	ts.content = s
	for i := range ts.cells {
		ts.cells[i] = ' '
	}
	for row, line := range strings.Split(s, "\n") {
		if row >= ts.rows {
			break
		}
		col := 0
		for _, r := range line {
			if col >= ts.cols {
				break
			}
			if r < firstGlyph || r > lastGlyph {
				r = ' '
			}
			ts.cells[row*ts.cols+col] = r
			col++
		}
	}
}

// pixelSize returns the drawn size of the whole grid.
func (ts *textState) pixelSize() (w, h int) {
	cw := ts.font.CellWidth() + ts.letterSpacing
	ch := ts.font.Height() + ts.lineSpacing
	return ts.cols*cw - ts.letterSpacing, ts.rows*ch - ts.lineSpacing
}

func (ts *textState) draw(dst *ebiten.Image, geo ebiten.GeoM) {
	tex := ts.font.tex
	// Glyph pixels matching the strip's top-left color are background.
	src := tex.image(tex.rgb888At(0, 0))
	w, h := ts.pixelSize()
	cw := ts.font.CellWidth() + ts.letterSpacing
	ch := ts.font.Height() + ts.lineSpacing
	gh := ts.font.Height()

	var op ebiten.DrawImageOptions
	for i, r := range ts.cells {
		if r == ' ' {
			continue
		}
		off, gw := ts.font.Glyph(r)
		if gw == 0 {
			continue
		}
		col, row := i%ts.cols, i/ts.cols
		glyph := src.SubImage(image.Rect(off, 0, off+gw, gh)).(*ebiten.Image)
		op.GeoM.Reset()
		op.GeoM.Translate(float64(col*cw-w/2), float64(row*ch-h/2))
		op.GeoM.Concat(geo)
		op.ColorScale.Reset()
		op.ColorScale.ScaleWithColor(ts.color.RGBA())
		dst.DrawImage(glyph, &op)
	}
}
