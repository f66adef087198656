package bramble

import (
	"image"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// spriteState is the tile picker behind a KindSprite node. The texture is
// divided into frameCountX by frameCountY equal cells; one cell is shown.
type spriteState struct {
	tex                      *Texture
	frameCountX, frameCountY int
	frameX, frameY           int
	fps                      float64
	frameTime                float64
	playing                  bool
	loop                     bool
	transparent              uint32
}

// NewSprite creates a sprite node showing cell (0, 0) of tex split into
// framesX by framesY cells. Frame counts below 1 are raised to 1. Sprites
// start playing and looping at 30 frames per second; a nil texture draws a
// magenta placeholder.
func (s *Scene) NewSprite(name string, tex *Texture, framesX, framesY int) *Node {
	if tex == nil {
		s.logf("sprite %q created without a texture, using placeholder", name)
		tex = missingTexture()
	}
	n := s.newNode(name, KindSprite)
	n.sprite = &spriteState{
		tex:         tex,
		frameCountX: max(framesX, 1),
		frameCountY: max(framesY, 1),
		playing:     true,
		loop:        true,
		fps:         30,
		transparent: noTransparent,
	}
	n.group.addPrimitive(n.sprite)
	return n
}

// Texture returns the sprite's texture.
func (n *Node) Texture() *Texture {
	n.mustKind(KindSprite, "Texture")
	return n.sprite.tex
}

// SetTexture replaces the sprite's texture, keeping the frame layout.
func (n *Node) SetTexture(tex *Texture) {
	n.mustKind(KindSprite, "SetTexture")
	if tex == nil {
		log.Printf("bramble: SetTexture(nil) on %q, using placeholder", n.Name)
		tex = missingTexture()
	}
	n.sprite.tex = tex
}

// FrameCount returns the number of cells along each axis.
func (n *Node) FrameCount() (x, y int) {
	n.mustKind(KindSprite, "FrameCount")
	return n.sprite.frameCountX, n.sprite.frameCountY
}

// SetFrameCount changes the cell layout. Counts below 1 are raised to 1 and
// the current frame wraps into range.
func (n *Node) SetFrameCount(x, y int) {
	n.mustKind(KindSprite, "SetFrameCount")
	sp := n.sprite
	sp.frameCountX, sp.frameCountY = max(x, 1), max(y, 1)
	sp.frameX = wrapIndex(sp.frameX, sp.frameCountX)
	sp.frameY = wrapIndex(sp.frameY, sp.frameCountY)
}

// FrameX returns the current column.
func (n *Node) FrameX() int {
	n.mustKind(KindSprite, "FrameX")
	return n.sprite.frameX
}

// SetFrameX selects a column, wrapping modulo the column count.
func (n *Node) SetFrameX(x int) {
	n.mustKind(KindSprite, "SetFrameX")
	n.sprite.frameX = wrapIndex(x, n.sprite.frameCountX)
}

// FrameY returns the current row.
func (n *Node) FrameY() int {
	n.mustKind(KindSprite, "FrameY")
	return n.sprite.frameY
}

// SetFrameY selects a row, wrapping modulo the row count.
func (n *Node) SetFrameY(y int) {
	n.mustKind(KindSprite, "SetFrameY")
	n.sprite.frameY = wrapIndex(y, n.sprite.frameCountY)
}

// FPS returns the playback rate in frames per second.
func (n *Node) FPS() float64 {
	n.mustKind(KindSprite, "FPS")
	return n.sprite.fps
}

// SetFPS sets the playback rate. Zero or less stops frame advance.
func (n *Node) SetFPS(fps float64) {
	n.mustKind(KindSprite, "SetFPS")
	n.sprite.fps = max(fps, 0)
	n.sprite.frameTime = 0
}

// Playing reports whether the sprite advances frames on tick.
func (n *Node) Playing() bool {
	n.mustKind(KindSprite, "Playing")
	return n.sprite.playing
}

// SetPlaying starts or stops frame playback.
func (n *Node) SetPlaying(playing bool) {
	n.mustKind(KindSprite, "SetPlaying")
	n.sprite.playing = playing
}

// Looping reports whether playback wraps past the last column.
func (n *Node) Looping() bool {
	n.mustKind(KindSprite, "Looping")
	return n.sprite.loop
}

// SetLooping sets whether playback wraps past the last column.
func (n *Node) SetLooping(loop bool) {
	n.mustKind(KindSprite, "SetLooping")
	n.sprite.loop = loop
}

// SetTransparent makes pixels of color c draw as transparent.
func (n *Node) SetTransparent(c Color) {
	n.mustKind(KindSprite, "SetTransparent")
	n.sprite.transparent = c.RGB888()
}

// ClearTransparent makes every pixel opaque again.
func (n *Node) ClearTransparent() {
	n.mustKind(KindSprite, "ClearTransparent")
	n.sprite.transparent = noTransparent
}

func (n *Node) tickSprite(dt float64) {
	sp := n.sprite
	if !sp.playing || sp.fps <= 0 {
		return
	}
	sp.frameTime += dt
	period := 1 / sp.fps
	if sp.frameTime < period {
		return
	}
	// keep the remainder; a long stall still advances only one frame
	sp.frameTime = math.Mod(sp.frameTime, period)
	sp.frameX = wrapIndex(sp.frameX+1, sp.frameCountX)
	if !sp.loop && sp.frameX == sp.frameCountX-1 {
		sp.playing = false
	}
}

// cellSize returns the pixel size of one cell.
func (sp *spriteState) cellSize() (w, h int) {
	return sp.tex.Width() / sp.frameCountX, sp.tex.Height() / sp.frameCountY
}

func (sp *spriteState) draw(dst *ebiten.Image, geo ebiten.GeoM) {
	w, h := sp.cellSize()
	if w == 0 || h == 0 {
		return
	}
	x0, y0 := sp.frameX*w, sp.frameY*h
	src := sp.tex.image(sp.transparent).SubImage(image.Rect(x0, y0, x0+w, y0+h)).(*ebiten.Image)
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(-w/2), float64(-h/2))
	op.GeoM.Concat(geo)
	dst.DrawImage(src, &op)
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
