package puzzle

import (
	"image"
	"image/color"

	"github.com/phanxgames/bramble"
)

// BlockSize is the edge length of one board cell in pixels.
const BlockSize = 8

// animFrames is the number of sprite columns in a block sheet, one per
// BlockAnim.
const animFrames = int(AnimSquish) + 1

var blockPalette = [ColorCount]bramble.Color{
	ColorGreen:  bramble.ColorGreen,
	ColorPurple: bramble.ColorViolet,
	ColorRed:    bramble.ColorRed,
	ColorYellow: bramble.ColorYellow,
	ColorCyan:   bramble.ColorCyan,
	ColorBlue:   bramble.ColorSkyBlue,
}

// DefaultBlockSheet draws a block sheet with one row per Color and one
// column per BlockAnim. Black is the transparent color.
func DefaultBlockSheet() *bramble.Texture {
	img := image.NewNRGBA(image.Rect(0, 0, animFrames*BlockSize, int(ColorCount)*BlockSize))
	for c := Color(0); c < ColorCount; c++ {
		fill := blockPalette[c].RGBA()
		for a := 0; a < animFrames; a++ {
			x0, y0 := a*BlockSize, int(c)*BlockSize
			inset, col := 0, fill
			switch BlockAnim(a) {
			case AnimFlash:
				col = bramble.ColorWhite.RGBA()
			case AnimPop:
				inset = 2
			case AnimSquish:
				inset = 1
			}
			for y := inset; y < BlockSize-inset; y++ {
				for x := inset; x < BlockSize-inset; x++ {
					px := col
					// one pixel shadow on the bottom-right edge
					if x == BlockSize-inset-1 || y == BlockSize-inset-1 {
						px = shade(col)
					}
					img.SetNRGBA(x0+x, y0+y, color.NRGBA{R: px.R, G: px.G, B: px.B, A: 0xff})
				}
			}
		}
	}
	return bramble.NewTexture(img)
}

func shade(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: c.A}
}
