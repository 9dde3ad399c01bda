package preview

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
)

const maxColors = 256

var errNoFrames = errors.New("preview: no frames")

// EncodeGIF writes frames to w as an endlessly looping animated GIF, showing
// each frame for delay hundredths of a second. Every frame gets its own
// median cut palette.
func EncodeGIF(w io.Writer, frames []*image.NRGBA, delay int) error {
	if len(frames) == 0 {
		return errNoFrames
	}

	q := quantize.MedianCutQuantizer{}
	anim := &gif.GIF{}

	for _, m := range frames {
		b := m.Bounds()
		pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, maxColors), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)

		anim.Image = append(anim.Image, pm)
		anim.Delay = append(anim.Delay, delay)
	}

	return gif.EncodeAll(w, anim)
}
