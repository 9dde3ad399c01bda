/*
Package preview renders a split pair the way a temporal dithering display
shows it.

Each frame adds one to the main image wherever the residual level is "on"
for that frame. Over a cycle of four frames the residual levels 0, 75, 150
and 225 light up on zero, one, two and three frames respectively, so the
average brightness approximates the 10-bit source.
*/
package preview

import (
	"errors"
	"image"
)

// NumFrames is the length of one dithering cycle.
const NumFrames = 4

const (
	// Residual thresholds for quarter, half and three quarter intensity
	levelQuarter = 64
	levelHalf    = 128
	levelThree   = 192
)

var errMismatch = errors.New("preview: main and residual images differ in size")

// lit reports whether residual value v adds one to the main value on frame.
func lit(v uint8, frame int) bool {
	switch {
	case v >= levelThree:
		return frame != 0
	case v >= levelHalf:
		return frame%2 == 1
	case v >= levelQuarter:
		return frame == 0
	default:
		return false
	}
}

// Frames returns the NumFrames frames displayed for the pair. Color
// channels saturate at 255 and alpha is taken from main unchanged.
func Frames(main, residual *image.NRGBA) ([]*image.NRGBA, error) {
	b := main.Bounds()
	if b.Size() != residual.Bounds().Size() {
		return nil, errMismatch
	}

	frames := make([]*image.NRGBA, NumFrames)
	for f := range frames {
		m := image.NewNRGBA(b)
		for y := 0; y < b.Dy(); y++ {
			src := main.Pix[y*main.Stride : y*main.Stride+b.Dx()*4]
			add := residual.Pix[y*residual.Stride : y*residual.Stride+b.Dx()*4]
			dst := m.Pix[y*m.Stride : y*m.Stride+b.Dx()*4]
			for i := 0; i < len(src); i += 4 {
				for c := 0; c < 3; c++ {
					dst[i+c] = src[i+c]
					if lit(add[i+c], f) && src[i+c] < 0xff {
						dst[i+c]++
					}
				}
				dst[i+3] = src[i+3]
			}
		}
		frames[f] = m
	}

	return frames, nil
}
