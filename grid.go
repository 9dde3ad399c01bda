package colorful

import (
	"errors"
	"image"
	"image/color"
)

const (
	samplesPerPixel = 4

	// defaultAlpha is the 10-bit alpha used for sources without an alpha
	// channel. It enters the split after the 16 to 10 bit reduction.
	defaultAlpha = 1023
)

var errEmptyImage = errors.New("colorful: image has no pixels")

// Pixel16 is a single pixel of 16-bit samples.
type Pixel16 struct {
	R, G, B, A uint16
}

// Grid is a rectangle of 16-bit samples with either 3 or 4 channels. Each
// pixel occupies four consecutive samples in R, G, B, A order. When
// Channels is 3 the stored alpha sample is ignored.
type Grid struct {
	Pix      []uint16
	Stride   int
	Rect     image.Rectangle
	Channels int
}

// NewGrid returns an empty grid with the given bounds and channel count.
func NewGrid(r image.Rectangle, channels int) *Grid {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &Grid{Rect: r, Channels: channels}
	}
	if channels != 3 && channels != 4 {
		panic("colorful: grid must have 3 or 4 channels")
	}
	return &Grid{
		Pix:      make([]uint16, samplesPerPixel*w*h),
		Stride:   samplesPerPixel * w,
		Rect:     r,
		Channels: channels,
	}
}

// PixOffset returns the index of the first sample of the pixel at (x, y).
func (g *Grid) PixOffset(x, y int) int {
	return (y-g.Rect.Min.Y)*g.Stride + (x-g.Rect.Min.X)*samplesPerPixel
}

// Pixel16At returns the stored samples at (x, y).
func (g *Grid) Pixel16At(x, y int) Pixel16 {
	if !(image.Point{X: x, Y: y}.In(g.Rect)) {
		return Pixel16{}
	}
	i := g.PixOffset(x, y)
	s := g.Pix[i : i+samplesPerPixel : i+samplesPerPixel]
	return Pixel16{s[0], s[1], s[2], s[3]}
}

// SetPixel16 stores p at (x, y).
func (g *Grid) SetPixel16(x, y int, p Pixel16) {
	if !(image.Point{X: x, Y: y}.In(g.Rect)) {
		return
	}
	i := g.PixOffset(x, y)
	s := g.Pix[i : i+samplesPerPixel : i+samplesPerPixel]
	s[0], s[1], s[2], s[3] = p.R, p.G, p.B, p.A
}

// tenBit reduces sample s of channel c to its top 10 bits, substituting
// the default alpha for 3 channel grids.
func (g *Grid) tenBit(s uint16, c int) uint16 {
	if c == 3 && g.Channels == 3 {
		return defaultAlpha
	}
	return s >> 6
}

// FromImage copies a natively 16-bit image into a Grid anchored at (0, 0).
// Images stored at any other depth are rejected with an
// *UnsupportedDepthError.
//
// NRGBA64 images have 4 channels. RGBA64 images have 4 channels unless they
// are fully opaque, and Gray16 images are expanded to 3 equal channels.
func FromImage(m image.Image) (*Grid, error) {
	b := m.Bounds()
	if b.Empty() {
		return nil, errEmptyImage
	}

	var channels int
	switch src := m.(type) {
	case *image.NRGBA64:
		channels = 4
	case *image.RGBA64:
		channels = 4
		if src.Opaque() {
			channels = 3
		}
	case *image.Gray16:
		channels = 3
	default:
		return nil, &UnsupportedDepthError{}
	}

	g := NewGrid(image.Rect(0, 0, b.Dx(), b.Dy()), channels)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var p Pixel16
			switch src := m.(type) {
			case *image.NRGBA64:
				c := src.NRGBA64At(x, y)
				p = Pixel16{c.R, c.G, c.B, c.A}
			case *image.RGBA64:
				c := src.RGBA64At(x, y)
				p = Pixel16{c.R, c.G, c.B, c.A}
			case *image.Gray16:
				c := src.Gray16At(x, y)
				p = Pixel16{c.Y, c.Y, c.Y, 0xffff}
			}
			g.SetPixel16(x-b.Min.X, y-b.Min.Y, p)
		}
	}

	return g, nil
}

// Image returns the grid as an *image.NRGBA64. The alpha of 3 channel grids
// is fully opaque.
func (g *Grid) Image() *image.NRGBA64 {
	m := image.NewNRGBA64(g.Rect)
	for y := g.Rect.Min.Y; y < g.Rect.Max.Y; y++ {
		for x := g.Rect.Min.X; x < g.Rect.Max.X; x++ {
			p := g.Pixel16At(x, y)
			if g.Channels == 3 {
				p.A = 0xffff
			}
			m.SetNRGBA64(x, y, color.NRGBA64{R: p.R, G: p.G, B: p.B, A: p.A})
		}
	}
	return m
}
