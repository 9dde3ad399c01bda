package colorful

import (
	"context"
	"image"

	"golang.org/x/sync/errgroup"
)

// ProgressRows is how often, in rows, SplitFunc reports progress.
const ProgressRows = 20

// Pair is the result of splitting a Grid. Both images have the same bounds
// as the source grid.
type Pair struct {
	Main     *image.NRGBA
	Residual *image.NRGBA
}

func newPair(r image.Rectangle) *Pair {
	return &Pair{
		Main:     image.NewNRGBA(r),
		Residual: image.NewNRGBA(r),
	}
}

// Split divides every sample of g into its high 8 bits, stored in the main
// image, and its next 2 bits, stored in the residual image as levels chosen
// by mode.
func Split(g *Grid, mode Mode) *Pair {
	return SplitFunc(g, mode, nil)
}

// SplitFunc is like Split but calls progress with the current row and the
// grid height before every ProgressRows'th row, starting with row 0.
func SplitFunc(g *Grid, mode Mode, progress func(y, height int)) *Pair {
	p := newPair(g.Rect)
	height := g.Rect.Dy()
	for y := 0; y < height; y++ {
		if progress != nil && y%ProgressRows == 0 {
			progress(y, height)
		}
		p.splitRow(g, mode, y)
	}
	return p
}

// SplitParallel is like Split but spreads bands of rows across workers
// goroutines. The result is identical to Split.
func SplitParallel(ctx context.Context, g *Grid, mode Mode, workers int) (*Pair, error) {
	p := newPair(g.Rect)
	height := g.Rect.Dy()
	if height <= 0 {
		return p, nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > height {
		workers = height
	}

	eg, ctx := errgroup.WithContext(ctx)

	band := (height + workers - 1) / workers
	for start := 0; start < height; start += band {
		start, end := start, start+band
		if end > height {
			end = height
		}
		eg.Go(func() error {
			for y := start; y < end; y++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				p.splitRow(g, mode, y)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return p, nil
}

// splitRow writes row y, relative to the top of the grid. Rows never share
// memory so they can be written concurrently.
func (p *Pair) splitRow(g *Grid, mode Mode, y int) {
	src := g.Pix[y*g.Stride : (y+1)*g.Stride]
	main := p.Main.Pix[y*p.Main.Stride : y*p.Main.Stride+len(src)]
	residual := p.Residual.Pix[y*p.Residual.Stride : y*p.Residual.Stride+len(src)]

	for i := 0; i < len(src); i += samplesPerPixel {
		for c := 0; c < samplesPerPixel; c++ {
			v := g.tenBit(src[i+c], c)
			main[i+c] = uint8(v >> 2)
			residual[i+c] = mode.Level(uint8(v & 0x03))
		}
	}
}
