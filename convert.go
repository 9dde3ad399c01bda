package colorful

import (
	"context"
	"time"
)

// Options control a single conversion.
type Options struct {
	Mode Mode

	// Workers greater than 1 splits rows concurrently. Progress is only
	// reported for sequential splits.
	Workers int

	// Progress, if set, is called every ProgressRows rows.
	Progress func(y, height int)
}

// Convert loads file, splits it and writes the main and residual images to
// mainFile and residualFile. Nothing is written if the source cannot be
// loaded or is not 16-bit.
func (c *Converter) Convert(ctx context.Context, file, mainFile, residualFile string, opts Options) error {
	g, sha, err := load(file)
	if err != nil {
		return err
	}

	c.logger.Printf("Converting \"%s\" (%dx%d, %d channels) into %s format\n", file, g.Rect.Dx(), g.Rect.Dy(), g.Channels, opts.Mode)

	p, err := c.split(ctx, g, opts)
	if err != nil {
		return err
	}

	if err := p.Save(mainFile, residualFile); err != nil {
		return err
	}

	return c.record(Record{
		Source:   file,
		SHA1:     sha,
		Mode:     opts.Mode,
		Width:    g.Rect.Dx(),
		Height:   g.Rect.Dy(),
		Main:     mainFile,
		Residual: residualFile,
	})
}

func (c *Converter) split(ctx context.Context, g *Grid, opts Options) (*Pair, error) {
	if opts.Workers > 1 {
		return SplitParallel(ctx, g, opts.Mode, opts.Workers)
	}
	return SplitFunc(g, opts.Mode, opts.Progress), nil
}

func (c *Converter) record(r Record) error {
	if c.catalog == nil {
		return nil
	}
	r.Created = time.Now()
	if _, err := c.catalog.Add(r); err != nil {
		return err
	}
	c.logger.Printf("Recorded \"%s\" as %s\n", r.Source, r.SHA1)
	return nil
}
