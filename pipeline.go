package colorful

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Suffix is appended to the base name of the residual image of a pair.
const Suffix = "_"

// PairNames returns the main and residual filenames for a pair called name
// inside dir.
func PairNames(dir, name string) (string, string) {
	return filepath.Join(dir, name+".png"), filepath.Join(dir, name+Suffix+".png")
}

// claims tracks which source owns each output pair during a batch.
type claims struct {
	mu     sync.Mutex
	owners map[string]string
}

func newClaims() *claims {
	return &claims{
		owners: make(map[string]string),
	}
}

// claim records file as the source for output, failing if another source
// already produces it.
func (c *claims) claim(output, file string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if owner, ok := c.owners[output]; ok && owner != file {
		return fmt.Errorf("colorful: \"%s\" and \"%s\" both convert to \"%s\"", owner, file, output)
	}
	c.owners[output] = file
	return nil
}

func fileExists(file string) bool {
	info, err := os.Stat(file)
	return err == nil && info.Mode().IsRegular()
}

func (c *Converter) findFiles(ctx context.Context, base, skip string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if file != base && info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Don't convert our own output
			if info.Mode().IsDir() && file == skip {
				return filepath.SkipDir
			}

			if !info.Mode().IsRegular() {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

// outputNames mirrors the position of file below base inside out.
func outputNames(base, out, file string) (string, string, error) {
	rel, err := filepath.Rel(base, file)
	if err != nil {
		return "", "", err
	}
	name := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	mainFile, residualFile := PairNames(filepath.Join(out, filepath.Dir(rel)), name)
	return mainFile, residualFile, nil
}

func (c *Converter) fileWorker(ctx context.Context, in <-chan string, base, out string, mode Mode, owners *claims) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			g, sha, err := load(file)
			if err != nil {
				var depth *UnsupportedDepthError
				var decode *DecodeError
				if errors.As(err, &depth) || errors.As(err, &decode) {
					c.logger.Printf("Skipping \"%s\": %s\n", file, err)
					continue
				}
				errc <- err
				return
			}

			mainFile, residualFile, err := outputNames(base, out, file)
			if err != nil {
				errc <- err
				return
			}

			if err := owners.claim(mainFile, file); err != nil {
				errc <- err
				return
			}

			if c.catalog != nil {
				r, err := c.catalog.Find(sha, mode, mainFile)
				if err != nil {
					errc <- err
					return
				}
				if r != nil && r.Source == file && fileExists(mainFile) && fileExists(residualFile) {
					c.logger.Printf("Skipping \"%s\", already converted\n", file)
					continue
				}
			}

			c.logger.Printf("Converting \"%s\" into %s format\n", file, mode)

			if err := os.MkdirAll(filepath.Dir(mainFile), 0755); err != nil {
				errc <- err
				return
			}

			if err := Split(g, mode).Save(mainFile, residualFile); err != nil {
				errc <- err
				return
			}

			if err := c.record(Record{
				Source:   file,
				SHA1:     sha,
				Mode:     mode,
				Width:    g.Rect.Dx(),
				Height:   g.Rect.Dy(),
				Main:     mainFile,
				Residual: residualFile,
			}); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Batch converts every 16-bit image found under path, writing each pair as
// name.png and name_.png into the matching subdirectory of out, which is
// created if necessary. Files that are not 16-bit images are skipped. Two
// sources that would produce the same pair, such as x.png and x.tif in one
// directory, stop the batch with an error.
func (c *Converter) Batch(path, out string, mode Mode, workers int) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	outDir, err := filepath.Abs(out)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	if workers < 1 {
		workers = 1
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error
	owners := newClaims()

	files, errc, err := c.findFiles(ctx, dir, outDir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < workers; i++ {
		errc, err := c.fileWorker(ctx, files, dir, outDir, mode, owners)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
