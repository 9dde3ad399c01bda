package colorful

import (
	"crypto/sha1"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"
	"os"

	_ "golang.org/x/image/tiff" // register TIFF decoder
)

// Load decodes the image at file into a Grid. It returns a *DecodeError if
// the file cannot be read or decoded and an *UnsupportedDepthError if the
// image is not 16-bit.
func Load(file string) (*Grid, error) {
	g, _, err := load(file)
	return g, err
}

// load also returns the hex encoded SHA-1 of the file contents.
func load(file string) (*Grid, string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, "", &DecodeError{Path: file, Err: err}
	}
	defer f.Close()

	h := sha1.New()
	m, _, err := image.Decode(io.TeeReader(f, h))
	if err != nil {
		return nil, "", &DecodeError{Path: file, Err: err}
	}
	// Drain anything the decoder did not need so the hash covers the file
	if _, err := io.Copy(h, f); err != nil {
		return nil, "", &DecodeError{Path: file, Err: err}
	}

	g, err := FromImage(m)
	switch err := err.(type) {
	case nil:
	case *UnsupportedDepthError:
		err.Path = file
		return nil, "", err
	default:
		return nil, "", &DecodeError{Path: file, Err: err}
	}

	return g, fmt.Sprintf("%X", h.Sum(nil)), nil
}

// Save writes m to file as a PNG, returning an *EncodeError on failure.
func Save(file string, m image.Image) error {
	f, err := os.Create(file)
	if err != nil {
		return &EncodeError{Path: file, Err: err}
	}

	if err := png.Encode(f, m); err != nil {
		f.Close()
		return &EncodeError{Path: file, Err: err}
	}

	if err := f.Close(); err != nil {
		return &EncodeError{Path: file, Err: err}
	}

	return nil
}

// Save writes the main image to mainFile and then the residual image to
// residualFile. If the second write fails the first file is left in place.
func (p *Pair) Save(mainFile, residualFile string) error {
	if err := Save(mainFile, p.Main); err != nil {
		return err
	}
	return Save(residualFile, p.Residual)
}
