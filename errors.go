package colorful

import "fmt"

// DecodeError is returned when a path does not resolve to a decodable image.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("Failed to load image: %s", e.Path)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// UnsupportedDepthError is returned when an image decodes but is not stored
// at 16 bits per channel.
type UnsupportedDepthError struct {
	Path string
}

func (e *UnsupportedDepthError) Error() string {
	return "Your image is not 16-bit."
}

// EncodeError is returned when an output image cannot be written.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("Failed to save image: %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
