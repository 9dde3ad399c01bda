package colorful

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"
)

func tempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "colorful")
	require.NoError(t, err)
	return dir
}

func writePNG(t *testing.T, file string, m image.Image) {
	f, err := os.Create(file)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, m))
}

func readPNG(t *testing.T, file string) image.Image {
	f, err := os.Open(file)
	require.NoError(t, err)
	defer f.Close()
	m, err := png.Decode(f)
	require.NoError(t, err)
	return m
}

// sample16 is a 2x1 translucent 16-bit image, white then transparent black.
func sample16() *image.NRGBA64 {
	m := image.NewNRGBA64(image.Rect(0, 0, 2, 1))
	m.SetNRGBA64(0, 0, color.NRGBA64{R: 0xffff, G: 0xffff, B: 0xffff, A: 0xffff})
	m.SetNRGBA64(1, 0, color.NRGBA64{})
	return m
}

func TestLoad(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "in.png")
	writePNG(t, file, sample16())

	g, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, 4, g.Channels)
	assert.Equal(t, Pixel16{0xffff, 0xffff, 0xffff, 0xffff}, g.Pixel16At(0, 0))
	assert.Equal(t, Pixel16{}, g.Pixel16At(1, 0))
}

func TestLoadTIFF(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "in.tif")
	f, err := os.Create(file)
	require.NoError(t, err)
	require.NoError(t, tiff.Encode(f, sample16(), nil))
	require.NoError(t, f.Close())

	g, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, 4, g.Channels)
	assert.Equal(t, Pixel16{0xffff, 0xffff, 0xffff, 0xffff}, g.Pixel16At(0, 0))
}

func TestLoadErrors(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	missing := filepath.Join(dir, "missing.png")
	_, err := Load(missing)
	var decode *DecodeError
	require.True(t, errors.As(err, &decode))
	assert.Equal(t, missing, decode.Path)
	assert.Equal(t, "Failed to load image: "+missing, err.Error())
	assert.True(t, os.IsNotExist(errors.Unwrap(err)))

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, ioutil.WriteFile(garbage, []byte("not an image"), 0644))
	_, err = Load(garbage)
	require.True(t, errors.As(err, &decode))
	assert.Equal(t, garbage, decode.Path)

	eight := filepath.Join(dir, "eight.png")
	writePNG(t, eight, image.NewNRGBA(image.Rect(0, 0, 4, 4)))
	_, err = Load(eight)
	var depth *UnsupportedDepthError
	require.True(t, errors.As(err, &depth))
	assert.Equal(t, eight, depth.Path)
	assert.Equal(t, "Your image is not 16-bit.", err.Error())
}

func TestPairSave(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	g, err := FromImage(sample16())
	require.NoError(t, err)
	p := Split(g, TenBit)

	mainFile, residualFile := PairNames(dir, "cr")
	require.NoError(t, p.Save(mainFile, residualFile))

	// Values survive the PNG round trip untouched, including transparent pixels
	assert.Equal(t, p.Main, readPNG(t, mainFile))
	assert.Equal(t, p.Residual, readPNG(t, residualFile))
}

func TestSaveError(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "missing", "cr.png")
	err := Save(file, image.NewNRGBA(image.Rect(0, 0, 1, 1)))

	var encode *EncodeError
	require.True(t, errors.As(err, &encode))
	assert.Equal(t, file, encode.Path)
}

func TestPairSavePartial(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	g, err := FromImage(sample16())
	require.NoError(t, err)

	mainFile := filepath.Join(dir, "cr.png")
	residualFile := filepath.Join(dir, "missing", "cr_.png")
	err = Split(g, TenBit).Save(mainFile, residualFile)

	var encode *EncodeError
	require.True(t, errors.As(err, &encode))
	assert.Equal(t, residualFile, encode.Path)

	// The main image stays behind
	assert.FileExists(t, mainFile)
}

func TestPairNames(t *testing.T) {
	mainFile, residualFile := PairNames("out", "cr")
	assert.Equal(t, filepath.Join("out", "cr.png"), mainFile)
	assert.Equal(t, filepath.Join("out", "cr_.png"), residualFile)
}
