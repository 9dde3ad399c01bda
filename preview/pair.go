package preview

import (
	"image"
	"image/draw"
	_ "image/png" // register PNG decoder
	"os"
)

func loadNRGBA(file string) (*image.NRGBA, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}

	if nm, ok := m.(*image.NRGBA); ok {
		return nm, nil
	}

	b := m.Bounds()
	nm := image.NewNRGBA(b)
	draw.Draw(nm, b, m, b.Min, draw.Src)
	return nm, nil
}

// LoadPair loads name.png and name_.png.
func LoadPair(name string) (*image.NRGBA, *image.NRGBA, error) {
	main, err := loadNRGBA(name + ".png")
	if err != nil {
		return nil, nil, err
	}

	residual, err := loadNRGBA(name + "_.png")
	if err != nil {
		return nil, nil, err
	}

	if main.Bounds().Size() != residual.Bounds().Size() {
		return nil, nil, errMismatch
	}

	return main, residual, nil
}
