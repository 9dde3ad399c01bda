/*
Package colorful splits 16-bit per channel images into a pair of ordinary
8-bit images that together carry 10 bits per channel.

The main image holds the most significant 8 bits of each channel. The
residual image holds the remaining 2 bits of the 10-bit reduction, scaled
up to a few evenly spaced levels so that it survives being stored, viewed or
sampled as a normal 8-bit texture. Pairs are written as name.png and
name_.png.

Sources must be stored at 16 bits per channel. RGB sources get a constant
10-bit alpha of 1023. 16-bit grayscale sources are accepted and expanded to
three equal color channels rather than rejected.
*/
package colorful

import (
	"io/ioutil"
	"log"
)

// Converter loads, splits and saves images, optionally recording every
// conversion in a Catalog.
type Converter struct {
	catalog *Catalog
	logger  *log.Logger
}

// New returns a Converter. The catalog may be nil, in which case nothing is
// recorded. A nil logger discards all output.
func New(catalog *Catalog, logger *log.Logger) *Converter {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &Converter{
		catalog: catalog,
		logger:  logger,
	}
}
