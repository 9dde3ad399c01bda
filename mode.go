package colorful

// Mode selects how the two low bits are quantized into the residual image.
type Mode int

const (
	// TenBit keeps both low bits as four residual levels: 0, 75, 150, 225.
	TenBit Mode = iota
	// NineBit keeps only the upper of the two low bits, giving the residual
	// levels 0 and 150. Fewer levels flicker less when the pair is
	// displayed.
	NineBit
)

const (
	tenBitStep  = 75
	nineBitStep = 150
)

// ParseMode returns NineBit for "9" and TenBit for anything else.
func ParseMode(s string) Mode {
	if s == "9" {
		return NineBit
	}
	return TenBit
}

// Bits returns the effective bit depth of the pair, 9 or 10.
func (m Mode) Bits() int {
	if m == NineBit {
		return 9
	}
	return 10
}

func (m Mode) String() string {
	if m == NineBit {
		return "9-bit"
	}
	return "10-bit"
}

// Level maps the two low bits of a 10-bit sample to its residual value.
func (m Mode) Level(low2 uint8) uint8 {
	low2 &= 0x03
	if m == NineBit {
		return (low2 >> 1) * nineBitStep
	}
	return low2 * tenBitStep
}
