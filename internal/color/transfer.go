// Package color converts between stored integer pixel values and the linear
// floating-point values the denoiser works on.
//
// Color and albedo images stored in 8 or 16 bits are sRGB encoded and are
// decoded through the sRGB EOTF. Normal and depth guides hold raw data and
// use the linear transfer, which only rescales to [0, 1].
//
// References:
//   - sRGB specification: https://www.w3.org/Graphics/Color/sRGB
package color

import "math"

// Transfer identifies the transfer function of stored integer values.
type Transfer uint8

const (
	// TransferSRGB is the sRGB transfer function.
	TransferSRGB Transfer = iota

	// TransferLinear stores values proportionally.
	TransferLinear
)

func (t Transfer) String() string {
	switch t {
	case TransferSRGB:
		return "sRGB"
	case TransferLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// SRGBToLinear converts an sRGB component to linear (EOTF).
// Formula: if s <= 0.04045: s/12.92; else: pow((s+0.055)/1.055, 2.4)
func SRGBToLinear(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// LinearToSRGB converts a linear component to sRGB (OETF).
// Formula: if l <= 0.0031308: l*12.92; else: 1.055*pow(l, 1/2.4)-0.055
func LinearToSRGB(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1.0/2.4) - 0.055
}

// Decode16 converts a 16-bit stored value to a float in [0, 1].
func Decode16(t Transfer, v uint16) float32 {
	f := float64(v) / 65535.0
	if t == TransferSRGB {
		f = SRGBToLinear(f)
	}
	return float32(f)
}

// Encode16 converts a float to a 16-bit stored value, clamping to [0, 1].
func Encode16(t Transfer, v float32) uint16 {
	f := clamp01(float64(v))
	if t == TransferSRGB {
		f = LinearToSRGB(f)
	}
	return uint16(f*65535.0 + 0.5)
}

// clamp01 clamps v to [0, 1]. NaN maps to 0.
func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
