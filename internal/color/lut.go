package color

// srgbDecodeLUT maps an sRGB byte to linear float32.
var srgbDecodeLUT [256]float32

// srgbEncodeLUT maps linear [0, 1] at 12-bit precision to an sRGB byte.
var srgbEncodeLUT [4096]uint8

func init() {
	for i := range 256 {
		srgbDecodeLUT[i] = float32(SRGBToLinear(float64(i) / 255.0))
	}
	for i := range 4096 {
		s := LinearToSRGB(float64(i) / 4095.0)
		srgbEncodeLUT[i] = uint8(clamp01(s)*255.0 + 0.5)
	}
}

// Decode8 converts an 8-bit stored value to a float in [0, 1].
//
// Example:
//
//	Decode8(TransferSRGB, 128)   // ~0.2159
//	Decode8(TransferLinear, 128) // ~0.5020
func Decode8(t Transfer, v uint8) float32 {
	if t == TransferSRGB {
		return srgbDecodeLUT[v]
	}
	return float32(v) / 255.0
}

// Encode8 converts a float to an 8-bit stored value, clamping to [0, 1].
// HDR values above 1 saturate; no tone mapping is applied.
func Encode8(t Transfer, v float32) uint8 {
	f := clamp01(float64(v))
	if t == TransferSRGB {
		return srgbEncodeLUT[int(f*4095.0+0.5)]
	}
	return uint8(f*255.0 + 0.5)
}
