package ecolor

import(
	"github.com/abworrall/jpg2raw/pkg/emath"
)

// A ToneCurve is a measured per-channel response table, indexed by the
// 8-bit level of the input. Row x holds the output for level x, one value
// per channel.
type ToneCurve [256]emath.Vec3

// Lookup quantizes each channel of `in` to a level in [0,255] (1.0 is
// level 255; anything out of range is clamped), and returns the table
// value for that level & channel.
func (tc *ToneCurve)Lookup(in emath.Vec3) emath.Vec3 {
	return emath.Vec3{
		tc[emath.Quantize8(in[0])][0],
		tc[emath.Quantize8(in[1])][1],
		tc[emath.Quantize8(in[2])][2],
	}
}

// LinearToneCurve maps level x to x/255 on all channels; Lookup with it is
// the identity, up to quantization.
func LinearToneCurve() ToneCurve {
	tc := ToneCurve{}
	for x:=0; x<256; x++ {
		v := float64(x) / 255.0
		tc[x] = emath.Vec3{v, v, v}
	}
	return tc
}
