package batcher

// SphericalHarmonics9 is a 3-band (9 coefficient) spherical harmonics color
// term. The light accumulator folds overflow light energy into it so evicted
// lights contribute ambient energy instead of vanishing.
type SphericalHarmonics9 struct {
	// Coefficients holds the RGB weights per SH basis function, band 0 first.
	Coefficients [9][3]float32
}

// Reset zeroes all coefficients.
func (sh *SphericalHarmonics9) Reset() {
	*sh = SphericalHarmonics9{}
}

// AccumulateAmbient folds a directionless color contribution into the
// constant (band 0) term.
//
// Parameters:
//   - color: the RGB color to fold in
//   - intensity: the scalar energy multiplier
func (sh *SphericalHarmonics9) AccumulateAmbient(color [3]float32, intensity float32) {
	sh.Coefficients[0][0] += color[0] * intensity
	sh.Coefficients[0][1] += color[1] * intensity
	sh.Coefficients[0][2] += color[2] * intensity
}
