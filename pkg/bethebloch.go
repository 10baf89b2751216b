package cffilter

import "math"

// NCurveParams is the size of a usable calibration curve: five
// Bethe-Bloch shape parameters plus one resolution scale.
const NCurveParams = 6

// BetheBlochAleph is the ALEPH parametrisation of the expected
// specific energy loss as a function of beta*gamma.
func BetheBlochAleph(bg float64, kp1 float64, kp2 float64, kp3 float64, kp4 float64, kp5 float64) float64 {
	beta := bg / math.Sqrt(1+bg*bg)
	aa := math.Pow(beta, kp4)
	bb := math.Pow(1/bg, kp5)
	bb = math.Log(kp3 + bb)
	return (kp2 - aa - bb) * kp1 / aa
}

// RecalibratedScore recomputes the TPC deviation score of one track
// from the raw detector signal and a calibration curve. The curve must
// have NCurveParams entries: bb1..bb5 and the resolution scale.
func RecalibratedScore(tpcSignal float64, tpcInnerParam float64, massInverse float64, curve []float64) float64 {
	expSignal := BetheBlochAleph(tpcInnerParam*massInverse, curve[0], curve[1], curve[2], curve[3], curve[4])
	expSigma := expSignal * curve[5]
	return (tpcSignal - expSignal) / expSigma
}
