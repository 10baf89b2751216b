package cffilter

import (
	"math"
	"testing"
)

func TestBetheBlochAlephShape(t *testing.T) {
	kp1, kp2, kp3, kp4, kp5 := 0.05, 15.0, 1e-8, 2.3, 4.5

	low := BetheBlochAleph(0.5, kp1, kp2, kp3, kp4, kp5)
	mip := BetheBlochAleph(3.5, kp1, kp2, kp3, kp4, kp5)
	rise := BetheBlochAleph(100, kp1, kp2, kp3, kp4, kp5)

	if low <= mip {
		t.Errorf("expected the 1/beta^2 region above the minimum: %g <= %g", low, mip)
	}
	if rise <= mip {
		t.Errorf("expected the relativistic rise above the minimum: %g <= %g", rise, mip)
	}
	for _, value := range []float64{low, mip, rise} {
		if value <= 0 || math.IsNaN(value) {
			t.Errorf("expected a positive energy loss, got %g", value)
		}
	}
}

func TestRecalibratedScore(t *testing.T) {
	curve := testCurve(0.08)
	momentum := 0.9
	massInverse := 1 / MassProton
	expected := BetheBlochAleph(momentum*massInverse, curve[0], curve[1], curve[2], curve[3], curve[4])

	score := RecalibratedScore(expected, momentum, massInverse, curve)
	if math.Abs(score) > 1e-12 {
		t.Errorf("signal on the curve must score zero, got %g", score)
	}

	above := RecalibratedScore(expected*1.2, momentum, massInverse, curve)
	if above <= 0 {
		t.Errorf("signal above the curve must score positive, got %g", above)
	}
	below := RecalibratedScore(expected*0.8, momentum, massInverse, curve)
	if below >= 0 {
		t.Errorf("signal below the curve must score negative, got %g", below)
	}
}

func TestRecalibratedScoreResolutionScaling(t *testing.T) {
	narrow := testCurve(0.04)
	wide := testCurve(0.08)
	momentum := 0.9
	massInverse := 1 / MassProton
	expected := BetheBlochAleph(momentum*massInverse, narrow[0], narrow[1], narrow[2], narrow[3], narrow[4])
	signal := expected * 1.2

	narrowScore := RecalibratedScore(signal, momentum, massInverse, narrow)
	wideScore := RecalibratedScore(signal, momentum, massInverse, wide)
	if math.Abs(narrowScore-2*wideScore) > 1e-12 {
		t.Errorf("doubling the resolution must halve the score: %g vs %g", narrowScore, wideScore)
	}
}
