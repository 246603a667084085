package analysis

import (
	"math"

	"github.com/san-kum/laminate/internal/mech"
)

// Band summarizes a stack of curves sample by sample.
type Band struct {
	Mean  mech.Series `json:"mean"`
	Std   mech.Series `json:"std"`
	Lower mech.Series `json:"lower"` // mean - 2σ
	Upper mech.Series `json:"upper"` // mean + 2σ
}

// Summarize computes the mean and population standard deviation across
// curves at every sample.
func Summarize(curves []mech.Series) (Band, error) {
	if len(curves) == 0 {
		return Band{}, mech.Errorf("analysis.Summarize", mech.ErrInsufficientData, "curves", 0)
	}
	n := len(curves[0])
	for _, c := range curves {
		if len(c) != n {
			return Band{}, mech.Errorf("analysis.Summarize", mech.ErrDimensionMismatch,
				"curve length", [2]int{n, len(c)})
		}
	}

	b := Band{
		Mean:  make(mech.Series, n),
		Std:   make(mech.Series, n),
		Lower: make(mech.Series, n),
		Upper: make(mech.Series, n),
	}
	count := float64(len(curves))
	for j := 0; j < n; j++ {
		sum := 0.0
		for _, c := range curves {
			sum += c[j]
		}
		mean := sum / count

		sq := 0.0
		for _, c := range curves {
			d := c[j] - mean
			sq += d * d
		}
		std := math.Sqrt(sq / count)

		b.Mean[j] = mean
		b.Std[j] = std
		b.Lower[j] = mean - 2*std
		b.Upper[j] = mean + 2*std
	}
	return b, nil
}
