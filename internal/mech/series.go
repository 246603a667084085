package mech

import "math"

// Series is an ordered sequence of samples, e.g. a strain sweep or the
// stress computed from it.
type Series []float64

func (s Series) Clone() Series {
	c := make(Series, len(s))
	copy(c, s)
	return c
}

// IsValid reports whether every sample is finite.
func (s Series) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s Series) Scale(factor float64) Series {
	result := make(Series, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

func (s Series) Sum() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v
	}
	return sum
}

// Max returns the largest sample, or 0 for an empty series.
func (s Series) Max() float64 {
	if len(s) == 0 {
		return 0
	}
	m := s[0]
	for _, v := range s[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// StrictlyIncreasing reports whether each sample exceeds its predecessor.
func (s Series) StrictlyIncreasing() bool {
	for i := 1; i < len(s); i++ {
		if !(s[i] > s[i-1]) {
			return false
		}
	}
	return true
}
