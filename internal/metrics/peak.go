package metrics

import "math"

type PeakStress struct {
	name    string
	peak    float64
	samples int
}

func NewPeakStress() *PeakStress {
	return &PeakStress{name: "peak_stress"}
}

func (p *PeakStress) Name() string { return p.name }

func (p *PeakStress) Observe(strain, stress float64) {
	if p.samples == 0 {
		p.peak = stress
	} else {
		p.peak = math.Max(p.peak, stress)
	}
	p.samples++
}

func (p *PeakStress) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.peak
}

func (p *PeakStress) Reset() {
	p.peak = 0
	p.samples = 0
}
