package analysis

import "github.com/san-kum/laminate/internal/mech"

// TangentModulus returns dσ/dε at every sample. Interior points use the
// second-order central difference for non-uniform spacing; the two
// endpoints use one-sided differences.
func TangentModulus(strain, stress mech.Series) (mech.Series, error) {
	n := len(strain)
	if n != len(stress) {
		return nil, mech.Errorf("analysis.TangentModulus", mech.ErrDimensionMismatch,
			"len(strain)/len(stress)", [2]int{n, len(stress)})
	}
	if n < 2 {
		return nil, mech.Errorf("analysis.TangentModulus", mech.ErrInsufficientData, "samples", n)
	}
	if !strain.StrictlyIncreasing() {
		return nil, mech.Errorf("analysis.TangentModulus", mech.ErrInvalidParameter, "strain", "not strictly increasing")
	}

	out := make(mech.Series, n)
	out[0] = (stress[1] - stress[0]) / (strain[1] - strain[0])
	out[n-1] = (stress[n-1] - stress[n-2]) / (strain[n-1] - strain[n-2])

	for i := 1; i < n-1; i++ {
		hl := strain[i] - strain[i-1]
		hr := strain[i+1] - strain[i]
		out[i] = (hl*hl*stress[i+1] - hr*hr*stress[i-1] + (hr*hr-hl*hl)*stress[i]) /
			(hl * hr * (hl + hr))
	}
	return out, nil
}
