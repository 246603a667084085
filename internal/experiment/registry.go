package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/laminate/internal/composite"
	"github.com/san-kum/laminate/internal/mech"
	"github.com/san-kum/laminate/internal/metrics"
)

// LawOptions selects the strategy inside a law. Empty fields take the
// law's default.
type LawOptions struct {
	Weighting string
	Mixing    string
}

type Registry struct {
	laws map[string]func(LawOptions) (composite.Law, error)
}

func NewRegistry() *Registry {
	r := &Registry{
		laws: make(map[string]func(LawOptions) (composite.Law, error)),
	}

	r.laws[composite.LawWeighted] = func(o LawOptions) (composite.Law, error) {
		if o.Weighting == "" {
			return composite.NewWeightedLaw(composite.Cos4), nil
		}
		w, err := composite.ParseWeighting(o.Weighting)
		if err != nil {
			return nil, err
		}
		return composite.NewWeightedLaw(w), nil
	}
	r.laws[composite.LawHalpinTsai] = func(o LawOptions) (composite.Law, error) {
		if o.Mixing == "" {
			return composite.NewHalpinTsaiLaw(composite.Voigt), nil
		}
		mx, err := composite.ParseMixing(o.Mixing)
		if err != nil {
			return nil, err
		}
		return composite.NewHalpinTsaiLaw(mx), nil
	}

	return r
}

func (r *Registry) GetLaw(name string, opts LawOptions) (composite.Law, error) {
	fn, ok := r.laws[name]
	if !ok {
		return nil, fmt.Errorf("unknown law: %s: %w", name, mech.ErrInvalidParameter)
	}
	return fn(opts)
}

func (r *Registry) ListLaws() []string {
	names := make([]string, 0, len(r.laws))
	for name := range r.laws {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics() []metrics.Metric {
	return metrics.Standard()
}
