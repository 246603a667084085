package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/laminate/internal/experiment"
	"github.com/san-kum/laminate/internal/mech"
)

// ErrNoCandidate is returned when no grid point produced a result.
var ErrNoCandidate = errors.New("optim: no valid candidate")

type GridSearch struct {
	paramNames []string
	ranges     [][]float64

	evaluated int
	skipped   int
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs one experiment per grid point and returns the parameters
// minimizing metricName. Points whose experiment rejects its parameters
// with mech.ErrInvalidParameter are skipped.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	metricName string,
) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("optim: %d params but %d ranges", len(g.paramNames), len(g.ranges))
	}
	g.evaluated, g.skipped = 0, 0

	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]float64), buildExperiment, metricName, &best, &bestParams)
	if err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, ErrNoCandidate
	}
	return bestParams, best, nil
}

// Stats reports how many grid points were evaluated and skipped by the
// last Search.
func (g *GridSearch) Stats() (evaluated, skipped int) {
	return g.evaluated, g.skipped
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		exp, err := buildExperiment(current)
		if err != nil {
			return err
		}

		result, err := exp.Run(ctx)
		if errors.Is(err, mech.ErrInvalidParameter) {
			g.skipped++
			return nil
		}
		if err != nil {
			return err
		}
		g.evaluated++

		val, ok := result.Metrics[metricName]
		if !ok {
			return fmt.Errorf("optim: unknown metric: %s", metricName)
		}
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, buildExperiment, metricName, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}
