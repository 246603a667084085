package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/laminate/internal/analysis"
	"github.com/san-kum/laminate/internal/experiment"
	"github.com/san-kum/laminate/internal/mech"
)

const (
	metadataFile = "metadata.json"
	curvesFile   = "curves.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID            string             `json:"id"`
	Law           string             `json:"law"`
	Weighting     string             `json:"weighting,omitempty"`
	Mixing        string             `json:"mixing,omitempty"`
	Timestamp     time.Time          `json:"timestamp"`
	Vf            float64            `json:"vf"`
	FiberFactor   float64            `json:"fiber_factor"`
	Angles        []float64          `json:"angles"`
	Weights       []float64          `json:"weights"`
	Samples       int                `json:"samples"`
	Modulus       float64            `json:"modulus"`
	Metrics       map[string]float64 `json:"metrics"`
	CriticalAngle *float64           `json:"critical_angle,omitempty"`
}

// Curves is the sampled content of curves.csv.
type Curves struct {
	Strain     mech.Series
	Stress     mech.Series
	Tangent    mech.Series
	Components []mech.Series
}

func (s *Store) Save(result *experiment.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", result.Law, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Law:         result.Law,
		Weighting:   result.Weighting,
		Mixing:      result.Mixing,
		Timestamp:   now,
		Vf:          result.Vf,
		FiberFactor: result.FiberFactor,
		Angles:      result.Angles,
		Weights:     result.Weights,
		Samples:     len(result.Stress),
		Modulus:     result.Modulus,
		Metrics:     result.Metrics,
	}
	if result.Failure != nil {
		if angle, _, err := analysis.CriticalAngle(*result.Failure); err == nil {
			meta.CriticalAngle = &angle
		}
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		os.RemoveAll(runDir)
		return "", fmt.Errorf("write metadata: %w", err)
	}
	curves := &Curves{
		Strain:     result.Strain,
		Stress:     result.Stress,
		Tangent:    result.Tangent,
		Components: result.Components,
	}
	if err := writeCurves(filepath.Join(runDir, curvesFile), result.Angles, curves); err != nil {
		os.RemoveAll(runDir)
		return "", fmt.Errorf("write curves: %w", err)
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCurves(path string, angles []float64, curves *Curves) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return writeCurvesTo(f, angles, curves)
}

func writeCurvesTo(out io.Writer, angles []float64, curves *Curves) error {
	w := csv.NewWriter(out)

	header := []string{"strain", "stress", "tangent"}
	for i := range curves.Components {
		header = append(header, fmt.Sprintf("component_%g", angles[i]))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range curves.Strain {
		row := []string{
			formatFloat(curves.Strain[i]),
			formatFloat(curves.Stress[i]),
			formatFloat(curves.Tangent[i]),
		}
		for _, c := range curves.Components {
			row = append(row, formatFloat(c[i]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns stored runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadCurves(runID string) (*Curves, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, curvesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	curves := &Curves{}
	if len(records) < 2 {
		return curves, nil
	}

	numComponents := len(records[0]) - 3
	if numComponents < 0 {
		return nil, fmt.Errorf("%s: expected at least 3 columns, got %d", curvesFile, len(records[0]))
	}
	if numComponents > 0 {
		curves.Components = make([]mech.Series, numComponents)
	}

	for line, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", curvesFile, line+2, err)
			}
			vals[j] = v
		}
		curves.Strain = append(curves.Strain, vals[0])
		curves.Stress = append(curves.Stress, vals[1])
		curves.Tangent = append(curves.Tangent, vals[2])
		for c := range curves.Components {
			curves.Components[c] = append(curves.Components[c], vals[3+c])
		}
	}
	return curves, nil
}
