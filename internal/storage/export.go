package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/laminate/internal/mech"
)

type ExportData struct {
	RunMetadata
	Strain     mech.Series   `json:"strain"`
	Stress     mech.Series   `json:"stress"`
	Tangent    mech.Series   `json:"tangent"`
	Components []mech.Series `json:"components,omitempty"`
}

// ExportJSON writes a stored run, metadata and curves, as one indented
// JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	curves, err := s.LoadCurves(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		RunMetadata: *meta,
		Strain:      curves.Strain,
		Stress:      curves.Stress,
		Tangent:     curves.Tangent,
		Components:  curves.Components,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV copies the stored curves.csv to w.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	curves, err := s.LoadCurves(runID)
	if err != nil {
		return err
	}
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	return writeCurvesTo(w, meta.Angles, curves)
}
