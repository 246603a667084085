package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/laminate/internal/config"
	"github.com/san-kum/laminate/internal/experiment"
)

func runExperiment(t *testing.T, law string) *experiment.Result {
	t.Helper()
	cfg := experiment.FromConfig(config.DefaultConfig())
	cfg.Law = law
	res, err := experiment.New(cfg, nil, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return res
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	result := runExperiment(t, "weighted")
	runID, err := st.Save(result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "weighted_") {
		t.Errorf("expected run id prefixed by law, got %s", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Law != "weighted" || meta.Weighting != "cos4" {
		t.Errorf("expected weighted/cos4, got %s/%s", meta.Law, meta.Weighting)
	}
	if meta.Vf != result.Vf {
		t.Errorf("expected vf %f, got %f", result.Vf, meta.Vf)
	}
	if meta.Samples != 300 {
		t.Errorf("expected 300 samples, got %d", meta.Samples)
	}
	if meta.Metrics["peak_stress"] != result.Metrics["peak_stress"] {
		t.Errorf("expected peak %f, got %f", result.Metrics["peak_stress"], meta.Metrics["peak_stress"])
	}
	if meta.CriticalAngle == nil {
		t.Error("expected critical angle")
	}

	curves, err := st.LoadCurves(runID)
	if err != nil {
		t.Fatalf("load curves failed: %v", err)
	}
	if len(curves.Strain) != 300 {
		t.Fatalf("expected 300 rows, got %d", len(curves.Strain))
	}
	for i := range curves.Stress {
		if curves.Stress[i] != result.Stress[i] || curves.Strain[i] != result.Strain[i] {
			t.Fatalf("row %d: expected exact round trip", i)
		}
	}
	if len(curves.Components) != 9 {
		t.Errorf("expected 9 component columns, got %d", len(curves.Components))
	}
}

func TestStoreSave_RemovesPartialRun(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	result := runExperiment(t, "weighted")
	result.Metrics["broken"] = math.NaN()
	if _, err := st.Save(result); err == nil {
		t.Fatal("expected error for unencodable metadata")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no run directories, got %d", len(entries))
	}
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	first, _ := st.Save(runExperiment(t, "weighted"))
	second, _ := st.Save(runExperiment(t, "halpin-tsai"))

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != first || runs[1].ID != second {
		t.Errorf("expected runs in save order, got %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestStoreList_Missing(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(runExperiment(t, "halpin-tsai"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}

	data, err := os.ReadFile(filepath.Join(runDir, "curves.csv"))
	if err != nil {
		t.Fatalf("curves.csv not created: %v", err)
	}
	header := strings.SplitN(string(data), "\n", 2)[0]
	if header != "strain,stress,tangent" {
		t.Errorf("expected plain header for halpin-tsai, got %q", header)
	}

	curves, err := st.LoadCurves(runID)
	if err != nil {
		t.Fatalf("load curves failed: %v", err)
	}
	if curves.Components != nil {
		t.Error("expected no components")
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(runExperiment(t, "weighted"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.ID != runID {
		t.Errorf("expected id %s, got %s", runID, data.ID)
	}
	if len(data.Stress) != 300 || len(data.Components) != 9 {
		t.Errorf("expected 300 samples and 9 components, got %d and %d", len(data.Stress), len(data.Components))
	}
}

func TestExportCSV(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(runExperiment(t, "weighted"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportCSV(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	stored, _ := os.ReadFile(filepath.Join(st.Dir(), runID, "curves.csv"))
	if buf.String() != string(stored) {
		t.Error("expected export to match stored curves")
	}
}

func TestLoad_Missing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); err == nil {
		t.Error("expected error for missing run")
	}
	if _, err := st.LoadCurves("nope"); err == nil {
		t.Error("expected error for missing curves")
	}
}
