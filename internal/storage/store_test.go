package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/san-kum/geolife/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Outcome:     sim.OutcomeConverged,
		Generations: 1,
		Period:      1,
		Seed:        42,
		Initial:     []string{"u2", "u3", "u8"},
		Final:       []string{"u2", "u3", "u8", "u9"},
		History: []sim.Record{
			{Generation: 0, Population: 3},
			{Generation: 1, Population: 4, Born: 1},
		},
		Metrics: map[string]float64{"population": 4},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := sim.Config{Precision: 2, TickRate: 5, CycleWindow: 1}
	runID, err := st.Save(cfg, "block", testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Precision != 2 || meta.Pattern != "block" || meta.Seed != 42 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Outcome != sim.OutcomeConverged || meta.Period != 1 {
		t.Errorf("unexpected outcome %s period %d", meta.Outcome, meta.Period)
	}
	if !reflect.DeepEqual(meta.Final, []string{"u2", "u3", "u8", "u9"}) {
		t.Errorf("unexpected final cells %v", meta.Final)
	}
	if meta.Metrics["population"] != 4 {
		t.Errorf("expected population 4, got %f", meta.Metrics["population"])
	}

	history, err := st.LoadHistory(runID)
	if err != nil {
		t.Fatalf("load history failed: %v", err)
	}
	if !reflect.DeepEqual(history, testResult().History) {
		t.Errorf("history = %+v", history)
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

	cfg := sim.Config{Precision: 2, TickRate: 5}
	for i := 0; i < 2; i++ {
		if _, err := st.Save(cfg, "", testResult()); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "absent")).List()
	if err != nil || len(runs) != 0 {
		t.Errorf("List() = %v, %v", runs, err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(sim.Config{Precision: 2, TickRate: 5}, "", testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "generations.csv"} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}
