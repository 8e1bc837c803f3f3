package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/san-kum/geolife/internal/sim"
)

// Store keeps finished runs as reports under baseDir, one directory per
// run. Reports are read back for listing and plotting only.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Timestamp   time.Time          `json:"timestamp"`
	Precision   int                `json:"precision"`
	TickRateHz  float64            `json:"tick_rate_hz"`
	CycleWindow int                `json:"cycle_window"`
	Seed        int64              `json:"seed"`
	Pattern     string             `json:"pattern,omitempty"`
	Outcome     sim.Outcome        `json:"outcome"`
	Generations int                `json:"generations"`
	Period      int                `json:"period,omitempty"`
	Metrics     map[string]float64 `json:"metrics"`
	Initial     []string           `json:"initial"`
	Final       []string           `json:"final"`
}

// Save writes metadata.json and generations.csv for a finished run and
// returns the run id.
func (s *Store) Save(cfg sim.Config, pattern string, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("p%d_%d", cfg.Precision, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Timestamp:   now,
		Precision:   cfg.Precision,
		TickRateHz:  cfg.TickRate,
		CycleWindow: cfg.CycleWindow,
		Seed:        result.Seed,
		Pattern:     pattern,
		Outcome:     result.Outcome,
		Generations: result.Generations,
		Period:      result.Period,
		Metrics:     result.Metrics,
		Initial:     result.Initial,
		Final:       result.Final,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", errors.Wrapf(err, "[storage.Save] encode metadata for %s", runID)
	}

	csvFile, err := os.Create(filepath.Join(runDir, "generations.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"generation", "population", "born", "died"}); err != nil {
		return "", err
	}
	for _, r := range result.History {
		row := []string{
			strconv.Itoa(r.Generation),
			strconv.Itoa(r.Population),
			strconv.Itoa(r.Born),
			strconv.Itoa(r.Died),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", errors.Wrapf(err, "[storage.Save] write history for %s", runID)
	}

	return runID, nil
}

// List returns every readable run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrapf(err, "[storage.Load] decode metadata for %s", runID)
	}
	return &meta, nil
}

// LoadHistory reads the per generation records of a run.
func (s *Store) LoadHistory(runID string) ([]sim.Record, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "generations.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "[storage.LoadHistory] read %s", runID)
	}
	if len(records) < 2 {
		return []sim.Record{}, nil
	}

	history := make([]sim.Record, 0, len(records)-1)
	for _, row := range records[1:] {
		if len(row) < 4 {
			continue
		}
		var vals [4]int
		ok := true
		for i := range vals {
			v, err := strconv.Atoi(row[i])
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		history = append(history, sim.Record{
			Generation: vals[0],
			Population: vals[1],
			Born:       vals[2],
			Died:       vals[3],
		})
	}
	return history, nil
}
