// Package store persists multi-backend runs: one directory per run with a
// metadata.json and one trace CSV per backend.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
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

// RunMetadata describes one multi-backend run. Metrics is keyed by
// backend, then metric name.
type RunMetadata struct {
	ID        string                        `json:"id"`
	Model     string                        `json:"model"`
	Backends  []string                      `json:"backends"`
	Timestamp time.Time                     `json:"timestamp"`
	Duration  float64                       `json:"duration"`
	Steps     int                           `json:"steps"`
	Params    map[string]any                `json:"params"`
	Metrics   map[string]map[string]float64 `json:"metrics"`
}

// Trace is one backend's recorded membrane trace.
type Trace struct {
	Times    []float64
	Voltages []float64
}

// Save writes the run directory and returns the run ID.
func (s *Store) Save(meta RunMetadata, traces map[string]Trace) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Model, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	for backend, trace := range traces {
		if err := s.writeTrace(runDir, backend, trace); err != nil {
			return "", err
		}
	}
	return runID, nil
}

func (s *Store) writeTrace(runDir, backend string, trace Trace) error {
	f, err := os.Create(filepath.Join(runDir, backend+".csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"time", "v"}); err != nil {
		return err
	}
	for i := range trace.Voltages {
		t := 0.0
		if i < len(trace.Times) {
			t = trace.Times[i]
		}
		row := []string{
			strconv.FormatFloat(t, 'f', 6, 64),
			strconv.FormatFloat(trace.Voltages[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

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
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrace reads one backend's trace CSV back.
func (s *Store) LoadTrace(runID, backend string) (*Trace, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, backend+".csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	trace := &Trace{}
	for i := 1; i < len(records); i++ {
		if len(records[i]) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(records[i][0], 64)
		if err != nil {
			continue
		}
		v, err := strconv.ParseFloat(records[i][1], 64)
		if err != nil {
			continue
		}
		trace.Times = append(trace.Times, t)
		trace.Voltages = append(trace.Voltages, v)
	}
	return trace, nil
}
