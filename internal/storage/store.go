package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/reactorsim/internal/export"
	"github.com/san-kum/reactorsim/internal/nucdata"
	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/trace"
)

const (
	metadataFile = "metadata.json"
	traceFile    = "trace.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

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
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Timestamp   time.Time             `json:"timestamp"`
	Control     string                `json:"control"`
	Core        reactor.Configuration `json:"core"`
	Samples     int                   `json:"samples"`
	Stride      int                   `json:"stride"`
	Metrics     map[string]float64    `json:"metrics"`
	Diagnostics []nucdata.Diagnostic  `json:"diagnostics,omitempty"`
}

// Save writes metadata.json and trace.csv into a new run directory. Only
// every stride-th sample is stored; the final one always is.
func (s *Store) Save(meta RunMetadata, tr *trace.Trace, stride int) (string, error) {
	if stride < 1 {
		stride = 1
	}
	if meta.Name == "" {
		meta.Name = "run"
	}
	now := time.Now()
	runID, runDir, err := s.newRunDir(meta.Name, now)
	if err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Samples = len(export.Rows(tr.Len(), stride))
	meta.Stride = stride
	meta.Metrics = tr.Metrics
	meta.Diagnostics = tr.Diagnostics

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, traceFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := export.CSV(csvFile, tr, stride); err != nil {
		return "", fmt.Errorf("write trace: %w", err)
	}
	return runID, nil
}

func (s *Store) newRunDir(name string, now time.Time) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	base := fmt.Sprintf("%s_%s", name, now.Format("20060102-150405"))
	for i := 0; ; i++ {
		id := base
		if i > 0 {
			id = fmt.Sprintf("%s-%d", base, i)
		}
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", err
		}
	}
}

// List returns the stored runs, newest first. Directories without readable
// metadata are skipped.
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

	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID > runs[j].ID
		}
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("metadata of %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadTrace reads the stored samples of a run, with its metrics and
// diagnostics attached.
func (s *Store) LoadTrace(runID string) (*trace.Trace, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.baseDir, runID, traceFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tr, err := export.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("trace of %s: %w", runID, err)
	}
	for k, v := range meta.Metrics {
		tr.Metrics[k] = v
	}
	tr.Diagnostics = meta.Diagnostics
	return tr, nil
}
