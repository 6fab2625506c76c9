// Package storage persists completed runs as plain files: one directory
// per run holding metadata.json, the node coordinates, the snapshot log
// and the receiver traces as CSV.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/wavesim/internal/config"
	"github.com/san-kum/wavesim/internal/solver"
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

// RunMetadata is the queryable summary of a stored run.
type RunMetadata struct {
	ID          string    `json:"id"`
	Scenario    string    `json:"scenario"`
	Timestamp   time.Time `json:"timestamp"`
	Scheme      string    `json:"scheme"`
	MassScheme  string    `json:"mass_scheme"`
	Boundary    string    `json:"boundary"`
	Wavelet     string    `json:"wavelet"`
	Dt          float64   `json:"dt"`
	Steps       int       `json:"steps"`
	DOFs        int       `json:"dofs"`
	Snapshots   int       `json:"snapshots"`
	FinalEnergy float64   `json:"final_energy"`
}

// StoredRun is a fully loaded run.
type StoredRun struct {
	Meta      RunMetadata
	Coords    []float64
	Snapshots []solver.Snapshot
	TraceDOFs []int
	Traces    [][]float64
}

// Save writes one run directory named <scenario>_<unixtime> and returns
// its ID.
func (s *Store) Save(cfg *config.Config, coords []float64, dt float64, res *solver.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", cfg.Scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Scenario:    cfg.Scenario,
		Timestamp:   time.Now(),
		Scheme:      cfg.Scheme,
		MassScheme:  cfg.MassScheme,
		Boundary:    cfg.Boundary,
		Wavelet:     cfg.Wavelet,
		Dt:          dt,
		Steps:       res.StepsTaken,
		DOFs:        len(coords),
		Snapshots:   len(res.Snapshots),
		FinalEnergy: res.FinalEnergy,
	}
	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeCoords(filepath.Join(runDir, "coords.csv"), coords); err != nil {
		return "", err
	}
	if err := writeSnapshots(filepath.Join(runDir, "snapshots.csv"), len(coords), res.Snapshots); err != nil {
		return "", err
	}
	if len(res.TraceDOFs) > 0 {
		if err := writeTraces(filepath.Join(runDir, "receivers.csv"), dt, res.TraceDOFs, res.Traces); err != nil {
			return "", err
		}
	}
	return runID, nil
}

// List returns the metadata of every stored run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.LoadMetadata(e.Name())
		if err != nil {
			continue // skip foreign directories
		}
		runs = append(runs, meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) LoadMetadata(runID string) (RunMetadata, error) {
	var meta RunMetadata
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("run %s: %w", runID, err)
	}
	return meta, nil
}

// Load reads a run back in full.
func (s *Store) Load(runID string) (*StoredRun, error) {
	meta, err := s.LoadMetadata(runID)
	if err != nil {
		return nil, err
	}
	runDir := filepath.Join(s.baseDir, runID)

	coords, err := readCoords(filepath.Join(runDir, "coords.csv"))
	if err != nil {
		return nil, err
	}
	snaps, err := readSnapshots(filepath.Join(runDir, "snapshots.csv"))
	if err != nil {
		return nil, err
	}

	run := &StoredRun{Meta: meta, Coords: coords, Snapshots: snaps}

	tracePath := filepath.Join(runDir, "receivers.csv")
	if _, err := os.Stat(tracePath); err == nil {
		run.TraceDOFs, run.Traces, err = readTraces(tracePath)
		if err != nil {
			return nil, err
		}
	}
	return run, nil
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

func writeCoords(path string, coords []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write([]string{"x"}); err != nil {
		return err
	}
	for _, x := range coords {
		if err := w.Write([]string{formatFloat(x)}); err != nil {
			return err
		}
	}
	return nil
}

func writeSnapshots(path string, ng int, snaps []solver.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"step", "time", "energy"}
	for i := 0; i < ng; i++ {
		header = append(header, fmt.Sprintf("u%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, snap := range snaps {
		row := make([]string, 0, ng+3)
		row = append(row, strconv.Itoa(snap.Step), formatFloat(snap.Time), formatFloat(snap.Energy))
		for _, v := range snap.Field {
			row = append(row, formatFloat(v))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeTraces(path string, dt float64, dofs []int, traces [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"time"}
	for _, dof := range dofs {
		header = append(header, fmt.Sprintf("r%d", dof))
	}
	if err := w.Write(header); err != nil {
		return err
	}
	if len(traces) == 0 {
		return nil
	}
	for i := range traces[0] {
		row := make([]string, 0, len(traces)+1)
		row = append(row, formatFloat(float64(i+1)*dt))
		for _, tr := range traces {
			row = append(row, formatFloat(tr[i]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func readCoords(path string) ([]float64, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	coords := make([]float64, 0, len(rows))
	for _, row := range rows[1:] {
		x, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		coords = append(coords, x)
	}
	return coords, nil
}

func readSnapshots(path string) ([]solver.Snapshot, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	snaps := make([]solver.Snapshot, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 3 {
			return nil, fmt.Errorf("%s: short row", path)
		}
		step, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		tm, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		energy, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		field := make(solver.Field, len(row)-3)
		for i, cell := range row[3:] {
			if field[i], err = strconv.ParseFloat(cell, 64); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
		snaps = append(snaps, solver.Snapshot{Step: step, Time: tm, Energy: energy, Field: field})
	}
	return snaps, nil
}

func readTraces(path string) ([]int, [][]float64, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	header := rows[0]
	dofs := make([]int, 0, len(header)-1)
	for _, name := range header[1:] {
		dof, err := strconv.Atoi(strings.TrimPrefix(name, "r"))
		if err != nil {
			return nil, nil, fmt.Errorf("%s: bad receiver column %q", path, name)
		}
		dofs = append(dofs, dof)
	}
	traces := make([][]float64, len(dofs))
	for _, row := range rows[1:] {
		for i, cell := range row[1:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", path, err)
			}
			traces[i] = append(traces[i], v)
		}
	}
	return dofs, traces, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return csv.NewReader(f).ReadAll()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 12, 64)
}
