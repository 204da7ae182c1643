package tracking

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// CSVTracker updates the flat-file execute and scenario lists in place.
// Status writes land in the execute list, runtime writes in the scenario
// list. Every update rewrites the file through a temp file in the same
// directory and keeps the previous content under <file>.bak, matching the
// in-place edit the server-side tooling performs.
type CSVTracker struct {
	mu           sync.Mutex
	executeList  string
	scenarioList string
}

// NewCSVTracker wires the tracker to the two list files. The files are not
// opened until the first read or write.
func NewCSVTracker(executeList, scenarioList string) *CSVTracker {
	return &CSVTracker{executeList: executeList, scenarioList: scenarioList}
}

func (t *CSVTracker) UpdateStatus(_ context.Context, scenarioID, status string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return setColumn(t.executeList, scenarioID, "status", status)
}

func (t *CSVTracker) UpdateRuntime(_ context.Context, scenarioID, runtime string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return setColumn(t.scenarioList, scenarioID, "runtime", runtime)
}

func (t *CSVTracker) Status(_ context.Context, scenarioID string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return getColumn(t.executeList, scenarioID, "status")
}

func (t *CSVTracker) Runtime(_ context.Context, scenarioID string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return getColumn(t.scenarioList, scenarioID, "runtime")
}

func (t *CSVTracker) Close() error { return nil }

func readList(path string) ([]byte, [][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%s: empty file", path)
	}
	return data, rows, nil
}

func columnIndex(path string, header []string, column string) (int, error) {
	for i, name := range header {
		if name == column {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%s: no %q column", path, column)
}

// setColumn rewrites path with the named column of the row whose first field
// equals scenarioID replaced by value. Rows are addressed by the leading id
// column only.
func setColumn(path, scenarioID, column, value string) error {
	data, rows, err := readList(path)
	if err != nil {
		return err
	}
	col, err := columnIndex(path, rows[0], column)
	if err != nil {
		return err
	}
	found := false
	for i := 1; i < len(rows); i++ {
		if len(rows[i]) == 0 || rows[i][0] != scenarioID {
			continue
		}
		for len(rows[i]) <= col {
			rows[i] = append(rows[i], "")
		}
		rows[i][col] = value
		found = true
	}
	if !found {
		return fmt.Errorf("%s: no row for scenario %s", path, scenarioID)
	}
	if err := os.WriteFile(path+".bak", data, 0o644); err != nil {
		return fmt.Errorf("backup %s: %w", path, err)
	}
	return writeList(path, rows)
}

func getColumn(path, scenarioID, column string) (string, error) {
	_, rows, err := readList(path)
	if err != nil {
		return "", err
	}
	col, err := columnIndex(path, rows[0], column)
	if err != nil {
		return "", err
	}
	for i := 1; i < len(rows); i++ {
		if len(rows[i]) > col && rows[i][0] == scenarioID {
			return rows[i][col], nil
		}
	}
	return "", nil
}

func writeList(path string, rows [][]string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("temp file in %s: %w", dir, err)
	}
	w := csv.NewWriter(tmp)
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if info, err := os.Stat(path); err == nil {
		_ = os.Chmod(tmp.Name(), info.Mode())
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
