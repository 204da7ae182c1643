package registry

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/dongqi-wu/reisego/core/model"
	coreregistry "github.com/dongqi-wu/reisego/core/registry"
)

// Column names of the scenario list. Extra columns are preserved but ignored
// here; the tracking store owns the runtime column.
const (
	colID        = "id"
	colName      = "name"
	colStartDate = "start_date"
	colEndDate   = "end_date"
	colInterval  = "interval"
	colInputDir  = "input_dir"
)

// CSVStore reads scenario definitions from a flat CSV list with a header row.
type CSVStore struct {
	path string
}

// NewCSVStore returns a store over the given scenario list file. The file is
// re-read on every lookup so external edits are picked up.
func NewCSVStore(path string) (*CSVStore, error) {
	if path == "" {
		return nil, fmt.Errorf("scenario list path is required")
	}
	return &CSVStore{path: path}, nil
}

// Get returns the scenario tuple recorded under id.
func (s *CSVStore) Get(ctx context.Context, id string) (model.Scenario, error) {
	scenarios, err := s.List(ctx)
	if err != nil {
		return model.Scenario{}, err
	}
	for _, sc := range scenarios {
		if sc.ID == id {
			return sc, nil
		}
	}
	return model.Scenario{}, fmt.Errorf("scenario %s: %w", id, coreregistry.ErrScenarioNotFound)
}

// List returns every row of the scenario list.
func (s *CSVStore) List(ctx context.Context) ([]model.Scenario, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open scenario list: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read scenario list: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("scenario list %s is empty", s.path)
	}

	idx, err := headerIndex(rows[0], colID, colStartDate, colEndDate, colInterval, colInputDir)
	if err != nil {
		return nil, fmt.Errorf("scenario list %s: %w", s.path, err)
	}
	var out []model.Scenario
	for _, row := range rows[1:] {
		sc := model.Scenario{
			ID:        field(row, idx[colID]),
			StartDate: field(row, idx[colStartDate]),
			EndDate:   field(row, idx[colEndDate]),
			Interval:  field(row, idx[colInterval]),
			InputDir:  field(row, idx[colInputDir]),
		}
		if i, ok := optionalIndex(rows[0], colName); ok {
			sc.Name = field(row, i)
		}
		if sc.ID == "" {
			continue
		}
		out = append(out, sc)
	}
	return out, nil
}

// headerIndex maps required column names to their positions.
func headerIndex(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}
	return idx, nil
}

func optionalIndex(header []string, col string) (int, bool) {
	for i, h := range header {
		if h == col {
			return i, true
		}
	}
	return 0, false
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
