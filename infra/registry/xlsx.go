package registry

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dongqi-wu/reisego/core/model"
	coreregistry "github.com/dongqi-wu/reisego/core/registry"
)

// XLSXStore reads scenario definitions from the first sheet of an Excel
// workbook. The sheet carries the same header row as the CSV list; operators
// who maintain the scenario list in a spreadsheet can point the tool at the
// workbook directly.
type XLSXStore struct {
	path string
}

// NewXLSXStore returns a store over the given workbook.
func NewXLSXStore(path string) (*XLSXStore, error) {
	if path == "" {
		return nil, fmt.Errorf("scenario workbook path is required")
	}
	return &XLSXStore{path: path}, nil
}

// Get returns the scenario tuple recorded under id.
func (s *XLSXStore) Get(ctx context.Context, id string) (model.Scenario, error) {
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

// List returns every row of the workbook's first sheet.
func (s *XLSXStore) List(ctx context.Context) ([]model.Scenario, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open scenario workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("scenario workbook %s has no sheets", s.path)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read scenario workbook: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("scenario workbook %s is empty", s.path)
	}

	idx, err := headerIndex(rows[0], colID, colStartDate, colEndDate, colInterval, colInputDir)
	if err != nil {
		return nil, fmt.Errorf("scenario workbook %s: %w", s.path, err)
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
