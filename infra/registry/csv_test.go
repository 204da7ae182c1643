package registry

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dongqi-wu/reisego/core/factory"
	coreregistry "github.com/dongqi-wu/reisego/core/registry"
)

const scenarioList = `id,name,status,interval,start_date,end_date,input_dir,runtime
87,usa_2016,created,24H,2016-01-01,2016-12-31,/data/scenarios/87,
104,western_q1,created,24H,2016-01-01,2016-03-31,/data/scenarios/104,
`

func writeList(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ScenarioList.csv")
	if err := os.WriteFile(path, []byte(scenarioList), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}
	return path
}

func TestCSVStoreGet(t *testing.T) {
	store, err := NewCSVStore(writeList(t))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	sc, err := store.Get(context.Background(), "87")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sc.StartDate != "2016-01-01" || sc.EndDate != "2016-12-31" ||
		sc.Interval != "24H" || sc.InputDir != "/data/scenarios/87" {
		t.Fatalf("unexpected tuple %+v", sc)
	}
	if sc.Name != "usa_2016" {
		t.Fatalf("expected name, got %+v", sc)
	}
}

func TestCSVStoreNotFound(t *testing.T) {
	store, err := NewCSVStore(writeList(t))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	_, err = store.Get(context.Background(), "999")
	if !errors.Is(err, coreregistry.ErrScenarioNotFound) {
		t.Fatalf("expected ErrScenarioNotFound, got %v", err)
	}
}

func TestCSVStoreList(t *testing.T) {
	store, err := NewCSVStore(writeList(t))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	scenarios, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(scenarios) != 2 {
		t.Fatalf("expected 2 scenarios got %d", len(scenarios))
	}
}

func TestCSVStoreMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ScenarioList.csv")
	if err := os.WriteFile(path, []byte("id,name\n87,x\n"), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}
	store, err := NewCSVStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.Get(context.Background(), "87"); err == nil {
		t.Fatal("expected error for missing columns")
	}
}

func TestStoreFactoryCSV(t *testing.T) {
	store, err := coreregistry.NewStore(factory.ModuleConfig{
		Type: "csv",
		Conf: map[string]any{"path": writeList(t)},
	})
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	if _, ok := store.(*CSVStore); !ok {
		t.Fatalf("expected *CSVStore got %T", store)
	}
}

func TestStoreFactoryUnknown(t *testing.T) {
	if _, err := coreregistry.NewStore(factory.ModuleConfig{Type: "ftp"}); err == nil {
		t.Fatal("expected unknown type error")
	}
}
