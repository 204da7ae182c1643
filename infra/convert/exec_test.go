package convert

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	coreconvert "github.com/dongqi-wu/reisego/core/convert"
	"github.com/dongqi-wu/reisego/core/factory"
)

func TestExecConverterRuns(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "converted")
	conv, err := NewExecConverter([]string{"sh", "-c", `touch "$0/converted"`})
	if err != nil {
		t.Fatalf("new converter: %v", err)
	}
	if err := conv.Convert(context.Background(), dir); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if _, err := os.Stat(marker); err != nil {
		t.Fatalf("command did not receive the input dir: %v", err)
	}
}

func TestExecConverterSurfacesOutput(t *testing.T) {
	conv, err := NewExecConverter([]string{"sh", "-c", "echo no such profile >&2; exit 3"})
	if err != nil {
		t.Fatalf("new converter: %v", err)
	}
	err = conv.Convert(context.Background(), t.TempDir())
	if err == nil {
		t.Fatal("expected failure")
	}
	if !strings.Contains(err.Error(), "no such profile") {
		t.Fatalf("command output not surfaced: %v", err)
	}
}

func TestExecConverterMissingInputDir(t *testing.T) {
	conv, err := NewExecConverter([]string{"true"})
	if err != nil {
		t.Fatalf("new converter: %v", err)
	}
	if err := conv.Convert(context.Background(), filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing input dir")
	}
}

func TestExecConverterRequiresCommand(t *testing.T) {
	if _, err := NewExecConverter(nil); err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestConverterFactory(t *testing.T) {
	conv, err := coreconvert.NewConverter(factory.ModuleConfig{Type: "nop"})
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	if err := conv.Convert(context.Background(), "anywhere"); err != nil {
		t.Fatalf("nop convert: %v", err)
	}
	if _, err := coreconvert.NewConverter(factory.ModuleConfig{Type: "magic"}); err == nil {
		t.Fatal("expected unknown type error")
	}
}
