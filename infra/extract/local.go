// Package extract implements result staging on the local filesystem.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	coreextract "github.com/dongqi-wu/reisego/core/extract"
	"github.com/dongqi-wu/reisego/infra/logger"
)

// engineOutputDir is where the engine drops its per-interval results,
// relative to the scenario input directory.
const engineOutputDir = "output"

// resultPattern matches the engine's per-interval result files.
const resultPattern = "result_*.mat"

// manifestName is the staging manifest written next to the staged results.
const manifestName = "extraction.json"

// Manifest records what one extraction staged.
type Manifest struct {
	ScenarioID      string    `json:"scenario_id,omitempty"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	Files           []string  `json:"files"`
	KeptEngineFiles bool      `json:"kept_engine_files"`
	ExtractedAt     time.Time `json:"extracted_at"`
}

// LocalExtractor copies engine results into the output directory, writes the
// staging manifest and, unless told otherwise, removes the intermediate
// engine files.
type LocalExtractor struct {
	log logger.Logger
}

// NewLocalExtractor returns a filesystem extractor.
func NewLocalExtractor() *LocalExtractor {
	return &LocalExtractor{log: logger.New("extract")}
}

func (e *LocalExtractor) Extract(ctx context.Context, req coreextract.Request) error {
	if req.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	executeDir := filepath.Join(req.InputDir, engineOutputDir)
	results, err := filepath.Glob(filepath.Join(executeDir, resultPattern))
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no engine results in %s", executeDir)
	}
	sort.Strings(results)

	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return fmt.Errorf("output dir: %w", err)
	}

	staged := make([]string, 0, len(results))
	for _, src := range results {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := filepath.Base(src)
		if err := copyFile(src, filepath.Join(req.OutputDir, name)); err != nil {
			return fmt.Errorf("stage %s: %w", name, err)
		}
		staged = append(staged, name)
	}
	e.log.Infof("staged %d result files into %s", len(staged), req.OutputDir)

	if err := e.writeManifest(req, staged); err != nil {
		return err
	}

	if !req.KeepEngineFiles {
		for _, src := range results {
			if err := os.Remove(src); err != nil {
				return fmt.Errorf("remove engine file: %w", err)
			}
		}
		e.log.Debugf("removed %d intermediate files from %s", len(results), executeDir)
	}
	return nil
}

func (e *LocalExtractor) writeManifest(req coreextract.Request, files []string) error {
	m := Manifest{
		ScenarioID:      req.ScenarioID,
		Start:           req.Start,
		End:             req.End,
		Files:           files,
		KeptEngineFiles: req.KeepEngineFiles,
		ExtractedAt:     time.Now().UTC(),
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(req.OutputDir, manifestName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
