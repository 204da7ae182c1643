// Package extract stages engine results for a finished run into the output
// directory. Decoding the engine's numeric formats is out of scope; staging
// moves files and records a manifest.
package extract

import (
	"context"
	"time"

	"github.com/dongqi-wu/reisego/core/factory"
)

// Request identifies the run whose results should be staged.
type Request struct {
	InputDir        string
	Start           time.Time
	End             time.Time
	ScenarioID      string
	OutputDir       string
	KeepEngineFiles bool
}

// Extractor stages the results of one run.
type Extractor interface {
	Extract(ctx context.Context, req Request) error
}

var extractorRegistry = factory.NewRegistry[Extractor]()

// RegisterExtractor adds an extractor factory identified by name.
func RegisterExtractor(name string, f factory.Factory[Extractor]) error {
	return extractorRegistry.Register(name, f)
}

// NewExtractor creates an Extractor from the provided configuration.
func NewExtractor(cfg factory.ModuleConfig) (Extractor, error) {
	return extractorRegistry.Create(cfg)
}
