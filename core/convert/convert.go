// Package convert triggers input-format conversion on a scenario input
// directory so the simulation engine finds profiles in the layout it reads.
// The conversion itself runs out-of-process; this package only owns the
// contract and the backend registry.
package convert

import (
	"context"

	"github.com/dongqi-wu/reisego/core/factory"
)

// Converter prepares the input directory for the engine.
type Converter interface {
	Convert(ctx context.Context, inputDir string) error
}

// NopConverter leaves the input directory untouched, for scenarios whose
// profiles already sit in engine format.
type NopConverter struct{}

func (NopConverter) Convert(context.Context, string) error { return nil }

var converterRegistry = factory.NewRegistry[Converter]()

// RegisterConverter adds a converter factory identified by name.
func RegisterConverter(name string, f factory.Factory[Converter]) error {
	return converterRegistry.Register(name, f)
}

// NewConverter creates a Converter from the provided configuration.
func NewConverter(cfg factory.ModuleConfig) (Converter, error) {
	return converterRegistry.Create(cfg)
}
