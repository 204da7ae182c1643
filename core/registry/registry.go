package registry

import (
	"context"
	"errors"

	"github.com/dongqi-wu/reisego/core/model"
)

// ErrScenarioNotFound is returned when the registry has no row for the id.
var ErrScenarioNotFound = errors.New("scenario not found")

// ScenarioStore reads scenario definitions from the registry. The registry
// storage is owned externally; implementations only honor the lookup
// contract.
type ScenarioStore interface {
	// Get returns the scenario tuple recorded under id.
	Get(ctx context.Context, id string) (model.Scenario, error)
	// List returns every scenario the registry knows about.
	List(ctx context.Context) ([]model.Scenario, error)
}
