// Package launcher defines the contract between the orchestrator and the
// simulation engine. Concrete launchers are registered per solver name and
// constructed with the resolved run parameters; the orchestrator only sees
// Launch and the wall-clock result.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dongqi-wu/reisego/core/logger"
	"github.com/dongqi-wu/reisego/core/model"
	"github.com/dongqi-wu/reisego/internal/eventbus"
)

// DefaultSolver is used when no solver is requested.
const DefaultSolver = "gurobi"

// ErrUnknownSolver reports a solver name with no registered launcher.
var ErrUnknownSolver = errors.New("unknown solver")

// Params carries the resolved run parameters a launcher is constructed with.
// Threads and JuliaEnv are forwarded to the engine untouched; zero values
// mean "let the engine decide".
type Params struct {
	ScenarioID string
	Start      time.Time
	End        time.Time
	IntervalH  int
	InputDir   string
	ExecuteDir string
	Threads    int
	JuliaEnv   string
}

// Segments returns the number of simulation intervals in the span.
func (p Params) Segments() int {
	if p.IntervalH <= 0 {
		return 0
	}
	return int(p.End.Sub(p.Start).Hours()) / p.IntervalH
}

// Progress is published once per completed simulation interval.
type Progress struct {
	ScenarioID string
	Interval   int
	Total      int
	Elapsed    time.Duration
}

// Result is what a completed launch reports back.
type Result struct {
	Runtime   time.Duration
	Intervals []model.IntervalTiming
	Warnings  []string
}

// Launcher runs one simulation to completion.
type Launcher interface {
	Launch(ctx context.Context) (Result, error)
}

// Deps carries the collaborators shared by launcher backends. Any field may
// be left zero.
type Deps struct {
	JuliaBin string
	Progress *eventbus.Bus[Progress]
	Log      logger.Logger
}

// Factory builds a launcher for the given parameters.
type Factory func(p Params, deps Deps) (Launcher, error)

var (
	mu      sync.RWMutex
	solvers = map[string]Factory{}
)

// Register adds a launcher factory under the given solver name. Names are
// matched case-insensitively.
func Register(name string, f Factory) error {
	if f == nil {
		return fmt.Errorf("launcher factory nil for %s", name)
	}
	key := strings.ToLower(name)
	mu.Lock()
	defer mu.Unlock()
	if _, ok := solvers[key]; ok {
		return fmt.Errorf("launcher already registered for %s", key)
	}
	solvers[key] = f
	return nil
}

// New constructs the launcher registered under solver. An empty solver name
// selects DefaultSolver.
func New(solver string, p Params, deps Deps) (Launcher, error) {
	key := strings.ToLower(strings.TrimSpace(solver))
	if key == "" {
		key = DefaultSolver
	}
	mu.RLock()
	f, ok := solvers[key]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q, available: %s", ErrUnknownSolver, solver, strings.Join(Solvers(), ", "))
	}
	return f(p, deps)
}

// Solvers returns the registered solver names, sorted.
func Solvers() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(solvers))
	for n := range solvers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
