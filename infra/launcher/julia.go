// Package launcher runs REISE simulations through the julia interpreter.
// Solver flavors differ only in the julia package that provides the
// optimizer, so one launcher covers them all.
package launcher

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	corelauncher "github.com/dongqi-wu/reisego/core/launcher"
	"github.com/dongqi-wu/reisego/core/model"
	"github.com/dongqi-wu/reisego/infra/logger"
)

// requiredProfiles are the engine-readable inputs the converter must have
// produced before a launch makes sense.
var requiredProfiles = []string{"demand.csv", "hydro.csv", "solar.csv", "wind.csv"}

const stderrTailLines = 5

// JuliaLauncher shells out to julia and feeds the run parameters to
// REISE.run_scenario. Engine stdout is scanned live for interval progress
// and infeasibility warnings.
type JuliaLauncher struct {
	params  corelauncher.Params
	deps    corelauncher.Deps
	pkg     string
	factory string
	log     logger.Logger
}

func newJuliaLauncher(pkg, factory string, p corelauncher.Params, deps corelauncher.Deps) (*JuliaLauncher, error) {
	if p.IntervalH <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %d", p.IntervalH)
	}
	if p.InputDir == "" {
		return nil, fmt.Errorf("input directory is required")
	}
	if p.ExecuteDir == "" {
		p.ExecuteDir = filepath.Join(p.InputDir, "output")
	}
	log := deps.Log
	if log == nil {
		log = logger.New("launcher")
	}
	return &JuliaLauncher{params: p, deps: deps, pkg: pkg, factory: factory, log: log}, nil
}

// Launch runs the simulation to completion and reports the wall-clock
// runtime, rounded to whole seconds.
func (l *JuliaLauncher) Launch(ctx context.Context) (corelauncher.Result, error) {
	if err := l.preflight(); err != nil {
		return corelauncher.Result{}, err
	}
	if err := os.MkdirAll(l.params.ExecuteDir, 0o755); err != nil {
		return corelauncher.Result{}, fmt.Errorf("execute dir: %w", err)
	}

	bin := l.deps.JuliaBin
	if bin == "" {
		bin = "julia"
	}
	args := l.args()
	l.log.Infof("launching %s for %d intervals of %dH", bin, l.params.Segments(), l.params.IntervalH)
	l.log.Debugf("engine command: %s %s", bin, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Env = os.Environ()
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return corelauncher.Result{}, err
	}
	var stderr strings.Builder
	cmd.Stderr = &stderr

	scan := newOutputScanner(time.Now, l.publish)
	start := time.Now()
	if err := cmd.Start(); err != nil {
		return corelauncher.Result{}, fmt.Errorf("start engine: %w", err)
	}

	lines := bufio.NewScanner(stdout)
	lines.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lines.Scan() {
		line := lines.Text()
		l.log.Debugf("engine: %s", line)
		scan.Line(line)
	}
	readErr := lines.Err()
	waitErr := cmd.Wait()
	runtime := time.Since(start).Round(time.Second)
	intervals, warnings := scan.Finish()

	if waitErr == nil {
		waitErr = readErr
	}
	if waitErr != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return corelauncher.Result{}, fmt.Errorf("engine: %w: %s", waitErr, tail(msg, stderrTailLines))
		}
		return corelauncher.Result{}, fmt.Errorf("engine: %w", waitErr)
	}
	for _, w := range warnings {
		l.log.Warnf("engine reported: %s", w)
	}
	return corelauncher.Result{Runtime: runtime, Intervals: intervals, Warnings: warnings}, nil
}

// preflight fails fast when the input directory holds no engine-readable
// profiles, before any status is written or julia starts.
func (l *JuliaLauncher) preflight() error {
	info, err := os.Stat(l.params.InputDir)
	if err != nil {
		return fmt.Errorf("input directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("input directory %s: not a directory", l.params.InputDir)
	}
	var missing []string
	for _, name := range requiredProfiles {
		if _, err := os.Stat(filepath.Join(l.params.InputDir, name)); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("input directory %s: missing profiles: %s",
			l.params.InputDir, strings.Join(missing, ", "))
	}
	return nil
}

func (l *JuliaLauncher) args() []string {
	var args []string
	if l.params.JuliaEnv != "" {
		args = append(args, "--project="+l.params.JuliaEnv)
	}
	return append(args, "-e", l.script())
}

// script renders the REISE.run_scenario call. start_index is the 1-based
// index of the first interval within the profile year.
func (l *JuliaLauncher) script() string {
	p := l.params
	var b strings.Builder
	fmt.Fprintf(&b, "using %s; using REISE; ", l.pkg)
	fmt.Fprintf(&b, "REISE.run_scenario(; interval=%d, n_interval=%d, start_index=%d, inputfolder=%q, outputfolder=%q",
		p.IntervalH, p.Segments(), l.startIndex(), p.InputDir, p.ExecuteDir)
	if p.Threads > 0 {
		fmt.Fprintf(&b, ", threads=%d", p.Threads)
	}
	fmt.Fprintf(&b, ", optimizer_factory=%s)", l.factory)
	return b.String()
}

func (l *JuliaLauncher) startIndex() int {
	yearStart := time.Date(l.params.Start.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return int(l.params.Start.Sub(yearStart).Hours())/l.params.IntervalH + 1
}

func (l *JuliaLauncher) publish(t model.IntervalTiming) {
	if l.deps.Progress == nil {
		return
	}
	l.deps.Progress.Publish(corelauncher.Progress{
		ScenarioID: l.params.ScenarioID,
		Interval:   t.Interval,
		Total:      l.params.Segments(),
		Elapsed:    time.Duration(t.Seconds * float64(time.Second)),
	})
}

func tail(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
