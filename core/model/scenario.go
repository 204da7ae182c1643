package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrMissingArguments is returned when the run parameters are incomplete after
// scenario resolution.
var ErrMissingArguments = errors.New(
	"the following arguments are required: start-date, end-date, interval, input-dir")

// Status values recorded in the execute tracking store.
const (
	StatusRunning  = "running"
	StatusFinished = "finished"
	StatusFailed   = "failed"
)

// Scenario is one row of the scenario registry: the parameters needed to run
// a simulation, keyed by its identifier. The registry owns the storage; this
// type only carries the tuple.
type Scenario struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Interval  string `json:"interval"`
	InputDir  string `json:"input_dir"`
}

// RunParams are the fully resolved parameters of one simulation run. They are
// assembled once from CLI flags and, when a scenario id is present, the
// registry tuple; nothing mutates them afterwards.
type RunParams struct {
	ScenarioID  string
	StartDate   string
	EndDate     string
	Interval    string
	InputDir    string
	OutputDir   string
	Solver      string
	Threads     int
	JuliaEnv    string
	ExtractData bool
	KeepMatlab  bool
}

// Validate checks that the required parameters survived resolution.
// The required set matches the original tooling: start date, end date,
// interval and input directory.
func (p RunParams) Validate() error {
	if p.StartDate == "" || p.EndDate == "" || p.Interval == "" || p.InputDir == "" {
		return ErrMissingArguments
	}
	if _, err := ParseDate(p.StartDate); err != nil {
		return fmt.Errorf("start-date: %w", err)
	}
	if _, err := ParseDate(p.EndDate); err != nil {
		return fmt.Errorf("end-date: %w", err)
	}
	if _, err := ParseInterval(p.Interval); err != nil {
		return err
	}
	return nil
}

// Span returns the simulated time range. A date-only end bound means the whole
// end day is simulated, so the upper bound is midnight of the following day.
func (p RunParams) Span() (start, end time.Time, err error) {
	start, err = ParseDate(p.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start-date: %w", err)
	}
	end, err = ParseDate(p.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end-date: %w", err)
	}
	if DateOnly(p.EndDate) {
		end = end.Add(24 * time.Hour)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end-date %q not after start-date %q", p.EndDate, p.StartDate)
	}
	return start, end, nil
}

// Segments derives how many solver intervals the run spans. The span must be
// an exact multiple of the interval.
func (p RunParams) Segments() (int, error) {
	start, end, err := p.Span()
	if err != nil {
		return 0, err
	}
	iv, err := ParseInterval(p.Interval)
	if err != nil {
		return 0, err
	}
	hours := int(end.Sub(start) / time.Hour)
	if hours%iv != 0 {
		return 0, fmt.Errorf("%d hour span is not a multiple of interval %s", hours, p.Interval)
	}
	return hours / iv, nil
}

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// ParseDate accepts "YYYY-MM-DD" or "YYYY-MM-DD HH:MM:SS" in UTC.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateLayout, s, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(dateTimeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD or YYYY-MM-DD HH:MM:SS", s)
	}
	return t, nil
}

// DateOnly reports whether s is a date without a time component.
func DateOnly(s string) bool {
	return !strings.Contains(s, " ")
}

var intervalRe = regexp.MustCompile(`^([1-9][0-9]*)H$`)

// ParseInterval parses the registry interval notation, e.g. "24H", and
// returns the interval length in hours.
func ParseInterval(s string) (int, error) {
	m := intervalRe.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if m == nil {
		return 0, fmt.Errorf("invalid interval %q, want e.g. \"24H\"", s)
	}
	h, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("invalid interval %q: %w", s, err)
	}
	return h, nil
}
