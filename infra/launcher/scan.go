package launcher

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dongqi-wu/reisego/core/model"
)

// The engine prints one header line per simulation interval. Elapsed wall
// time between headers is attributed to the interval that just finished;
// lines mentioning infeasibility are collected as warnings.
var (
	intervalPattern   = regexp.MustCompile(`(?i)^\s*interval\s+(\d+)`)
	infeasiblePattern = regexp.MustCompile(`(?i)infeasib`)
)

// outputScanner folds engine stdout into per-interval timings and warnings.
// onInterval, when set, fires as each interval closes.
type outputScanner struct {
	now        func() time.Time
	onInterval func(model.IntervalTiming)

	current   int
	startedAt time.Time
	intervals []model.IntervalTiming
	warnings  []string
}

func newOutputScanner(now func() time.Time, onInterval func(model.IntervalTiming)) *outputScanner {
	if now == nil {
		now = time.Now
	}
	return &outputScanner{now: now, onInterval: onInterval}
}

// Line consumes one line of engine output.
func (s *outputScanner) Line(line string) {
	if m := intervalPattern.FindStringSubmatch(line); m != nil {
		if idx, err := strconv.Atoi(m[1]); err == nil {
			s.closeCurrent()
			s.current = idx
			s.startedAt = s.now()
		}
		return
	}
	if infeasiblePattern.MatchString(line) {
		s.warnings = append(s.warnings, strings.TrimSpace(line))
	}
}

// Finish closes the running interval and returns the collected timings and
// warnings.
func (s *outputScanner) Finish() ([]model.IntervalTiming, []string) {
	s.closeCurrent()
	return s.intervals, s.warnings
}

func (s *outputScanner) closeCurrent() {
	if s.current == 0 {
		return
	}
	t := model.IntervalTiming{
		Interval: s.current,
		Seconds:  s.now().Sub(s.startedAt).Seconds(),
	}
	s.intervals = append(s.intervals, t)
	if s.onInterval != nil {
		s.onInterval(t)
	}
	s.current = 0
}
