// Package schedule runs recurring background tasks inside the server
// process. Tasks register with an interval or a 5-field cron expression;
// the loop ticks every second and dispatches whatever is due.
//
//	schedule.Every(15 * time.Minute).Name("stock-gauge").Run(refreshGauge)
//	schedule.Cron("0 3 * * *").Name("sales-report").Run(exportReport)
//	schedule.Start(ctx)
package schedule

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spectraretail/spectra-pos/pkg/logger"
)

// Task is a scheduled function.
type Task func()

type entry struct {
	id        string
	interval  time.Duration
	cronExpr  string
	task      Task
	lastRun   time.Time
	running   bool
	noOverlap bool
	mu        sync.Mutex
}

// Builder configures one entry before registration.
type Builder struct {
	e *entry
}

var (
	regMu   sync.Mutex
	entries []*entry
)

// Every schedules a task on a fixed interval. The first run fires on the
// next tick after Start.
func Every(interval time.Duration) *Builder {
	return &Builder{e: &entry{interval: interval}}
}

// Cron schedules with a 5-field expression: minute hour dom month dow.
// Fields accept *, a number, */step, or a-b ranges.
func Cron(expr string) *Builder {
	return &Builder{e: &entry{cronExpr: expr}}
}

// Name sets the identifier used in logs and the CLI listing.
func (b *Builder) Name(id string) *Builder {
	b.e.id = id
	return b
}

// WithoutOverlapping skips a run while the previous one is still going.
func (b *Builder) WithoutOverlapping() *Builder {
	b.e.noOverlap = true
	return b
}

// Run registers the task. Start dispatches it.
func (b *Builder) Run(fn Task) {
	b.e.task = fn

	regMu.Lock()
	defer regMu.Unlock()
	if b.e.id == "" {
		b.e.id = fmt.Sprintf("task-%d", len(entries)+1)
	}
	entries = append(entries, b.e)
}

// Start launches the dispatch loop. It returns immediately and stops when
// ctx is cancelled.
func Start(ctx context.Context) {
	go loop(ctx)
	logger.Info("scheduler started")
}

func loop(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("scheduler stopped")
			return
		case now := <-ticker.C:
			regMu.Lock()
			current := append([]*entry(nil), entries...)
			regMu.Unlock()

			for _, e := range current {
				if e.due(now) {
					e.dispatch()
				}
			}
		}
	}
}

func (e *entry) due(now time.Time) bool {
	e.mu.Lock()
	last := e.lastRun
	e.mu.Unlock()

	if e.cronExpr != "" {
		// One run per matching minute, even though the loop ticks per second.
		return matchCron(e.cronExpr, now) && now.Sub(last) >= time.Minute
	}
	if last.IsZero() {
		return true
	}
	return now.Sub(last) >= e.interval
}

func (e *entry) dispatch() {
	e.mu.Lock()
	if e.noOverlap && e.running {
		e.mu.Unlock()
		logger.Warn("skipping overlapping task", "id", e.id)
		return
	}
	e.running = true
	e.lastRun = time.Now()
	e.mu.Unlock()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("scheduled task panicked", "id", e.id, "panic", r)
			}
			e.mu.Lock()
			e.running = false
			e.mu.Unlock()
		}()

		logger.Info("running scheduled task", "id", e.id)
		e.task()
	}()
}

// List describes the registered entries for the CLI.
func List() []string {
	regMu.Lock()
	defer regMu.Unlock()

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		freq := e.cronExpr
		if freq == "" {
			freq = e.interval.String()
		}
		out = append(out, fmt.Sprintf("%s  [%s]", e.id, freq))
	}
	return out
}

func matchCron(expr string, t time.Time) bool {
	fields := strings.Fields(expr)
	if len(fields) != 5 {
		return false
	}

	values := []int{t.Minute(), t.Hour(), t.Day(), int(t.Month()), int(t.Weekday())}
	for i, field := range fields {
		if !matchField(field, values[i]) {
			return false
		}
	}
	return true
}

func matchField(field string, val int) bool {
	switch {
	case field == "*":
		return true
	case strings.HasPrefix(field, "*/"):
		var step int
		fmt.Sscanf(field[2:], "%d", &step)
		return step > 0 && val%step == 0
	case strings.Contains(field, "-"):
		var lo, hi int
		fmt.Sscanf(field, "%d-%d", &lo, &hi)
		return val >= lo && val <= hi
	default:
		var n int
		fmt.Sscanf(field, "%d", &n)
		return n == val
	}
}
