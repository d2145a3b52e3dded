// Package runner simulates many independent grids concurrently and
// summarizes each run.
//
// Every engine is driven by exactly one goroutine; parallelism only ever
// spans separate grids.
package runner

import (
	"context"
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"life-torus/internal/config"
	"life-torus/pkg/core"
	"life-torus/pkg/profile"
	"life-torus/pkg/sims/life"
)

// DefaultWindow is the number of recent generations compared when looking
// for a repeated state.
const DefaultWindow = 5

// Job describes one simulation run.
type Job struct {
	Name   string
	Config config.Config
	// DetectStagnation hashes every generation to find still lifes and
	// short-period oscillators. It costs a pass over the buffer per tick.
	DetectStagnation bool
}

// Result summarizes a finished job.
type Result struct {
	ID     uuid.UUID
	Name   string
	Store  string
	Width  int
	Height int

	Ticks      int
	Population int
	// Changes sums the dirty counts of every tick; zero when dirty
	// tracking is off.
	Changes     int
	Elapsed     time.Duration
	TicksPerSec float64

	// StagnantAt is the first generation equal to one of the previous
	// Window generations, or -1. Period is the distance back to the match.
	StagnantAt int
	Period     int

	// Hash fingerprints the final generation.
	Hash string
}

// Runner executes jobs on a bounded pool of goroutines.
type Runner struct {
	Workers int
	Window  int
	Logger  *slog.Logger
	// Profiler, when set, receives tick timings from every engine. It must
	// be safe for concurrent use.
	Profiler profile.Sink
}

// New returns a Runner using one worker per CPU.
func New(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{Workers: runtime.NumCPU(), Window: DefaultWindow, Logger: logger}
}

// Run executes every job and returns results in job order. The first error
// cancels the jobs still running.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, r.Workers))
	for i, job := range jobs {
		g.Go(func() error {
			res, err := r.runOne(ctx, job)
			if err != nil {
				return errors.Wrapf(err, "[Runner.Run] job %q", job.Name)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) runOne(ctx context.Context, job Job) (Result, error) {
	var opts []life.Option
	if r.Profiler != nil {
		opts = append(opts, life.WithProfiler(r.Profiler))
	}
	l, err := job.Config.NewLife(opts...)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		ID:         uuid.New(),
		Name:       job.Name,
		Store:      l.StoreName(),
		Width:      l.Width(),
		Height:     l.Height(),
		StagnantAt: -1,
	}
	r.Logger.Debug("run starting", "id", res.ID, "name", job.Name, "store", res.Store,
		"w", res.Width, "h", res.Height, "ticks", job.Config.Ticks)

	var (
		hist *history
		fp   = &Fingerprinter{}
	)
	if job.DetectStagnation {
		hist = newHistory(r.window())
		hist.push(fp.Sum(l.View()))
	}

	start := time.Now()
	for gen := 1; gen <= job.Config.Ticks; gen++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		l.Tick()
		res.Ticks++
		res.Changes += l.DirtyCount()

		if hist != nil && res.StagnantAt < 0 {
			sum := fp.Sum(l.View())
			if back := hist.find(sum); back > 0 {
				res.StagnantAt = gen
				res.Period = back
			}
			hist.push(sum)
		}
	}
	res.Elapsed = time.Since(start)
	if secs := res.Elapsed.Seconds(); secs > 0 {
		res.TicksPerSec = float64(res.Ticks) / secs
	}
	res.Population = l.Population()
	res.Hash = fmt.Sprintf("%x", fp.Sum(l.View()))

	r.Logger.Info("run finished", "id", res.ID, "name", job.Name, "ticks", res.Ticks,
		"population", res.Population, "elapsed", res.Elapsed, "stagnant_at", res.StagnantAt)
	return res, nil
}

func (r *Runner) window() int {
	if r.Window <= 0 {
		return DefaultWindow
	}
	return r.Window
}

// Fingerprinter hashes views, reusing its scratch buffer between calls.
// Both layouts are hashed in packed form, so equal grids have equal sums
// whatever store holds them.
type Fingerprinter struct {
	scratch []byte
}

// Sum returns the md5 digest of the view's cells.
func (f *Fingerprinter) Sum(view core.View) [md5.Size]byte {
	f.scratch = f.scratch[:0]
	if view.Layout == core.LayoutBits {
		for _, w := range view.Words {
			f.scratch = binary.LittleEndian.AppendUint64(f.scratch, w)
		}
		return md5.Sum(f.scratch)
	}
	for base := 0; base < view.Cells; base += core.WordBits {
		var w uint64
		for i, b := range view.Bytes[base:min(base+core.WordBits, view.Cells)] {
			w |= uint64(b&1) << i
		}
		f.scratch = binary.LittleEndian.AppendUint64(f.scratch, w)
	}
	return md5.Sum(f.scratch)
}

// history keeps the last n digests, newest last.
type history struct {
	n    int
	sums [][md5.Size]byte
}

func newHistory(n int) *history {
	return &history{n: n, sums: make([][md5.Size]byte, 0, n)}
}

func (h *history) push(sum [md5.Size]byte) {
	if len(h.sums) == h.n {
		copy(h.sums, h.sums[1:])
		h.sums = h.sums[:h.n-1]
	}
	h.sums = append(h.sums, sum)
}

// find returns how many generations back sum was seen, or 0.
func (h *history) find(sum [md5.Size]byte) int {
	for i := len(h.sums) - 1; i >= 0; i-- {
		if h.sums[i] == sum {
			return len(h.sums) - i
		}
	}
	return 0
}
