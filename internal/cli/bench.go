package cli

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"life-torus/internal/config"
	"life-torus/internal/runner"
	"life-torus/pkg/core"
)

// BenchOptions holds flags for the bench command.
type BenchOptions struct {
	*RootOptions
	Stores     []string
	Sizes      []string
	Ticks      int
	Workers    int
	Seed       int64
	Dirty      bool
	Stagnation bool
}

// BenchRow is one line of bench output.
type BenchRow struct {
	ID          string  `json:"id"`
	Store       string  `json:"store"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Ticks       int     `json:"ticks"`
	TicksPerSec float64 `json:"ticks_per_sec"`
	Population  int     `json:"population"`
	Changes     int     `json:"changes"`
	StagnantAt  int     `json:"stagnant_at"`
	Hash        string  `json:"hash"`
}

// NewBenchCommand creates the bench command.
func NewBenchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BenchOptions{RootOptions: rootOpts}
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time every store strategy across grid sizes",
		Long: `Run one randomly seeded grid per (store, size) pair concurrently and
report throughput. Grids with the same size and seed end in the same state
whatever the store, so the hash column doubles as a cross-check.

Example:
  life bench --sizes 64x64,256x256 --ticks 100
  life bench --stores bits --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runBench(ctx, opts, cmd)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Stores, "stores", core.StoreNames(), "store strategies to compare")
	cmd.Flags().StringSliceVar(&opts.Sizes, "sizes", []string{"64x64"}, "grid sizes as WIDTHxHEIGHT")
	cmd.Flags().IntVarP(&opts.Ticks, "ticks", "n", defaults.Ticks, "generations per grid")
	cmd.Flags().IntVar(&opts.Workers, "workers", runtime.NumCPU(), "grids simulated at once")
	cmd.Flags().Int64Var(&opts.Seed, "seed", defaults.Seed, "seed for the random fill")
	cmd.Flags().BoolVar(&opts.Dirty, "dirty", defaults.TrackDirty, "track cells changed by each tick")
	cmd.Flags().BoolVar(&opts.Stagnation, "stagnation", false, "hash every generation to detect still lifes and oscillators")

	return cmd
}

func runBench(ctx context.Context, opts *BenchOptions, cmd *cobra.Command) error {
	jobs, err := benchJobs(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	}

	r := runner.New(opts.Logger())
	r.Workers = opts.Workers
	results, err := r.Run(ctx, jobs)
	if err != nil {
		return WrapExitError(ExitFailure, "bench failed", err)
	}

	rows := make([]BenchRow, len(results))
	for i, res := range results {
		rows[i] = BenchRow{
			ID:          res.ID.String(),
			Store:       res.Store,
			Width:       res.Width,
			Height:      res.Height,
			Ticks:       res.Ticks,
			TicksPerSec: res.TicksPerSec,
			Population:  res.Population,
			Changes:     res.Changes,
			StagnantAt:  res.StagnantAt,
			Hash:        res.Hash,
		}
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		return writeJSON(out, rows)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STORE\tSIZE\tTICKS\tTICKS/S\tPOPULATION\tCHANGES\tSTAGNANT\tHASH")
	for _, row := range rows {
		stagnant := "-"
		if row.StagnantAt >= 0 {
			stagnant = strconv.Itoa(row.StagnantAt)
		}
		fmt.Fprintf(tw, "%s\t%dx%d\t%d\t%.0f\t%d\t%d\t%s\t%s\n",
			row.Store, row.Width, row.Height, row.Ticks, row.TicksPerSec,
			row.Population, row.Changes, stagnant, row.Hash[:8])
	}
	return tw.Flush()
}

func benchJobs(opts *BenchOptions) ([]runner.Job, error) {
	if opts.Ticks < 0 {
		return nil, errors.Errorf("[benchJobs] ticks must be non-negative, got %d", opts.Ticks)
	}
	if len(opts.Stores) == 0 || len(opts.Sizes) == 0 {
		return nil, errors.New("[benchJobs] need at least one store and one size")
	}
	for _, store := range opts.Stores {
		if _, err := core.LookupStore(store); err != nil {
			return nil, errors.Wrap(err, "[benchJobs]")
		}
	}
	var jobs []runner.Job
	for _, size := range opts.Sizes {
		w, h, err := parseSize(size)
		if err != nil {
			return nil, err
		}
		if err := core.CheckSize(w, h); err != nil {
			return nil, errors.Wrapf(err, "[benchJobs] size %q", size)
		}
		for _, store := range opts.Stores {
			cfg := config.DefaultConfig()
			cfg.Width, cfg.Height = w, h
			cfg.Store = store
			cfg.Seed = opts.Seed
			cfg.TrackDirty = opts.Dirty
			cfg.Ticks = opts.Ticks
			jobs = append(jobs, runner.Job{
				Name:             fmt.Sprintf("%s/%dx%d", store, w, h),
				Config:           cfg,
				DetectStagnation: opts.Stagnation,
			})
		}
	}
	return jobs, nil
}

// parseSize reads "WIDTHxHEIGHT".
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, errors.Errorf("[parseSize] %q is not WIDTHxHEIGHT", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "[parseSize] bad width in %q", s)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "[parseSize] bad height in %q", s)
	}
	return w, h, nil
}
