package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"life-torus/internal/config"
	"life-torus/internal/core"
	"life-torus/internal/render"
	"life-torus/pkg/profile"
	"life-torus/pkg/sims/life"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Sim config.Config
	// Every prints a text frame every N generations; 0 disables frames.
	Every int
}

// RunSummary is reported when a run ends.
type RunSummary struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Store       string  `json:"store"`
	Generation  int     `json:"generation"`
	Population  int     `json:"population"`
	Changes     int     `json:"changes"`
	ElapsedMS   int64   `json:"elapsed_ms"`
	TicksPerSec float64 `json:"ticks_per_sec"`
	Interrupted bool    `json:"interrupted"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts, Sim: config.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate one grid",
		Long: `Simulate one grid and report its final state.

Settings come from the defaults, then the --config file, then flags.

Example:
  life run -W 32 -H 16 --pattern glider --init empty -n 40 --every 10
  life run --config life.yaml --tps 0`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runLife(ctx, opts, cmd)
		},
	}

	opts.Sim.Bind(cmd.Flags())
	cmd.Flags().IntVar(&opts.Every, "every", 0, "print the grid every N generations (text format only)")

	return cmd
}

func runLife(ctx context.Context, opts *RunOptions, cmd *cobra.Command) error {
	cfg, err := config.Resolve(opts.RootOptions.Config, cmd.Flags(), opts.Sim)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.Every < 0 {
		return WrapExitError(ExitCommandError, "invalid flags", fmt.Errorf("--every must be non-negative, got %d", opts.Every))
	}
	logger := opts.Logger()

	var extra []life.Option
	if opts.Verbose {
		extra = append(extra, life.WithProfiler(profile.NewSlogSink(logger)))
	}
	l, err := cfg.NewLife(extra...)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	logger.Info("life starting", "w", l.Width(), "h", l.Height(), "store", l.StoreName(),
		"ticks", cfg.Ticks, "tps", cfg.TPS, "pattern", cfg.Pattern)

	out := cmd.OutOrStdout()
	frames := opts.Every > 0 && opts.Format == "text"
	if frames {
		if err := writeFrame(out, l, 0); err != nil {
			return err
		}
	}

	summary := RunSummary{Width: l.Width(), Height: l.Height(), Store: l.StoreName()}
	pace := core.NewFixedStep(cfg.TPS)
	start := time.Now()
	for cfg.Ticks == 0 || summary.Generation < cfg.Ticks {
		if err := pace.Wait(ctx); err != nil {
			summary.Interrupted = true
			logger.Info("run interrupted", "generation", summary.Generation, "reason", err)
			break
		}
		l.Tick()
		summary.Generation++
		summary.Changes += l.DirtyCount()
		if frames && summary.Generation%opts.Every == 0 {
			if err := writeFrame(out, l, summary.Generation); err != nil {
				return err
			}
		}
	}
	elapsed := time.Since(start)

	summary.Population = l.Population()
	summary.ElapsedMS = elapsed.Milliseconds()
	if secs := elapsed.Seconds(); secs > 0 {
		summary.TicksPerSec = float64(summary.Generation) / secs
	}
	logger.Info("life finished", "generation", summary.Generation, "population", summary.Population,
		"elapsed", elapsed)

	if opts.Format == "json" {
		return writeJSON(out, summary)
	}
	_, err = fmt.Fprintf(out, "generation %d population %d changes %d\n",
		summary.Generation, summary.Population, summary.Changes)
	return err
}

func writeFrame(w io.Writer, l *life.Life, gen int) error {
	if _, err := fmt.Fprintf(w, "generation %d\n", gen); err != nil {
		return err
	}
	if err := render.Text(w, l.View(), l.Width()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
