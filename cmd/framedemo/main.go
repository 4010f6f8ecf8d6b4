// framedemo drives a frame-synchronized executor in real time, running a
// small scripted scene and logging its progress as JSON lines.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/b97tsk/frameasync"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cfg := defaultConfig()

	rootCmd := &cobra.Command{
		Use:   "framedemo [flags]",
		Short: "Run a scripted scene on a frame-synchronized executor",
		Long: `framedemo steps an executor once per frame, at a fixed frame rate,
until the scene finishes, the frame limit is reached, or it is interrupted.

Settings may also be read from a TOML file (see --config); flags given on
the command line take precedence.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := applyConfigFile(configPath, &cfg, cmd.Flags().Changed); err != nil {
					return err
				}
			}
			return run(cmd.Context(), cmd.ErrOrStderr(), cfg)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "TOML file to read settings from")
	flags.IntVar(&cfg.FPS, "fps", cfg.FPS, "frames per second")
	flags.IntVar(&cfg.Frames, "frames", cfg.Frames, "stop after this many frames (0 means no limit)")
	flags.BoolVar(&cfg.Fixed, "fixed", cfg.Fixed, "step by a fixed 1/fps instead of measured frame time")
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "log executor and actor events")

	return rootCmd
}

func newLogger(w io.Writer, debug bool) *logiface.Logger[logiface.Event] {
	level := logiface.LevelInformational
	if debug {
		level = logiface.LevelDebug
	}
	return stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(w)),
		stumpy.L.WithLevel(level),
	).Logger()
}

func run(ctx context.Context, w io.Writer, cfg config) error {
	period, err := cfg.framePeriod()
	if err != nil {
		return err
	}
	limit, err := cfg.frameLimit()
	if err != nil {
		return err
	}
	if err := cfg.Scene.validate(); err != nil {
		return err
	}

	logger := newLogger(w, cfg.Debug)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts []frameasync.Option
	if cfg.Debug {
		opts = append(opts, frameasync.WithLogger(logger))
	}

	e := frameasync.New(opts...)
	defer e.Close()

	ctx = frameasync.NewContext(ctx, e)

	bell := new(doorbell)
	h := frameasync.Spawn(e, scene(ctx, cfg.Scene, bell, logger))

	loop := &frameLoop{e: e, period: period, limit: limit, fixed: cfg.Fixed, logger: logger}

	g, gctx := errgroup.WithContext(ctx)
	loopCtx, loopDone := context.WithCancel(gctx)

	g.Go(func() error {
		defer loopDone()
		return loop.run(loopCtx)
	})
	g.Go(func() error {
		return bell.ringAfter(loopCtx, cfg.Scene.Doorbell)
	})

	err = g.Wait()

	s := e.Stats()
	logger.Info().
		Uint64(`frames`, s.Frames).
		Dur(`now`, s.Now).
		Uint64(`spawned`, s.Spawned).
		Uint64(`completed`, s.Completed).
		Uint64(`polls`, s.Polls).
		Bool(`finished`, h.Done()).
		Log(`executor stopped`)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, errFrameLimit):
		return nil
	case errors.Is(err, context.Canceled) && ctx.Err() != nil:
		logger.Notice().Log(`interrupted`)
		return nil
	default:
		return fmt.Errorf("frame loop: %w", err)
	}
}
