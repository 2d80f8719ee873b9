// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/db47h/chipsim"
	"github.com/db47h/chipsim/internal/config"
	"github.com/db47h/chipsim/internal/filemonitor"
	"github.com/db47h/chipsim/internal/metrics"
	"github.com/db47h/chipsim/internal/runner"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

type runFlags struct {
	config     string
	root       string
	ticks      uint64
	interval   time.Duration
	timeStep   float64
	iterations int
	set        map[string]string
	watch      bool
	metrics    string
}

func addRunFlags(fs *pflag.FlagSet, f *runFlags) {
	fs.StringVar(&f.config, "config", "", "TOML configuration file")
	fs.StringVarP(&f.root, "chip", "c", "", "root chip to simulate")
	fs.Uint64VarP(&f.ticks, "ticks", "n", 0, "stop after this many steps (0: run until interrupted)")
	fs.DurationVar(&f.interval, "interval", 0, "wall clock time between steps (0: as fast as possible)")
	fs.Float64Var(&f.timeStep, "time-step", chipsim.DefaultTimeStep, "simulated time per step")
	fs.IntVar(&f.iterations, "cycle-iterations", 1, "maximum passes over feedback loops per step")
	fs.StringToStringVar(&f.set, "set", nil, "set root input pins, e.g. --set a=1,b=0")
	fs.BoolVar(&f.watch, "watch", false, "reload the library file when it changes")
	fs.StringVar(&f.metrics, "metrics-addr", "", "serve Prometheus metrics on this address")
}

// runConfig merges the configuration file and the command line flags.
//
func runConfig(cmd *cobra.Command, g *globalFlags, f *runFlags) (config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		var err error
		if cfg, err = config.Load(f.config); err != nil {
			return cfg, err
		}
	}
	fs := cmd.Flags()
	if fs.Changed("file") || cfg.Library == "" {
		cfg.Library = g.library
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = g.logLevel
	}
	if fs.Changed("chip") {
		cfg.Root = f.root
	}
	if fs.Changed("ticks") {
		cfg.Ticks = f.ticks
	}
	if fs.Changed("interval") {
		cfg.Interval.Duration = f.interval
	}
	if fs.Changed("time-step") {
		cfg.TimeStep = f.timeStep
	}
	if fs.Changed("cycle-iterations") {
		cfg.CycleIterations = f.iterations
	}
	if fs.Changed("watch") {
		cfg.Watch = f.watch
	}
	if fs.Changed("metrics-addr") {
		cfg.MetricsAddr = f.metrics
	}
	for k, v := range f.set {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, errors.Wrapf(err, "--set %s", k)
		}
		if cfg.Inputs == nil {
			cfg.Inputs = make(map[string]bool)
		}
		cfg.Inputs[k] = b
	}
	if cfg.Root == "" {
		return cfg, errors.New("no root chip")
	}
	return cfg, cfg.Validate()
}

func newRunCmd(g *globalFlags) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a circuit",
		Long: `Instantiate a root chip from the library and step it, printing its output
pins whenever they change.

Flags override the values of the configuration file.

Examples:
  chipsim run -f lib.yaml -c XOR --set a=1,b=0 -n 1
  chipsim run -f lib.yaml -c COUNTER --interval 10ms --watch --metrics-addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := runConfig(cmd, g, f)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd, cfg.LogLevel)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return run(ctx, cmd.OutOrStdout(), logger, cfg)
		},
	}
	addRunFlags(cmd.Flags(), f)
	return cmd
}

func newRoot(cfg config.Config) (*chipsim.Chip, error) {
	lib, _, err := loadLibrary(cfg.Library)
	if err != nil {
		return nil, err
	}
	root, err := lib.New(cfg.Root, "")
	if err != nil {
		return nil, err
	}
	for name, v := range cfg.Inputs {
		p := root.Input(name)
		if p == nil {
			return nil, errors.Wrapf(chipsim.ErrUnknownPin, "input %s of %s", name, cfg.Root)
		}
		p.State = v
	}
	return root, nil
}

// reload replaces the root chip of c with a fresh instance, keeping the state
// of input pins that still exist.
//
func reload(cfg config.Config) runner.Edit {
	return func(c *chipsim.Circuit) error {
		root, err := newRoot(cfg)
		if err != nil {
			return err
		}
		for _, p := range c.Root().In {
			if np := root.Input(p.Name); np != nil {
				np.State = p.State
			}
		}
		return c.SetRoot(root)
	}
}

type printer struct {
	w    io.Writer
	last string
	step uint64
}

func (p *printer) print(c *chipsim.Circuit, force bool) {
	var b strings.Builder
	for i, o := range c.Root().Out {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(o.Name)
		if o.State {
			b.WriteString("=1")
		} else {
			b.WriteString("=0")
		}
	}
	s := b.String()
	if s == p.last && (!force || p.step == c.Steps()) {
		return
	}
	p.last, p.step = s, c.Steps()
	fmt.Fprintf(p.w, "%d\t%.2f\t%s\n", c.Steps(), c.Clock().Time(), s)
}

func run(ctx context.Context, w io.Writer, logger *logrus.Logger, cfg config.Config) error {
	root, err := newRoot(cfg)
	if err != nil {
		return err
	}

	opts := []chipsim.Option{
		chipsim.WithLogger(logger),
		chipsim.WithTimeStep(cfg.TimeStep),
		chipsim.WithCycleIterations(cfg.CycleIterations),
	}
	var reg *prometheus.Registry
	if cfg.MetricsAddr != "" {
		reg = prometheus.NewRegistry()
		obs, err := metrics.New(reg)
		if err != nil {
			return err
		}
		opts = append(opts, chipsim.WithObserver(obs))
	}
	c, err := chipsim.NewCircuit(root, opts...)
	if err != nil {
		return err
	}

	p := &printer{w: w}
	r := runner.New(c,
		runner.WithInterval(cfg.Interval.Duration),
		runner.WithMaxTicks(cfg.Ticks),
		runner.WithLogger(logger),
		runner.WithAfterTick(func(c *chipsim.Circuit) { p.print(c, false) }),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// the other services stop when the simulation ends
		defer cancel()
		return r.Run(gctx)
	})

	if reg != nil {
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: metrics.Handler(reg)}
		g.Go(func() error {
			logger.Infof("serving metrics on %s", cfg.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return errors.Wrap(err, "metrics server")
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			return srv.Shutdown(context.Background())
		})
	}

	if cfg.Watch {
		wt, err := filemonitor.NewWatch(logger, []string{cfg.Library}, func(l logrus.FieldLogger, ev fsnotify.Event) {
			l.Infof("reloading %s", ev.Name)
			r.Submit(reload(cfg))
		})
		if err != nil {
			cancel()
			_ = g.Wait()
			return err
		}
		g.Go(func() error { return wt.Run(gctx) })
	}

	err = g.Wait()
	p.print(c, true)
	return err
}
