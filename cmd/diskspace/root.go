package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/danpilch/diskspace/pkg/config"
	"github.com/danpilch/diskspace/pkg/debug"
	"github.com/danpilch/diskspace/pkg/diskspace"
	"github.com/danpilch/diskspace/pkg/output"
	"github.com/danpilch/diskspace/pkg/sensor"
)

type options struct {
	configFile string
	envFile    string
	path       string
	name       string
	icon       string
	unit       string
	interval   time.Duration
	format     string
	probe      string
	timeout    time.Duration
	verbose    bool
	timing     bool
}

func newRootCmd(logger *logrus.Logger) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "diskspace",
		Short: "Report filesystem capacity for configured paths",
		Long: `diskspace samples total, used and free bytes for one or more paths
and reports free space as the primary value, with percentage free as an
attribute. Probes are throttled per path by the scan interval.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd, opts, logger)
			if err != nil {
				return err
			}
			return app.once(cmd.Context())
		},
	}

	f := cmd.PersistentFlags()
	f.StringVarP(&opts.configFile, "config", "c", "", "YAML file with sensor definitions")
	f.StringVar(&opts.envFile, "env-file", "", "load DISKSPACE_* variables from this file (default .env if present)")
	f.StringVarP(&opts.path, "path", "p", diskspace.DefaultPath, "path to sample")
	f.StringVarP(&opts.name, "name", "n", config.DefaultName, "sensor name")
	f.StringVar(&opts.icon, "icon", sensor.DefaultIcon, "sensor icon")
	f.StringVarP(&opts.unit, "unit", "u", string(diskspace.DefaultUnit), "display unit (B, KB, MB, GB, TB, KiB, MiB, GiB, TiB)")
	f.DurationVarP(&opts.interval, "interval", "i", diskspace.DefaultMinInterval, "minimum time between probes")
	f.StringVarP(&opts.format, "format", "o", string(output.FormatTable), "output format (table, json, tsv)")
	f.StringVar(&opts.probe, "probe", "statfs", "capacity prober (statfs, gopsutil)")
	f.DurationVar(&opts.timeout, "timeout", 10*time.Second, "maximum wait for a probe (0 waits forever)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	f.BoolVar(&opts.timing, "timing", false, "print probe timings")

	cmd.AddCommand(newWatchCmd(opts, logger))
	cmd.AddCommand(newVerifyCmd(opts, logger))
	return cmd
}

type app struct {
	logger    *logrus.Logger
	cfg       *config.Config
	registry  *sensor.Registry
	formatter *output.Formatter
	timed     []*debug.TimedProber
	opts      *options
}

// setup resolves configuration (file, then env, then explicit flags) and
// builds one sampler per sensor.
func setup(cmd *cobra.Command, opts *options, logger *logrus.Logger) (*app, error) {
	if err := config.LoadEnvFile(opts.envFile, opts.envFile != ""); err != nil {
		return nil, err
	}
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	applyFlags(cmd, opts, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.WithField("level", cfg.LogLevel).Warn("Unknown log level, keeping default")
	}
	if opts.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	format, err := output.ParseFormat(opts.format)
	if err != nil {
		return nil, err
	}

	a := &app{
		logger:    logger,
		cfg:       cfg,
		registry:  sensor.NewRegistry(logger),
		formatter: output.NewFormatter(format, cmd.OutOrStdout()),
		opts:      opts,
	}

	sink := diskspace.NewLogSink(logger)
	for _, sc := range cfg.Sensors {
		prober := diskspace.ProberByName(opts.probe)
		if prober == nil {
			return nil, fmt.Errorf("unknown prober %q", opts.probe)
		}
		if opts.timing {
			tp := debug.NewTimedProber(prober)
			a.timed = append(a.timed, tp)
			prober = tp
		}

		samplerCfg, err := sc.SamplerConfig()
		if err != nil {
			return nil, fmt.Errorf("sensor %q: %w", sc.Name, err)
		}
		sampler, err := diskspace.New(samplerCfg,
			diskspace.WithProber(prober),
			diskspace.WithErrorSink(sink),
			diskspace.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("sensor %q: %w", sc.Name, err)
		}
		if err := a.registry.Register(sensor.New(sc.Name, sc.Icon, sampler)); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// applyFlags lets explicitly set flags override the first sensor.
func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	flags := cmd.Flags()
	s := &cfg.Sensors[0]
	if flags.Changed("name") {
		s.Name = opts.name
	}
	if flags.Changed("path") {
		s.Path = opts.path
	}
	if flags.Changed("icon") {
		s.Icon = opts.icon
	}
	if flags.Changed("unit") {
		s.Unit = opts.unit
	}
	if flags.Changed("interval") {
		s.SetScanInterval(opts.interval)
	}
}

// update samples every sensor, bounded by the probe timeout.
func (a *app) update(ctx context.Context) []sensor.Reading {
	if ctx == nil {
		ctx = context.Background()
	}
	if a.opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.timeout)
		defer cancel()
	}
	return a.registry.UpdateAll(ctx, time.Now())
}

func (a *app) once(ctx context.Context) error {
	readings := a.update(ctx)
	if err := a.formatter.Render(readings); err != nil {
		return err
	}
	a.reportTimings()
	return nil
}

func (a *app) reportTimings() {
	if !a.opts.timing {
		return
	}
	var timings []debug.ProbeTiming
	for _, tp := range a.timed {
		timings = append(timings, tp.Timings()...)
	}
	debug.TimingReport(os.Stderr, timings)
}
