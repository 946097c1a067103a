// Command calcx drives a calculator from key presses.
//
// Keys are taken from the arguments, or read from stdin when there are none:
//
//	calcx '12+3='
//	echo '5+6==' | calcx -trace
//
// With CALCX_STATE_DIR (or -state-dir) set, the calculator resumes from its
// saved state and saves again on exit.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/comalice/calcx"
	"github.com/comalice/calcx/internal/config"
	"github.com/comalice/calcx/internal/core"
	"github.com/comalice/calcx/internal/extensibility"
	"github.com/comalice/calcx/internal/logging"
	"github.com/comalice/calcx/internal/production"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "calcx: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("calcx", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		machineID   = fs.String("id", cfg.MachineID, "calculator ID, used as the state file name")
		stateDir    = fs.String("state-dir", cfg.StateDir, "directory for saved state; empty disables persistence")
		stateFormat = fs.String("state-format", string(cfg.StateFormat), "state file format: json or yaml")
		logLevel    = fs.String("log-level", cfg.LogLevel.String(), "log level: debug, info, warn or error")
		logFormat   = fs.String("log-format", string(cfg.LogFormat), "log format: text or json")
		quiet       = fs.Bool("q", false, "print only the primary display line")
		trace       = fs.Bool("trace", false, "print the display after every key")
		dot         = fs.Bool("dot", false, "print the transition chart as Graphviz DOT and exit")
		chartJSON   = fs.Bool("chart-json", false, "print the transition chart as JSON and exit")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg.MachineID = *machineID
	cfg.StateDir = *stateDir
	if cfg.StateFormat, err = config.ParseStateFormat(*stateFormat); err != nil {
		return err
	}
	if cfg.LogLevel, err = config.ParseLogLevel(*logLevel); err != nil {
		return err
	}
	if cfg.LogFormat, err = config.ParseLogFormat(*logFormat); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(stderr, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []core.Option{
		core.WithLogger(logger),
		core.WithVisualizer(&production.DefaultVisualizer{}),
	}
	if *trace {
		opts = append(opts, core.WithPublisher(production.NewWriterPublisher(stdout)))
	}
	if cfg.StateDir != "" {
		persister, err := production.NewPersister(production.Format(cfg.StateFormat), cfg.StateDir)
		if err != nil {
			return err
		}
		opts = append(opts, core.WithPersister(persister))
	}

	m := core.NewMachine(cfg.MachineID, opts...)
	defer m.Close()

	if cfg.StateDir != "" {
		if err := m.Load(ctx); err != nil {
			return err
		}
		logger.Debug("state loaded", slog.String("machine", m.ID()), slog.String("dir", cfg.StateDir))
	}

	switch {
	case *dot:
		fmt.Fprintln(stdout, m.Visualize())
		return nil
	case *chartJSON:
		data, err := (&production.DefaultVisualizer{}).ExportJSON(calcx.Chart())
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s\n", data)
		return nil
	}

	if err := feed(ctx, m, fs.Args(), stdin, logger); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	primary, secondary := m.Render()
	if *quiet {
		fmt.Fprintln(stdout, primary)
	} else {
		fmt.Fprintf(stdout, "%37s\n%37s\n", secondary, primary)
	}

	if cfg.StateDir != "" {
		// ctx may already be cancelled by a signal; the state still has to land.
		if err := m.Save(context.WithoutCancel(ctx)); err != nil {
			return err
		}
		logger.Debug("state saved", slog.String("machine", m.ID()))
	}
	return nil
}

// feed sends keys from args, or from stdin when args is empty.
func feed(ctx context.Context, m *core.Machine, args []string, stdin io.Reader, logger *slog.Logger) error {
	if len(args) > 0 {
		events, err := calcx.ParseKeys(strings.Join(args, ""))
		if err != nil {
			return err
		}
		for _, event := range events {
			if err := m.Send(ctx, event); err != nil {
				return err
			}
		}
		return nil
	}

	src := extensibility.NewReaderEventSource(ctx, stdin, func(err error) {
		logger.Warn("key ignored", slog.Any("error", err))
	})
	if err := m.Run(ctx, src); err != nil {
		return err
	}
	return src.Err()
}
