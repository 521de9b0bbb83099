package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/outofforest/mmusim"
	"github.com/outofforest/mmusim/persistence"
	"github.com/outofforest/mmusim/pkg/filedev"
	"github.com/outofforest/mmusim/pkg/logging"
	"github.com/outofforest/mmusim/types"
)

type options struct {
	procs   int
	cpus    int
	rounds  int
	size    uint
	image   string
	inspect string
	plain   bool
	logging logging.Config
}

func main() {
	var opts options
	flag.IntVar(&opts.procs, "procs", 6, "number of simulated processes")
	flag.IntVar(&opts.cpus, "cpus", 2, "number of workers executing processes in parallel")
	flag.IntVar(&opts.rounds, "rounds", 4, "number of time slices each process runs")
	flag.UintVar(&opts.size, "size", 2500, "bytes allocated by a process in each time slice")
	flag.StringVar(&opts.image, "image", "", "save machine image to this file after simulation")
	flag.StringVar(&opts.inspect, "inspect", "", "print frames stored in the image file instead of simulating")
	flag.BoolVar(&opts.plain, "plain", false, "print frames in plain text format")
	flag.StringVar(&opts.logging.Level, "log-level", logging.DefaultConfig.Level, "log level: debug, info, warn, error")
	flag.StringVar(&opts.logging.Format, "log-format", logging.DefaultConfig.Format, "log format: text or json")
	flag.Parse()

	os.Exit(run(opts))
}

func run(opts options) int {
	log, err := logging.New(opts.logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if opts.inspect != "" {
		err = inspect(opts, log, os.Stdout)
	} else {
		err = simulate(ctx, opts, log, os.Stdout)
	}
	if err != nil {
		log.Error("Command failed", "error", err)
		return 1
	}
	return 0
}

func simulate(ctx context.Context, opts options, log *slog.Logger, out io.Writer) error {
	m, err := mmusim.New(mmusim.Config{
		Layout: types.DefaultLayout,
		Logger: log,
	})
	if err != nil {
		return err
	}

	stats, err := schedule(ctx, m, opts, log)
	if err != nil {
		return err
	}

	if err := printFrames(out, m, opts.plain); err != nil {
		return err
	}
	fmt.Fprintln(out, renderSummary(m, stats))

	if opts.image == "" {
		return nil
	}
	return saveImage(opts.image, m)
}

func inspect(opts options, log *slog.Logger, out io.Writer) error {
	dev, err := filedev.Open(opts.inspect)
	if err != nil {
		return err
	}
	defer dev.Close()

	s, err := persistence.Load(dev)
	if err != nil {
		return err
	}

	m, err := mmusim.Restore(mmusim.Config{Logger: log}, s)
	if err != nil {
		return err
	}
	return printFrames(out, m, opts.plain)
}

func printFrames(out io.Writer, m *mmusim.Machine, plain bool) error {
	if plain {
		return m.Dump(out)
	}
	_, err := fmt.Fprintln(out, renderFrames(m.Frames()))
	return err
}

func saveImage(path string, m *mmusim.Machine) error {
	dev, err := filedev.Create(path, persistence.ImageSize(m.Layout()))
	if err != nil {
		return err
	}
	if err := persistence.Save(dev, m.Snapshot()); err != nil {
		_ = dev.Close()
		return err
	}
	return dev.Close()
}
