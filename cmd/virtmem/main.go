package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	goerrors "github.com/go-errors/errors"
	"github.com/sirupsen/logrus"

	"github.com/bietkhonhungvandi212/virtmem/internal/pager"
	"github.com/bietkhonhungvandi212/virtmem/internal/pagetable"
	"github.com/bietkhonhungvandi212/virtmem/internal/program"
	"github.com/bietkhonhungvandi212/virtmem/internal/storage/file"
	util "github.com/bietkhonhungvandi212/virtmem/internal/utils"
)

const usage = "use: virtmem [flags] <npages> <nframes> <rand|fifo|lru> <sort|scan|focus>"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stderr, err)
		}
		fmt.Fprintln(stderr, usage)
		return 1
	}

	logger, err := util.NewLogger(stderr, opts.LogLevel)
	if err != nil {
		logger.WithError(err).Warn("falling back to warn level")
	}

	counters, err := simulate(opts, stdout, logger)
	if err != nil {
		var stackErr *goerrors.Error
		if errors.As(err, &stackErr) {
			logger.Debug(stackErr.ErrorStack())
		}
		fmt.Fprintln(stderr, err)
		return 1
	}

	fmt.Fprintf(stdout, "\nSUMMARY:\n")
	fmt.Fprintf(stdout, "No. of page faults:%d\n", counters.PageFaults)
	fmt.Fprintf(stdout, "No. of disk reads:%d\n", counters.DiskReads)
	fmt.Fprintf(stdout, "No. of disk writes:%d\n", counters.DiskWrites)
	return 0
}

// parseArgs reads flags, then the optional YAML file they name, then the
// positionals. Flags set explicitly win over the file.
func parseArgs(args []string, stderr io.Writer) (util.Options, error) {
	fs := flag.NewFlagSet("virtmem", flag.ContinueOnError)
	fs.SetOutput(stderr)

	defaults := util.DefaultOptions()
	configPath := fs.String("config", "", "YAML file with default options")
	diskPath := fs.String("disk", defaults.DiskPath, "backing store file")
	seed := fs.Int64("seed", defaults.Seed, "seed of the rand policy")
	logLevel := fs.String("log-level", defaults.LogLevel, "trace, debug, info, warn or error")
	trace := fs.Bool("trace", false, "log the page table after every fault")

	if err := fs.Parse(args); err != nil {
		return util.Options{}, err
	}

	opts := defaults
	if *configPath != "" {
		loaded, err := util.LoadOptions(*configPath)
		if err != nil {
			return util.Options{}, util.NewSimError(util.ErrTypeConfig, "load config", err)
		}
		opts = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "disk":
			opts.DiskPath = *diskPath
		case "seed":
			opts.Seed = *seed
		case "log-level":
			opts.LogLevel = *logLevel
		case "trace":
			opts.Trace = *trace
		}
	})
	if opts.Trace {
		opts.LogLevel = logrus.TraceLevel.String()
	}

	pos := fs.Args()
	switch {
	case len(pos) == 4:
		npages, err := strconv.Atoi(pos[0])
		if err != nil {
			return util.Options{}, util.NewSimError(util.ErrTypeConfig, "npages", err)
		}
		nframes, err := strconv.Atoi(pos[1])
		if err != nil {
			return util.Options{}, util.NewSimError(util.ErrTypeConfig, "nframes", err)
		}
		opts.Pages, opts.Frames, opts.Policy, opts.Program = npages, nframes, pos[2], pos[3]
	case len(pos) == 0 && *configPath != "":
		// everything comes from the file
	default:
		return util.Options{}, util.NewSimError(util.ErrTypeConfig, fmt.Sprintf("expected 4 arguments, got %d", len(pos)), nil)
	}

	if err := opts.Validate(); err != nil {
		return util.Options{}, util.NewSimError(util.ErrTypeConfig, "invalid size", err)
	}
	if _, err := pager.ParsePolicy(opts.Policy); err != nil {
		return util.Options{}, util.NewSimError(util.ErrTypeConfig, "policy", err)
	}
	if _, err := program.Lookup(opts.Program); err != nil {
		return util.Options{}, util.NewSimError(util.ErrTypeConfig, "program", err)
	}

	return opts, nil
}

func simulate(opts util.Options, stdout io.Writer, logger *logrus.Logger) (pager.Counters, error) {
	policy, _ := pager.ParsePolicy(opts.Policy)
	prog, _ := program.Lookup(opts.Program)

	disk, err := file.NewFileManager(opts.DiskPath, opts.Pages)
	if err != nil {
		return pager.Counters{}, util.NewSimError(util.ErrTypeResource, "couldn't create virtual disk", err)
	}
	defer func() {
		if err := disk.Close(); err != nil {
			logger.WithError(err).Error("close virtual disk")
		}
	}()

	replacer, err := pager.NewReplacer(policy, opts.Frames, opts.Seed)
	if err != nil {
		return pager.Counters{}, util.NewSimError(util.ErrTypeResource, "couldn't create replacer", err)
	}
	pgr := pager.NewPager(opts.Frames, replacer, disk, logger)

	pt, err := pagetable.New(opts.Pages, opts.Frames, func(pt *pagetable.PageTable, pageId util.PageID) error {
		return pgr.HandleFault(pt, pageId)
	})
	if err != nil {
		return pager.Counters{}, util.NewSimError(util.ErrTypeResource, "couldn't create page table", err)
	}

	logger.WithFields(logrus.Fields{
		"pages":   opts.Pages,
		"frames":  opts.Frames,
		"policy":  policy,
		"program": opts.Program,
		"disk":    opts.DiskPath,
	}).Info("simulation started")

	result, err := prog(pt)
	if err != nil {
		var simErr *util.SimError
		if errors.As(err, &simErr) {
			return pgr.Counters(), err
		}
		return pgr.Counters(), util.NewSimError(util.ErrTypeInternal, "run "+opts.Program, goerrors.Wrap(err, 0))
	}
	fmt.Fprintf(stdout, "%s result is %d\n", opts.Program, result)

	logger.WithFields(logrus.Fields{
		"faults": pgr.Counters().PageFaults,
		"reads":  disk.Reads(),
		"writes": disk.Writes(),
	}).Info("simulation finished")

	return pgr.Counters(), nil
}
