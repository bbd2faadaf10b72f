// Command corsprobe checks that servers honor the CORS protocol as
// expected: it sends the probes described in a YAML file through a
// CORS-enforcing transport and reports the probes whose outcome (allowed,
// denied, or error) differs from their expectation.
//
// Usage:
//
//	corsprobe [-config path] [-log-level level] [-watch]
//
// The probe file defaults to $CORSPROBE_CONFIG or, failing that,
// corsprobe.yaml; variables may also come from a .env file.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/jub0bs/corsclient"
	"github.com/jub0bs/corsclient/cfgerrors"
	"github.com/jub0bs/corsclient/internal/config"
	"github.com/jub0bs/corsclient/internal/logger"
	"github.com/jub0bs/corsclient/internal/probe"
)

// exit codes
const (
	exitOK = iota
	exitFailedProbes
	exitBadConfig
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	env := config.LoadEnv()
	fs := flag.NewFlagSet("corsprobe", flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("config", env.ConfigPath, "path to the probe file")
	level := fs.String("log-level", env.LogLevel, "log level (overrides the probe file's)")
	watch := fs.Bool("watch", false, "re-run probes whenever the probe file changes")
	if err := fs.Parse(args); err != nil {
		return exitBadConfig
	}

	cfg, err := config.Load(*path)
	if err != nil {
		reportConfigError(stderr, err)
		return exitBadConfig
	}
	if *level == "" {
		*level = cfg.Log.Level
	}
	log, err := logger.New(stderr, *level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitBadConfig
	}
	defer log.Sync()

	tr, err := corsclient.NewTransport(nil, cfg.Transport())
	if err != nil { // already validated by config.Load
		reportConfigError(stderr, err)
		return exitBadConfig
	}
	tr.SetLogger(log)

	failed, err := runProbes(ctx, tr, cfg, stdout, log)
	if err != nil {
		log.Error("probes interrupted", zap.Error(err))
		return exitFailedProbes
	}
	if !*watch {
		if failed > 0 {
			return exitFailedProbes
		}
		return exitOK
	}

	w, err := config.NewWatcher(*path, log)
	if err != nil {
		log.Error("cannot watch probe file", zap.Error(err))
		return exitBadConfig
	}
	defer w.Close()
	log.Info("watching probe file", zap.String("path", *path))
	w.Run(ctx, func(cfg *config.Config) {
		tcfg := cfg.Transport()
		if err := tr.Reconfigure(&tcfg); err != nil {
			reportConfigError(stderr, err)
			return
		}
		if _, err := runProbes(ctx, tr, cfg, stdout, log); err != nil {
			log.Error("probes interrupted", zap.Error(err))
		}
	})
	return exitOK
}

func runProbes(
	ctx context.Context,
	tr *corsclient.Transport,
	cfg *config.Config,
	w io.Writer,
	log *zap.Logger,
) (int, error) {
	runner := probe.NewRunner(tr, cfg.Concurrency, cfg.Rate, log)
	results, err := runner.Run(ctx, cfg.Probes)
	if err != nil {
		return 0, err
	}
	return probe.Report(w, results), nil
}

func reportConfigError(w io.Writer, err error) {
	for err := range cfgerrors.All(err) {
		fmt.Fprintln(w, err)
	}
}
