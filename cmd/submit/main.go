package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/toolsubmit/internal/client/cli"
	"github.com/dmitrijs2005/toolsubmit/internal/client/config"
	"github.com/dmitrijs2005/toolsubmit/internal/flagx"
	"github.com/dmitrijs2005/toolsubmit/internal/logging"
)

func parseOptions() (cli.Options, bool) {
	var opts cli.Options
	var screenshots flagx.StringList
	var verbose bool

	args := flagx.FilterArgs(os.Args[1:], []string{"-draft", "-logo", "-screenshot", "-v"})

	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	fs.StringVar(&opts.DraftPath, "draft", "", "JSON file with the form fields; prompts interactively when empty")
	fs.StringVar(&opts.LogoPath, "logo", "", "logo image")
	fs.Var(&screenshots, "screenshot", "screenshot image (repeatable or comma-separated)")
	fs.BoolVar(&verbose, "v", false, "debug logging")
	_ = fs.Parse(args)

	opts.ScreenshotPaths = screenshots
	return opts, verbose
}

func main() {

	opts, verbose := parseOptions()
	cfg := config.LoadConfig()

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewTextLogger(os.Stderr, level)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app := cli.NewApp(cfg, opts, os.Stdin, os.Stdout, logger)
	if err := app.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "submission failed: %v\n", err)
		cancel()
		os.Exit(1)
	}

}
