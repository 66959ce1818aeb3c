package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/toolsubmit/internal/flagx"
)

// parseFlags populates Config from -s and -t. Other flags on the command
// line are filtered out with flagx.FilterArgs and left to their owners.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "s", cfg.ServerURL, "base URL of the submission server")
	timeout := fs.Int("t", int(cfg.Timeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.Timeout = time.Duration(*timeout) * time.Second
}
