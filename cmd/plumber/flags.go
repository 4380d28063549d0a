package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

// cleanFlags holds all flags for a cleanup run.
type cleanFlags struct {
	config  string
	dryRun  bool
	quiet   bool
	verbose bool
	workers int
	timeout string
	version bool
}

// parseFlags parses command-line flags and returns positional args.
func parseFlags(args []string) (*cleanFlags, []string, error) {
	fs := flag.NewFlagSet("plumber", flag.ContinueOnError)
	f := &cleanFlags{}

	fs.StringVarP(&f.config, "config", "c", "plumber.yaml", "path to the run-plan config file")
	fs.BoolVarP(&f.dryRun, "dry-run", "d", false, "compute edits but push nothing")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-request detail")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel repositories (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "overall run timeout (e.g., 30s, 5m)")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() { printUsage(os.Stderr, fs) }

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// printUsage writes the usage message.
func printUsage(w *os.File, fs *flag.FlagSet) {
	fmt.Fprintf(w, "Usage: plumber [flags]\n\n")
	fmt.Fprintf(w, "Removes build steps from Bitbucket pipelines files across repositories,\n")
	fmt.Fprintf(w, "committing each change to a remove-<step> branch and opening a pull request.\n\n")
	fmt.Fprintf(w, "Credentials come from the BB_USER_ID and BB_APP_PASS environment variables.\n\n")
	fmt.Fprintf(w, "Flags:\n%s", fs.FlagUsages())
}
