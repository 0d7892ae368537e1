// cmd/matfix/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/tamzrod/material-normalizer/internal/config"
	"github.com/tamzrod/material-normalizer/internal/status"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report changes without writing files")
	dumpIndex := flag.Bool("dump-index", false, "print the synonym index before processing")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: matfix [-dry-run] [-dump-index] [config.yaml]")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg := config.Default()
	if flag.NArg() == 1 {
		var err error
		cfg, err = config.Load(flag.Arg(0))
		if err != nil {
			log.Fatalf("config load failed: %v", err)
		}
	}
	if *dryRun {
		cfg.Normalizer.DryRun = true
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	var dump io.Writer
	if *dumpIndex {
		dump = os.Stdout
	}

	lg := loggers{
		out:  log.New(os.Stdout, "", 0),
		errs: log.Default(),
	}

	// --------------------
	// Run
	// --------------------

	snap, err := run(cfg, lg, dump)
	if err != nil {
		log.Fatalf("document discovery failed: %v", err)
	}

	lg.out.Println()
	lg.out.Println(status.Summary(snap, cfg.Normalizer.DryRun))
}
