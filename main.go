package main

import (
	"fmt"
	"log"
	"os"
)

func main() {
	opts := parseArgs()

	if opts.ShowVersion {
		showVersion()
	}

	// Diagnostics go to stderr (and optionally a rotating file); stdout is
	// reserved for the report
	setupLogging(opts.DiagLogFile)

	searcher, err := NewLogSearcher(opts)
	if err != nil {
		log.Fatalf("Bad configuration: %v", err)
	}

	store := NewConnectionStore(opts.DbPath, opts.Verbose)

	for _, input := range searcher.CollectLines() {
		if opts.Verbose {
			log.Printf("=== Ingesting %d candidate lines from %s ===\n", len(input.Lines), input.Source)
		}
		store.IngestLines(input.Source, input.Lines)
	}

	// Optional archive of the parsed records. Archive failures are logged
	// but never stop the report from being produced.
	if opts.DbPath != "" {
		if err := store.InitDB(); err != nil {
			log.Printf("Failed to initialize database: %v\n", err)
		} else if err := store.FlushToDb(); err != nil {
			log.Printf("Failed to archive records: %v\n", err)
		}
	}

	report := RenderReport(store)

	if opts.OutputFile != "" {
		if err := os.WriteFile(opts.OutputFile, []byte(report), 0o644); err != nil {
			log.Printf("Failed to write report to %s: %v. Falling back to stdout.\n", opts.OutputFile, err)
			fmt.Print(report)
		}
	} else {
		fmt.Print(report)
	}

	if opts.Verbose {
		store.PrintSummary()
	}

	// Optionally keep the finished report reachable over HTTP. Blocks until
	// the process is terminated.
	if opts.ServeAddr != "" {
		startHTTPServer(opts.ServeAddr, store, report)
	}
}
