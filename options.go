package main

import "flag"

// defaultLogPath is where httpd drops its logs on Debian-flavoured systems
const defaultLogPath = "/var/log/apache2"

// AppOptions contains all options for one run, built once from the command
// line and passed explicitly. There is no process-wide options state.
type AppOptions struct {
	FollowSymlinks     bool // whether or not to follow symlinks
	ReadFromStdin      bool // whether or not to read from stdin
	ReadGzippedFiles   bool // accepted for compatibility; gzipped files are still skipped
	RecurseDirectories bool // whether or not to recurse through subdirectories of LogDirectory
	ShowVersion        bool
	Verbose            bool

	AccessFileGlob string // the glob used to search access logs
	ErrorFileGlob  string // the glob used to search error logs
	LogDirectory   string // the directory in which to search for logs

	OutputFile  string // report destination; empty means stdout
	DbPath      string // SQLite archive path; empty disables archiving
	ServeAddr   string // address to serve the finished report on; empty disables the server
	DiagLogFile string // rotating diagnostic log file; empty means stderr only

	InputFiles []string // arbitrary input files passed via command line
}

// DefaultAppOptions returns the options used when no flags are given
func DefaultAppOptions() AppOptions {
	return AppOptions{
		AccessFileGlob: "*.access.log*",
		ErrorFileGlob:  "*.error.log*",
		LogDirectory:   defaultLogPath,
	}
}

// parseArgs parses the command line into an AppOptions value. Short flags
// mirror the long ones; -R and -r are two aliases for one option.
func parseArgs() AppOptions {
	opts := DefaultAppOptions()

	flag.BoolVar(&opts.ReadFromStdin, "stdin", false, "Read from stdin instead of searching for logs under "+defaultLogPath)
	flag.BoolVar(&opts.ReadFromStdin, "s", false, "Shorthand for -stdin")
	flag.BoolVar(&opts.ReadGzippedFiles, "gzip", false, "Accepted for compatibility; gzip-compressed files are always skipped (use -stdin and zcat)")
	flag.BoolVar(&opts.ReadGzippedFiles, "g", false, "Shorthand for -gzip")
	flag.BoolVar(&opts.FollowSymlinks, "follow", false, "Follow symlinks")
	flag.BoolVar(&opts.FollowSymlinks, "F", false, "Shorthand for -follow")
	flag.BoolVar(&opts.RecurseDirectories, "recurse", false, "Recurse through subdirectories")
	flag.BoolVar(&opts.RecurseDirectories, "R", false, "Shorthand for -recurse")
	flag.BoolVar(&opts.RecurseDirectories, "r", false, "Shorthand for -recurse")
	flag.BoolVar(&opts.ShowVersion, "version", false, "Print version information and exit")
	flag.BoolVar(&opts.ShowVersion, "v", false, "Shorthand for -version")
	flag.BoolVar(&opts.Verbose, "verbose", false, "Enable verbose output")

	flag.StringVar(&opts.AccessFileGlob, "access", opts.AccessFileGlob, "Glob pattern for access log files")
	flag.StringVar(&opts.AccessFileGlob, "a", opts.AccessFileGlob, "Shorthand for -access")
	flag.StringVar(&opts.ErrorFileGlob, "error", opts.ErrorFileGlob, "Glob pattern for error log files")
	flag.StringVar(&opts.ErrorFileGlob, "e", opts.ErrorFileGlob, "Shorthand for -error")
	flag.StringVar(&opts.OutputFile, "output", "", "Write the report to this file instead of stdout")
	flag.StringVar(&opts.OutputFile, "o", "", "Shorthand for -output")
	flag.StringVar(&opts.LogDirectory, "log-dir", opts.LogDirectory, "Directory to search for logs")
	flag.StringVar(&opts.LogDirectory, "l", opts.LogDirectory, "Shorthand for -log-dir")

	flag.StringVar(&opts.DbPath, "db-path", "", "Archive parsed records to this SQLite database file")
	flag.StringVar(&opts.ServeAddr, "serve", "", "Serve the finished report over HTTP on this address (e.g. localhost:3000)")
	flag.StringVar(&opts.DiagLogFile, "diag-log", "", "Also write diagnostics to this rotating log file")

	flag.Parse()

	opts.InputFiles = flag.Args()

	return opts
}
