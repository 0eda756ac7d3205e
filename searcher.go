package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// errGzippedFile marks files skipped because of a gzip signature. These are
// never decompressed; use stdin and zcat instead.
var errGzippedFile = errors.New("gzipped file detected, will ignore; use stdin and zcat")

// gzip magic bytes
const (
	gzipMagic1 = 0x1f
	gzipMagic2 = 0x8b
)

// FileLines pairs one input source with its candidate log lines.
type FileLines struct {
	Source string
	Lines  []string
}

// LogSearcher locates log files matching the configured globs and reads
// their candidate lines. Open and traversal failures are logged and skipped;
// collection never aborts the run.
type LogSearcher struct {
	opts       AppOptions
	accessGlob glob.Glob
	errorGlob  glob.Glob
}

// NewLogSearcher creates a searcher with compiled glob patterns
func NewLogSearcher(opts AppOptions) (*LogSearcher, error) {
	accessGlob, err := glob.Compile(opts.AccessFileGlob)
	if err != nil {
		return nil, fmt.Errorf("invalid access glob %q: %w", opts.AccessFileGlob, err)
	}
	errorGlob, err := glob.Compile(opts.ErrorFileGlob)
	if err != nil {
		return nil, fmt.Errorf("invalid error glob %q: %w", opts.ErrorFileGlob, err)
	}

	return &LogSearcher{
		opts:       opts,
		accessGlob: accessGlob,
		errorGlob:  errorGlob,
	}, nil
}

// CollectLines gathers candidate lines from the configured input: stdin,
// explicit input files, or the log directory. Only lines containing
// "HTTP/1.1" are returned; everything else is silently ignored.
func (ls *LogSearcher) CollectLines() []FileLines {
	if ls.opts.ReadFromStdin {
		return []FileLines{{Source: "stdin", Lines: readCandidateLines(os.Stdin)}}
	}

	paths := ls.opts.InputFiles
	if len(paths) == 0 {
		paths = ls.searchLogFiles(ls.opts.LogDirectory)
	}

	var collected []FileLines
	for _, path := range paths {
		lines, err := ls.readFile(path)
		if err != nil {
			log.Printf("Failed to read %s: %v\n", path, err)
			continue
		}
		collected = append(collected, FileLines{Source: path, Lines: lines})
	}

	return collected
}

// searchLogFiles walks dirPath and returns all regular files whose base
// name matches the access or error glob. Recursion and symlink following
// are both opt-in.
func (ls *LogSearcher) searchLogFiles(dirPath string) []string {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		log.Printf("Failed to enumerate %s: %v\n", dirPath, err)
		return nil
	}

	// os.ReadDir sorts by name, which keeps file enumeration order
	// deterministic across runs
	var found []string
	for _, entry := range entries {
		path := filepath.Join(dirPath, entry.Name())

		mode := entry.Type()
		if mode&fs.ModeSymlink != 0 {
			if !ls.opts.FollowSymlinks {
				continue
			}
			info, err := os.Stat(path) // resolves the link target
			if err != nil {
				log.Printf("Failed to resolve symlink %s: %v\n", path, err)
				continue
			}
			mode = info.Mode()
		}

		switch {
		case mode.IsDir():
			if ls.opts.RecurseDirectories {
				found = append(found, ls.searchLogFiles(path)...)
			}
		case mode.IsRegular():
			if ls.matchesGlobs(entry.Name()) {
				found = append(found, path)
			}
		}
	}

	return found
}

// matchesGlobs reports whether a file base name matches the access or the
// error log glob
func (ls *LogSearcher) matchesGlobs(name string) bool {
	return ls.accessGlob.Match(name) || ls.errorGlob.Match(name)
}

// readFile opens one log file and returns its candidate lines. Files that
// carry a gzip signature are reported via errGzippedFile and never read.
func (ls *LogSearcher) readFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	magic, err := reader.Peek(2)
	if err == nil && magic[0] == gzipMagic1 && magic[1] == gzipMagic2 {
		return nil, errGzippedFile
	}

	return readCandidateLines(reader), nil
}

// readCandidateLines reads r line by line and keeps only lines containing
// the HTTP version marker
func readCandidateLines(r io.Reader) []string {
	var lines []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, httpVersionMarker) {
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		log.Printf("Read error: %v\n", err)
	}

	return lines
}
