package main

import (
	"log"
	"sort"
	"sync"

	"golang.org/x/time/rate"
)

// parse failure diagnostics are rate limited so a garbage input file
// cannot flood stderr
const (
	parseDiagRate  = 10 // diagnostics per second
	parseDiagBurst = 20
)

// ConnectionStore manages in-memory storage of parsed Connection records,
// bucketed by client source
type ConnectionStore struct {
	buckets map[string][]Connection

	parseFailures  int // lines that failed to parse
	suppressedDiag int // parse failure diagnostics dropped by the limiter

	limiter *rate.Limiter
	mu      sync.RWMutex
	dbPath  string // path to SQLite archive, empty means archiving disabled
	verbose bool   // enable verbose output
}

// NewConnectionStore creates a new store instance
func NewConnectionStore(dbPath string, verbose bool) *ConnectionStore {
	return &ConnectionStore{
		buckets: make(map[string][]Connection),
		limiter: rate.NewLimiter(rate.Limit(parseDiagRate), parseDiagBurst),
		dbPath:  dbPath,
		verbose: verbose,
	}
}

// Add appends a parsed connection to its client bucket, preserving
// encounter order within the bucket
func (s *ConnectionStore) Add(conn Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buckets[conn.ClientSource] = append(s.buckets[conn.ClientSource], conn)
}

// IngestLines parses all candidate lines from one input source and adds the
// successfully parsed records to the store. A line that fails to parse is
// logged and skipped; ingestion never aborts.
func (s *ConnectionStore) IngestLines(source string, lines []string) {
	for _, line := range lines {
		if line == "" {
			continue
		}

		conn, err := ParseConnection(line)
		if err != nil {
			s.mu.Lock()
			s.parseFailures++
			allowed := s.limiter.Allow()
			if !allowed {
				s.suppressedDiag++
			}
			s.mu.Unlock()

			if allowed {
				log.Printf("Failed to parse connection info in %s: %v. Skipping...\n", source, err)
			}
			continue
		}

		s.Add(conn)

		if s.verbose {
			log.Printf("    %s\n", conn.String())
		}
	}
}

// ClientSources returns all client sources in lexicographic order
func (s *ConnectionStore) ClientSources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sources := make([]string, 0, len(s.buckets))
	for source := range s.buckets {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	return sources
}

// Records returns the connections recorded for one client source in
// encounter order
func (s *ConnectionStore) Records(clientSource string) []Connection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]Connection, len(s.buckets[clientSource]))
	copy(records, s.buckets[clientSource])

	return records
}

// AllRecords returns every stored connection, grouped by client source in
// lexicographic order
func (s *ConnectionStore) AllRecords() []Connection {
	records := make([]Connection, 0, s.RecordCount())
	for _, source := range s.ClientSources() {
		records = append(records, s.Records(source)...)
	}

	return records
}

// StatusCounts tallies the tracked status codes over one client bucket.
// Codes outside the tracked set are not counted.
func (s *ConnectionStore) StatusCounts(clientSource string) map[int]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[int]int, len(trackedStatusCodes))
	for _, code := range trackedStatusCodes {
		counts[code] = 0
	}

	for _, conn := range s.buckets[clientSource] {
		if _, tracked := counts[conn.HttpStatusCode]; tracked {
			counts[conn.HttpStatusCode]++
		}
	}

	return counts
}

// ClientCount returns the number of distinct client sources
func (s *ConnectionStore) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.buckets)
}

// RecordCount returns the total number of stored connections
func (s *ConnectionStore) RecordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, bucket := range s.buckets {
		n += len(bucket)
	}

	return n
}

// ParseFailures returns how many candidate lines failed to parse
func (s *ConnectionStore) ParseFailures() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.parseFailures
}

// PrintSummary logs ingestion totals, including diagnostics that were
// dropped by the rate limiter
func (s *ConnectionStore) PrintSummary() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log.Println("=== Ingestion Summary ===")
	log.Printf("    Unique clients: %d\n", len(s.buckets))
	records := 0
	for _, bucket := range s.buckets {
		records += len(bucket)
	}
	log.Printf("    Parsed records: %d\n", records)
	log.Printf("    Parse failures: %d\n", s.parseFailures)
	if s.suppressedDiag > 0 {
		log.Printf("    (%d parse failure diagnostics suppressed by rate limit)\n", s.suppressedDiag)
	}
	log.Print("    " + GetMemoryStatsString())
}

// ClientStats summarizes one client bucket for the JSON API
type ClientStats struct {
	ClientSource string
	Connections  int
	StatusCounts map[int]int
}

// AllStats returns per-client summaries in lexicographic client order
func (s *ConnectionStore) AllStats() []ClientStats {
	sources := s.ClientSources()

	stats := make([]ClientStats, 0, len(sources))
	for _, source := range sources {
		stats = append(stats, ClientStats{
			ClientSource: source,
			Connections:  len(s.Records(source)),
			StatusCounts: s.StatusCounts(source),
		})
	}

	return stats
}
