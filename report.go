package main

import (
	"fmt"
	"strings"
)

const (
	// clientHeaderLabel titles the client source column of each table
	clientHeaderLabel = "Source"

	// minClientColumnWidth is the client column width used when the
	// client label is shorter than the header plus one space of padding
	// on either side
	minClientColumnWidth = len(clientHeaderLabel) + 2

	// statusColumnWidth is the fixed width of every "Total <code>" column
	statusColumnWidth = 11
)

// spacerStrings returns the leading and trailing padding needed to centre a
// label within width characters. The padding lengths always sum to
// width-len(label); when that difference is odd the extra space leads.
func spacerStrings(width int, centre string) (string, string) {
	padding := width - len(centre)
	if padding < 0 {
		padding = 0
	}
	leading := (padding + 1) / 2

	return strings.Repeat(" ", leading), strings.Repeat(" ", padding-leading)
}

// RenderReport formats the aggregated connection records as a Markdown
// document: a title, the distinct client count, then one status code table
// per client source in lexicographic order.
func RenderReport(store *ConnectionStore) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# HTTPD Report\n")
	fmt.Fprintf(&b, "## Total Unique IPs: %d\n\n", store.ClientCount())

	for _, source := range store.ClientSources() {
		writeClientTable(&b, source, store.StatusCounts(source))
	}

	return b.String()
}

// writeClientTable renders the status code table for one client source
func writeClientTable(b *strings.Builder, clientSource string, counts map[int]int) {
	clientWidth := len(clientSource)
	if clientWidth < minClientColumnWidth {
		clientWidth = minClientColumnWidth
	}

	// header row with the centred client label
	leading, trailing := spacerStrings(clientWidth, clientHeaderLabel)
	b.WriteString("|" + leading + clientHeaderLabel + trailing)
	for _, code := range trackedStatusCodes {
		leading, trailing := spacerStrings(statusColumnWidth, fmt.Sprintf("Total %d", code))
		b.WriteString("|" + leading + fmt.Sprintf("Total %d", code) + trailing)
	}
	b.WriteString("|\n")

	// separator row matching each column's width
	b.WriteString("|" + strings.Repeat("-", clientWidth))
	for range trackedStatusCodes {
		b.WriteString("|" + strings.Repeat("-", statusColumnWidth))
	}
	b.WriteString("|\n")

	// data row: raw client label, centred counts
	b.WriteString("|" + clientSource)
	for _, code := range trackedStatusCodes {
		count := fmt.Sprintf("%d", counts[code])
		leading, trailing := spacerStrings(statusColumnWidth, count)
		b.WriteString("|" + leading + count + trailing)
	}
	b.WriteString("|\n\n----------\n\n")
}
