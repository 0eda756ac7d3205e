package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpacerStrings(t *testing.T) {
	tests := []struct {
		name         string
		width        int
		centre       string
		wantLeading  int
		wantTrailing int
	}{
		{"even padding", 11, "2", 5, 5},
		{"odd padding leads", 11, "42", 5, 4},
		{"header in minimum width", 8, "Source", 1, 1},
		{"label fills width", 6, "Source", 0, 0},
		{"label wider than width", 4, "Source", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leading, trailing := spacerStrings(tt.width, tt.centre)
			assert.Equal(t, tt.wantLeading, len(leading))
			assert.Equal(t, tt.wantTrailing, len(trailing))
		})
	}
}

func TestSpacerStringsProperties(t *testing.T) {
	// For any width >= label length, the two paddings sum to exactly
	// width-len(label) and neither is negative
	for width := 0; width <= 40; width++ {
		for _, label := range []string{"", "1", "42", "999", "Source", "10.0.0.1"} {
			leading, trailing := spacerStrings(width, label)
			padding := width - len(label)
			if padding < 0 {
				padding = 0
			}
			require.Equal(t, padding, len(leading)+len(trailing),
				"width=%d label=%q", width, label)
			require.GreaterOrEqual(t, len(leading), len(trailing),
				"extra space must lead: width=%d label=%q", width, label)
		}
	}
}

func TestRenderReportEmpty(t *testing.T) {
	store := NewConnectionStore("", false)

	report := RenderReport(store)
	assert.Equal(t, "# HTTPD Report\n## Total Unique IPs: 0\n\n", report)
}

func TestRenderReportSingleClient(t *testing.T) {
	store := NewConnectionStore("", false)
	store.IngestLines("access.log", []string{
		`10.0.0.1 - - [10/Mar/2023:00:00:00 +0000] "GET /index.html HTTP/1.1" 200 512`,
		`10.0.0.1 - - [10/Mar/2023:00:00:01 +0000] "GET /missing.html HTTP/1.1" 404 221`,
	})

	report := RenderReport(store)

	lines := strings.Split(report, "\n")
	require.GreaterOrEqual(t, len(lines), 9)
	assert.Equal(t, "# HTTPD Report", lines[0])
	assert.Equal(t, "## Total Unique IPs: 1", lines[1])
	assert.Equal(t, "", lines[2])

	// "10.0.0.1" is 8 characters, exactly the minimum client column width
	assert.Equal(t, "| Source | Total 200 | Total 204 | Total 301 | Total 400 | Total 401 | Total 403 | Total 404 | Total 500 | Total 503 |", lines[3])
	assert.Equal(t, "|--------|-----------|-----------|-----------|-----------|-----------|-----------|-----------|-----------|-----------|", lines[4])
	assert.Equal(t, "|10.0.0.1|     1     |     0     |     0     |     0     |     0     |     0     |     1     |     0     |     0     |", lines[5])

	// Section trailer: blank line, dashes, blank line
	assert.Equal(t, "", lines[6])
	assert.Equal(t, "----------", lines[7])
}

func TestRenderReportClientOrderAndWidth(t *testing.T) {
	store := NewConnectionStore("", false)
	store.IngestLines("access.log", []string{
		`very-long-hostname.example.org - - [10/Mar/2023:00:00:00 +0000] "GET / HTTP/1.1" 200 1`,
		`10.0.0.1 - - [10/Mar/2023:00:00:01 +0000] "GET / HTTP/1.1" 200 1`,
	})

	report := RenderReport(store)

	// Clients appear in lexicographic order
	first := strings.Index(report, "|10.0.0.1|")
	second := strings.Index(report, "|very-long-hostname.example.org|")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)

	// Long labels widen their own header cell to the label's length
	label := "very-long-hostname.example.org"
	leading, trailing := spacerStrings(len(label), clientHeaderLabel)
	assert.Contains(t, report, "|"+leading+clientHeaderLabel+trailing+"| Total 200 |")
	assert.Contains(t, report, "|"+strings.Repeat("-", len(label))+"|-----------|")
}

func TestReportMatchesFileOutput(t *testing.T) {
	store := NewConnectionStore("", false)
	store.IngestLines("access.log", testLinesAlpha)

	// Rendering is deterministic; the same store always yields the same text
	assert.Equal(t, RenderReport(store), RenderReport(store))
}
