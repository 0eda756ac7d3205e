package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "hits.db")

	store := NewConnectionStore(dbPath, false)
	store.IngestLines("access.log", testLinesAlpha)

	require.NoError(t, store.InitDB())
	require.NoError(t, store.FlushToDb())

	// The in-memory store is untouched by the flush
	assert.Equal(t, 3, store.RecordCount())

	archived, err := store.QueryDatabase()
	require.NoError(t, err)
	require.Len(t, archived, 3)

	bySource := make(map[string]int)
	for _, conn := range archived {
		bySource[conn.ClientSource]++
	}
	assert.Equal(t, 2, bySource["10.0.0.1"])
	assert.Equal(t, 1, bySource["10.0.0.2"])
}

func TestArchiveAccumulatesAcrossRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "hits.db")

	first := NewConnectionStore(dbPath, false)
	first.IngestLines("a.access.log", testLinesAlpha)
	require.NoError(t, first.InitDB())
	require.NoError(t, first.FlushToDb())

	second := NewConnectionStore(dbPath, false)
	second.IngestLines("b.access.log", testLinesBravo)
	require.NoError(t, second.InitDB())
	require.NoError(t, second.FlushToDb())

	archived, err := second.QueryDatabase()
	require.NoError(t, err)
	assert.Len(t, archived, 5)
}
