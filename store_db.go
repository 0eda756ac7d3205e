package main

import (
	"database/sql"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

// InitDB ensures the archive database and its table exist
func (s *ConnectionStore) InitDB() error {
	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS connections (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		client_source TEXT NOT NULL,
		client_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		http_method TEXT NOT NULL,
		request_uri TEXT NOT NULL,
		http_version TEXT NOT NULL,
		status_code INTEGER NOT NULL,
		response_size INTEGER NOT NULL
	);
	`
	if _, err = db.Exec(createTableSQL); err != nil {
		return err
	}

	// Index on client_source for per-client history queries
	indexSQL := `CREATE INDEX IF NOT EXISTS idx_client_source ON connections(client_source);`
	if _, err = db.Exec(indexSQL); err != nil {
		return err
	}

	for _, pragma := range sqlitePragmas {
		if _, err := db.Exec(pragma); err != nil {
			log.Printf("Warning: failed to set pragma during init: %v\n", err)
		}
	}

	return nil
}

// sqlitePragmas are SQLite performance settings applied on every open
var sqlitePragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA cache_size=-64000",
	"PRAGMA temp_store=MEMORY",
}

// FlushToDb archives all stored connection records to the SQLite database.
// The in-memory store is left intact; the report is rendered from it after
// the flush.
func (s *ConnectionStore) FlushToDb() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	defer func(start time.Time) {
		log.Printf("    FlushToDb took %v", time.Since(start))
	}(time.Now())

	records := 0
	for _, bucket := range s.buckets {
		records += len(bucket)
	}
	log.Printf("=== Flushing %d records to database: %s ===\n", records, s.dbPath)
	log.Print("    " + GetMemoryStatsString())

	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		log.Printf("Error opening database: %v\n", err)
		return err
	}
	defer db.Close()

	for _, pragma := range sqlitePragmas {
		if _, err := db.Exec(pragma); err != nil {
			log.Printf("Warning: failed to set pragma: %v\n", err)
		}
	}

	// Single transaction for the batch insert
	tx, err := db.Begin()
	if err != nil {
		log.Printf("Error beginning transaction: %v\n", err)
		return err
	}

	insertSQL := `
	INSERT INTO connections (client_source, client_id, user_id, timestamp, http_method, request_uri, http_version, status_code, response_size)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		tx.Rollback()
		log.Printf("Error preparing statement: %v\n", err)
		return err
	}
	defer stmt.Close()

	errorCount := 0
	for _, bucket := range s.buckets {
		for _, conn := range bucket {
			if _, err := stmt.Exec(conn.ClientSource, conn.ClientId, conn.UserId, conn.Timestamp,
				conn.HttpMethod, conn.RequestUri, conn.HttpVersion, conn.HttpStatusCode, conn.ResponseSize); err != nil {
				log.Printf("Error inserting connection record: %v\n", err)
				errorCount++
			}
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("Error committing transaction: %v\n", err)
		return err
	}

	if errorCount > 0 {
		log.Printf("Warning: %d errors occurred during flush\n", errorCount)
	}

	return nil
}

// QueryDatabase retrieves all archived connection records from the SQLite
// database, newest first
func (s *ConnectionStore) QueryDatabase() ([]Connection, error) {
	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		log.Printf("Error opening database: %v\n", err)
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query("SELECT client_source, client_id, user_id, timestamp, http_method, request_uri, http_version, status_code, response_size FROM connections ORDER BY id DESC")
	if err != nil {
		log.Printf("Error querying database: %v\n", err)
		return nil, err
	}
	defer rows.Close()

	var connections []Connection
	for rows.Next() {
		var conn Connection
		if err := rows.Scan(&conn.ClientSource, &conn.ClientId, &conn.UserId, &conn.Timestamp,
			&conn.HttpMethod, &conn.RequestUri, &conn.HttpVersion, &conn.HttpStatusCode, &conn.ResponseSize); err != nil {
			log.Printf("Error scanning row: %v\n", err)
			continue
		}
		connections = append(connections, conn)
	}

	if err = rows.Err(); err != nil {
		log.Printf("Error iterating rows: %v\n", err)
		return nil, err
	}

	return connections, nil
}
