package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// startHTTPServer serves the finished report and the aggregated stats. The
// server is read-only: there is no ingestion endpoint and no live tailing,
// it exposes whatever the batch run produced.
func startHTTPServer(addr string, store *ConnectionStore, report string) {
	app := fiber.New(fiber.Config{
		AppName: "HTTPD Hit Report",
	})

	// The rendered Markdown report
	app.Get("/", func(c *fiber.Ctx) error {
		c.Set("Content-Type", "text/markdown; charset=utf-8")
		return c.SendString(report)
	})

	// Per-client tracked status code counts
	app.Get("/api/stats", func(c *fiber.Ctx) error {
		return c.JSON(store.AllStats())
	})

	// Every parsed connection record of this run
	app.Get("/api/connections", func(c *fiber.Ctx) error {
		return c.JSON(store.AllRecords())
	})

	// Archived records from previous runs, only when archiving is enabled
	if store.dbPath != "" {
		app.Get("/api/history", func(c *fiber.Ctx) error {
			connections, err := store.QueryDatabase()
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
			}
			return c.JSON(connections)
		})
	}

	log.Printf("Fiber HTTP server starting on %s\n", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("HTTP server error: %v\n", err)
	}
}
