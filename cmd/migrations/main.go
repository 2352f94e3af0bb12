package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	_ "github.com/lib/pq"

	"github.com/vncsmyrnk/turfvote/internal/config"
)

var basePath = filepath.Join(".", "internal", "adapters", "repository", "postgres", "migrations")

// Usage: migrations <name>|up [flags]. "up" applies every *.up.sql in order.
func main() {
	if len(os.Args) < 2 {
		slog.Error("a migration name or \"up\" is required")
		os.Exit(1)
	}
	migrationName := os.Args[1]

	cfg, err := config.Load(append([]string{"-store", config.DriverPostgres}, os.Args[2:]...))
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.Postgres.ConnString())
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	files, err := migrationFiles(basePath, migrationName)
	if err != nil {
		slog.Error("failed to find migrations", "error", err)
		os.Exit(1)
	}

	for _, name := range files {
		content, err := os.ReadFile(filepath.Join(basePath, name))
		if err != nil {
			slog.Error("failed to read migration", "file", name, "error", err)
			os.Exit(1)
		}
		if _, err := db.Exec(string(content)); err != nil {
			slog.Error("failed to execute migration", "file", name, "error", err)
			os.Exit(1)
		}
		slog.Info("migration applied", "file", name)
	}
}

func migrationFiles(basePath, migrationName string) ([]string, error) {
	entries, err := os.ReadDir(basePath)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	if migrationName == "up" {
		var ups []string
		for _, name := range names {
			if strings.HasSuffix(name, ".up.sql") {
				ups = append(ups, name)
			}
		}
		return ups, nil
	}

	regex, err := regexp.Compile(fmt.Sprintf(`^.*%s\.sql$`, regexp.QuoteMeta(migrationName)))
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		if regex.MatchString(name) {
			return []string{name}, nil
		}
	}
	return nil, fmt.Errorf("migration file %q not found", migrationName)
}
