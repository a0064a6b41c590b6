// Package database provides connection setup for MariaDB and Redis.
// This file validates migration SQL files to catch schema mismatches early.
package database

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"testing"
)

// validRestrictionKinds must match the ENUM values on
// date_restrictions.kind. Update this set when extending the ENUM via
// ALTER TABLE. Current ENUM: ENUM('date', 'range', 'before', 'after'),
// defined in 000001.
var validRestrictionKinds = map[string]bool{
	"date":   true,
	"range":  true,
	"before": true,
	"after":  true,
}

// migrationsDir returns the absolute path to db/migrations/ from the
// project root.
func migrationsDir(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	// thisFile is internal/database/migrate_test.go, project root is two dirs up.
	projectRoot := filepath.Join(filepath.Dir(thisFile), "..", "..")
	dir := filepath.Join(projectRoot, "db", "migrations")
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("migrations directory not found at %s: %v", dir, err)
	}
	return dir
}

// TestMigrations_UpDownPairs checks that every .up.sql migration has a
// matching .down.sql. golang-migrate refuses to roll back past a missing
// down file, which turns a bad deploy into a manual recovery.
func TestMigrations_UpDownPairs(t *testing.T) {
	dir := migrationsDir(t)
	ups, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		t.Fatalf("globbing migration files: %v", err)
	}
	if len(ups) == 0 {
		t.Fatal("no .up.sql migrations found")
	}

	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		if _, err := os.Stat(down); err != nil {
			t.Errorf("migration %s has no matching down file", filepath.Base(up))
		}
	}
}

// enumValuePattern extracts the quoted members of the kind ENUM from a
// CREATE/ALTER statement.
var enumValuePattern = regexp.MustCompile(`(?i)kind\s+ENUM\s*\(([^)]*)\)`)

// TestMigrations_RestrictionKindValues scans all .up.sql files and checks
// that every kind ENUM declaration matches validRestrictionKinds exactly.
// A drifted ENUM produces "Data truncated for column 'kind'" (error 1265)
// at insert time, long after the deploy looked green.
func TestMigrations_RestrictionKindValues(t *testing.T) {
	dir := migrationsDir(t)
	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		t.Fatalf("globbing migration files: %v", err)
	}

	found := false
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			t.Fatalf("reading %s: %v", file, err)
		}

		for _, match := range enumValuePattern.FindAllStringSubmatch(string(content), -1) {
			found = true
			declared := map[string]bool{}
			for _, raw := range strings.Split(match[1], ",") {
				val := strings.Trim(strings.TrimSpace(raw), "'\"")
				declared[val] = true
				if !validRestrictionKinds[val] {
					t.Errorf("%s declares unknown restriction kind %q", filepath.Base(file), val)
				}
			}
			for want := range validRestrictionKinds {
				if !declared[want] {
					t.Errorf("%s is missing restriction kind %q", filepath.Base(file), want)
				}
			}
		}
	}

	if !found {
		t.Error("no kind ENUM declaration found in any migration")
	}
}
