// Package db embeds the goose migrations for each supported driver.
package db

import (
	"embed"
	"fmt"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var Migrations embed.FS

// Dialects maps a configured driver onto its goose dialect.
var Dialects = map[string]string{
	"postgres": "postgres",
	"sqlite":   "sqlite3",
}

// Dir is the migrations directory inside Migrations for driver.
func Dir(driver string) (string, error) {
	if _, ok := Dialects[driver]; !ok {
		return "", fmt.Errorf("no migrations for driver %q", driver)
	}
	return "migrations/" + driver, nil
}
