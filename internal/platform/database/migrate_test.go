package database

import (
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
)

func TestMigrationsEmbed(t *testing.T) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		t.Fatalf("failed to build migration source: %v", err)
	}
	defer source.Close()

	first, err := source.First()
	if err != nil {
		t.Fatalf("no migrations embedded: %v", err)
	}
	if first != 1 {
		t.Fatalf("expected first migration version 1, got %d", first)
	}
}
