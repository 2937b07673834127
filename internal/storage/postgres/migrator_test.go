package postgres

import (
	"strings"
	"testing"
	"testing/fstest"
)

func migrationFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys["sql/migrations/"+name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

func TestReadMigrations_PairsSortedByVersion(t *testing.T) {
	t.Parallel()

	fsys := migrationFS(map[string]string{
		"0002_create_order_items.up.sql":   "CREATE TABLE order_items (id BIGSERIAL PRIMARY KEY);",
		"0002_create_order_items.down.sql": "DROP TABLE IF EXISTS order_items;",
		"0001_create_orders.up.sql":        "CREATE TABLE orders (id BIGSERIAL PRIMARY KEY);",
		"0001_create_orders.down.sql":      "DROP TABLE IF EXISTS orders;",
	})

	migrations, err := readMigrations(fsys)
	if err != nil {
		t.Fatalf("readMigrations failed: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}

	if migrations[0].Version != 1 || migrations[0].Name != "create_orders" {
		t.Fatalf("unexpected first migration: %+v", migrations[0])
	}
	if migrations[1].Version != 2 || migrations[1].Name != "create_order_items" {
		t.Fatalf("unexpected second migration: %+v", migrations[1])
	}
	if !strings.Contains(migrations[0].UpSQL, "CREATE TABLE orders") {
		t.Fatalf("up body lost: %q", migrations[0].UpSQL)
	}
	if !strings.Contains(migrations[1].DownSQL, "DROP TABLE") {
		t.Fatalf("down body lost: %q", migrations[1].DownSQL)
	}
}

func TestReadMigrations_MissingDownRejected(t *testing.T) {
	t.Parallel()

	fsys := migrationFS(map[string]string{
		"0001_create_orders.up.sql": "CREATE TABLE orders (id BIGSERIAL PRIMARY KEY);",
	})

	_, err := readMigrations(fsys)
	if err == nil {
		t.Fatal("expected error for missing down migration")
	}
	if !strings.Contains(err.Error(), "both up and down") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReadMigrations_EmptyBodyRejected(t *testing.T) {
	t.Parallel()

	fsys := migrationFS(map[string]string{
		"0001_create_orders.up.sql":   "   \n",
		"0001_create_orders.down.sql": "DROP TABLE IF EXISTS orders;",
	})

	_, err := readMigrations(fsys)
	if err == nil {
		t.Fatal("expected error for empty migration body")
	}
}

func TestReadMigrations_NameMismatchRejected(t *testing.T) {
	t.Parallel()

	fsys := migrationFS(map[string]string{
		"0001_create_orders.up.sql":  "CREATE TABLE orders (id BIGSERIAL PRIMARY KEY);",
		"0001_init_schema.down.sql":  "DROP TABLE IF EXISTS orders;",
		"0002_create_items.up.sql":   "CREATE TABLE order_items (id BIGSERIAL PRIMARY KEY);",
		"0002_create_items.down.sql": "DROP TABLE IF EXISTS order_items;",
	})

	_, err := readMigrations(fsys)
	if err == nil {
		t.Fatal("expected error for mismatched names within one version")
	}
}

func TestParseMigrationFilename(t *testing.T) {
	t.Parallel()

	version, name, direction, err := parseMigrationFilename("0002_create_order_items.down.sql")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if version != 2 || name != "create_order_items" || direction != directionDown {
		t.Fatalf("unexpected parse result: %d %s %s", version, name, direction)
	}

	invalid := []string{
		"not_a_migration.sql",
		"0001_create_orders.sideways.sql",
		"0001_create_orders.up.txt",
		"abc_create_orders.up.sql",
		"0000_create_orders.up.sql",
		"0001_.up.sql",
	}
	for _, base := range invalid {
		if _, _, _, err := parseMigrationFilename(base); err == nil {
			t.Errorf("expected parse error for %q", base)
		}
	}
}

func TestEmbeddedMigrationsAreConsistent(t *testing.T) {
	t.Parallel()

	// Встроенный набор обязан быть валидным: сервис накатывает его на старте.
	migrations, err := readMigrations(migrationsFS)
	if err != nil {
		t.Fatalf("embedded migrations are broken: %v", err)
	}
	if len(migrations) == 0 {
		t.Fatal("embedded migration set is empty")
	}
	if migrations[0].Version != 1 {
		t.Fatalf("embedded migrations must start at version 1, got %d", migrations[0].Version)
	}
}
