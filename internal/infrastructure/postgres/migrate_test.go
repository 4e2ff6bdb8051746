package postgres

import "testing"

func TestMigrateURL(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@localhost:5432/db?sslmode=disable":   "pgx5://u:p@localhost:5432/db?sslmode=disable",
		"postgresql://u:p@localhost:5432/db?sslmode=disable": "pgx5://u:p@localhost:5432/db?sslmode=disable",
		"pgx5://already":                                     "pgx5://already",
	}
	for in, want := range tests {
		if got := migrateURL(in); got != want {
			t.Errorf("migrateURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestConfigDSN_DefaultsSSLMode(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "activitydb"}
	if got, want := cfg.DSN(), "postgres://u:p@db:5432/activitydb?sslmode=disable"; got != want {
		t.Fatalf("DSN() = %q, want %q", got, want)
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected up and down migration, got %d files", len(entries))
	}
}
