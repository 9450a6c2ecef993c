package main

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4"
)

func TestResolveDSN(t *testing.T) {
	t.Setenv(envDSN, "")
	if got := resolveDSN(""); got != defaultDSN {
		t.Errorf("resolveDSN() = %q, want default", got)
	}

	t.Setenv(envDSN, "postgres://env")
	if got := resolveDSN(""); got != "postgres://env" {
		t.Errorf("resolveDSN() = %q, want env value", got)
	}
	if got := resolveDSN("postgres://flag"); got != "postgres://flag" {
		t.Errorf("resolveDSN() = %q, want flag value", got)
	}
}

func TestMigrationsPaired(t *testing.T) {
	entries, err := fs.ReadDir(migrations, "migrations")
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}

	ups, downs := map[string]bool{}, map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}

	if len(ups) == 0 {
		t.Fatal("no up migrations embedded")
	}
	for v := range ups {
		if !downs[v] {
			t.Errorf("migration %s has no down script", v)
		}
	}
}

func TestIgnoreNoChange(t *testing.T) {
	if err := ignoreNoChange(migrate.ErrNoChange); err != nil {
		t.Errorf("ignoreNoChange(ErrNoChange) = %v, want nil", err)
	}
	boom := errors.New("boom")
	if err := ignoreNoChange(boom); !errors.Is(err, boom) {
		t.Errorf("ignoreNoChange(boom) = %v, want boom", err)
	}
}
