package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sheet.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestRunImport_DryRun(t *testing.T) {
	path := writeTempCSV(t, "title,chars,alice\nbit,1,bob\n")

	err := runImport(context.Background(), importOptions{
		showID: uuid.New(),
		input:  path,
		kind:   "sketches",
		apply:  false,
	})
	if err != nil {
		t.Fatalf("dry run should not error: %v", err)
	}
}

func TestRunImport_InvalidKind(t *testing.T) {
	err := runImport(context.Background(), importOptions{
		showID: uuid.New(),
		input:  "ignored.csv",
		kind:   "people",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if exitCode(err) != exitUsage {
		t.Fatalf("expected usage exit code, got %d", exitCode(err))
	}
}

func TestRunImport_MissingInput(t *testing.T) {
	err := runImport(context.Background(), importOptions{
		showID: uuid.New(),
		input:  filepath.Join(t.TempDir(), "nope.csv"),
		kind:   "techDetails",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if exitCode(err) != exitUsage {
		t.Fatalf("expected usage exit code, got %d", exitCode(err))
	}
}

func TestExitCode(t *testing.T) {
	if exitCode(nil) != exitOK {
		t.Error("nil should be exitOK")
	}
	if exitCode(errors.New("plain")) != 1 {
		t.Error("uncoded errors should exit 1")
	}
	if exitCode(withCode(exitDB, errors.New("db"))) != exitDB {
		t.Error("coded errors should surface their code")
	}
	if withCode(exitDB, nil) != nil {
		t.Error("withCode(nil) should be nil")
	}
}
