package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLoadEnv_SkipsMissingFiles(t *testing.T) {
	tmp := t.TempDir()
	requireWriteFile(t, filepath.Join(tmp, ".env.local"), "RUNSHEET_TEST_ENV_LOAD=ok\n")

	origWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	_ = os.Unsetenv("RUNSHEET_TEST_ENV_LOAD")

	n, err := LoadEnv([]string{".env", ".env.local"})
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 env file loaded, got %d", n)
	}
	if got := os.Getenv("RUNSHEET_TEST_ENV_LOAD"); got != "ok" {
		t.Fatalf("expected env var loaded, got %q", got)
	}
}

func TestLoadEnv_NoFiles(t *testing.T) {
	tmp := t.TempDir()

	origWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	n, err := LoadEnv([]string{".env", ".env.local"})
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 env files loaded, got %d", n)
	}
}

func TestDatabaseOptions_ConnectionString(t *testing.T) {
	opts := DatabaseOptions{
		Name:     "runsheet",
		Host:     "db.local",
		Port:     "5433",
		User:     "app",
		Password: "secret",
	}
	want := "host=db.local port=5433 user=app dbname=runsheet password=secret sslmode=disable"
	if got := opts.ConnectionString(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestLogrusLogLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"silent": logrus.PanicLevel,
		"error":  logrus.ErrorLevel,
		"warn":   logrus.WarnLevel,
		"info":   logrus.InfoLevel,
		"debug":  logrus.DebugLevel,
		"bogus":  logrus.ErrorLevel,
		"":       logrus.ErrorLevel,
	}
	for input, want := range cases {
		c := &Configuration{LogLevel: input}
		if got := c.LogrusLogLevel(); got != want {
			t.Errorf("LogLevel %q: expected %v, got %v", input, want, got)
		}
	}
}

func requireWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
