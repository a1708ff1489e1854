package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestMain re-executes the test binary as the real CLI so the exit-code
// mapping is exercised end to end: 0 clean, 1 lint errors, 2 usage errors.
func TestMain(t *testing.T) {
	if os.Getenv("BE_MAIN") == "1" {
		os.Args = append([]string{"fieldlint"}, strings.Split(os.Getenv("MAIN_ARGS"), "\x1f")...)
		main()
		return
	}

	clean := t.TempDir()
	if err := os.WriteFile(filepath.Join(clean, "ok.go"),
		[]byte("// Package ok is documented.\npackage ok\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	dirty := t.TempDir()
	if err := os.WriteFile(filepath.Join(dirty, "bad.go"),
		[]byte("package bad\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		args     []string
		wantExit int
	}{
		{name: "help", args: []string{"--help"}, wantExit: 0},
		{name: "clean run", args: []string{"check", clean, "--color", "never"}, wantExit: 0},
		{name: "lint errors", args: []string{"check", dirty, "--color", "never"}, wantExit: 1},
		{name: "unknown flag", args: []string{"--bogus"}, wantExit: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(os.Args[0], "-test.run=TestMain")
			cmd.Env = append(os.Environ(),
				"BE_MAIN=1",
				"MAIN_ARGS="+strings.Join(tt.args, "\x1f"))

			err := cmd.Run()
			got := 0
			if ee, ok := err.(*exec.ExitError); ok {
				got = ee.ExitCode()
			} else if err != nil {
				t.Fatalf("run: %v", err)
			}
			if got != tt.wantExit {
				t.Errorf("exit code: got %d, want %d", got, tt.wantExit)
			}
		})
	}
}
