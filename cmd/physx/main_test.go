package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"physx/internal/physics"
	"physx/internal/scenegen"
	"physx/internal/simconfig"
)

func TestRunWritesLogAndRecords(t *testing.T) {
	dir := t.TempDir()
	cfg := simconfig.Default()
	cfg.Frames = 2
	cfg.StartupFile = filepath.Join(dir, "startup_file.json")
	cfg.LogFile = filepath.Join(dir, "Result.txt")
	cfg.RecordFile = filepath.Join(dir, "Result.json")

	opts := scenegen.DefaultOptions()
	opts.Seed = 5
	opts.Count = 3
	if _, err := scenegen.WriteStartup(cfg.StartupFile, physics.FormatLegacy, opts); err != nil {
		t.Fatal(err)
	}

	if err := run(cfg); err != nil {
		t.Fatalf("run: %v", err)
	}

	logText, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(logText), "=== Step"); n != 2 {
		t.Errorf("log has %d step headers, want 2", n)
	}
	w := physics.NewWorld(nil)
	if err := w.LoadFrom(cfg.RecordFile); err != nil {
		t.Fatalf("records not loadable: %v", err)
	}
	if w.Len() != 3 {
		t.Errorf("saved %d bodies, want 3", w.Len())
	}
}

func TestRunMissingStartupFile(t *testing.T) {
	dir := t.TempDir()
	cfg := simconfig.Default()
	cfg.StartupFile = filepath.Join(dir, "missing.json")
	cfg.LogFile = filepath.Join(dir, "Result.txt")
	if err := run(cfg); err == nil {
		t.Error("run succeeded without a startup file")
	}
}

func TestInspect(t *testing.T) {
	w := physics.NewWorld(nil)
	a := w.NewBody("a", physics.Zero)
	b := w.NewBody("b", physics.Vector3{X: 0.5})
	c := w.NewBody("c", physics.Vector3{X: 10})
	w.AddBodies(a, b, c)

	var out bytes.Buffer
	if err := inspect(&out, w, 3); err != nil {
		t.Fatal(err)
	}
	text := out.String()
	for _, want := range []string{
		"a#0: bounds (-0.5, -0.5, -0.5)..(0.5, 0.5, 0.5), collides with b#1",
		"c#2: bounds (9.5, -0.5, -0.5)..(10.5, 0.5, 0.5), collides with none",
		"centre of mass: (3.5, 0, 0)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("inspect output missing %q:\n%s", want, text)
		}
	}
}
