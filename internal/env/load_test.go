package env

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
# comment
PHYSX_FRAMES=10
export PHYSX_DT = 0.5
PHYSX_LOG="out/Result.txt"
PHYSX_NAME='a b'
=orphan
garbage
PHYSX_EMPTY=
`
	vars, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"PHYSX_FRAMES": "10",
		"PHYSX_DT":     "0.5",
		"PHYSX_LOG":    "out/Result.txt",
		"PHYSX_NAME":   "a b",
		"PHYSX_EMPTY":  "",
	}
	if len(vars) != len(want) {
		t.Errorf("parsed %d vars, want %d: %v", len(vars), len(want), vars)
	}
	for k, v := range want {
		if got, ok := vars[k]; !ok || got != v {
			t.Errorf("%s = %q (present %v), want %q", k, got, ok, v)
		}
	}
}

func TestLoadKeepsExistingVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PHYSX_TEST_A=file\nPHYSX_TEST_B=file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PHYSX_TEST_A", "process")
	t.Setenv("PHYSX_TEST_B", "")
	os.Unsetenv("PHYSX_TEST_B")

	if err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := os.Getenv("PHYSX_TEST_A"); got != "process" {
		t.Errorf("PHYSX_TEST_A = %q, want process", got)
	}
	if got := os.Getenv("PHYSX_TEST_B"); got != "file" {
		t.Errorf("PHYSX_TEST_B = %q, want file", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "none.env")); err != nil {
		t.Errorf("Load(missing) = %v", err)
	}
}
