package commands

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"strings"
	"testing"
)

func newTestRegistry(got *int, rest *[]string) *Registry {
	r := NewRegistry("physx")
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	n := fs.Int("frames", 1, "")
	r.Register("run", "run the simulation", fs, func(args []string) error {
		*got = *n
		*rest = args
		return nil
	})
	r.Register("fail", "always fails", flag.NewFlagSet("fail", flag.ContinueOnError), func([]string) error {
		return errors.New("boom")
	})
	return r
}

func TestExecute(t *testing.T) {
	var frames int
	var rest []string
	r := newTestRegistry(&frames, &rest)

	if err := r.Execute([]string{"run", "-frames", "5", "extra"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if frames != 5 {
		t.Errorf("frames = %d, want 5", frames)
	}
	if len(rest) != 1 || rest[0] != "extra" {
		t.Errorf("positional args = %v", rest)
	}
}

func TestExecuteErrors(t *testing.T) {
	var frames int
	var rest []string
	r := newTestRegistry(&frames, &rest)

	if err := r.Execute(nil); !errors.Is(err, ErrUsage) {
		t.Errorf("Execute(nil) = %v, want ErrUsage", err)
	}
	if err := r.Execute([]string{"jump"}); !errors.Is(err, ErrUsage) {
		t.Errorf("Execute(jump) = %v, want ErrUsage", err)
	}
	if err := r.Execute([]string{"run", "-frames", "x"}); err == nil {
		t.Error("bad flag value accepted")
	}
	if err := r.Execute([]string{"fail"}); err == nil || err.Error() != "boom" {
		t.Errorf("Execute(fail) = %v, want boom", err)
	}
}

func TestUsageListsCommandsSorted(t *testing.T) {
	var frames int
	var rest []string
	r := newTestRegistry(&frames, &rest)
	var buf bytes.Buffer
	r.Usage(&buf)
	out := buf.String()
	if !strings.HasPrefix(out, "usage: physx") {
		t.Errorf("usage header missing:\n%s", out)
	}
	fail, run := strings.Index(out, "fail"), strings.Index(out, "run the simulation")
	if fail < 0 || run < 0 || fail > run {
		t.Errorf("commands not listed in order:\n%s", out)
	}
}
