package physics

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestAddBodiesPreservesOrder(t *testing.T) {
	w := NewWorld(nil)
	a := w.NewBody("a", Zero)
	b := w.NewBody("b", Zero)
	c := w.NewBody("c", Zero)

	w.AddBodies(c, a)
	w.AddBodies(b)

	got := w.Bodies()
	if len(got) != 3 || got[0] != c || got[1] != a || got[2] != b {
		t.Errorf("Bodies() = %v, want [c a b]", got)
	}
	if w.Len() != 3 {
		t.Errorf("Len() = %d, want 3", w.Len())
	}
	if w.Find(b.ID()) != b || w.Find(99) != nil {
		t.Error("Find returned the wrong body")
	}
}

func TestBodiesReturnsCopyOfRegistry(t *testing.T) {
	w := NewWorld(nil)
	w.AddBodies(w.NewBody("a", Zero))
	got := w.Bodies()
	got[0] = nil
	if w.Bodies()[0] == nil {
		t.Error("mutating the returned slice changed the registry")
	}
}

func TestSetRoundDigitsRejectsNegative(t *testing.T) {
	w := NewWorld(nil)
	if err := w.SetRoundDigits(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SetRoundDigits(-1) error = %v, want ErrOutOfRange", err)
	}
	if w.RoundDigits() != DefaultRoundDigits {
		t.Errorf("RoundDigits() = %d after rejected set", w.RoundDigits())
	}
}

func seedWorld(t *testing.T) *World {
	t.Helper()
	w := NewWorld(nil)
	sun, err := w.FromDensity(1410, 1.41e3)
	if err != nil {
		t.Fatal(err)
	}
	sun.Name = "sun"
	sun.Scale = Vector3{10, 10, 10}
	if err := sun.SetTemperature(5772); err != nil {
		t.Fatal(err)
	}

	rock, err := w.FromMass(3.3, 0.6)
	if err != nil {
		t.Fatal(err)
	}
	rock.Name = "rock"
	rock.Position = Vector3{57.9, -0.25, 1e-3}
	rock.Velocity = Vector3{0, 0.47, 0}
	rock.SetRotation(Vector3{10, 20, -30})
	w.AddBodies(sun, rock)
	return w
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, format := range []RecordFormat{FormatLegacy, FormatV1} {
		t.Run(format.String(), func(t *testing.T) {
			src := seedWorld(t)
			src.SetFormat(format)
			path := filepath.Join(t.TempDir(), "bodies.json")
			if err := src.SaveTo(path); err != nil {
				t.Fatalf("SaveTo: %v", err)
			}

			dst := NewWorld(nil)
			dst.AddBodies(dst.NewBody("stale", Zero), dst.NewBody("stale", Zero), dst.NewBody("stale", Zero))
			if err := dst.LoadFrom(path); err != nil {
				t.Fatalf("LoadFrom: %v", err)
			}

			want := src.Bodies()
			got := dst.Bodies()
			if len(got) != len(want) {
				t.Fatalf("loaded %d bodies, want %d", len(got), len(want))
			}
			for i := range want {
				w, g := want[i].Record(), got[i].Record()
				// ids come from the loading world's counter
				if g.ID != 3+i {
					t.Errorf("body %d id = %d, want %d", i, g.ID, 3+i)
				}
				w.ID, g.ID = 0, 0
				if w != g {
					t.Errorf("body %d = %+v, want %+v", i, g, w)
				}
			}
		})
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	w := NewWorld(nil)
	err := w.LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadFrom(missing) error = %v, want fs.ErrNotExist", err)
	}
}

func TestLoadFromMalformedKeepsBodies(t *testing.T) {
	w := seedWorld(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"Name":"x","Position":"(1, 2)"}`), 0644); err != nil {
		t.Fatal(err)
	}
	err := w.LoadFrom(path)
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("LoadFrom error = %v, want ErrMalformedRecord", err)
	}
	if w.Len() != 2 {
		t.Errorf("bodies replaced after failed load: %d", w.Len())
	}
}

func TestLoadFromRejectsInvalidValues(t *testing.T) {
	w := seedWorld(t)
	rec := w.Bodies()[1].Record()
	rec.Mass = 0
	path := filepath.Join(t.TempDir(), "zero-mass.json")
	if err := os.WriteFile(path, []byte(RecordText(rec)), 0644); err != nil {
		t.Fatal(err)
	}
	if err := w.LoadFrom(path); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("LoadFrom error = %v, want ErrOutOfRange", err)
	}
}

func TestCloneCopiesPhysicalState(t *testing.T) {
	w := seedWorld(t)
	rock := w.Bodies()[1]
	if err := rock.SetTemperature(300); err != nil {
		t.Fatal(err)
	}

	c, err := w.Clone(rock)
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if c.Equal(rock) {
		t.Error("clone shares the source id")
	}
	if c.Name == rock.Name {
		t.Errorf("clone name = %q, want a fresh default name", c.Name)
	}
	if c.Position != rock.Position || c.Scale != rock.Scale || c.Rotation() != rock.Rotation() {
		t.Errorf("clone placement differs: %v %v %v", c.Position, c.Scale, c.Rotation())
	}
	if c.Mass() != rock.Mass() || c.Volume() != rock.Volume() || c.Density() != rock.Density() || c.Temperature() != 300 {
		t.Errorf("clone matter differs: %v %v %v %v", c.Mass(), c.Volume(), c.Density(), c.Temperature())
	}
	if c.Velocity != Zero {
		t.Errorf("clone velocity = %v, want at rest", c.Velocity)
	}

	moved, err := w.CloneAt(rock, Vector3{1, 2, 3}, Vector3{400, 0, 0})
	if err != nil {
		t.Fatalf("CloneAt: %v", err)
	}
	if moved.Position != (Vector3{1, 2, 3}) || moved.Rotation() != (Vector3{40, 0, 0}) {
		t.Errorf("CloneAt placed body at %v rotated %v", moved.Position, moved.Rotation())
	}
}

func TestCloneIsSeparateBodyInWorld(t *testing.T) {
	w := NewWorld(nil)
	src := w.NewBody("src", Zero)
	w.AddBodies(src)
	c, err := w.CloneAt(src, Vector3{2, 0, 0}, Zero)
	if err != nil {
		t.Fatal(err)
	}
	w.AddBodies(c)

	if c.ID() == src.ID() {
		t.Fatalf("clone id = %d, same as source", c.ID())
	}
	if w.Find(c.ID()) != c {
		t.Error("Find did not return the clone")
	}
	if next := w.NewBody("", Zero).ID(); next != c.ID()+1 {
		t.Errorf("next id = %d, want %d", next, c.ID()+1)
	}

	if err := src.Tick(w, 1); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	// 1*1/2² pulls src towards the clone
	if !almostEqual(src.Velocity.X, 0.25, 1e-15) {
		t.Errorf("source velocity = %v, want 0.25 along x from the clone", src.Velocity)
	}
}

func TestRunReportsEveryBodyEachFrame(t *testing.T) {
	sink := &recordingSink{}
	w := seedWorld(t)
	w.SetSink(sink)

	w.Run(2, nil)

	if got := sink.count("=== Step"); got != 2 {
		t.Errorf("logged %d step headers, want 2", got)
	}
	if got := sink.count("sun;\n"); got != 2 {
		t.Errorf("sun reported %d times, want 2", got)
	}
	if got := sink.count("rock;\n"); got != 2 {
		t.Errorf("rock reported %d times, want 2", got)
	}
	if len(sink.lines) != 6 {
		t.Errorf("logged %d messages, want 6", len(sink.lines))
	}
}

func TestWorldString(t *testing.T) {
	w := seedWorld(t)
	w.DeltaTime = 0.5
	want := "World;\nDelta time: 0.5;\nObjects: sun, rock;"
	if got := w.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
