package scenario

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"roadsim/internal/geom"
	"roadsim/internal/sims/traffic"
)

const forkYAML = `
name: fork
segments:
  - [0, 0, 10, 0]
  - [10, 0, 20, 0]
  - [10, 0, 10, 10]
entry:
  - [0, 0]
exit:
  - [20, 0]
  - [10, 10]
cars:
  - {x: 2, y: 0, speed: 4}
  - {x: 15, y: 0}
params:
  seed: 9
  injection_probability: 0
  brake_factor: 0.5
`

func TestDecodeAndBuild(t *testing.T) {
	s, err := Decode(strings.NewReader(forkYAML))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Name != "fork" || len(s.Segments) != 3 || len(s.Cars) != 2 {
		t.Fatalf("unexpected scenario %+v", s)
	}

	cfg := s.Config(traffic.DefaultConfig())
	if cfg.Seed != 9 || cfg.Params.InjectionProbability != 0 || cfg.Params.BrakeFactor != 0.5 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Params.SpeedMax != traffic.DefaultConfig().Params.SpeedMax {
		t.Fatal("unset overrides must keep the base value")
	}

	w, err := s.Build(traffic.DefaultConfig())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	cars := w.Cars()
	if len(cars) != 2 {
		t.Fatalf("expected two seeded cars, got %d", len(cars))
	}
	if cars[0].Speed != 4 || cars[0].Segment != 0 {
		t.Fatalf("unexpected first car %+v", cars[0])
	}
	p := cfg.Params
	if cars[1].Speed < p.SpeedMin || cars[1].Speed >= p.SpeedMax || cars[1].Segment != 1 {
		t.Fatalf("expected drawn speed on segment 1, got %+v", cars[1])
	}
	if len(w.Exits()) != 2 {
		t.Fatalf("expected two exits, got %v", w.Exits())
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	s, err := Decode(strings.NewReader(forkYAML))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	a, err := s.Build(traffic.DefaultConfig())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	b, err := s.Build(traffic.DefaultConfig())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if a.Cars()[1] != b.Cars()[1] {
		t.Fatal("drawn speeds and colors should depend only on the seed")
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader("segments: [[0,0,1,0]]\nlanes: 2\n"))
	if err == nil {
		t.Fatal("expected unknown field to fail")
	}
}

func TestBuildRejectsCarOffNetwork(t *testing.T) {
	s := Scenario{
		Name:     "off",
		Segments: [][4]float64{{0, 0, 10, 0}},
		Cars:     []CarSeed{{X: 5, Y: 3, Speed: 1}},
	}
	if _, err := s.Build(traffic.DefaultConfig()); !errors.Is(err, ErrCarOffNetwork) {
		t.Fatalf("expected off-network error, got %v", err)
	}
}

func TestBuildDefaultsGatesToSourcesAndSinks(t *testing.T) {
	s := Scenario{Segments: [][4]float64{{0, 0, 10, 0}, {10, 0, 20, 0}}}
	w, err := s.Build(traffic.DefaultConfig())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if e := w.Entries(); len(e) != 1 || e[0] != geom.Pt(0, 0) {
		t.Fatalf("expected entry at the source, got %v", e)
	}
	if x := w.Exits(); len(x) != 1 || x[0] != geom.Pt(20, 0) {
		t.Fatalf("expected exit at the sink, got %v", x)
	}
}

func TestFromFiles(t *testing.T) {
	dir := t.TempDir()
	segPath := filepath.Join(dir, "roads.txt")
	carPath := filepath.Join(dir, "cars.txt")
	if err := os.WriteFile(segPath, []byte("0,0,10,0\n10,0,20,0\nbogus\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(carPath, []byte("# seeded\n3,0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, skipped, err := FromFiles(segPath, carPath, geom.DefaultTolerance)
	if err != nil {
		t.Fatalf("from files: %v", err)
	}
	if len(skipped) != 1 || skipped[0].Line != 3 {
		t.Fatalf("expected line 3 to be skipped, got %v", skipped)
	}
	if len(s.Segments) != 2 || len(s.Cars) != 1 {
		t.Fatalf("unexpected scenario %+v", s)
	}
	if len(s.Entry) != 1 || s.Entry[0] != [2]float64{0, 0} {
		t.Fatalf("expected derived entry at origin, got %v", s.Entry)
	}
	if len(s.Exit) != 1 || s.Exit[0] != [2]float64{20, 0} {
		t.Fatalf("expected derived exit at (20,0), got %v", s.Exit)
	}
	if _, err := s.Build(traffic.DefaultConfig()); err != nil {
		t.Fatalf("build: %v", err)
	}
}

func TestFromFilesEmptyNetwork(t *testing.T) {
	dir := t.TempDir()
	segPath := filepath.Join(dir, "roads.txt")
	if err := os.WriteFile(segPath, []byte("\n# nothing\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := FromFiles(segPath, "", geom.DefaultTolerance); !errors.Is(err, traffic.ErrEmptyNetwork) {
		t.Fatalf("expected empty network error, got %v", err)
	}
}

func TestEncodeRoundTripsThroughLoad(t *testing.T) {
	seed := int64(3)
	s := Scenario{
		Name:     "saved",
		Segments: [][4]float64{{0, 0, 10, 0}},
		Entry:    [][2]float64{{0, 0}},
		Params:   Overrides{Seed: &seed},
	}
	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		t.Fatalf("encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "s.yaml")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Name != "saved" || got.Params.Seed == nil || *got.Params.Seed != 3 {
		t.Fatalf("unexpected loaded scenario %+v", got)
	}
}

func TestBuildRejectsOutOfRangeOverrides(t *testing.T) {
	docs := map[string]string{
		"brake factor": "segments: [[0, 0, 100, 0]]\nparams: {brake_factor: 1.5}\n",
		"speed range":  "segments: [[0, 0, 100, 0]]\nparams: {speed_min: -20, speed_max: -10, injection_probability: 1}\n",
	}
	for name, doc := range docs {
		s, err := Decode(strings.NewReader(doc))
		if err != nil {
			t.Fatalf("%s: decode: %v", name, err)
		}
		if _, err := s.Build(traffic.DefaultConfig()); !errors.Is(err, traffic.ErrInvalidParams) {
			t.Fatalf("%s: expected invalid params error, got %v", name, err)
		}
	}
}

func TestBuildKeepsFollowerBehindLeader(t *testing.T) {
	doc := "segments: [[0, 0, 100, 0]]\ncars:\n  - {x: 0, y: 0, speed: 10}\n  - {x: 5, y: 0, speed: 1}\nparams: {brake_factor: 0.95, injection_probability: 0}\n"
	s, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	w, err := s.Build(traffic.DefaultConfig())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := w.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	cars := w.Cars()
	if !(cars[0].Position.X < 5) {
		t.Fatalf("follower reached the unmoved leader: x=%f", cars[0].Position.X)
	}
}
