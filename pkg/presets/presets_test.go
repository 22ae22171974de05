package presets

import (
	"slices"
	"testing"

	"github.com/Lucas-Bergami/Cellular-Automata/internal/core"
	"github.com/Lucas-Bergami/Cellular-Automata/internal/lang"
	"github.com/Lucas-Bergami/Cellular-Automata/internal/sim"
)

func TestEveryPresetLoads(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			src, err := Source(name)
			if err != nil {
				t.Fatal(err)
			}
			m, err := lang.Load(src)
			if err != nil {
				t.Fatal(err)
			}
			if len(m.States) == 0 || len(m.Rules) == 0 {
				t.Fatalf("preset has %d states and %d rules", len(m.States), len(m.Rules))
			}
		})
	}
}

func TestPresetsAreCanonicallyFormatted(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			src, err := Source(name)
			if err != nil {
				t.Fatal(err)
			}
			m, err := lang.Parse(src)
			if err != nil {
				t.Fatal(err)
			}
			if got := lang.Format(m); got != src {
				t.Fatalf("preset text is not in canonical form\nstored:\n%s\nformatted:\n%s", src, got)
			}
		})
	}
}

func TestUnknownPresetName(t *testing.T) {
	if _, err := Source("spiral-galaxy"); err == nil {
		t.Fatal("expected an error for an unknown preset")
	}
}

func TestLifeBlinkerOscillates(t *testing.T) {
	src, err := Source("game-of-life")
	if err != nil {
		t.Fatal(err)
	}
	m, err := lang.Load(src)
	if err != nil {
		t.Fatal(err)
	}
	// Shrink the board; the rules are what is under test.
	m.Grid = core.GridSpec{Width: 5, Height: 5}

	s := sim.New(m, sim.Options{Seed: 1, Workers: 2})
	g := core.NewGrid(m.Grid, core.Moore)
	for _, p := range [][2]int{{1, 2}, {2, 2}, {3, 2}} {
		g.Set(p[0], p[1], 1)
	}
	if err := s.SetGrid(g); err != nil {
		t.Fatal(err)
	}

	horizontal := slices.Clone(s.Grid().Cells())
	s.Step()
	wantVertical := make([]uint8, 25)
	for _, p := range [][2]int{{2, 1}, {2, 2}, {2, 3}} {
		wantVertical[p[1]*5+p[0]] = 1
	}
	if !slices.Equal(s.Grid().Cells(), wantVertical) {
		t.Fatalf("after one step got %v, want %v", s.Grid().Cells(), wantVertical)
	}
	s.Step()
	if !slices.Equal(s.Grid().Cells(), horizontal) {
		t.Fatal("blinker did not return to its first phase")
	}
}
