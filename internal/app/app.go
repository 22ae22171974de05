// Package app wires the language front end, the simulation and the
// command-line surface into one headless runner.
package app

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/pkg/errors"

	"github.com/Lucas-Bergami/Cellular-Automata/internal/core"
	"github.com/Lucas-Bergami/Cellular-Automata/internal/lang"
	"github.com/Lucas-Bergami/Cellular-Automata/internal/sim"
	"github.com/Lucas-Bergami/Cellular-Automata/pkg/presets"
)

// Run executes one headless run: load the model, seed or adopt a grid,
// advance the requested generations and report progress to w.
func Run(cfg Config, w io.Writer) error {
	m, name, err := LoadModel(cfg.Model, cfg.Preset)
	if err != nil {
		return err
	}
	if len(m.States) == 0 {
		return errors.Errorf("%s declares no states, nothing to simulate", name)
	}
	if err := applyWeights(m, cfg.Weights); err != nil {
		return err
	}
	if cfg.SaveModel != "" {
		if err := os.WriteFile(cfg.SaveModel, []byte(lang.Format(m)), 0o644); err != nil {
			return errors.Wrapf(err, "save model %s", cfg.SaveModel)
		}
	}
	nb, err := core.ParseNeighborhood(cfg.Neighborhood)
	if err != nil {
		return err
	}

	s := sim.New(m, sim.Options{Neighborhood: nb, Seed: cfg.Seed, Workers: cfg.Workers})
	if cfg.GridIn != "" {
		g, err := readGrid(cfg.GridIn)
		if err != nil {
			return err
		}
		if err := s.SetGrid(g); err != nil {
			return errors.Wrapf(err, "adopt grid %s", cfg.GridIn)
		}
	}

	fmt.Fprintf(w, "%s: %d states, %d rules, %dx%d grid, %s neighborhood, seed %d\n",
		name, len(m.States), len(m.Rules), m.Grid.Width, m.Grid.Height, s.Grid().Neighborhood, cfg.Seed)
	if cfg.Show {
		fmt.Fprint(w, Frame(s.Grid()))
	}

	pace := newPacer(time.Duration(cfg.Delay))
	for i := 0; i < cfg.Steps; i++ {
		s.Step()
		if cfg.Show {
			fmt.Fprintf(w, "\ngen %d\n%s", s.Generation(), Frame(s.Grid()))
		}
		if cfg.CensusEvery > 0 && s.Generation()%uint64(cfg.CensusEvery) == 0 {
			fmt.Fprintf(w, "gen %d: %s\n", s.Generation(), censusLine(m, s.Census()))
		}
		pace.wait()
	}
	fmt.Fprintf(w, "done after %d generations: %s\n", s.Generation(), censusLine(m, s.Census()))

	if cfg.GridOut != "" {
		if err := writeGrid(cfg.GridOut, s.Grid()); err != nil {
			return err
		}
		fmt.Fprintf(w, "grid written to %s\n", cfg.GridOut)
	}
	return nil
}

// applyWeights rewrites seeding weights in place. Overrides tilt the
// random initial grid without touching the transition rules, so a saved
// model reflects the run as seeded.
func applyWeights(m *core.Model, weights StateWeights) error {
	for _, name := range slices.Sorted(maps.Keys(weights)) {
		id, ok := m.StateID(name)
		if !ok {
			return errors.Errorf("weight override for unknown state %q", name)
		}
		m.States[id].Weight = weights[name]
	}
	return nil
}

// LoadModel resolves a run's model: an explicit file wins over a preset
// name. The returned name labels log lines.
func LoadModel(path, preset string) (*core.Model, string, error) {
	if path != "" {
		m, err := lang.LoadFile(path)
		return m, path, err
	}
	src, err := presets.Source(preset)
	if err != nil {
		return nil, "", err
	}
	m, err := lang.Load(src)
	if err != nil {
		return nil, "", errors.Wrapf(err, "preset %s", preset)
	}
	return m, preset, nil
}

func readGrid(path string) (*core.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read grid %s", path)
	}
	var g core.Grid
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, errors.Wrapf(err, "decode grid %s", path)
	}
	return &g, nil
}

func writeGrid(path string, g *core.Grid) error {
	data, err := json.Marshal(g)
	if err != nil {
		return errors.Wrap(err, "encode grid")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write grid %s", path)
	}
	return nil
}
