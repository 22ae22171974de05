package app

import (
	"flag"
	"fmt"
	"maps"
	"os"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so delays can be spelled "250ms" both on the
// command line and in run files.
type Duration time.Duration

func (d *Duration) String() string { return time.Duration(*d).String() }

// Set implements flag.Value.
func (d *Duration) Set(s string) error {
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.Set(s)
}

// StateWeights collects per-state seeding weight overrides, spelled
// Name=N on the command line (repeatable) or as a mapping in run files.
type StateWeights map[string]int

func (w *StateWeights) String() string {
	parts := make([]string, 0, len(*w))
	for _, name := range slices.Sorted(maps.Keys(*w)) {
		parts = append(parts, fmt.Sprintf("%s=%d", name, (*w)[name]))
	}
	return strings.Join(parts, ",")
}

// Set implements flag.Value, accumulating one Name=N pair per call.
func (w *StateWeights) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return errors.Errorf("weight %q is not in Name=N form", s)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return errors.Errorf("weight %q is not in Name=N form", s)
	}
	if *w == nil {
		*w = StateWeights{}
	}
	(*w)[name] = n
	return nil
}

// Config describes one headless run. Values resolve in three layers: the
// defaults, then an optional YAML run file, then command-line flags, each
// layer overriding the one below.
type Config struct {
	Model        string       `yaml:"model"`
	Preset       string       `yaml:"preset"`
	Steps        int          `yaml:"steps"`
	Seed         int64        `yaml:"seed"`
	Workers      int          `yaml:"workers"`
	Neighborhood string       `yaml:"neighborhood"`
	Weights      StateWeights `yaml:"weights"`
	Delay        Duration     `yaml:"delay"`
	Show         bool         `yaml:"show"`
	CensusEvery  int          `yaml:"census_every"`
	GridIn       string       `yaml:"grid_in"`
	GridOut      string       `yaml:"grid_out"`
	SaveModel    string       `yaml:"save_model"`
}

// DefaultConfig returns the standard run settings: the forest fire preset
// for 100 generations on every CPU, with a census every 10 generations.
func DefaultConfig() Config {
	return Config{
		Preset:       "forest-fire",
		Steps:        100,
		Seed:         42,
		Workers:      runtime.NumCPU(),
		Neighborhood: "moore",
		CensusEvery:  10,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Model, "model", c.Model, "path to an automaton definition (overrides -preset)")
	fs.StringVar(&c.Preset, "preset", c.Preset, "built-in model to run")
	fs.IntVar(&c.Steps, "steps", c.Steps, "generations to simulate")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the initial grid and every probability roll")
	fs.IntVar(&c.Workers, "workers", c.Workers, "goroutines advancing the grid")
	fs.StringVar(&c.Neighborhood, "neighborhood", c.Neighborhood, "moore, von-neumann or extended-moore")
	fs.Var(&c.Weights, "weight", "seeding weight override as Name=N (repeatable)")
	fs.Var(&c.Delay, "delay", "pause between generations (e.g. 250ms)")
	fs.BoolVar(&c.Show, "show", c.Show, "print the grid after every generation")
	fs.IntVar(&c.CensusEvery, "census-every", c.CensusEvery, "log state counts every n generations (0 disables)")
	fs.StringVar(&c.GridIn, "grid-in", c.GridIn, "start from a grid snapshot instead of random seeding")
	fs.StringVar(&c.GridOut, "grid-out", c.GridOut, "write the final grid snapshot here")
	fs.StringVar(&c.SaveModel, "save-model", c.SaveModel, "write the loaded model back in canonical form")
}

// ApplyFile layers a YAML run file into the configuration. Settings the
// file does not mention keep their current values, and flags given
// explicitly on the command line keep priority over the file.
func (c *Config) ApplyFile(path string, fs *flag.FlagSet) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read run file %s", path)
	}
	merged := *c
	// The copy must not share the weight map, or the file merge below
	// would write through into the flag layer.
	merged.Weights = maps.Clone(c.Weights)
	if err := yaml.Unmarshal(data, &merged); err != nil {
		return errors.Wrapf(err, "parse run file %s", path)
	}

	set := map[string]bool{}
	if fs != nil {
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	}
	if set["model"] {
		merged.Model = c.Model
	}
	if set["preset"] {
		merged.Preset = c.Preset
	}
	if set["steps"] {
		merged.Steps = c.Steps
	}
	if set["seed"] {
		merged.Seed = c.Seed
	}
	if set["workers"] {
		merged.Workers = c.Workers
	}
	if set["neighborhood"] {
		merged.Neighborhood = c.Neighborhood
	}
	if set["weight"] {
		merged.Weights = c.Weights
	}
	if set["delay"] {
		merged.Delay = c.Delay
	}
	if set["show"] {
		merged.Show = c.Show
	}
	if set["census-every"] {
		merged.CensusEvery = c.CensusEvery
	}
	if set["grid-in"] {
		merged.GridIn = c.GridIn
	}
	if set["grid-out"] {
		merged.GridOut = c.GridOut
	}
	if set["save-model"] {
		merged.SaveModel = c.SaveModel
	}

	*c = merged
	return nil
}
