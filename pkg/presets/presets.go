// Package presets ships ready-to-run automaton definitions in source form.
// Each preset is ordinary configuration text in canonical formatting, so
// they double as living documentation of the language.
package presets

import (
	"maps"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

var sources = map[string]string{
	"game-of-life": `WIDTH 50 HEIGHT 40
STATE {
    Dead(0, 0, 0, 5)
    Alive(0, 255, 0, 5)
}

RULES {
    IF current is 'Alive' AND count(Alive) == 2 THEN next is 'Alive' WITH PROB 1
    IF current is 'Alive' AND count(Alive) == 3 THEN next is 'Alive' WITH PROB 1
    IF current is 'Dead' AND count(Alive) == 3 THEN next is 'Alive' WITH PROB 1
    IF current is 'Alive' AND count(Alive) < 2 THEN next is 'Dead' WITH PROB 1
    IF current is 'Alive' AND count(Alive) > 3 THEN next is 'Dead' WITH PROB 1
}
`,

	"wireworld": `WIDTH 50 HEIGHT 40
STATE {
    Empty(0, 0, 0, 10)
    ElectronHead(0, 0, 255, 0)
    ElectronTail(255, 0, 0, 0)
    Conductor(255, 255, 0, 0)
}

RULES {
    IF current is 'ElectronHead' AND (no conditions) THEN next is 'ElectronTail' WITH PROB 1
    IF current is 'ElectronTail' AND (no conditions) THEN next is 'Conductor' WITH PROB 1
    IF current is 'Conductor' AND count(ElectronHead) == 1 OR count(ElectronHead) == 2 THEN next is 'ElectronHead' WITH PROB 1
}
`,

	"greenberg": `WIDTH 50 HEIGHT 40
STATE {
    Off(0, 0, 0, 10)
    On(0, 0, 255, 10)
    Dying(255, 0, 0, 10)
}

RULES {
    IF current is 'Off' AND count(On) == 2 THEN next is 'On' WITH PROB 1
    IF current is 'On' AND (no conditions) THEN next is 'Dying' WITH PROB 1
    IF current is 'Dying' AND (no conditions) THEN next is 'Off' WITH PROB 1
}
`,

	"turing-patterns": `WIDTH 50 HEIGHT 40
STATE {
    Empty(0, 0, 0, 10)
    Activator(0, 200, 255, 5)
    Inhibitor(255, 100, 0, 5)
}

RULES {
    IF current is 'Empty' AND count(Activator) >= 2 THEN next is 'Activator' WITH PROB 1
    IF current is 'Activator' AND count(Activator) >= 3 THEN next is 'Inhibitor' WITH PROB 1
    IF current is 'Inhibitor' AND (no conditions) THEN next is 'Empty' WITH PROB 1
}
`,

	"forest-fire": `WIDTH 50 HEIGHT 40
STATE {
    Empty(0, 0, 0, 10)
    Tree(0, 200, 0, 7)
    Burning(255, 0, 0, 3)
}

RULES {
    IF current is 'Burning' AND (no conditions) THEN next is 'Empty' WITH PROB 0.8
    IF current is 'Tree' AND count(Burning) >= 1 THEN next is 'Burning' WITH PROB 0.5
    IF current is 'Empty' AND (no conditions) THEN next is 'Tree' WITH PROB 0.3
}
`,
}

// Names lists every preset in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(sources))
}

// Source returns the configuration text of a preset.
func Source(name string) (string, error) {
	src, ok := sources[name]
	if !ok {
		return "", errors.Errorf("unknown preset %q (have %s)", name, strings.Join(Names(), ", "))
	}
	return src, nil
}
