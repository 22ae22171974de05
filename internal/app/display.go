package app

import (
	"fmt"
	"strings"

	"github.com/Lucas-Bergami/Cellular-Automata/internal/core"
)

// glyphs maps state ids to terminal characters, id 0 first. Models with
// more states than glyphs wrap around.
const glyphs = ".#*o+x%@"

// Frame renders the grid as terminal text, one row per line.
func Frame(g *core.Grid) string {
	var b strings.Builder
	b.Grow((g.W + 1) * g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			b.WriteByte(glyphs[int(g.At(x, y))%len(glyphs)])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// censusLine renders state counts in declaration order so log output stays
// stable run to run.
func censusLine(m *core.Model, census map[string]int) string {
	parts := make([]string, 0, len(m.States))
	for _, s := range m.States {
		parts = append(parts, fmt.Sprintf("%s=%d", s.Name, census[s.Name]))
	}
	return strings.Join(parts, " ")
}
