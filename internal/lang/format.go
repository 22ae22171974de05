package lang

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Lucas-Bergami/Cellular-Automata/internal/core"
)

// Format renders a model back to canonical configuration text. Parsing the
// output reproduces the model exactly, so Format is the save path for
// anything loaded or built in memory. Whole probabilities print without a
// decimal point.
func Format(m *core.Model) string {
	var b strings.Builder
	fmt.Fprintf(&b, "WIDTH %d HEIGHT %d\n", m.Grid.Width, m.Grid.Height)
	b.WriteString("STATE {\n")
	for _, s := range m.States {
		fmt.Fprintf(&b, "    %s(%d, %d, %d, %d)\n", s.Name, s.R, s.G, s.B, s.Weight)
	}
	b.WriteString("}\n\nRULES {\n")
	for _, r := range m.Rules {
		fmt.Fprintf(&b, "    IF current is '%s' AND %s THEN next is '%s' WITH PROB %s\n",
			r.Current, r.Cond, r.Next, strconv.FormatFloat(r.Prob, 'f', -1, 64))
	}
	b.WriteString("}\n")
	return b.String()
}
