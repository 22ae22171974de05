// Command ca-sweep runs one model across a range of seeds and reports
// how its populations spread. Seeds run side by side on a worker pool,
// each as its own single-threaded simulation, so results match a plain
// ca run with the same seed.
package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Lucas-Bergami/Cellular-Automata/internal/app"
	"github.com/Lucas-Bergami/Cellular-Automata/internal/core"
	"github.com/Lucas-Bergami/Cellular-Automata/internal/sim"
)

type seedResult struct {
	seed  int64
	final map[string]int
	peak  map[string]int
}

func main() {
	log.SetFlags(0)

	model := flag.String("model", "", "model file to sweep (overrides -preset)")
	preset := flag.String("preset", "forest-fire", "built-in model to sweep")
	steps := flag.Int("steps", 200, "generations to run per seed")
	seeds := flag.Int("seeds", 32, "number of seeds to run")
	first := flag.Int64("seed", 1, "first seed; the sweep runs seed, seed+1, ...")
	workers := flag.Int("workers", runtime.NumCPU(), "number of concurrent runs")
	neighborhood := flag.String("neighborhood", "moore", "moore, von-neumann or extended-moore")
	rank := flag.String("rank", "", "state to rank seeds by (default: last declared state)")
	flag.Parse()

	if *seeds <= 0 {
		log.Fatal("-seeds must be positive")
	}
	if *steps < 0 {
		log.Fatal("-steps must not be negative")
	}
	if *workers <= 0 {
		log.Fatal("-workers must be positive")
	}

	m, name, err := app.LoadModel(*model, *preset)
	if err != nil {
		log.Fatal(err)
	}
	if len(m.States) == 0 {
		log.Fatalf("%s declares no states, nothing to sweep", name)
	}
	nb, err := core.ParseNeighborhood(*neighborhood)
	if err != nil {
		log.Fatal(err)
	}
	rankState := *rank
	if rankState == "" {
		rankState = m.States[len(m.States)-1].Name
	}
	if _, ok := m.StateID(rankState); !ok {
		log.Fatalf("%s declares no state named %q", name, rankState)
	}

	fmt.Printf("Sweeping %s: %d seeds x %d steps (%d workers, %s neighborhood)\n",
		name, *seeds, *steps, *workers, nb)

	jobs := make(chan int64)
	results := make(chan seedResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range jobs {
				results <- runSeed(m, nb, seed, *steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for i := 0; i < *seeds; i++ {
			jobs <- *first + int64(i)
		}
		close(jobs)
	}()

	start := time.Now()
	var all []seedResult
	for res := range results {
		all = append(all, res)
	}
	elapsed := time.Since(start)

	pad := 0
	for _, st := range m.States {
		if len(st.Name) > pad {
			pad = len(st.Name)
		}
	}
	fmt.Printf("\nFinal populations after %d generations (elapsed %s):\n",
		*steps, elapsed.Round(time.Millisecond))
	for _, st := range m.States {
		lo, hi, top, sum := all[0].final[st.Name], all[0].final[st.Name], 0, 0
		for _, res := range all {
			n := res.final[st.Name]
			sum += n
			if n < lo {
				lo = n
			}
			if n > hi {
				hi = n
			}
			if p := res.peak[st.Name]; p > top {
				top = p
			}
		}
		fmt.Printf("  %-*s  min=%d  mean=%.1f  max=%d  peak=%d\n",
			pad, st.Name, lo, float64(sum)/float64(len(all)), hi, top)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].final[rankState] != all[j].final[rankState] {
			return all[i].final[rankState] > all[j].final[rankState]
		}
		return all[i].seed < all[j].seed
	})

	show := len(all)
	if show > 5 {
		show = 5
	}
	fmt.Printf("\nTop %d seeds by final %s:\n", show, rankState)
	for i := 0; i < show; i++ {
		fmt.Printf("%2d) seed=%d %s\n", i+1, all[i].seed, populations(m, all[i].final))
	}
}

// runSeed drives one simulation to the requested generation and records,
// per state, the final population and the highest population seen.
func runSeed(m *core.Model, nb core.Neighborhood, seed int64, steps int) seedResult {
	s := sim.New(m, sim.Options{Neighborhood: nb, Seed: seed, Workers: 1})
	peak := s.Census()
	for i := 0; i < steps; i++ {
		s.Step()
		for state, n := range s.Census() {
			if n > peak[state] {
				peak[state] = n
			}
		}
	}
	return seedResult{seed: seed, final: s.Census(), peak: peak}
}

func populations(m *core.Model, census map[string]int) string {
	parts := make([]string, 0, len(m.States))
	for _, st := range m.States {
		parts = append(parts, fmt.Sprintf("%s=%d", st.Name, census[st.Name]))
	}
	return strings.Join(parts, " ")
}
