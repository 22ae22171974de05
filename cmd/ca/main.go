package main

import (
	"flag"
	"log"
	"os"

	"github.com/Lucas-Bergami/Cellular-Automata/internal/app"
)

func main() {
	log.SetFlags(0)

	cfg := app.DefaultConfig()
	runFile := flag.String("run", "", "YAML file carrying the same settings as the flags")
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	if *runFile != "" {
		if err := cfg.ApplyFile(*runFile, flag.CommandLine); err != nil {
			log.Fatal(err)
		}
	}

	if err := app.Run(cfg, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
