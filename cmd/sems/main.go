// Command sems is a small demonstration fact machine: a handful of fact
// types and transitions wired into the embeddable CLI. Pipelines live in
// CUE manifests (see the pipelines directory) and facts are seeded from
// YAML files.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/sems/internal/cli"
	"github.com/roach88/sems/internal/dictionary"
	"github.com/roach88/sems/internal/manifest"
)

// Name is someone to greet.
type Name struct {
	Value string `yaml:"value"`
}

// Greeting is a composed greeting line.
type Greeting struct {
	Text string `yaml:"text"`
}

// Counter is a running count.
type Counter struct {
	Value int `yaml:"value"`
}

func newApp() (*cli.App, error) {
	facts := manifest.NewFactRegistry()
	manifest.RegisterFact[Name](facts, "name")
	manifest.RegisterFact[Greeting](facts, "greeting")
	manifest.RegisterFact[Counter](facts, "counter")

	transitions := dictionary.NewTransitions()
	register := map[string]any{
		"names/default":     func() Name { return Name{Value: "world"} },
		"greet/compose":     func(n Name) Greeting { return Greeting{Text: "hello, " + n.Value} },
		"greet/print":       func(g Greeting) { fmt.Println(g.Text) },
		"counter/start":     func() Counter { return Counter{} },
		"counter/increment": func(c Counter) Counter { return Counter{Value: c.Value + 1} },
		"counter/reset":     func(c *Counter) Counter { return Counter{} },
	}
	for path, fn := range register {
		if err := transitions.Add(path, fn); err != nil {
			return nil, err
		}
	}

	return &cli.App{
		Name:        "sems",
		Short:       "sems - a typed fact machine",
		Long:        "Run, plan, and validate pipelines of fact-consuming transitions.",
		Transitions: transitions,
		Facts:       facts,
	}, nil
}

func main() {
	app, err := newApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCommandError)
	}
	if err := cli.NewRootCommand(app).Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
