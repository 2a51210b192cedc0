package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/lostfound/internal/cli"
	"github.com/idilsaglam/lostfound/internal/config"
	"github.com/idilsaglam/lostfound/internal/log"
	"github.com/idilsaglam/lostfound/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	group := flag.Bool("group", false, "group output by lost/found")
	verbose := flag.Bool("v", false, "debug logging")
	data := flag.String("data", "", "data file (default $"+config.EnvData+" or "+config.DefaultDataFile+")")
	routesFile := flag.String("routes", "", "routes YAML file (default $"+config.EnvRoutes+" or the built-in catalog)")
	theme := flag.String("theme", "classic", "color theme: classic, neon or mono")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.LevelDebug)
	}
	ui.SetTheme(*theme)

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	cfg := config.Load().Apply(config.Overrides{DataFile: *data, RoutesFile: *routesFile})
	code := cli.Run(args, cli.Options{
		Group:  *group,
		Config: cfg,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
