// Command cpl plans a carbon reduction budget.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/carbonplan"
	"github.com/etnz/carbonplan/cmd"
	"github.com/google/subcommands"
)

func main() {
	// Completes the command line and exits when called by the shell.
	cmd.Completion(carbonplan.DefaultCatalog()).Complete("cpl")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()

	if name := flag.Arg(0); name != "" && !registered(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func registered(commander *subcommands.Commander, name string) bool {
	found := false
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		if c.Name() == name {
			found = true
		}
	})
	return found
}
