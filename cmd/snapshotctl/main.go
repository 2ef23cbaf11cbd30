package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/simaogato/wealthflow-dashboard/internal/config"
)

var (
	sheetFlag = flag.String("f", "", "CSV file or URL of the published sheet. Defaults to $SHEET_URL.")
	plainFlag = flag.Bool("plain", false, "Print markdown as is instead of rendering it for the terminal.")
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range commands {
		commander.Register(c, "reports")
	}

	flag.Parse()
	config.LoadEnvFile()
	os.Exit(int(commander.Execute(context.Background())))
}
