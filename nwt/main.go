package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/chiwei/networth/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion. When invoked by the shell's completion hook this
	// prints candidates and exits, otherwise it is a no-op.
	completion().Complete("nwt")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	date := predict.Nothing
	holding := predict.Nothing
	txFlags := map[string]complete.Predictor{
		"d": date, "o": holding, "q": predict.Nothing, "a": predict.Nothing,
		"r": predict.Nothing, "m": predict.Nothing,
	}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"holdings-file":     predict.Files("*.jsonl"),
			"transactions-file": predict.Files("*.jsonl"),
		},
		Sub: map[string]*complete.Command{
			"init":     {Flags: map[string]complete.Predictor{"c": predict.Nothing}},
			"fmt":      {},
			"add":      {Flags: map[string]complete.Predictor{"n": predict.Nothing, "k": predict.Set{"cash", "stock", "crypto", "metal", "liability", "credit-card", "pending"}, "c": predict.Nothing, "s": predict.Nothing}},
			"archive":  {},
			"list":     {},
			"holding":  {},
			"buy":      {Flags: txFlags},
			"sell":     {Flags: txFlags},
			"deposit":  {Flags: txFlags},
			"withdraw": {Flags: txFlags},
			"settle":   {Flags: map[string]complete.Predictor{"d": date, "p": holding, "o": holding, "a": predict.Nothing, "r": predict.Nothing, "m": predict.Nothing}},
			"rm":       {},
			"tx":       {Flags: map[string]complete.Predictor{"o": holding, "head": predict.Nothing, "tail": predict.Nothing}},
			"summary":  {},
			"update":   {},
			"topic":    {Args: predict.Set{"readme", "accounting", "cost-basis", "exchange-rates", "pending"}},
			"assist":   {},
		},
	}
}
