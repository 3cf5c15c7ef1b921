package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chiwei/networth/advisor"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI advisor.
type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI advisor" }
func (*assistCmd) Usage() string {
	return `nwt assist [question]

  Starts an interactive session with the AI advisor. The advisor can read
  the ledger and current valuations, and research markets online. Requires
  a configured Gemini API key.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	analyst := advisor.NewAnalyst()
	bookkeeper := advisor.NewBookkeeper()
	a := advisor.New(os.Stdout, os.Stdin, analyst, bookkeeper)

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Advisor failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
