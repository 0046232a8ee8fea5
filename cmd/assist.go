package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/paycal/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type assistCmd struct{}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "start an interactive session with the AI assistant"
}
func (*assistCmd) Usage() string {
	return `pcal assist [<question>]

  Starts an interactive session with an assistant reading the calendar.
  It needs a Gemini API key in GEMINI_API_KEY.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := strings.Join(f.Args(), " ")

	return run(ctx, func(s *session) error {
		if s.cfg.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY is not set")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  s.cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return fmt.Errorf("cannot initialize Gemini's client: %w", err)
		}

		accountant := agent.NewAccountant(s.tracker, s.printer())
		analyst := agent.NewAnalyst()
		for _, e := range []*agent.Expert{accountant, analyst} {
			e.Log = s.log
		}
		a := agent.New(stdout, os.Stdin, accountant, analyst)
		a.Facilitator.Log = s.log
		a.Print = func(_ io.Writer, answer string) { printMarkdown(answer + "\n") }

		if err := a.Run(ctx, client, initialPrompt); err != nil {
			return fmt.Errorf("agent failed: %w", err)
		}
		return nil
	})
}
