package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/termini/internal/debuglog"
	"github.com/javiermolinar/termini/internal/llm"
)

// newLLMClient builds the chat client; tests replace it.
var newLLMClient = llm.NewClient

func (a *App) askCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask the configured LLM about your deadlines",
		Long: `Ask a question about the stored deadlines.

The open tasks due up to --days ahead, overdue ones included, and the
deadline counters are sent to the model configured under [llm].`,
		Example: `  termini ask "cosa scade questa settimana?"
  termini ask which hearings are overdue --days=60`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 0 {
				return fmt.Errorf("--days must not be negative: %d", days)
			}
			if err := a.ensureStore(); err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			snap, err := llm.BuildSnapshot(ctx, a.store, a.today(), days)
			if err != nil {
				return err
			}

			cfg := a.config.LLM
			client, err := newLLMClient(cfg.Provider, cfg.Model, cfg.BaseURL)
			if err != nil {
				return fmt.Errorf("creating LLM client: %w", err)
			}

			debuglog.Event("ask", map[string]any{
				"provider": cfg.Provider,
				"model":    cfg.Model,
				"tasks":    len(snap.Tasks),
			})
			answer, err := llm.NewAssistant(client).Ask(ctx, strings.Join(args, " "), snap)
			if err != nil {
				debuglog.LogError("ask", err)
				return fmt.Errorf("asking %s: %w", cfg.Provider, err)
			}

			a.println(answer)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "Include tasks due up to this many days ahead")
	return cmd
}
