package main

import (
	"context"
	"strings"

	"github.com/anoushkasinn/Spend.Sense/internal/advisor"
	"github.com/anoushkasinn/Spend.Sense/internal/cli"
	"github.com/anoushkasinn/Spend.Sense/internal/tui"
	"github.com/anoushkasinn/Spend.Sense/internal/tui/themes"
	"github.com/spf13/cobra"
)

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask the advisor one question about your spending",
		Example: `  spend ask "how am I doing?"
  spend ask where does my money go`,
		Args: cobra.MinimumNArgs(1),
		RunE: readOnly(func(_ context.Context, a *app, _ *cobra.Command, args []string) error {
			answer := advisor.NewResponder().Respond(strings.Join(args, " "), a.ledger.AdvisorContext())
			a.printf("%s %s\n", cli.RobotIcon, answer)
			return nil
		}),
	}
}

func chatCmd() *cobra.Command {
	var inline bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the advisor",
		Long: `Opens an interactive conversation with the advisor. Answers always use
your latest expenses and budget. Pick a suggested question with the arrow
keys or type your own; press esc to leave.`,
		Args: cobra.NoArgs,
		RunE: readOnly(func(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
			return tui.Run(ctx,
				tui.WithTheme(themes.ForMode(a.ledger.DarkMode())),
				tui.WithContext(a.ledger.AdvisorContext),
				tui.WithAltScreen(!inline))
		}),
	}

	cmd.Flags().BoolVar(&inline, "inline", false, "render in the terminal scrollback instead of the alternate screen")
	return cmd
}
