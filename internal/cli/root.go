package cli

import (
	"github.com/spf13/cobra"

	"github.com/five82/folio/internal/app"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath  string
	PollSeconds int
}

// NewRootCommand creates the folio command. Without a subcommand it runs the TUI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "folio",
		Short:         "Folio - a terminal reader for your team wiki",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), app.Options{
				ConfigPath: opts.ConfigPath,
				PollEvery:  opts.PollSeconds,
			})
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "override config path (default ~/.config/folio/config.toml)")
	cmd.Flags().IntVar(&opts.PollSeconds, "poll", 0, "refresh interval in seconds (optional, defaults to the config value)")

	cmd.AddCommand(NewPrefsCommand(opts))

	return cmd
}
