// Package cmd defines the merchant command tree.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/treeforge/merchant/cmd/merchant/app"
	"github.com/treeforge/merchant/pkg/catalog"
)

// NewRootCommand creates the root cobra command with all subcommands.
func NewRootCommand(a *app.App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "merchant",
		Short:   "Sync developer products and game passes from a local catalogue",
		Version: a.Version(),
		Long: `Merchant keeps a universe's monetization in version control. You declare
developer products and game passes in a catalogue file (products.toml,
.json, or .yaml); merchant creates the ones that don't exist yet, updates
the ones you've edited, and leaves everything else alone.

Each entry's content is fingerprinted, so merchant only talks to the
platform about entries that actually changed. Remote ids and fingerprints
are written back into the catalogue file after every run.

Credentials come from the --cookie flag, the ROBLOSECURITY environment
variable (a .env file works), or a logged-in Roblox Studio on Windows.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.SetupLogger()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&a.Config.Verbose, "verbose", "v", a.Config.Verbose, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.Config.Quiet, "quiet", "q", a.Config.Quiet, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().StringVar(&a.Config.LogLevel, "log-level", a.Config.LogLevel, "log level: trace, debug, info, warn, error (overrides -v/-q)")
	rootCmd.PersistentFlags().StringVar(&a.Config.LogFormat, "log-format", a.Config.LogFormat, "log format: auto, console, json")
	rootCmd.PersistentFlags().StringVar(&a.Config.Cookie, "cookie", a.Config.Cookie, "security cookie (overrides ROBLOSECURITY)")

	rootCmd.AddCommand(
		newSyncCommand(a),
		newOutdatedCommand(a),
		newAcceptCommand(a),
		newInitCommand(a),
	)

	return rootCmd
}

// cataloguePath resolves the optional positional catalogue argument.
func cataloguePath(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return catalog.DefaultFile
}
