package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/treeforge/merchant/cmd/merchant/app"
	"github.com/treeforge/merchant/pkg/catalog"
	"github.com/treeforge/merchant/pkg/sync"
)

func newOutdatedCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "outdated [catalogue]",
		Short: "List entries whose content drifted from their stored fingerprint",
		Long: `Outdated recomputes every entry's fingerprint and lists the ones that no
longer match what was stored after the last sync. Read-only: neither the
catalogue file nor the platform is touched.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(cataloguePath(args))
			if err != nil {
				return err
			}
			outdated := sync.PreviewOutdated(cat)
			if len(outdated) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "All entries are up to date.")
				return nil
			}
			printEntries(cmd.OutOrStdout(), "outdated", outdated)
			return nil
		},
	}
}
