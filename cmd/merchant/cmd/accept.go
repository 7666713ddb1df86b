package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/treeforge/merchant/cmd/merchant/app"
	"github.com/treeforge/merchant/pkg/catalog"
	"github.com/treeforge/merchant/pkg/sync"
)

func newAcceptCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "accept [catalogue]",
		Short: "Adopt local edits as the new baseline without syncing",
		Long: `Accept overwrites the stored fingerprint of every remotely existing entry
with its current value, so the next sync treats the catalogue as clean.
Use it after editing entries you do not want pushed, or after changing
them remotely by hand. Entries that were never created keep reading as
new. The platform is not contacted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cataloguePath(args)
			cat, err := catalog.Load(path)
			if err != nil {
				return err
			}
			count := sync.RecomputeFingerprints(cat)
			if err := catalog.Save(path, cat); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Accepted %d entries.\n", count)
			return nil
		},
	}
}
