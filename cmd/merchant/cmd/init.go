package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/treeforge/merchant/cmd/merchant/app"
)

const starterCatalogue = `# Monetization catalogue. Run "merchant sync" to push it.
universe_id = %d

[[products]]
name = "Example Product"
description = "Replace me."
price = 25

[[passes]]
name = "Example Pass"
description = "Replace me."
price = 100
`

func newInitCommand(a *app.App) *cobra.Command {
	var universeID int64

	initCmd := &cobra.Command{
		Use:   "init [catalogue]",
		Short: "Write a starter catalogue file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cataloguePath(args)
			f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
			if err != nil {
				if os.IsExist(err) {
					return fmt.Errorf("%s already exists", path)
				}
				return err
			}
			defer f.Close()

			if _, err := fmt.Fprintf(f, starterCatalogue, universeID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s. Set universe_id and edit the entries, then run \"merchant sync\".\n", path)
			return nil
		},
	}

	initCmd.Flags().Int64Var(&universeID, "universe", 0, "universe id to scaffold with")

	return initCmd
}
