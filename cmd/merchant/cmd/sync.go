package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/treeforge/merchant"
	"github.com/treeforge/merchant/cmd/merchant/app"
	"github.com/treeforge/merchant/internal/cookie"
	"github.com/treeforge/merchant/pkg/catalog"
	"github.com/treeforge/merchant/pkg/logging"
	"github.com/treeforge/merchant/pkg/sync"
)

func newSyncCommand(a *app.App) *cobra.Command {
	var (
		create    bool
		update    bool
		updateAll bool
		dryRun    bool
		verify    bool
	)

	syncCmd := &cobra.Command{
		Use:   "sync [catalogue]",
		Short: "Create and update remote entries to match the catalogue",
		Long: `Sync classifies every catalogue entry against its stored fingerprint and
performs the remote creates and updates the classification calls for.
Remote ids and new fingerprints are written back into the catalogue file,
even when some entries fail.

With no argument the catalogue is read from products.toml.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logging.Ctx(ctx)
			path := cataloguePath(args)

			cat, err := catalog.Load(path)
			if err != nil {
				return err
			}
			flags := sync.Flags{Create: create, Update: update, UpdateAll: updateAll}

			if dryRun {
				printPlan(cmd.OutOrStdout(), sync.Classify(cat, flags))
				return nil
			}

			secret, err := cookie.Find(a.Config.Cookie)
			if err != nil {
				return err
			}
			client, err := merchant.New(
				merchant.WithCookie(secret),
				merchant.WithVerification(verify),
			)
			if err != nil {
				return err
			}

			log.Info().
				Str("catalogue", path).
				Int64("universe", cat.UniverseID).
				Int("entries", cat.Len()).
				Msg("reconciling")

			report := client.Reconcile(ctx, cat, flags)
			printReport(cmd.OutOrStdout(), report)

			// Persist regardless of failures: freshly assigned remote ids
			// must never be lost.
			if err := catalog.Save(path, cat); err != nil {
				return fmt.Errorf("saving catalogue: %w", err)
			}
			if !report.OK() {
				return fmt.Errorf("%d of %d entries failed", len(report.Failed), report.Attempted())
			}
			return nil
		},
	}

	syncCmd.Flags().BoolVar(&create, "create", true, "create entries that do not exist remotely")
	syncCmd.Flags().BoolVar(&update, "update", true, "update entries whose content changed")
	syncCmd.Flags().BoolVar(&updateAll, "update-all", false, "update every existing entry, changed or not")
	syncCmd.Flags().BoolVar(&dryRun, "dry-run", false, "classify and report without contacting the platform")
	syncCmd.Flags().BoolVar(&verify, "verify", false, "re-fetch each written entry and warn on altered content")

	return syncCmd
}
