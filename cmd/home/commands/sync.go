// ABOUTME: Sync commands for the cloud home document and charm backend
// ABOUTME: Provides push, fetch, and backend status
package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/binary-home/internal/statestore"
)

// NewSyncCmd creates the sync command group
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Manage cloud synchronization",
		Long: `Manage synchronization of the home document.

The document can push to the cloud worker (BINARY_HOME_CLOUD_URL)
and, when the charm state backend is configured, syncs across
devices linked to the same Charm account.`,
	}

	cmd.AddCommand(newSyncPushCmd())
	cmd.AddCommand(newSyncFetchCmd())
	cmd.AddCommand(newSyncStatusCmd())

	return cmd
}

func newSyncPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Push the home document to the cloud",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices()
			if err != nil {
				return fmt.Errorf("initializing services: %w", err)
			}
			defer svc.Close()

			if svc.cloud == nil || !svc.cloud.Enabled() {
				return fmt.Errorf("cloud sync is not configured (set BINARY_HOME_CLOUD_URL)")
			}

			state, err := svc.states.Load()
			if err != nil {
				return fmt.Errorf("loading state: %w", err)
			}

			snapshot, err := svc.aggregator.Latest(svc.cfg.DyadID)
			if err != nil {
				snapshot = nil
			}

			if err := svc.cloud.Push(context.Background(), state, snapshot); err != nil {
				return fmt.Errorf("pushing to cloud: %w", err)
			}

			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Pushed %d notes and the Love-O-Meter to the cloud\n", len(state.Notes))
			}
			return nil
		},
	}
}

func newSyncFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the cloud's view of the home document",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices()
			if err != nil {
				return fmt.Errorf("initializing services: %w", err)
			}
			defer svc.Close()

			if svc.cloud == nil || !svc.cloud.Enabled() {
				return fmt.Errorf("cloud sync is not configured (set BINARY_HOME_CLOUD_URL)")
			}

			doc, err := svc.cloud.Fetch(context.Background())
			if err != nil {
				return fmt.Errorf("fetching from cloud: %w", err)
			}

			jsonData, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling JSON: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
			return nil
		},
	}
}

func newSyncStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show sync configuration and charm connection",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices()
			if err != nil {
				return fmt.Errorf("initializing services: %w", err)
			}
			defer svc.Close()

			out := cmd.OutOrStdout()
			if svc.cfg.CloudURL != "" {
				fmt.Fprintf(out, "Cloud:   %s\n", svc.cfg.CloudURL)
			} else {
				fmt.Fprintf(out, "Cloud:   not configured\n")
			}
			if svc.cfg.UplinkURL != "" {
				fmt.Fprintf(out, "Uplinks: %s\n", svc.cfg.UplinkURL)
			}
			fmt.Fprintf(out, "State:   %s backend\n", svc.cfg.StateBackend)

			if charmStore, ok := svc.states.(*statestore.CharmStore); ok {
				id, err := charmStore.ID()
				if err != nil {
					fmt.Fprintf(out, "Charm:   not connected\n")
					return nil
				}
				fmt.Fprintf(out, "Charm:   connected as %s\n", id)
			}
			return nil
		},
	}
}
