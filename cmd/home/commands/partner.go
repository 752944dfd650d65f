// ABOUTME: CLI commands for the partner's state and health uplinks
// ABOUTME: Shows current state and applies the newest uplink file or cloud feed
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/binary-home/internal/core"
)

// NewPartnerCmd creates the partner command group
func NewPartnerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "partner",
		Short: "Fox's current state and uplinks",
		Long: `Show Fox's current state, or refresh it from the newest
uplink file or the cloud uplink feed.

Uplinks are markdown files named uplink-*.md with YAML front matter.
Fields an uplink does not report keep their previous values; heart
rate and body battery come from a separate source and always carry.`,
	}

	cmd.AddCommand(newPartnerStatusCmd())
	cmd.AddCommand(newPartnerSyncCmd())

	return cmd
}

func newPartnerStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show Fox's current state",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices()
			if err != nil {
				return fmt.Errorf("initializing services: %w", err)
			}
			defer svc.Close()

			state, err := svc.states.Load()
			if err != nil {
				return fmt.Errorf("loading state: %w", err)
			}

			fox := state.Partner
			if outputFormat == "json" {
				jsonData, err := json.MarshalIndent(fox, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling JSON: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Status:  %s", fox.Status)
			if fox.Flare != "" {
				fmt.Fprintf(out, " (flare: %s)", fox.Flare)
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Spoons:  %d   Pain: %d", fox.Spoons, fox.PainLevel)
			if fox.PainLocation != "" {
				fmt.Fprintf(out, " (%s)", fox.PainLocation)
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Fog: %d   Fatigue: %d   Nausea: %d\n", fox.FogLevel, fox.Fatigue, fox.Nausea)
			fmt.Fprintf(out, "HR: %d   Body battery: %d\n", fox.HeartRate, fox.BodyBattery)
			if fox.Location != "" {
				fmt.Fprintf(out, "Location: %s\n", fox.Location)
			}
			if fox.Note != "" {
				fmt.Fprintf(out, "Note: %s\n", fox.Note)
			}
			if len(fox.Tags) > 0 {
				fmt.Fprintf(out, "Tags: %s\n", strings.Join(fox.Tags, ", "))
			}
			if fox.LastUplink != "" {
				fmt.Fprintf(out, "Last uplink: %s\n", fox.LastUplink)
			}
			return nil
		},
	}
}

func newPartnerSyncCmd() *cobra.Command {
	var fromCloud bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Refresh Fox's state from the newest uplink",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices()
			if err != nil {
				return fmt.Errorf("initializing services: %w", err)
			}
			defer svc.Close()

			state, err := svc.states.Load()
			if err != nil {
				return fmt.Errorf("loading state: %w", err)
			}

			if fromCloud {
				if svc.cloud == nil {
					return fmt.Errorf("cloud uplink feed is not configured (set BINARY_HOME_UPLINK_URL)")
				}
				fox, err := svc.cloud.FetchUplink(context.Background())
				if err != nil {
					return fmt.Errorf("fetching uplink feed: %w", err)
				}
				if fox == nil {
					return fmt.Errorf("uplink feed has no entries")
				}
				state.Partner = *fox
			} else {
				report, err := core.LoadLatestUplink(svc.cfg.UplinkDir)
				if err != nil {
					return fmt.Errorf("reading uplink: %w", err)
				}
				if report == nil {
					return fmt.Errorf("no uplink file found in %s", svc.cfg.UplinkDir)
				}
				state.Partner = report.Apply(state.Partner)
			}

			if err := svc.states.Save(state); err != nil {
				return fmt.Errorf("saving state: %w", err)
			}

			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Fox state updated: %s, %d spoons (uplink %s)\n",
					state.Partner.Status, state.Partner.Spoons, state.Partner.LastUplink)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromCloud, "cloud", false, "Use the cloud uplink feed instead of local files")

	return cmd
}
