// ABOUTME: CLI command showing the emergent type snapshot
// ABOUTME: Prints axes, type label, and confidence with optional recompute
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var snapshotRefresh bool

// NewSnapshotCmd creates the snapshot command
func NewSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Show the emergent type snapshot",
		Long: `Show the current emergent type snapshot.

The snapshot sums every observation's axis vector and derives a
four-letter type label plus a confidence value that grows with the
observation count.

Examples:
  home snapshot
  home snapshot --refresh
  home snapshot --format json`,
		RunE: runSnapshot,
	}

	cmd.Flags().BoolVar(&snapshotRefresh, "refresh", false, "Recompute from the ledger before showing")

	return cmd
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	svc, err := openServices()
	if err != nil {
		return fmt.Errorf("initializing services: %w", err)
	}
	defer svc.Close()

	snapshot, err := svc.aggregator.Latest(svc.cfg.DyadID)
	if snapshotRefresh {
		snapshot, err = svc.aggregator.Refresh(svc.cfg.DyadID)
	}
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}

	count, err := svc.ledger.Count(svc.cfg.DyadID)
	if err != nil {
		return fmt.Errorf("counting observations: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Type:         %s\n", snapshot.CalculatedType)
	fmt.Fprintf(out, "Confidence:   %.2f\n", snapshot.Confidence)
	fmt.Fprintf(out, "Observations: %d\n", count)
	fmt.Fprintf(out, "Axes:         e_i=%d s_n=%d t_f=%d j_p=%d\n",
		snapshot.Scores.EI, snapshot.Scores.SN, snapshot.Scores.TF, snapshot.Scores.JP)
	return nil
}
