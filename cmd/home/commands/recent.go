// ABOUTME: CLI command listing recent observations
// ABOUTME: Shows emotion words and pillar associations in table or JSON form
package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var recentLimit int

// NewRecentCmd creates the recent command
func NewRecentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recent observations",
		Long: `List recent observations newest first, with their emotion
words and full pillar association sets.

Examples:
  home recent
  home recent --limit 20
  home recent --format json`,
		RunE: runRecent,
	}

	cmd.Flags().IntVar(&recentLimit, "limit", 10, "Maximum observations to show")

	return cmd
}

func runRecent(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(recentLimit, "limit"); err != nil {
		return err
	}

	svc, err := openServices()
	if err != nil {
		return fmt.Errorf("initializing services: %w", err)
	}
	defer svc.Close()

	observations, err := svc.ledger.Recent(svc.cfg.DyadID, recentLimit)
	if err != nil {
		return fmt.Errorf("listing observations: %w", err)
	}

	if len(observations) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No observations yet\n")
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(observations, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "WHEN\tEMOTION\tPILLARS\tCONTENT\n")
	fmt.Fprintf(w, "----\t-------\t-------\t-------\n")
	for _, o := range observations {
		names := make([]string, 0, len(o.Pillars))
		for _, p := range o.Pillars {
			names = append(names, p.Name)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			formatTime(o.CreatedAt), o.EmotionWord, strings.Join(names, ", "), truncate(o.Content, 48))
	}
	return w.Flush()
}
