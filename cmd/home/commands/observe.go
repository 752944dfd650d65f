// ABOUTME: CLI command to log an emotional observation
// ABOUTME: Handles emotion word resolution and multi-pillar tagging
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/binary-home/internal/models"
)

var (
	observeEmotion  string
	observePillars  []string
	observeCategory string
)

// NewObserveCmd creates the observe command
func NewObserveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "observe [content]",
		Short: "Log an emotional observation",
		Long: `Log an emotional observation against one or more pillars.

The emotion word is created in the vocabulary on first use with its
category's default axis scores. Pillars default to self-awareness;
the first pillar listed becomes the primary.

Examples:
  home observe --emotion grateful "said thank you out loud"
  home observe --emotion overwhelmed --pillars self-management,social-awareness "too many tabs open"
  home observe --emotion tense --category fear "storm coming"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runObserve,
	}

	cmd.Flags().StringVar(&observeEmotion, "emotion", "", "Emotion word (required)")
	cmd.Flags().StringSliceVar(&observePillars, "pillars", []string{}, "Pillar keys (comma-separated, first is primary)")
	cmd.Flags().StringVar(&observeCategory, "category", "positive", "Emotion category: positive, sad, neutral, fear, anger, custom")
	_ = cmd.MarkFlagRequired("emotion")

	return cmd
}

func runObserve(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	// Get observation content
	var content string
	if len(args) > 0 {
		content = args[0]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		content = string(data)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return fmt.Errorf("no content provided")
	}

	svc, err := openServices()
	if err != nil {
		return fmt.Errorf("initializing services: %w", err)
	}
	defer svc.Close()

	obsID, err := svc.ledger.RecordObservation(svc.cfg.DyadID, observeEmotion, observePillars, content, models.EmotionCategory(observeCategory))
	if err != nil {
		return fmt.Errorf("recording observation: %w", err)
	}

	// Keep the cached snapshot in step with the ledger
	if _, err := svc.aggregator.Refresh(svc.cfg.DyadID); err != nil && verbose {
		fmt.Fprintf(os.Stderr, "Warning: could not refresh snapshot: %v\n", err)
	}

	if !quiet {
		pillars, err := svc.ledger.PillarSet(obsID)
		if err == nil {
			names := make([]string, 0, len(pillars))
			for _, p := range pillars {
				names = append(names, p.Name)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Logged %s (%s) as observation %d\n", observeEmotion, strings.Join(names, ", "), obsID)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Logged %s as observation %d\n", observeEmotion, obsID)
		}
	}
	return nil
}
