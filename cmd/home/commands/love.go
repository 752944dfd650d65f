// ABOUTME: CLI command for the Love-O-Meter
// ABOUTME: Nudges a side up by one and shows both counters
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var loveEmotion string

// NewLoveCmd creates the love command
func NewLoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "love [direction]",
		Short: "Show or nudge the Love-O-Meter",
		Long: `Show the Love-O-Meter, or nudge one side up by one.

Scores saturate at 6. Directions alex/soft and fox/quiet are
interchangeable, matching the desktop client.

Examples:
  home love
  home love alex --emotion tender
  home love quiet`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLove,
	}

	cmd.Flags().StringVar(&loveEmotion, "emotion", "", "Emotion label for that side")

	return cmd
}

func runLove(cmd *cobra.Command, args []string) error {
	svc, err := openServices()
	if err != nil {
		return fmt.Errorf("initializing services: %w", err)
	}
	defer svc.Close()

	state, err := svc.states.Load()
	if err != nil {
		return fmt.Errorf("loading state: %w", err)
	}

	if len(args) == 1 {
		if !state.LoveMeter.Nudge(args[0], loveEmotion) {
			return fmt.Errorf("unknown direction %q: use alex/soft or fox/quiet", args[0])
		}
		if err := svc.states.Save(state); err != nil {
			return fmt.Errorf("saving state: %w", err)
		}
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(state.LoveMeter, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Alex: %s %s\n", loveBar(state.LoveMeter.AlexScore), state.LoveMeter.AlexEmotion)
	fmt.Fprintf(out, "Fox:  %s %s\n", loveBar(state.LoveMeter.FoxScore), state.LoveMeter.FoxEmotion)
	return nil
}

// loveBar renders a score as filled and empty hearts
func loveBar(score int) string {
	bar := ""
	for i := 0; i < 6; i++ {
		if i < score {
			bar += "♥"
		} else {
			bar += "♡"
		}
	}
	return bar
}
