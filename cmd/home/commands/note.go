// ABOUTME: CLI commands for notes between stars
// ABOUTME: Adds, lists, and merges notes with the cloud document
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/binary-home/internal/core"
	"github.com/harper/binary-home/internal/models"
)

var noteFrom string

// NewNoteCmd creates the note command group
func NewNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Notes between stars",
		Long: `Leave and read notes in the shared document.

Notes are keyed by their timestamp; merging with the cloud dedupes
on that key and the cloud copy wins ties.`,
	}

	cmd.AddCommand(newNoteAddCmd())
	cmd.AddCommand(newNoteListCmd())
	cmd.AddCommand(newNoteMergeCmd())

	return cmd
}

func newNoteAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Leave a note",
		Args:  cobra.ExactArgs(1),
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

			note := models.NewNote(args[0], noteFrom, now())
			state.Notes = append(state.Notes, note)

			if err := svc.states.Save(state); err != nil {
				return fmt.Errorf("saving state: %w", err)
			}

			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Note from %s at %s\n", note.From, note.Timestamp)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&noteFrom, "from", "alex", "Author: alex or fox")

	return cmd
}

func newNoteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all notes",
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

			if len(state.Notes) == 0 {
				if !quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "No notes yet\n")
				}
				return nil
			}

			if outputFormat == "json" {
				jsonData, err := json.MarshalIndent(state.Notes, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling JSON: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "WHEN\tFROM\tNOTE\n")
			fmt.Fprintf(w, "----\t----\t----\n")
			for _, note := range state.Notes {
				when := note.Timestamp
				if t, ok := note.Time(); ok {
					when = formatTime(t)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", when, note.From, truncate(note.Text, 60))
			}
			return w.Flush()
		},
	}
}

func newNoteMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge",
		Short: "Merge notes with the cloud",
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

			state, err := svc.states.Load()
			if err != nil {
				return fmt.Errorf("loading state: %w", err)
			}

			before := len(state.Notes)
			state.Notes = core.MergeNotes(state.Notes, doc.Notes)

			if err := svc.states.Save(state); err != nil {
				return fmt.Errorf("saving state: %w", err)
			}

			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Merged %d local + %d cloud into %d notes (last visitor: %s)\n",
					before, len(doc.Notes), len(state.Notes), doc.LastVisitor)
			}
			return nil
		},
	}
}
