// ABOUTME: CLI commands for the emotion vocabulary
// ABOUTME: Defines words with explicit scores and lists the vocabulary
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/binary-home/internal/models"
)

var (
	defineCategory   string
	defineDefinition string
	defineEI         int
	defineSN         int
	defineTF         int
	defineJP         int
)

// NewEmotionCmd creates the emotion command group
func NewEmotionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emotion",
		Short: "Manage the emotion vocabulary",
		Long: `Manage the shared emotion vocabulary.

Each word carries a signed score vector over the four bipolar axes
(E-I, S-N, T-F, J-P) that feeds the emergent type snapshot.`,
	}

	cmd.AddCommand(newEmotionDefineCmd())
	cmd.AddCommand(newEmotionListCmd())

	return cmd
}

func newEmotionDefineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "define <word>",
		Short: "Define or update an emotion word",
		Long: `Define an emotion word with explicit axis scores and a definition.

Omitted scores use the category defaults. Defining an existing word
updates its scores in place.

Examples:
  home emotion define wistful --category sad --definition "missing something good"
  home emotion define fierce --e-i 20 --t-f -10`,
		Args: cobra.ExactArgs(1),
		RunE: runEmotionDefine,
	}

	cmd.Flags().StringVar(&defineCategory, "category", "custom", "Emotion category")
	cmd.Flags().StringVar(&defineDefinition, "definition", "", "Free-text definition")
	cmd.Flags().IntVar(&defineEI, "e-i", 0, "Extraversion/introversion score")
	cmd.Flags().IntVar(&defineSN, "s-n", 0, "Sensing/intuition score")
	cmd.Flags().IntVar(&defineTF, "t-f", 0, "Thinking/feeling score")
	cmd.Flags().IntVar(&defineJP, "j-p", 0, "Judging/perceiving score")

	return cmd
}

func runEmotionDefine(cmd *cobra.Command, args []string) error {
	svc, err := openServices()
	if err != nil {
		return fmt.Errorf("initializing services: %w", err)
	}
	defer svc.Close()

	category := models.EmotionCategory(defineCategory)

	// Explicit scores only when at least one axis flag was set
	var scores *models.AxisScores
	if cmd.Flags().Changed("e-i") || cmd.Flags().Changed("s-n") ||
		cmd.Flags().Changed("t-f") || cmd.Flags().Changed("j-p") {
		s := models.DefaultAxisScores(category)
		if cmd.Flags().Changed("e-i") {
			s.EI = defineEI
		}
		if cmd.Flags().Changed("s-n") {
			s.SN = defineSN
		}
		if cmd.Flags().Changed("t-f") {
			s.TF = defineTF
		}
		if cmd.Flags().Changed("j-p") {
			s.JP = defineJP
		}
		scores = &s
	}

	id, err := svc.emotions.Define(svc.cfg.DyadID, args[0], category, scores, defineDefinition)
	if err != nil {
		return fmt.Errorf("defining emotion: %w", err)
	}

	defined, err := svc.emotions.GetByID(id)
	if err != nil {
		return fmt.Errorf("reading back emotion: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Defined %s (%s) e_i=%d s_n=%d t_f=%d j_p=%d\n",
			defined.Word, defined.Category, defined.Scores.EI, defined.Scores.SN, defined.Scores.TF, defined.Scores.JP)
	}
	return nil
}

func newEmotionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the emotion vocabulary",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices()
			if err != nil {
				return fmt.Errorf("initializing services: %w", err)
			}
			defer svc.Close()

			words, err := svc.emotions.List(svc.cfg.DyadID)
			if err != nil {
				return fmt.Errorf("listing vocabulary: %w", err)
			}

			if len(words) == 0 {
				if !quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "No emotion words defined yet\n")
				}
				return nil
			}

			if outputFormat == "json" {
				jsonData, err := json.MarshalIndent(words, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling JSON: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "WORD\tCATEGORY\tE-I\tS-N\tT-F\tJ-P\tUSED\n")
			fmt.Fprintf(w, "----\t--------\t---\t---\t---\t---\t----\n")
			for _, word := range words {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
					word.Word, word.Category, word.Scores.EI, word.Scores.SN, word.Scores.TF, word.Scores.JP, word.TimesUsed)
			}
			return w.Flush()
		},
	}
}
