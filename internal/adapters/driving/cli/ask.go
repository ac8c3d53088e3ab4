package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var askShowSources bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question and exit",
	Long: `Ask one question against the configured corpus and print the answer.

The question is treated as the only turn of a fresh session, so it must
be self-contained.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askShowSources, "sources", false, "print the retrieved rows after the answer")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p, err := buildPipeline(ctx, false)
	if err != nil {
		return err
	}
	defer p.Close()

	answer, err := p.chat.Ask(ctx, uuid.NewString(), args[0])
	if err != nil {
		return fmt.Errorf("answer question: %w", err)
	}

	cmd.Printf("Answer: %s\n", answer.Text)

	if askShowSources {
		cmd.Println()
		cmd.Println("Sources:")
		for i, m := range answer.Matches {
			cmd.Printf("  [%d] %s (%.2f)\n", i+1, m.Document.ID, m.Similarity)
		}
	}
	return nil
}
