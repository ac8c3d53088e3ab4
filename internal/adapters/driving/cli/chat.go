package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive question-answering session",
	Long: `Start an interactive session against the configured corpus.

Each line you type is one conversation turn. Follow-up questions may
reference earlier turns ("what about the second one?"). The session
ends on EOF (Ctrl-D) or the "exit" command; history is not kept between
sessions.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	p, err := buildPipeline(ctx, false)
	if err != nil {
		return err
	}
	defer p.Close()

	sessionID := uuid.NewString()
	cmd.Println(describeIndex(p.report))
	cmd.Println("Ask a question (exit or Ctrl-D to quit):")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			break
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		answer, err := p.chat.Ask(ctx, sessionID, question)
		if err != nil {
			// The turn is discarded; the session keeps going.
			fmt.Fprintln(os.Stderr, turnErrorMessage(err))
			continue
		}

		cmd.Printf("Answer: %s\n\n", answer.Text)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}
