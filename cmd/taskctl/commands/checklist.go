package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/taskmaster-app/taskmaster-api/internal/services/ai"
	"github.com/taskmaster-app/taskmaster-api/internal/validation"
)

// readInput reads extraction text from a file argument or stdin.
func readInput(args []string) (string, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// NewChecklistCmd creates the checklist command
func NewChecklistCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checklist [file]",
		Short: "Parse checklist text into sections",
		Long:  "Parse numbered checklist text into structured sections using the deterministic extractor. Reads from a file or stdin.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args)
			if err != nil {
				return err
			}

			doc := ai.FallbackChecklist(validation.SanitizeMultiline(text))
			return printJSON(doc)
		},
	}
}
