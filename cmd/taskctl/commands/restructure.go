package commands

import (
	"github.com/spf13/cobra"
	"github.com/taskmaster-app/taskmaster-api/internal/services/ai"
	"github.com/taskmaster-app/taskmaster-api/internal/validation"
)

// NewRestructureCmd creates the restructure command
func NewRestructureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restructure [file]",
		Short: "Organize list text into priority buckets",
		Long:  "Organize free-form list text into urgent, important, routine, and miscellaneous buckets by keyword. Reads from a file or stdin.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args)
			if err != nil {
				return err
			}

			list := ai.FallbackCategorize(validation.SanitizeMultiline(text))
			return printJSON(list)
		},
	}
}
