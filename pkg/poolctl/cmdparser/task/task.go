package task

import (
	"github.com/spf13/cobra"
)

var Task = &cobra.Command{
	Use:   "task",
	Args:  cobra.ExactArgs(0),
	Short: "Show the background tasks of the pool server.",
	Long:  "Show the background tasks of the pool server.",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Root cmd will show help only
		return cmd.Help()
	},
}

func init() {
	Task.AddCommand(taskList)
}
