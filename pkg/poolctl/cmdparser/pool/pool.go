package pool

import (
	"context"

	"github.com/spf13/cobra"
)

var Pool = &cobra.Command{
	Use:   "pool",
	Args:  cobra.ExactArgs(0),
	Short: "Manage the storage pools.",
	Long:  "Manage the storage pools.",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Root cmd will show help only
		return cmd.Help()
	},
}

func init() {
	// Pool sub commands
	Pool.AddCommand(poolList, poolWatch, poolCreate, poolEdit, poolDelete)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
