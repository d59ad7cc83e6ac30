package pool

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hwameistor/poolconsole/pkg/poolctl/dialog"
	"github.com/hwameistor/poolconsole/pkg/poolctl/formatter"
	"github.com/hwameistor/poolconsole/pkg/poolctl/manager"
	"github.com/hwameistor/poolconsole/pkg/poolview"
)

var deleteYes bool

var poolDelete = &cobra.Command{
	Use:   "delete {poolName}",
	Args:  cobra.ExactArgs(1),
	Short: "Delete a storage pool.",
	Long: "Delete a storage pool after confirmation. A failed deletion can be retried from the prompt.\n" +
		"The pool is listed as deleting until the server has removed it.",
	Example: "poolctl pool delete images\n" +
		"poolctl pool delete images --yes",
	RunE: poolDeleteRunE,
}

func init() {
	poolDelete.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
}

func poolDeleteRunE(cmd *cobra.Command, args []string) error {
	c, err := manager.NewConsole(nil)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	if _, err = c.SelectPool(ctx, poolview.ActionDelete, args[0]); err != nil {
		return err
	}

	d := &dialog.StdinDialog{In: os.Stdin, Out: formatter.Output, AssumeYes: deleteYes}
	if err = c.DeleteInvoker().Run(ctx, d); err != nil {
		return err
	}

	fmt.Fprintf(formatter.Output, "Pool %q deletion submitted\n", args[0])
	formatter.PrintPools(c.Reconciler.Snapshot())
	return nil
}
