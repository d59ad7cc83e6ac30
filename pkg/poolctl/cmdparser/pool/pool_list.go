package pool

import (
	"github.com/spf13/cobra"

	"github.com/hwameistor/poolconsole/pkg/poolctl/formatter"
	"github.com/hwameistor/poolconsole/pkg/poolctl/manager"
	"github.com/hwameistor/poolconsole/pkg/poolview"
)

var poolList = &cobra.Command{
	Use:     "list",
	Args:    cobra.ExactArgs(0),
	Short:   "List the storage pools.",
	Long:    "List the storage pools, pools with a running task are marked and pools still being created are shown as pending.",
	Example: "poolctl pool list",
	RunE:    poolListRunE,
}

func poolListRunE(cmd *cobra.Command, _ []string) error {
	c, err := manager.NewConsole(nil)
	if err != nil {
		return err
	}
	if err = c.CheckPermission(poolview.Action{Name: "List", Permission: poolview.PermissionRead}); err != nil {
		return err
	}

	snapshot := c.Reconciler.Refresh(commandContext(cmd))
	formatter.PrintPools(snapshot)
	return snapshot.Err
}
