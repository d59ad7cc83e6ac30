package pool

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
	"github.com/hwameistor/poolconsole/pkg/poolctl/cmdparser/definitions"
	"github.com/hwameistor/poolconsole/pkg/poolctl/formatter"
	"github.com/hwameistor/poolconsole/pkg/poolctl/manager"
	"github.com/hwameistor/poolconsole/pkg/poolctl/utils"
	"github.com/hwameistor/poolconsole/pkg/poolview"
	"github.com/hwameistor/poolconsole/pkg/tasklist"
)

var poolWatch = &cobra.Command{
	Use:     "watch",
	Args:    cobra.ExactArgs(0),
	Short:   "Keep listing the storage pools.",
	Long:    "Refresh the pool list every --interval until interrupted.",
	Example: "poolctl pool watch --interval 2s",
	RunE:    poolWatchRunE,
}

func poolWatchRunE(cmd *cobra.Command, _ []string) error {
	publish := func(snapshot tasklist.Snapshot[api.Pool]) {
		// Clear the screen before each table
		fmt.Fprint(formatter.Output, "\033[H\033[2J")
		fmt.Fprintf(formatter.Output, "Every %s, updated %s\n", definitions.Interval, utils.FormatTime(snapshot.UpdatedAt))
		formatter.PrintPools(snapshot)
	}

	c, err := manager.NewConsole(publish)
	if err != nil {
		return err
	}
	if err = c.CheckPermission(poolview.Action{Name: "Watch", Permission: poolview.PermissionRead}); err != nil {
		return err
	}

	ctx := commandContext(cmd)
	if err = c.Reconciler.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	c.Reconciler.Stop()
	<-c.Reconciler.Done()
	return nil
}
