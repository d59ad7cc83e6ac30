package pool

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
	"github.com/hwameistor/poolconsole/pkg/poolctl/formatter"
	"github.com/hwameistor/poolconsole/pkg/poolctl/manager"
	"github.com/hwameistor/poolconsole/pkg/poolctl/utils"
	"github.com/hwameistor/poolconsole/pkg/poolview"
)

var (
	editApplications string
	editPgNum        int32
	editSize         int32
)

var poolEdit = &cobra.Command{
	Use:     "edit {poolName}",
	Args:    cobra.ExactArgs(1),
	Short:   "Edit a storage pool.",
	Long:    "Edit the applications, placement group count or replica size of a pool. Pools with a running task cannot be edited.",
	Example: "poolctl pool edit images --size 3 --applications rbd,rgw",
	RunE:    poolEditRunE,
}

func init() {
	poolEdit.Flags().StringVar(&editApplications, "applications", "", "Comma separated applications, replaces the current ones")
	poolEdit.Flags().Int32Var(&editPgNum, "pg-num", 0, "Placement group count")
	poolEdit.Flags().Int32Var(&editSize, "size", 0, "Replica size")
}

func poolEditRunE(cmd *cobra.Command, args []string) error {
	req := &api.PoolUpdateReqBody{
		ApplicationMetadata: utils.SplitList(editApplications),
		PgPlacementNum:      editPgNum,
		Size:                editSize,
	}
	if req.ApplicationMetadata == nil && req.PgPlacementNum == 0 && req.Size == 0 {
		return fmt.Errorf("nothing to change, set --applications, --pg-num or --size")
	}

	c, err := manager.NewConsole(nil)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	if _, err = c.SelectPool(ctx, poolview.ActionEdit, args[0]); err != nil {
		return err
	}
	row, err := c.Tracker.First()
	if err != nil {
		return err
	}
	if err = c.Submitter.Update(ctx, row.Item.PoolName, req); err != nil {
		return err
	}

	fmt.Fprintf(formatter.Output, "Pool %q update submitted\n", row.Item.PoolName)
	formatter.PrintPools(c.Reconciler.Snapshot())
	return nil
}
