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
	createType         string
	createApplications string
	createPgNum        int32
	createSize         int32
	createErasure      string
	createCrushRule    string
)

var poolCreate = &cobra.Command{
	Use:   "create {poolName}",
	Args:  cobra.ExactArgs(1),
	Short: "Create a storage pool.",
	Long: "Create a storage pool. The pool is listed as pending until the server has created it.\n" +
		fmt.Sprintf("The type must be %s or %s.", api.PoolTypeReplicated, api.PoolTypeErasure),
	Example: "poolctl pool create images --applications rbd --size 2\n" +
		"poolctl pool create ec-data --type erasure --erasure-profile k4m2",
	RunE: poolCreateRunE,
}

func init() {
	poolCreate.Flags().StringVar(&createType, "type", api.PoolTypeReplicated, "Pool type")
	poolCreate.Flags().StringVar(&createApplications, "applications", "", "Comma separated applications, e.g. rbd,rgw")
	poolCreate.Flags().Int32Var(&createPgNum, "pg-num", 0, "Placement group count")
	poolCreate.Flags().Int32Var(&createSize, "size", 0, "Replica size of a replicated pool")
	poolCreate.Flags().StringVar(&createErasure, "erasure-profile", "", "Erasure code profile of an erasure pool")
	poolCreate.Flags().StringVar(&createCrushRule, "crush-rule", "", "Crush rule")
}

func poolCreateRunE(cmd *cobra.Command, args []string) error {
	if createType != api.PoolTypeReplicated && createType != api.PoolTypeErasure {
		return fmt.Errorf("type must be %s or %s", api.PoolTypeReplicated, api.PoolTypeErasure)
	}

	c, err := manager.NewConsole(nil)
	if err != nil {
		return err
	}
	if err = c.CheckPermission(poolview.ActionAdd); err != nil {
		return err
	}

	ctx := commandContext(cmd)
	req := &api.PoolCreateReqBody{
		PoolName:            args[0],
		Type:                createType,
		ApplicationMetadata: utils.SplitList(createApplications),
		PgPlacementNum:      createPgNum,
		Size:                createSize,
		ErasureCodeProfile:  createErasure,
		CrushRule:           createCrushRule,
	}
	if err = c.Submitter.Create(ctx, req); err != nil {
		return err
	}

	fmt.Fprintf(formatter.Output, "Pool %q creation submitted\n", req.PoolName)
	formatter.PrintPools(c.Reconciler.Snapshot())
	return nil
}
