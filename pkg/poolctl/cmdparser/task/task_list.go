package task

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hwameistor/poolconsole/pkg/client"
	"github.com/hwameistor/poolconsole/pkg/poolctl/cmdparser/definitions"
	"github.com/hwameistor/poolconsole/pkg/poolctl/formatter"
)

var taskName string

var taskList = &cobra.Command{
	Use:     "list",
	Args:    cobra.ExactArgs(0),
	Short:   "List the executing and recently finished tasks.",
	Long:    "List the executing and recently finished tasks, --name filters them with a glob such as pool/*.",
	Example: "poolctl task list\npoolctl task list --name 'pool/*'",
	RunE:    taskListRunE,
}

func init() {
	taskList.Flags().StringVar(&taskName, "name", "", "Task name glob, e.g. pool/*")
}

func taskListRunE(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	summary, err := client.NewClient(definitions.Server, definitions.Timeout).Tasks(taskName).Summary(ctx)
	if err != nil {
		return err
	}
	formatter.PrintTasks(summary)
	return nil
}
