package cmdparser

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hwameistor/poolconsole/pkg/client"
	"github.com/hwameistor/poolconsole/pkg/poolctl/cmdparser/definitions"
	"github.com/hwameistor/poolconsole/pkg/poolctl/cmdparser/pool"
	"github.com/hwameistor/poolconsole/pkg/poolctl/cmdparser/task"
)

var Poolctl = &cobra.Command{
	Use:   "poolctl",
	Args:  cobra.ExactArgs(0),
	Short: "Poolctl is the command-line console for storage pools.",
	Long: "Poolctl lists, creates, edits and deletes storage pools, and shows the\n" +
		"background tasks that are still running against them.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if definitions.Debug {
			log.SetOutput(os.Stderr)
			log.SetLevel(log.DebugLevel)
		} else {
			// Disable logging outside debug mode
			log.SetOutput(io.Discard)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Root cmd will show help only
		return cmd.Help()
	},
}

func init() {
	// Poolctl flags
	Poolctl.PersistentFlags().BoolVar(&definitions.Debug, "debug", false, "Enable debug mode")
	Poolctl.PersistentFlags().StringVar(&definitions.Server, "server", client.DefaultServer, "Address of the pool server")
	Poolctl.PersistentFlags().DurationVar(&definitions.Timeout, "timeout", client.DefaultTimeout, "Set the request timeout")
	Poolctl.PersistentFlags().DurationVar(&definitions.Interval, "interval", definitions.DefaultInterval, "Set the refresh interval of watch")
	Poolctl.PersistentFlags().StringVar(&definitions.Permissions, "permissions", definitions.DefaultPermissions,
		"Comma separated pool permissions: read,create,update,delete or all")

	// Sub commands
	Poolctl.AddCommand(pool.Pool, task.Task)
}
