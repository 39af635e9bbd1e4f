package cmd

import (
	"IOStatDO/internal/utils/daemon"
	"fmt"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the IOStat service is running",
	Run: func(cmd *cobra.Command, args []string) {
		running, pid := daemon.GetStatus(pidFile)
		if running {
			fmt.Fprintf(cmd.OutOrStdout(), "IOStat service is running (PID: %d)\n", pid)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "IOStat service is not running")
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
