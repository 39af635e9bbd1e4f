package cmd

import (
	"IOStatDO/internal/utils/daemon"
	"fmt"

	"github.com/spf13/cobra"
)

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the IOStat service",
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, err := daemon.StopProcess(pidFile)
		if err != nil {
			return fmt.Errorf("failed to stop IOStat service: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "IOStat service (PID: %d) has been stopped\n", pid)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
