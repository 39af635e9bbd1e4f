package cmd

import (
	"IOStatDO/internal/startup"
	"IOStatDO/internal/utils/daemon"
	"IOStatDO/internal/utils/signal"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	foreground bool
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the IOStat service",
	Long:  `Start the monitor and its HTTP API in the foreground or as a daemon.`,
	Run: func(cmd *cobra.Command, args []string) {
		isChild := daemon.IsChild()

		if !isChild && daemon.IsRunning(pidFile) {
			fmt.Printf("IOStat service is already running (PID file exists at %s)\n", pidFile)
			os.Exit(1)
		}

		if !foreground && !isChild {
			daemon.Daemonize(configPath, pidFile)
			return
		}

		application := startup.InitializeApplication(configPath)
		builder := startup.StartServer(application)

		if isChild {
			if err := daemon.WritePIDFile(pidFile); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			signal.RegisterCleanupFunc(func() {
				daemon.RemovePIDFile(pidFile)
			})
		}

		signal.HandleSignals(application, builder)
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	startCmd.Flags().BoolVarP(&foreground, "foreground", "f", false, "Run in foreground (not as daemon)")
}
