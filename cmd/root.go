package cmd

import (
	"fmt"
	"os"

	"IOStatDO/internal/startup"

	"github.com/spf13/cobra"
)

var (
	configPath string
	pidFile    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "iostatdo",
	Short: "Aggregate disk throughput monitor",
	Long: `IOStatDO samples the kernel block device counters of the physical disks,
reports read and write throughput per interval and classifies the load as
normal, warning or critical.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	startup.SetupDefaultLogger()

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "conf/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&pidFile, "pid-file", "/var/run/iostatdo.pid", "Path to the daemon PID file")
}
