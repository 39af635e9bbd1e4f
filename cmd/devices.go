package cmd

import (
	"IOStatDO/internal/monitoring/iostat"
	"IOStatDO/internal/startup"
	"fmt"

	"github.com/spf13/cobra"
)

// devicesCmd lists the devices included in the aggregate
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List the physical block devices that are sampled",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := startup.LoadConfigOrDefault(configPath)
		if err != nil {
			return err
		}

		devices, err := iostat.NewEnumerator(cfg.Monitoring.IOStat.SysPath).ListPhysicalDevices()
		if err != nil {
			return err
		}

		for _, d := range devices {
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", d.Name, d.StatPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}
