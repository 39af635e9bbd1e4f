package cmd

import (
	"IOStatDO/internal/monitoring/iostat"
	"IOStatDO/internal/startup"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// sampleCmd takes a baseline, waits one interval and prints the result
var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Take two samples one interval apart and print the reading",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := startup.LoadConfigOrDefault(configPath)
		if err != nil {
			return err
		}
		ioCfg := cfg.Monitoring.IOStat

		src, err := iostat.NewSource(ioCfg.Source, ioCfg.SysPath, ioCfg.ProcPath)
		if err != nil {
			return err
		}

		baseline, err := iostat.Step(src, nil)
		if err != nil {
			return err
		}

		select {
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		case <-time.After(ioCfg.IntervalDuration()):
		}

		res, err := iostat.Step(src, &baseline.Snapshot)
		if err != nil {
			return err
		}
		if res.Formatted == nil {
			return fmt.Errorf("counters went backwards between samples, try again")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s [%s]\n", res.Formatted.Text, res.Formatted.Class)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
}
