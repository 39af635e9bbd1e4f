package cmd

import (
	"IOStatDO/internal/monitoring/iostat"
	"IOStatDO/internal/pkg/config"
	"IOStatDO/internal/pkg/logger"
	"IOStatDO/internal/startup"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

const cssBaseClass = "iostat"

var watchInterval float64

// barOutput is one line of the waybar custom module JSON protocol
type barOutput struct {
	Text    string   `json:"text"`
	Alt     string   `json:"alt"`
	Tooltip string   `json:"tooltip"`
	Class   []string `json:"class"`
}

// cssClasses maps a severity to the bar styling classes
func cssClasses(class iostat.AlertClass) []string {
	switch class {
	case iostat.AlertWarning:
		return []string{cssBaseClass, cssBaseClass + "-warning"}
	case iostat.AlertCritical:
		return []string{cssBaseClass, cssBaseClass + "-critical"}
	default:
		return []string{cssBaseClass}
	}
}

func newBarOutput(text string, class iostat.AlertClass, tooltip string) barOutput {
	return barOutput{
		Text:    text,
		Alt:     class.String(),
		Tooltip: tooltip,
		Class:   cssClasses(class),
	}
}

func readingTooltip(r iostat.Reading) string {
	return fmt.Sprintf("%d bytes read, %d bytes written in %.1fs (%s)",
		r.ReadBytes, r.WrittenBytes, r.Interval, r.Class)
}

// watchCmd prints one JSON line per reading for status bars
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream readings as JSON lines for a status bar",
	Long: `Run the monitor in the foreground and print one JSON object per interval
in the waybar custom module format. Logs go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := watchConfig(cmd)
		if err != nil {
			return err
		}
		if err := logger.InitWithStdout(cfg, os.Stderr); err != nil {
			return err
		}

		monitor, err := iostat.NewMonitorFromConfig(cfg, nil)
		if err != nil {
			return err
		}

		out := newLineWriter(cmd.OutOrStdout())
		idle := iostat.FormatIOStats(iostat.IOStats{})
		if err := out.write(newBarOutput(idle.Text, idle.Class, "collecting baseline")); err != nil {
			return err
		}

		monitor.AddListener(func(r iostat.Reading) {
			if err := out.write(newBarOutput(r.Text, r.Class, readingTooltip(r))); err != nil {
				logger.Error("Failed to write reading", logger.Err(err))
			}
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := monitor.StartMonitoring(); err != nil {
			return err
		}
		<-ctx.Done()
		monitor.StopMonitoring()
		return nil
	},
}

func watchConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := startup.LoadConfigOrDefault(configPath)
	if err != nil {
		return nil, err
	}
	cfg.Monitoring.IOStat.Enabled = true
	if cmd.Flags().Changed("interval") {
		cfg.Monitoring.IOStat.Interval = watchInterval
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// lineWriter encodes one JSON document per line
type lineWriter struct {
	enc *json.Encoder
}

func newLineWriter(w io.Writer) *lineWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &lineWriter{enc: enc}
}

func (l *lineWriter) write(v interface{}) error {
	return l.enc.Encode(v)
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Float64VarP(&watchInterval, "interval", "i", 1.0, "Sampling interval in seconds (overrides the config file)")
}
