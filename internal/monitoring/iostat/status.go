package iostat

import (
	"IOStatDO/internal/pkg/logger"
)

// Trend describes the direction of an alert tier transition
func Trend(previous, current AlertClass) string {
	switch {
	case previous == AlertNormal && current > AlertNormal:
		return "INCREASING"
	case previous == AlertWarning && current == AlertCritical:
		return "WORSENING"
	case previous == AlertCritical && current == AlertWarning:
		return "IMPROVING"
	case previous > AlertNormal && current == AlertNormal:
		return "DECREASING"
	default:
		return "STABLE"
	}
}

func logStatusChange(previous AlertClass, current Reading) {
	fields := []interface{}{
		"previous", previous.String(),
		"current", current.Class.String(),
		"trend", Trend(previous, current.Class),
		"text", current.Text,
	}

	if current.Class > previous {
		logger.Sugar.Warnw("IOStat status transition", fields...)
		return
	}
	logger.Sugar.Infow("IOStat status transition", fields...)
}
