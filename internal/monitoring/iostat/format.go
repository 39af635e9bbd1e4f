package iostat

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// Thresholds are cumulative deltas per sampling interval, not true rates:
// a longer interval lowers the effective MiB/s at which they trip.
var (
	WarningThreshold  = SectorsFromMiB(128)
	CriticalThreshold = SectorsFromMiB(1024)
)

// fallbackValue replaces the numeric field when it cannot be represented.
const fallbackValue = "(??)"

const (
	fieldWidth = 10
	unitSuffix = " MiB/s"
	// sectors -> thousandths of a MiB: 1000 * sectors * 512 / 2^20
	thousandthsPerSector = 1000 * SectorSize
)

// FormatIOStats renders a delta for display and classifies it.
func FormatIOStats(delta IOStats) FormattedIOStats {
	return FormattedIOStats{
		Text:  fmt.Sprintf("%s read %s write", formatValue(delta.Read), formatValue(delta.Written)),
		Class: Classify(delta),
	}
}

// Classify maps the larger of the two deltas onto an alert tier.
func Classify(delta IOStats) AlertClass {
	switch m := delta.Max(); {
	case m < WarningThreshold:
		return AlertNormal
	case m < CriticalThreshold:
		return AlertWarning
	default:
		return AlertCritical
	}
}

func formatValue(value SectorCount) string {
	text := fallbackValue
	if scaled, ok := thousandthsOfMiB(value); ok {
		text = groupThousandths(scaled)
	}
	return fmt.Sprintf("%*s%s", fieldWidth, text, unitSuffix)
}

// thousandthsOfMiB computes 1000 * bytes / 2^20 without overflowing the
// intermediate product. ok is false when the quotient does not fit 64 bits.
func thousandthsOfMiB(value SectorCount) (uint64, bool) {
	hi, lo := bits.Mul64(uint64(value), thousandthsPerSector)
	if hi >= mebibyte {
		return 0, false
	}
	quo, _ := bits.Div64(hi, lo, mebibyte)
	return quo, true
}

// groupThousandths renders a fixed-point value with three implied decimals,
// e.g. 12345678 -> "12,345.678" and 125 -> "0.125".
func groupThousandths(scaled uint64) string {
	digits := strconv.FormatUint(scaled, 10)
	if len(digits) < 4 {
		digits = strings.Repeat("0", 4-len(digits)) + digits
	}
	split := len(digits) - 3
	return groupDigits(digits[:split]) + "." + digits[split:]
}

func groupDigits(digits string) string {
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}

	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3)
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
