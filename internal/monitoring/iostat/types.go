package iostat

import (
	"errors"
	"fmt"
)

// SectorSize is the fixed unit the kernel reports block statistics in.
// https://www.kernel.org/doc/html/latest/block/stat.html
const SectorSize uint64 = 512

const mebibyte uint64 = 1 << 20

// ErrCounterReset is returned when a newer snapshot is smaller than an
// older one, e.g. after a reboot or a device being replaced.
var ErrCounterReset = errors.New("iostat: cumulative counters went backwards")

// SectorCount is a count of 512-byte kernel sectors.
type SectorCount uint64

// Bytes converts the sector count to bytes.
func (s SectorCount) Bytes() uint64 {
	return uint64(s) * SectorSize
}

// SectorsFromMiB returns the number of sectors in the given amount of MiB.
func SectorsFromMiB(mib uint64) SectorCount {
	return SectorCount(mib * mebibyte / SectorSize)
}

// IOStats is an aggregate snapshot of sectors read and written
type IOStats struct {
	Read    SectorCount `json:"read_sectors"`
	Written SectorCount `json:"written_sectors"`
}

// Add sums two snapshots.
func (s IOStats) Add(other IOStats) IOStats {
	return IOStats{
		Read:    s.Read + other.Read,
		Written: s.Written + other.Written,
	}
}

// Sub returns s - previous. Both components must be monotonic, otherwise
// ErrCounterReset is returned and the zero value is discarded by callers.
func (s IOStats) Sub(previous IOStats) (IOStats, error) {
	if s.Read < previous.Read || s.Written < previous.Written {
		return IOStats{}, ErrCounterReset
	}
	return IOStats{
		Read:    s.Read - previous.Read,
		Written: s.Written - previous.Written,
	}, nil
}

// Max returns the larger of the read and written counts.
func (s IOStats) Max() SectorCount {
	if s.Written > s.Read {
		return s.Written
	}
	return s.Read
}

// AlertClass is the severity tier of a delta
type AlertClass int

const (
	AlertNormal AlertClass = iota
	AlertWarning
	AlertCritical
)

func (c AlertClass) String() string {
	switch c {
	case AlertNormal:
		return "normal"
	case AlertWarning:
		return "warning"
	case AlertCritical:
		return "critical"
	default:
		return fmt.Sprintf("AlertClass(%d)", int(c))
	}
}

// MarshalText encodes the class by name so JSON payloads read "warning"
// instead of 1.
func (c AlertClass) MarshalText() ([]byte, error) {
	switch c {
	case AlertNormal, AlertWarning, AlertCritical:
		return []byte(c.String()), nil
	default:
		return nil, fmt.Errorf("iostat: unknown alert class %d", int(c))
	}
}

// UnmarshalText parses a class name produced by MarshalText.
func (c *AlertClass) UnmarshalText(text []byte) error {
	switch string(text) {
	case "normal":
		*c = AlertNormal
	case "warning":
		*c = AlertWarning
	case "critical":
		*c = AlertCritical
	default:
		return fmt.Errorf("iostat: unknown alert class %q", string(text))
	}
	return nil
}

// FormattedIOStats is the display-ready form of a delta.
type FormattedIOStats struct {
	Text  string     `json:"text"`
	Class AlertClass `json:"class"`
}
