package iostat

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Field positions in /sys/block/<dev>/stat (0-based).
const (
	fieldSectorsRead    = 2
	fieldSectorsWritten = 6
	minStatFields       = fieldSectorsWritten + 1
)

// Source produces aggregate snapshots of the physical block devices.
type Source interface {
	Sample() (IOStats, error)
}

// SysfsSampler reads the per-device stat records under /sys/block.
type SysfsSampler struct {
	enumerator *Enumerator
}

// NewSysfsSampler creates a sampler for the given sysfs mount point.
func NewSysfsSampler(sysPath string) *SysfsSampler {
	return &SysfsSampler{enumerator: NewEnumerator(sysPath)}
}

// Sample sums the counters of every physical device. Any failing device
// fails the whole sample.
func (s *SysfsSampler) Sample() (IOStats, error) {
	devices, err := s.enumerator.ListPhysicalDevices()
	if err != nil {
		return IOStats{}, err
	}

	var total IOStats
	for _, device := range devices {
		raw, err := os.ReadFile(device.StatPath)
		if err != nil {
			return IOStats{}, &DeviceReadError{Device: device.Name, Path: device.StatPath, Err: err}
		}

		stats, err := ParseStat(device.Name, string(raw))
		if err != nil {
			return IOStats{}, err
		}
		total = total.Add(stats)
	}
	return total, nil
}

// ParseStat extracts the cumulative sectors read and written from a stat
// record.
func ParseStat(device, raw string) (IOStats, error) {
	fields := strings.Fields(raw)
	if len(fields) < minStatFields {
		return IOStats{}, &ParseError{
			Device: device,
			Field:  "stat record",
			Err:    fmt.Errorf("expected at least %d fields, got %d", minStatFields, len(fields)),
		}
	}

	read, err := strconv.ParseUint(fields[fieldSectorsRead], 10, 64)
	if err != nil {
		return IOStats{}, &ParseError{Device: device, Field: "sectors read", Err: err}
	}

	written, err := strconv.ParseUint(fields[fieldSectorsWritten], 10, 64)
	if err != nil {
		return IOStats{}, &ParseError{Device: device, Field: "sectors written", Err: err}
	}

	return IOStats{Read: SectorCount(read), Written: SectorCount(written)}, nil
}
