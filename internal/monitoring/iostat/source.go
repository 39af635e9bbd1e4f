package iostat

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/prometheus/procfs/blockdevice"
	"github.com/shirou/gopsutil/disk"
)

// Names accepted by monitoring.iostat.source.
const (
	SourceSysfs     = "sysfs"
	SourceProcfs    = "procfs"
	SourceDiskstats = "diskstats"
)

// DefaultProcPath is where procfs is normally mounted.
const DefaultProcPath = "/proc"

// SourceNames lists the supported counter sources.
func SourceNames() []string {
	return []string{SourceSysfs, SourceProcfs, SourceDiskstats}
}

// NewSource builds the named counter source.
func NewSource(name, sysPath, procPath string) (Source, error) {
	switch name {
	case "", SourceSysfs:
		return NewSysfsSampler(sysPath), nil
	case SourceProcfs:
		return NewProcfsSampler(procPath, sysPath)
	case SourceDiskstats:
		return NewDiskstatsSampler(sysPath, procPath), nil
	default:
		return nil, fmt.Errorf("unknown iostat source %q", name)
	}
}

// ProcfsSampler reads the same sysfs records through prometheus/procfs.
// procfs scans every field as an integer, so a record the sysfs sampler
// accepts (only fields 2 and 6 numeric) can be a ParseError here.
type ProcfsSampler struct {
	fs       blockdevice.FS
	blockDir string
}

// NewProcfsSampler opens the procfs and sysfs mount points.
func NewProcfsSampler(procPath, sysPath string) (*ProcfsSampler, error) {
	if procPath == "" {
		procPath = DefaultProcPath
	}
	if sysPath == "" {
		sysPath = DefaultSysPath
	}

	bfs, err := blockdevice.NewFS(procPath, sysPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open block device filesystems: %w", err)
	}
	return &ProcfsSampler{fs: bfs, blockDir: filepath.Join(sysPath, "block")}, nil
}

func (s *ProcfsSampler) Sample() (IOStats, error) {
	names, err := s.fs.SysBlockDevices()
	if err != nil {
		return IOStats{}, &EnumerationError{Path: s.blockDir, Err: err}
	}

	var total IOStats
	for _, name := range names {
		if !IsPhysicalDevice(name) {
			continue
		}

		stat, count, err := s.fs.SysBlockDeviceStat(name)
		if err != nil {
			var pathErr *fs.PathError
			if errors.As(err, &pathErr) {
				return IOStats{}, &DeviceReadError{Device: name, Path: pathErr.Path, Err: err}
			}
			return IOStats{}, &ParseError{Device: name, Field: "stat record", Err: err}
		}
		if count < minStatFields {
			return IOStats{}, &ParseError{
				Device: name,
				Field:  "stat record",
				Err:    fmt.Errorf("expected at least %d fields, got %d", minStatFields, count),
			}
		}

		total = total.Add(IOStats{
			Read:    SectorCount(stat.ReadSectors),
			Written: SectorCount(stat.WriteSectors),
		})
	}
	return total, nil
}

// Environment variables gopsutil resolves its mount points from.
const (
	envHostProc = "HOST_PROC"
	envHostSys  = "HOST_SYS"
)

// ioCountersFunc is swapped out in tests.
var ioCountersFunc = disk.IOCounters

// DiskstatsSampler reads /proc/diskstats via gopsutil, restricted to the
// physical devices found in sysfs so partitions are not counted twice.
type DiskstatsSampler struct {
	enumerator *Enumerator
}

// NewDiskstatsSampler points gopsutil at the configured mount points.
// gopsutil only reads them from HOST_PROC and HOST_SYS, so those are set
// process-wide when the paths differ from the defaults.
func NewDiskstatsSampler(sysPath, procPath string) *DiskstatsSampler {
	if procPath != "" && procPath != DefaultProcPath {
		os.Setenv(envHostProc, procPath)
	}
	if sysPath != "" && sysPath != DefaultSysPath {
		os.Setenv(envHostSys, sysPath)
	}
	return &DiskstatsSampler{enumerator: NewEnumerator(sysPath)}
}

func (s *DiskstatsSampler) Sample() (IOStats, error) {
	names, err := s.enumerator.DeviceNames()
	if err != nil {
		return IOStats{}, err
	}
	if len(names) == 0 {
		// IOCounters treats an empty filter as "everything".
		return IOStats{}, nil
	}

	counters, err := ioCountersFunc(names...)
	if err != nil {
		return IOStats{}, &DeviceReadError{Device: "all", Path: "diskstats", Err: err}
	}

	var total IOStats
	for _, name := range names {
		c, ok := counters[name]
		if !ok {
			return IOStats{}, &DeviceReadError{
				Device: name,
				Path:   "diskstats",
				Err:    errors.New("device missing from diskstats"),
			}
		}
		total = total.Add(IOStats{
			Read:    SectorCount(c.ReadBytes / SectorSize),
			Written: SectorCount(c.WriteBytes / SectorSize),
		})
	}
	return total, nil
}
