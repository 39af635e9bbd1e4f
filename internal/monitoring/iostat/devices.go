package iostat

import (
	"os"
	"path/filepath"
	"strings"
)

// Mapped and loop devices are skipped so their I/O is not counted twice on
// top of the physical disks backing them. lsblk applies a similar filter.
var ignoredDevicePrefixes = []string{"dm-", "loop"}

// DefaultSysPath is where sysfs is normally mounted.
const DefaultSysPath = "/sys"

// Device is a physical block device and the location of its stat record.
type Device struct {
	Name     string `json:"name"`
	StatPath string `json:"stat_path"`
}

// IsPhysicalDevice reports whether the named block device should be
// counted in the aggregate.
func IsPhysicalDevice(name string) bool {
	for _, prefix := range ignoredDevicePrefixes {
		if strings.HasPrefix(name, prefix) {
			return false
		}
	}
	return true
}

// Enumerator lists the entries of <sys>/block.
type Enumerator struct {
	blockDir string
}

// NewEnumerator creates an enumerator rooted at the given sysfs mount point.
func NewEnumerator(sysPath string) *Enumerator {
	if sysPath == "" {
		sysPath = DefaultSysPath
	}
	return &Enumerator{blockDir: filepath.Join(sysPath, "block")}
}

// BlockDir returns the registry directory being listed.
func (e *Enumerator) BlockDir() string {
	return e.blockDir
}

// ListPhysicalDevices returns every registry entry that is not a virtual
// device. The order is not significant.
func (e *Enumerator) ListPhysicalDevices() ([]Device, error) {
	entries, err := os.ReadDir(e.blockDir)
	if err != nil {
		return nil, &EnumerationError{Path: e.blockDir, Err: err}
	}

	devices := make([]Device, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !IsPhysicalDevice(name) {
			continue
		}
		devices = append(devices, Device{
			Name:     name,
			StatPath: filepath.Join(e.blockDir, name, "stat"),
		})
	}
	return devices, nil
}

// DeviceNames is a convenience wrapper returning only the names.
func (e *Enumerator) DeviceNames() ([]string, error) {
	devices, err := e.ListPhysicalDevices()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(devices))
	for i, d := range devices {
		names[i] = d.Name
	}
	return names, nil
}
