package iostat

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPhysicalDevice(t *testing.T) {
	for _, name := range []string{"sda", "sdb", "nvme0n1", "vda", "mmcblk0"} {
		assert.True(t, IsPhysicalDevice(name), name)
	}
	for _, name := range []string{"dm-0", "dm-12", "loop0", "loop3"} {
		assert.False(t, IsPhysicalDevice(name), name)
	}
}

func TestListPhysicalDevices(t *testing.T) {
	sys := t.TempDir()
	writeStat(t, sys, "sda", 1, 1)
	writeStat(t, sys, "nvme0n1", 1, 1)
	writeStat(t, sys, "dm-0", 1, 1)
	writeStat(t, sys, "loop3", 1, 1)

	e := NewEnumerator(sys)
	devices, err := e.ListPhysicalDevices()
	require.NoError(t, err)

	names, err := e.DeviceNames()
	require.NoError(t, err)
	sort.Strings(names)
	assert.Equal(t, []string{"nvme0n1", "sda"}, names)

	for _, d := range devices {
		assert.Equal(t, filepath.Join(sys, "block", d.Name, "stat"), d.StatPath)
	}
}

func TestListPhysicalDevicesEmptyRegistry(t *testing.T) {
	sys := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(sys, "block"), 0755))

	devices, err := NewEnumerator(sys).ListPhysicalDevices()
	require.NoError(t, err)
	assert.Empty(t, devices)
}

func TestListPhysicalDevicesMissingRegistry(t *testing.T) {
	_, err := NewEnumerator(t.TempDir()).ListPhysicalDevices()

	var enumErr *EnumerationError
	require.ErrorAs(t, err, &enumErr)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, "enumeration", ErrorKind(err))
}

func TestParseStat(t *testing.T) {
	stats, err := ParseStat("sda", "100 0 200 0 50 0 300 0 0 0 0")
	require.NoError(t, err)
	assert.Equal(t, IOStats{Read: 200, Written: 300}, stats)

	// exactly seven fields is enough
	stats, err = ParseStat("sda", "0 0 5 0 0 0 9\n")
	require.NoError(t, err)
	assert.Equal(t, IOStats{Read: 5, Written: 9}, stats)
}

func TestParseStatErrors(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		field string
	}{
		{"empty", "", "stat record"},
		{"too short", "1 2 3 4 5 6", "stat record"},
		{"bad read", "1 2 x 4 5 6 7", "sectors read"},
		{"negative written", "1 2 3 4 5 6 -7", "sectors written"},
		{"overflow", "1 2 18446744073709551616 4 5 6 7", "sectors read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStat("sdz", tt.raw)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, "sdz", parseErr.Device)
			assert.Equal(t, tt.field, parseErr.Field)
			assert.ErrorIs(t, err, ErrIO)
			assert.Equal(t, "parse", ErrorKind(err))
		})
	}
}

func TestSysfsSamplerAggregates(t *testing.T) {
	sys := t.TempDir()
	writeStat(t, sys, "sda", 100, 10)
	writeStat(t, sys, "sdb", 250, 20)
	writeStat(t, sys, "dm-0", 99999, 99999)
	writeStat(t, sys, "loop0", 4242, 4242)

	stats, err := NewSysfsSampler(sys).Sample()
	require.NoError(t, err)
	assert.Equal(t, IOStats{Read: 350, Written: 30}, stats)
}

func TestSysfsSamplerNoDevices(t *testing.T) {
	sys := t.TempDir()
	writeStat(t, sys, "dm-0", 5, 5)

	stats, err := NewSysfsSampler(sys).Sample()
	require.NoError(t, err)
	assert.Equal(t, IOStats{}, stats)
}

func TestSysfsSamplerFailsWholeSample(t *testing.T) {
	t.Run("unreadable record", func(t *testing.T) {
		sys := t.TempDir()
		writeStat(t, sys, "sda", 100, 10)
		// a device directory without a stat file
		require.NoError(t, os.MkdirAll(filepath.Join(sys, "block", "sdb"), 0755))

		stats, err := NewSysfsSampler(sys).Sample()
		assert.Equal(t, IOStats{}, stats)

		var readErr *DeviceReadError
		require.ErrorAs(t, err, &readErr)
		assert.Equal(t, "sdb", readErr.Device)
		assert.ErrorIs(t, err, ErrIO)
		assert.Equal(t, "device_read", ErrorKind(err))
	})

	t.Run("malformed record", func(t *testing.T) {
		sys := t.TempDir()
		writeStat(t, sys, "sda", 100, 10)
		writeRawStat(t, sys, "sdb", "garbage\n")

		stats, err := NewSysfsSampler(sys).Sample()
		assert.Equal(t, IOStats{}, stats)

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "sdb", parseErr.Device)
	})
}

func TestSysfsSamplerIdempotent(t *testing.T) {
	sys := t.TempDir()
	writeStat(t, sys, "sda", 4096, 2048)
	src := NewSysfsSampler(sys)

	first, err := Step(src, nil)
	require.NoError(t, err)
	second, err := Step(src, &first.Snapshot)
	require.NoError(t, err)

	require.NotNil(t, second.Delta)
	assert.Equal(t, IOStats{}, *second.Delta)
	assert.Equal(t, AlertNormal, second.Formatted.Class)
}

func TestEndToEndIgnoresMappedDevices(t *testing.T) {
	sys := t.TempDir()
	writeStat(t, sys, "sda", 1000, 500)
	writeStat(t, sys, "dm-0", 1000, 500)
	src := NewSysfsSampler(sys)

	first, err := Step(src, nil)
	require.NoError(t, err)
	assert.Equal(t, IOStats{Read: 1000, Written: 500}, first.Snapshot)
	assert.Nil(t, first.Formatted)

	writeStat(t, sys, "sda", 1256, 500)
	writeStat(t, sys, "dm-0", 1256, 500)

	second, err := Step(src, &first.Snapshot)
	require.NoError(t, err)
	require.NotNil(t, second.Delta)
	assert.Equal(t, IOStats{Read: 256, Written: 0}, *second.Delta)
	assert.Equal(t, "     0.125 MiB/s read      0.000 MiB/s write", second.Formatted.Text)
	assert.Equal(t, AlertNormal, second.Formatted.Class)
}

func TestErrorKindUnknown(t *testing.T) {
	assert.Equal(t, "unknown", ErrorKind(errors.New("boom")))
}
