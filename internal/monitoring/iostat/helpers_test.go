package iostat

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeStat creates <sys>/block/<name>/stat with the given sector counters
// in the kernel's 17-field layout.
func writeStat(t *testing.T, sys, name string, read, written uint64) {
	t.Helper()
	writeRawStat(t, sys, name, fmt.Sprintf(
		"    1200       30 %8d      400     5000      120 %8d     9000        0     3000    13400        0        0        0        0        0        0\n",
		read, written))
}

func writeRawStat(t *testing.T, sys, name, content string) {
	t.Helper()
	dir := filepath.Join(sys, "block", name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stat"), []byte(content), 0644))
}

// fakeSource replays a fixed sequence of samples.
type fakeSource struct {
	samples []IOStats
	errs    []error
	calls   int
}

func (f *fakeSource) Sample() (IOStats, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return IOStats{}, f.errs[i]
	}
	if i >= len(f.samples) {
		return f.samples[len(f.samples)-1], nil
	}
	return f.samples[i], nil
}
