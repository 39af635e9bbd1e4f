package iostat

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatIOStats(t *testing.T) {
	tests := []struct {
		name  string
		delta IOStats
		text  string
		class AlertClass
	}{
		{
			name:  "idle",
			delta: IOStats{},
			text:  "     0.000 MiB/s read      0.000 MiB/s write",
			class: AlertNormal,
		},
		{
			name:  "one MiB read",
			delta: IOStats{Read: SectorsFromMiB(1)},
			text:  "     1.000 MiB/s read      0.000 MiB/s write",
			class: AlertNormal,
		},
		{
			name:  "fraction",
			delta: IOStats{Read: 256, Written: 1},
			text:  "     0.125 MiB/s read      0.000 MiB/s write",
			class: AlertNormal,
		},
		{
			name:  "grouping",
			delta: IOStats{Written: SectorsFromMiB(1024)},
			text:  "     0.000 MiB/s read  1,024.000 MiB/s write",
			class: AlertCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatIOStats(tt.delta)
			assert.Equal(t, tt.text, got.Text)
			assert.Equal(t, tt.class, got.Class)
		})
	}
}

func TestGroupThousandths(t *testing.T) {
	cases := map[uint64]string{
		0:          "0.000",
		7:          "0.007",
		125:        "0.125",
		1000:       "1.000",
		999999:     "999.999",
		1024000:    "1,024.000",
		12345678:   "12,345.678",
		1234567890: "1,234,567.890",
	}
	for in, want := range cases {
		assert.Equal(t, want, groupThousandths(in), "input %d", in)
	}
}

func TestFormatLargeValues(t *testing.T) {
	got := FormatIOStats(IOStats{Read: math.MaxUint64, Written: math.MaxUint64})
	assert.NotPanics(t, func() { FormatIOStats(IOStats{Read: math.MaxUint64}) })
	assert.True(t, strings.HasSuffix(got.Text, " MiB/s write"))
	assert.NotContains(t, got.Text, fallbackValue)
	assert.Equal(t, AlertCritical, got.Class)
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		delta IOStats
		want  AlertClass
	}{
		{"zero", IOStats{}, AlertNormal},
		{"just below warning", IOStats{Read: WarningThreshold - 1}, AlertNormal},
		{"exactly warning", IOStats{Read: WarningThreshold}, AlertWarning},
		{"written decides", IOStats{Read: 1, Written: WarningThreshold}, AlertWarning},
		{"just below critical", IOStats{Written: CriticalThreshold - 1}, AlertWarning},
		{"exactly critical", IOStats{Read: CriticalThreshold}, AlertCritical},
		{"far above critical", IOStats{Read: CriticalThreshold * 10}, AlertCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.delta))
		})
	}
}
