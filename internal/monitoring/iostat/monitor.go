package iostat

import (
	"IOStatDO/internal/metrics"
	"IOStatDO/internal/pkg/config"
	"IOStatDO/internal/pkg/logger"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Reading is what the monitor publishes after every successful delta.
type Reading struct {
	Timestamp    time.Time  `json:"timestamp"`
	Text         string     `json:"text"`
	Class        AlertClass `json:"class"`
	ReadBytes    uint64     `json:"read_bytes"`
	WrittenBytes uint64     `json:"written_bytes"`
	Interval     float64    `json:"interval_seconds"`
}

// Monitor drives periodic sampling and owns the previous snapshot.
type Monitor struct {
	config    *config.Config
	source    Source
	metrics   *metrics.Metrics
	ticker    *time.Ticker
	stopChan  chan struct{}
	doneChan  chan struct{}
	isRunning bool
	mutex     sync.Mutex

	// previous is only touched by checkIOStats and reset on start
	previous *IOStats

	lastReading *Reading
	listeners   []func(Reading)
}

// NewMonitor creates a new throughput monitor instance. m may be nil.
func NewMonitor(cfg *config.Config, src Source, m *metrics.Metrics) *Monitor {
	if m != nil {
		m.IntervalSeconds.Set(cfg.Monitoring.IOStat.Interval)
	}
	return &Monitor{
		config:  cfg,
		source:  src,
		metrics: m,
	}
}

// NewMonitorFromConfig builds the configured counter source and a monitor
// on top of it.
func NewMonitorFromConfig(cfg *config.Config, m *metrics.Metrics) (*Monitor, error) {
	ioCfg := cfg.Monitoring.IOStat
	src, err := NewSource(ioCfg.Source, ioCfg.SysPath, ioCfg.ProcPath)
	if err != nil {
		return nil, err
	}
	return NewMonitor(cfg, src, m), nil
}

// AddListener registers a callback invoked with every new reading.
// Listeners run on the monitor goroutine and must not block.
func (m *Monitor) AddListener(fn func(Reading)) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.listeners = append(m.listeners, fn)
}

// StartMonitoring begins the sampling loop
func (m *Monitor) StartMonitoring() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.isRunning {
		return fmt.Errorf("iostat monitor is already running")
	}

	ioCfg := m.config.Monitoring.IOStat
	if !ioCfg.Enabled {
		return fmt.Errorf("iostat monitoring is disabled in configuration")
	}

	interval := ioCfg.IntervalDuration()
	if interval <= 0 {
		return fmt.Errorf("invalid iostat interval: %v", ioCfg.Interval)
	}

	// A restart must not diff against a snapshot taken before the stop
	m.previous = nil
	m.ticker = time.NewTicker(interval)
	m.stopChan = make(chan struct{})
	m.doneChan = make(chan struct{})
	m.isRunning = true

	logger.Info("Starting iostat monitor",
		logger.Float64("interval_seconds", ioCfg.Interval),
		logger.String("source", ioCfg.Source),
		logger.Uint64("warning_threshold_bytes", WarningThreshold.Bytes()),
		logger.Uint64("critical_threshold_bytes", CriticalThreshold.Bytes()))

	ticker, stop, done := m.ticker, m.stopChan, m.doneChan

	// The first check only establishes the baseline
	go func() {
		defer close(done)
		m.checkIOStats()

		for {
			select {
			case <-ticker.C:
				m.checkIOStats()
			case <-stop:
				ticker.Stop()
				return
			}
		}
	}()

	return nil
}

// StopMonitoring halts the sampling loop and waits for the in-flight
// check to finish
func (m *Monitor) StopMonitoring() {
	m.mutex.Lock()
	if !m.isRunning {
		m.mutex.Unlock()
		return
	}
	close(m.stopChan)
	done := m.doneChan
	m.isRunning = false
	m.mutex.Unlock()

	<-done
	logger.Info("IOStat monitor stopped")
}

// IsRunning reports whether the sampling loop is active
func (m *Monitor) IsRunning() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.isRunning
}

// LastReading returns the most recent reading. ok is false until two
// samples have been taken.
func (m *Monitor) LastReading() (Reading, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.lastReading == nil {
		return Reading{}, false
	}
	return *m.lastReading, true
}

// GetConfig returns the monitor's configuration
func (m *Monitor) GetConfig() *config.Config {
	return m.config
}

// checkIOStats performs a single sampling pass
func (m *Monitor) checkIOStats() {
	res, err := Step(m.source, m.previous)
	if err != nil {
		// The previous snapshot and the last reading stay as they are
		kind := ErrorKind(err)
		if m.metrics != nil {
			m.metrics.RecordError(kind)
		}
		logger.Error("Failed to sample disk I/O counters",
			logger.String("kind", kind),
			logger.Bool("io_error", errors.Is(err, ErrIO)),
			logger.Err(err))
		return
	}

	snapshot := res.Snapshot
	m.previous = &snapshot

	switch {
	case res.CounterReset:
		if m.metrics != nil {
			m.metrics.RecordCounterReset()
		}
		logger.Warn("Disk I/O counters went backwards, re-establishing baseline",
			logger.Uint64("read_sectors", uint64(snapshot.Read)),
			logger.Uint64("written_sectors", uint64(snapshot.Written)))
		return
	case res.Formatted == nil:
		if m.metrics != nil {
			m.metrics.RecordBaseline()
		}
		logger.Debug("IOStat baseline established",
			logger.Uint64("read_sectors", uint64(snapshot.Read)),
			logger.Uint64("written_sectors", uint64(snapshot.Written)))
		return
	}

	reading := Reading{
		Timestamp:    time.Now(),
		Text:         res.Formatted.Text,
		Class:        res.Formatted.Class,
		ReadBytes:    res.Delta.Read.Bytes(),
		WrittenBytes: res.Delta.Written.Bytes(),
		Interval:     m.config.Monitoring.IOStat.Interval,
	}

	if m.metrics != nil {
		m.metrics.RecordSample(reading.ReadBytes, reading.WrittenBytes, int(reading.Class))
	}

	m.mutex.Lock()
	previous := m.lastReading
	m.lastReading = &reading
	listeners := make([]func(Reading), len(m.listeners))
	copy(listeners, m.listeners)
	m.mutex.Unlock()

	if previous != nil && previous.Class != reading.Class {
		logStatusChange(previous.Class, reading)
	}

	for _, fn := range listeners {
		fn(reading)
	}
}
