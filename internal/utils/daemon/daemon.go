package daemon

import (
	"IOStatDO/internal/pkg/logger"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// EnvDaemonChild marks the re-executed background process
const EnvDaemonChild = "IOSTAT_DO_DAEMON"

// IsChild reports whether this process was started by Daemonize
func IsChild() bool {
	return os.Getenv(EnvDaemonChild) == "1"
}

// readPIDFile returns the PID stored in pidFile
func readPIDFile(pidFile string) (int, error) {
	data, err := os.ReadFile(pidFile)
	if err != nil {
		return 0, fmt.Errorf("failed to read PID file: %w", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID in file: %w", err)
	}
	return pid, nil
}

// processAlive sends signal 0; on Unix os.FindProcess always succeeds
func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}

// IsRunning checks if the service is already running
func IsRunning(pidFile string) bool {
	running, _ := GetStatus(pidFile)
	return running
}

// Daemonize re-executes the binary in the background and exits the parent
func Daemonize(configPath, pidFile string) {
	executable, err := os.Executable()
	if err != nil {
		logger.Fatal("Failed to get executable path", logger.Err(err))
	}

	args := []string{"start", "--pid-file", pidFile}
	if configPath != "" {
		args = append(args, "--config", configPath)
	}

	cmd := exec.Command(executable, args...)
	cmd.Env = append(os.Environ(), EnvDaemonChild+"=1")
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		logger.Fatal("Failed to start daemon process", logger.Err(err))
	}

	logger.Info("Started daemon process", logger.Int("pid", cmd.Process.Pid))
	os.Exit(0)
}

// WritePIDFile writes the current process ID to the specified file
func WritePIDFile(pidFile string) error {
	if err := os.MkdirAll(filepath.Dir(pidFile), 0755); err != nil {
		return fmt.Errorf("failed to create directory for PID file: %w", err)
	}

	pid := os.Getpid()
	if err := os.WriteFile(pidFile, []byte(strconv.Itoa(pid)), 0644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}

	logger.Info("Wrote PID to file",
		logger.Int("pid", pid),
		logger.String("file", pidFile))
	return nil
}

// RemovePIDFile removes the PID file during shutdown
func RemovePIDFile(pidFile string) {
	if err := os.Remove(pidFile); err != nil && !os.IsNotExist(err) {
		logger.Error("Failed to remove PID file during shutdown",
			logger.Err(err),
			logger.String("file", pidFile))
		return
	}
	logger.Info("Removed PID file during shutdown", logger.String("file", pidFile))
}

// StopProcess sends SIGTERM to the process recorded in pidFile
func StopProcess(pidFile string) (int, error) {
	if _, err := os.Stat(pidFile); os.IsNotExist(err) {
		return 0, fmt.Errorf("service is not running (PID file not found)")
	}

	pid, err := readPIDFile(pidFile)
	if err != nil {
		return 0, err
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return 0, fmt.Errorf("failed to find process: %w", err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		return 0, fmt.Errorf("failed to send terminate signal: %w", err)
	}

	if err := os.Remove(pidFile); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to remove PID file after stopping process",
			logger.Err(err),
			logger.String("file", pidFile))
	}

	return pid, nil
}

// GetStatus checks if the service is running and returns the PID. A stale
// PID file is removed.
func GetStatus(pidFile string) (bool, int) {
	if _, err := os.Stat(pidFile); os.IsNotExist(err) {
		return false, 0
	}

	pid, err := readPIDFile(pidFile)
	if err != nil {
		logger.Error("Unusable PID file",
			logger.Err(err),
			logger.String("file", pidFile))
		return false, 0
	}

	if processAlive(pid) {
		return true, pid
	}

	os.Remove(pidFile)
	return false, 0
}
