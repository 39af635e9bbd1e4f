package sysinfo

// SystemInfo represents general host information
type SystemInfo struct {
	Uptime          string   `json:"uptime"`
	UptimeSeconds   uint64   `json:"uptime_seconds"`
	BootTime        string   `json:"boot_time"`
	CurrentTime     string   `json:"current_time"`
	ProcessCount    int      `json:"process_count"`
	Hostname        string   `json:"hostname"`
	OS              string   `json:"os"`
	Platform        string   `json:"platform"`
	PlatformVersion string   `json:"platform_version"`
	KernelVersion   string   `json:"kernel_version"`
	IPAddresses     []string `json:"ip_addresses"`
}
