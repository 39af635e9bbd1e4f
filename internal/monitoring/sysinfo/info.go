package sysinfo

import (
	"fmt"
	"net"
	"time"

	"github.com/shirou/gopsutil/host"
)

// Swapped out in tests
var (
	hostInfoFunc    = host.Info
	ipAddressesFunc = getIPAddresses
	currentTimeFunc = time.Now
)

// GetSystemInfo retrieves general host information
func GetSystemInfo() (*SystemInfo, error) {
	hostStat, err := hostInfoFunc()
	if err != nil {
		return nil, fmt.Errorf("failed to get host info: %w", err)
	}

	ipAddresses, err := ipAddressesFunc()
	if err != nil {
		return nil, fmt.Errorf("failed to get IP addresses: %w", err)
	}

	return &SystemInfo{
		Uptime:          FormatUptime(hostStat.Uptime),
		UptimeSeconds:   hostStat.Uptime,
		BootTime:        time.Unix(int64(hostStat.BootTime), 0).UTC().Format(time.RFC3339),
		CurrentTime:     currentTimeFunc().Format(time.RFC3339),
		ProcessCount:    int(hostStat.Procs),
		Hostname:        hostStat.Hostname,
		OS:              hostStat.OS,
		Platform:        hostStat.Platform,
		PlatformVersion: hostStat.PlatformVersion,
		KernelVersion:   hostStat.KernelVersion,
		IPAddresses:     ipAddresses,
	}, nil
}

// FormatUptime renders seconds as "D days, H hours, M minutes"
func FormatUptime(seconds uint64) string {
	return fmt.Sprintf("%d days, %d hours, %d minutes",
		seconds/86400, (seconds%86400)/3600, (seconds%3600)/60)
}

// getIPAddresses retrieves all non-loopback unicast addresses of up interfaces
func getIPAddresses() ([]string, error) {
	var ips []string
	interfaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	for _, iface := range interfaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			return nil, err
		}

		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}

			if ip != nil && ip.IsGlobalUnicast() {
				ips = append(ips, ip.String())
			}
		}
	}

	return ips, nil
}
