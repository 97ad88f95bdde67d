package gauge

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// SysInfo describes the host the benchmarks run on.
type SysInfo struct {
	Arch     string
	Hostname string
	Platform string
	CPUCount int
	CPUFreq  float64
	RAM      float64
}

// HostStat collects host information for the --add_sysinfo columns.
// Collection failures leave the affected fields zeroed.
func HostStat() SysInfo {
	hostStat, _ := host.Info()
	cpuStat, _ := cpu.Info()
	vmStat, _ := mem.VirtualMemory()

	info := SysInfo{
		Arch:     runtime.GOARCH,
		CPUCount: len(cpuStat),
	}
	if hostStat != nil {
		info.Hostname = hostStat.Hostname
		info.Platform = hostStat.Platform
	}
	if len(cpuStat) > 0 {
		totalFreq := 0.0
		for _, c := range cpuStat {
			totalFreq += c.Mhz
		}
		info.CPUFreq = totalFreq / float64(len(cpuStat))
	}
	if vmStat != nil {
		info.RAM = float64(vmStat.Total) / 1024 / 1024 / 1024
	}
	return info
}

// addSysinfoColumns injects the host information as custom constant
// columns. A name that collides with an --add_column entry is a
// duplicate-column error, same as repeating --add_column itself.
func (r *Runner) addSysinfoColumns() error {
	info := HostStat()
	pairs := []struct {
		name  string
		value string
	}{
		{"arch", info.Arch},
		{"hostname", info.Hostname},
		{"platform", info.Platform},
		{"cpu_count", strconv.Itoa(info.CPUCount)},
		{"cpu_freq", fmt.Sprintf("%.0f", info.CPUFreq)},
		{"ram_gb", fmt.Sprintf("%.1f", info.RAM)},
	}
	for _, pair := range pairs {
		if err := r.setColumn(pair.name, pair.value); err != nil {
			return err
		}
	}
	return nil
}
