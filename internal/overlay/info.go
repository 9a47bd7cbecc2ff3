package overlay

import (
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

// Info is the static context shown next to the live figures.
type Info struct {
	AppName    string
	AppVersion string
	Device     string
	System     string
}

// CollectInfo fills Device and System from the host. Fields the host cannot
// provide are left empty.
func CollectInfo(appName, appVersion string) Info {
	info := Info{AppName: appName, AppVersion: appVersion}

	stat, err := host.Info()
	if err != nil || stat == nil {
		return info
	}

	info.Device = strings.TrimSpace(strings.Join(nonEmpty(stat.Hostname, stat.KernelArch), " "))

	system := nonEmpty(stat.Platform, stat.PlatformVersion)
	if len(system) == 0 {
		system = nonEmpty(stat.OS, stat.KernelVersion)
	}
	info.System = strings.Join(system, " ")
	return info
}

func nonEmpty(values ...string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
