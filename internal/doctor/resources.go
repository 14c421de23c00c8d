package doctor

import (
	"context"
	"strconv"
)

const bytesPerGB = 1024 * 1024 * 1024

// CheckDisk reports an issue when the filesystem holding dir has less than
// minGB gigabytes available. Probe failures become a warning.
func CheckDisk(_ context.Context, p Probes, dir string, minGB float64) Findings {
	const check = "disk"

	free, err := p.Disk.FreeBytes(dir)
	if err != nil {
		return Findings{warningf(check, "Could not check disk space: %v", err)}
	}

	freeGB := float64(free) / bytesPerGB
	p.progress("Free disk space: %.1fGB", freeGB)
	if freeGB >= minGB {
		return nil
	}

	return Findings{
		issuef(check, "Low disk space: %.1fGB free", freeGB),
		suggestionf(check, "Need at least %sGB free space", formatGB(minGB)),
		suggestionf(check, "Run: docker system prune"),
		suggestionf(check, "Search: 'how to free up disk space linux/windows'"),
	}
}

// CheckMemory warns when available memory is below minGB. It never reports
// an issue.
func CheckMemory(_ context.Context, p Probes, minGB float64) Findings {
	const check = "memory"

	avail, err := p.Memory.AvailableBytes()
	if err != nil {
		return Findings{warningf(check, "Could not check memory: %v", err)}
	}

	availGB := float64(avail) / bytesPerGB
	if availGB >= minGB {
		return nil
	}

	return Findings{
		warningf(check, "Low available memory: %.1fGB (recommended: %sGB)", availGB, formatGB(minGB)),
		suggestionf(check, "Close unused applications or stop idle containers: docker stop <container>"),
	}
}

// formatGB prints whole thresholds without a decimal point ("10", "2.5").
func formatGB(gb float64) string {
	return strconv.FormatFloat(gb, 'f', -1, 64)
}
