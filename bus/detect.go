package bus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// CPUInfo is the file DetectBus reads the board revision from.
const CPUInfo = "/proc/cpuinfo"

// DetectBusNumber returns the I²C bus number of the Raspberry Pi header
// described by cpuinfo. Revision 1 boards (revision codes ending in 0002 or
// 0003) route the header to bus 0, every other board to bus 1. A cpuinfo
// without a Revision line yields bus 1.
func DetectBusNumber(cpuinfo io.Reader) (int, error) {
	s := bufio.NewScanner(cpuinfo)
	for s.Scan() {
		name, value, ok := strings.Cut(s.Text(), ":")
		if !ok || strings.TrimSpace(name) != "Revision" {
			continue
		}
		value = strings.TrimSpace(value)
		if strings.HasSuffix(value, "0002") || strings.HasSuffix(value, "0003") {
			return 0, nil
		}
		return 1, nil
	}
	if err := s.Err(); err != nil {
		return 0, fmt.Errorf("bus: could not read cpuinfo: %w", err)
	}

	return 1, nil
}

// DetectBus reads CPUInfo and returns the I²C bus number of the header.
func DetectBus() (int, error) {
	f, err := os.Open(CPUInfo)
	if err != nil {
		return 0, fmt.Errorf("bus: could not detect bus: %w", err)
	}
	defer f.Close()

	return DetectBusNumber(f)
}
