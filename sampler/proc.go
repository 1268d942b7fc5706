package sampler

import (
	"os"
	"strconv"
	"strings"
)

// Cmdline returns the command line of a running process, best-effort.
// Absence (process gone, unsupported platform, insufficient permission) is
// never fatal; the viewer's header simply omits it.
func Cmdline(pid int) (string, bool) {
	data, err := os.ReadFile("/proc/" + strconv.Itoa(pid) + "/cmdline")
	if err != nil || len(data) == 0 {
		return "", false
	}

	// Arguments are NUL-delimited with a trailing NUL.
	args := strings.Split(strings.TrimRight(string(data), "\x00"), "\x00")

	return strings.Join(args, " "), true
}
