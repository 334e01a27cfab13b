package logutils

import (
	"strconv"
	"strings"
)

// ShortCallerFormatter trims the caller path down to the file name,
// so that log lines carry "latency.go:42" instead of the absolute path.
func ShortCallerFormatter(_ uintptr, file string, line int) string {
	if idx := strings.LastIndexByte(file, '/'); idx >= 0 {
		file = file[idx+1:]
	}
	return file + ":" + strconv.Itoa(line)
}
