//go:build !windows

package debug

import "golang.org/x/sys/unix"

// residentSet returns the peak resident set reported by getrusage (kilobytes on Linux).
func residentSet() (uint64, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, err
	}
	return uint64(ru.Maxrss) * 1024, nil
}
