//go:build darwin

package fs

import (
	"time"

	"golang.org/x/sys/unix"
)

func birthTime(path string) (time.Time, bool) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return time.Time{}, false
	}
	sec, nsec := st.Birthtimespec.Unix()
	return time.Unix(sec, nsec), true
}
