//go:build linux || darwin

package diro_installer

import (
	"os"

	"golang.org/x/sys/unix"
)

func osFileWriteAccess(path string) bool {
	return unix.Access(path, unix.W_OK) == nil
}

func osDiskSpace(path string) int64 {
	fs := unix.Statfs_t{}
	if err := unix.Statfs(path, &fs); err != nil {
		return -1
	}
	return int64(fs.Bavail) * int64(fs.Bsize)
}

// osUmask returns the process umask. Reading it requires setting it, so it is
// immediately restored.
func osUmask() int {
	mask := unix.Umask(0)
	unix.Umask(mask)
	return mask
}

func osIsCrossDevice(err error) bool {
	linkErr, ok := err.(*os.LinkError)
	return ok && linkErr.Err == unix.EXDEV
}
