//go:build !windows

package scan

import (
	"fmt"
	"os"
	"syscall"
)

// statInfo is the platform identity of a filesystem entry.
type statInfo struct {
	Dev uint64
	Ino uint64
}

// statIdentity extracts the device and inode numbers from a FileInfo.
func statIdentity(path string, info os.FileInfo) (statInfo, error) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok || st == nil {
		return statInfo{}, fmt.Errorf("no stat identity available for %s", path)
	}
	return statInfo{Dev: uint64(st.Dev), Ino: uint64(st.Ino)}, nil
}

// diskUsageBytes returns the allocated size of an entry in bytes, the way du
// reports it: 512-byte blocks, which also handles sparse files.
func diskUsageBytes(info os.FileInfo) uint64 {
	if st, ok := info.Sys().(*syscall.Stat_t); ok && st != nil {
		return uint64(st.Blocks) * 512
	}
	return uint64(info.Size())
}
