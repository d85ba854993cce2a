//go:build windows

package scan

import "os"

// statInfo is the platform identity of a filesystem entry. Windows exposes
// no cheap device+inode pair through os.FileInfo, so identities degrade to
// zero values and loop detection falls back to depth bounding.
type statInfo struct {
	Dev uint64
	Ino uint64
}

func statIdentity(path string, info os.FileInfo) (statInfo, error) {
	return statInfo{}, nil
}

// diskUsageBytes approximates allocated size with the apparent size; block
// counts are not available here.
func diskUsageBytes(info os.FileInfo) uint64 {
	return uint64(info.Size())
}
